package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// PGHandler is an slog.Handler that batches ERROR+ records into system_logs.
type PGHandler struct {
	db      *gorm.DB
	mu      sync.Mutex
	buffer  []models.SystemLog
	ticker  *time.Ticker
	done    chan struct{}
	stopped chan struct{}
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db:      db,
		buffer:  make([]models.SystemLog, 0, batchSize),
		ticker:  time.NewTicker(flushInterval),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *PGHandler) flushLoop() {
	defer close(h.stopped)
	for {
		select {
		case <-h.ticker.C:
			h.Flush()
		case <-h.done:
			h.Flush()
			return
		}
	}
}

// Flush writes buffered records now.
func (h *PGHandler) Flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.buffer
	h.buffer = make([]models.SystemLog, 0, batchSize)
	h.mu.Unlock()

	if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// WARN stays below this handler's level, so the failure is not re-queued.
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to end.
func (h *PGHandler) Stop() {
	h.ticker.Stop()
	close(h.done)
	<-h.stopped
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "gym_id":
			entry.GymID = a.Value.String()
		case "request_id", "trace_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			if f, ok := a.Value.Any().(float64); ok {
				entry.LatencyMs = int(math.Round(f))
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= batchSize
	h.mu.Unlock()

	if needFlush {
		go h.Flush()
	}
	return nil
}

// WithAttrs shares the buffer with h; the attrs are applied to every record.
func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &pgChild{parent: h, attrs: attrs}
}

// WithGroup is flattened: grouped keys are stored as is.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}

type pgChild struct {
	parent *PGHandler
	attrs  []slog.Attr
}

func (c *pgChild) Enabled(ctx context.Context, level slog.Level) bool {
	return c.parent.Enabled(ctx, level)
}

func (c *pgChild) Handle(ctx context.Context, record slog.Record) error {
	r := record.Clone()
	r.AddAttrs(c.attrs...)
	return c.parent.Handle(ctx, r)
}

func (c *pgChild) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, c.attrs...), attrs...)
	return &pgChild{parent: c.parent, attrs: merged}
}

func (c *pgChild) WithGroup(string) slog.Handler {
	return c
}
