package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errCallerMissing = errors.New("caller profile not found")

// DBTracker keeps the counter on the caller's profile row.
type DBTracker struct {
	db     *gorm.DB
	window time.Duration
	now    func() time.Time
}

func NewDBTracker(db *gorm.DB, window time.Duration) *DBTracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &DBTracker{db: db, window: window, now: time.Now}
}

// WithClock replaces the time source.
func (t *DBTracker) WithClock(now func() time.Time) *DBTracker {
	t.now = now
	return t
}

func (t *DBTracker) Check(ctx context.Context, s Subject) error {
	now := t.now().UTC()
	if !expired(s.WindowStart, now, t.window) {
		if s.Count >= s.Limit {
			return ErrExceeded
		}
		return nil
	}

	// Compare-and-set: only the request that still sees an expired window
	// performs the reset.
	cutoff := now.Add(-t.window)
	res := t.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", s.CallerID).
		Where("(api_throughput_cycle_begin_time IS NULL OR api_throughput_cycle_begin_time <= ?)", cutoff).
		Updates(map[string]interface{}{
			"api_user_count_this_cycle":       0,
			"api_throughput_cycle_begin_time": now,
		})
	if res.Error != nil {
		return fmt.Errorf("reset quota window: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var p models.Profile
	if err := t.db.WithContext(ctx).Where("user_id = ?", s.CallerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errCallerMissing
		}
		return fmt.Errorf("reload quota state: %w", err)
	}
	if expired(p.APIThroughputCycleBeginTime, now, t.window) {
		return errors.New("quota window reset was not applied")
	}
	if p.APIUserCountThisCycle >= p.APIUserThroughputLimitPerMin {
		return ErrExceeded
	}
	return nil
}

func (t *DBTracker) Advance(ctx context.Context, callerID uuid.UUID) error {
	res := t.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", callerID).
		UpdateColumn("api_user_count_this_cycle", gorm.Expr("api_user_count_this_cycle + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("advance quota: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errCallerMissing
	}
	return nil
}
