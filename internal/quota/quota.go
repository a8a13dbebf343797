// Package quota enforces the per-caller fixed-window limit on accounts
// created through the registration API.
package quota

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultWindow is the length of one quota cycle.
const DefaultWindow = time.Minute

var ErrExceeded = errors.New("reached API limit, wait up to 1 minute")

// Subject is the quota state of one caller as read together with its profile.
type Subject struct {
	CallerID    uuid.UUID
	Limit       int
	Count       int
	WindowStart *time.Time
}

// Tracker checks and advances a caller's quota. Check may roll the window
// over but never counts a registration; Advance counts exactly one and must
// only be called once the registration is committed.
type Tracker interface {
	Check(ctx context.Context, s Subject) error
	Advance(ctx context.Context, callerID uuid.UUID) error
}

func expired(start *time.Time, now time.Time, window time.Duration) bool {
	return start == nil || now.Sub(*start) >= window
}
