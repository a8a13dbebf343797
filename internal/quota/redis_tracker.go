package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// checkScript rolls the window over when it has expired and otherwise
// compares the count with the limit. Returns 1 when allowed.
var checkScript = redis.NewScript(`
local start = redis.call('HGET', KEYS[1], 'start')
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
if (not start) or (now - tonumber(start) >= window) then
  redis.call('HSET', KEYS[1], 'start', now, 'count', 0)
  redis.call('PEXPIRE', KEYS[1], window * 2)
  return 1
end
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
if count >= limit then
  return 0
end
return 1
`)

// RedisTracker keeps the counter in a Redis hash per caller. The limit still
// comes from the caller's profile.
type RedisTracker struct {
	rdb    redis.UniversalClient
	window time.Duration
	now    func() time.Time
}

func NewRedisTracker(rdb redis.UniversalClient, window time.Duration) *RedisTracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisTracker{rdb: rdb, window: window, now: time.Now}
}

// WithClock replaces the time source.
func (t *RedisTracker) WithClock(now func() time.Time) *RedisTracker {
	t.now = now
	return t
}

func key(callerID uuid.UUID) string {
	return "quota:api_user:" + callerID.String()
}

func (t *RedisTracker) Check(ctx context.Context, s Subject) error {
	allowed, err := checkScript.Run(ctx, t.rdb, []string{key(s.CallerID)},
		t.now().UnixMilli(), t.window.Milliseconds(), s.Limit).Int()
	if err != nil {
		return fmt.Errorf("check quota: %w", err)
	}
	if allowed == 0 {
		return ErrExceeded
	}
	return nil
}

func (t *RedisTracker) Advance(ctx context.Context, callerID uuid.UUID) error {
	if err := t.rdb.HIncrBy(ctx, key(callerID), "count", 1).Err(); err != nil {
		return fmt.Errorf("advance quota: %w", err)
	}
	return nil
}

// Count returns the number of registrations in the current window.
func (t *RedisTracker) Count(ctx context.Context, callerID uuid.UUID) (int, error) {
	n, err := t.rdb.HGet(ctx, key(callerID), "count").Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
