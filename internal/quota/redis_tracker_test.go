package quota_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedisTracker runs against a live Redis server.
func TestRedisTracker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("set REDIS_ADDR to run the redis quota test")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	now := time.Now()
	tr := quota.NewRedisTracker(rdb, time.Minute).WithClock(func() time.Time { return now })
	subject := quota.Subject{CallerID: uuid.New(), Limit: 2}

	for i := 0; i < 2; i++ {
		require.NoError(t, tr.Check(ctx, subject))
		require.NoError(t, tr.Advance(ctx, subject.CallerID))
	}
	require.ErrorIs(t, tr.Check(ctx, subject), quota.ErrExceeded)

	n, err := tr.Count(ctx, subject.CallerID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	now = now.Add(time.Minute)
	require.NoError(t, tr.Check(ctx, subject))
	n, err = tr.Count(ctx, subject.CallerID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
