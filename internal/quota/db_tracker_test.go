package quota_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subjectOf(p models.Profile) quota.Subject {
	return quota.Subject{
		CallerID:    p.UserID,
		Limit:       p.APIUserThroughputLimitPerMin,
		Count:       p.APIUserCountThisCycle,
		WindowStart: p.APIThroughputCycleBeginTime,
	}
}

func TestDBTrackerWithinWindow(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	start := now.Add(-30 * time.Second)

	t.Run("under limit is allowed", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 3, Count: 2, WindowStart: &start})
		tr := quota.NewDBTracker(db, time.Minute).WithClock(func() time.Time { return now })

		require.NoError(t, tr.Check(context.Background(), subjectOf(c.Profile)))
		assert.Equal(t, 2, testutil.Profile(t, db, c.User.ID).APIUserCountThisCycle)
	})

	t.Run("at limit is rejected without mutation", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 3, Count: 3, WindowStart: &start})
		tr := quota.NewDBTracker(db, time.Minute).WithClock(func() time.Time { return now })

		err := tr.Check(context.Background(), subjectOf(c.Profile))
		require.ErrorIs(t, err, quota.ErrExceeded)

		p := testutil.Profile(t, db, c.User.ID)
		assert.Equal(t, 3, p.APIUserCountThisCycle)
		require.NotNil(t, p.APIThroughputCycleBeginTime)
		assert.True(t, p.APIThroughputCycleBeginTime.Equal(start))
	})
}

func TestDBTrackerRollover(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	t.Run("exactly one window later resets and allows", func(t *testing.T) {
		start := now.Add(-time.Minute)
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 3, Count: 3, WindowStart: &start})
		tr := quota.NewDBTracker(db, time.Minute).WithClock(func() time.Time { return now })

		require.NoError(t, tr.Check(context.Background(), subjectOf(c.Profile)))

		p := testutil.Profile(t, db, c.User.ID)
		assert.Equal(t, 0, p.APIUserCountThisCycle)
		require.NotNil(t, p.APIThroughputCycleBeginTime)
		assert.True(t, p.APIThroughputCycleBeginTime.Equal(now))
	})

	t.Run("never started window resets", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 1, Count: 7})
		tr := quota.NewDBTracker(db, time.Minute).WithClock(func() time.Time { return now })

		require.NoError(t, tr.Check(context.Background(), subjectOf(c.Profile)))
		assert.Equal(t, 0, testutil.Profile(t, db, c.User.ID).APIUserCountThisCycle)
	})

	t.Run("stale subject after concurrent reset is re-evaluated", func(t *testing.T) {
		old := now.Add(-2 * time.Minute)
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 2, Count: 2, WindowStart: &old})
		stale := subjectOf(c.Profile)

		// another worker already reset the window and used it up
		require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", c.User.ID).Updates(map[string]interface{}{
			"api_user_count_this_cycle":       2,
			"api_throughput_cycle_begin_time": now.Add(-time.Second),
		}).Error)

		tr := quota.NewDBTracker(db, time.Minute).WithClock(func() time.Time { return now })
		require.ErrorIs(t, tr.Check(context.Background(), stale), quota.ErrExceeded)
		assert.Equal(t, 2, testutil.Profile(t, db, c.User.ID).APIUserCountThisCycle)
	})
}

func TestDBTrackerAdvanceIsAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	start := time.Now().UTC()
	c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 100, WindowStart: &start})
	tr := quota.NewDBTracker(db, time.Minute)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, tr.Advance(context.Background(), c.User.ID))
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, testutil.Profile(t, db, c.User.ID).APIUserCountThisCycle)
}

func TestDBTrackerAdvanceUnknownCaller(t *testing.T) {
	db := testutil.NewDB(t)
	tr := quota.NewDBTracker(db, time.Minute)

	assert.Error(t, tr.Advance(context.Background(), uuid.New()))
}
