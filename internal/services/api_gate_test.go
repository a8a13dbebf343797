package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIGateAuthorize(t *testing.T) {
	db := testutil.NewDB(t)
	gate := NewAPIGate(db)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := gate.Authorize(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := gate.Authorize(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("disabled caller", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: false, Limit: 3})
		_, err := gate.Authorize(ctx, c.Key)
		assert.ErrorIs(t, err, ErrForbidden)

		resolved, err := gate.Resolve(ctx, c.Key)
		require.NoError(t, err)
		assert.Equal(t, c.User.ID, resolved.User.ID)
	})

	t.Run("enabled caller", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 3})
		caller, err := gate.Authorize(ctx, c.Key)
		require.NoError(t, err)
		assert.Equal(t, c.User.ID, caller.User.ID)
		assert.Equal(t, c.Token.ID, caller.TokenID)
		assert.Equal(t, 3, caller.QuotaSubject().Limit)
	})

	t.Run("owner deleted", func(t *testing.T) {
		c := testutil.NewCaller(t, db, testutil.CallerOptions{Enabled: true, Limit: 3})
		require.NoError(t, db.Where("user_id = ?", c.User.ID).Delete(&models.Profile{}).Error)
		require.NoError(t, db.Delete(&models.User{}, "id = ?", c.User.ID).Error)

		_, err := gate.Authorize(ctx, c.Key)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
