package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIAccessToggle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAPIAccessService(db)
	ctx := context.Background()
	testutil.NewUser(t, db, "partner", nil, true)

	p, err := svc.Enable(ctx, "partner", 7)
	require.NoError(t, err)
	assert.True(t, p.APIAddUserEnabled)
	assert.Equal(t, 7, p.APIUserThroughputLimitPerMin)

	p, err = svc.Disable(ctx, "partner")
	require.NoError(t, err)
	assert.False(t, p.APIAddUserEnabled)
	assert.Equal(t, 7, p.APIUserThroughputLimitPerMin)

	_, err = svc.Enable(ctx, "partner", -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = svc.Enable(ctx, "nobody", 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAPIAccessIssueToken(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAPIAccessService(db)
	gate := NewAPIGate(db)
	ctx := context.Background()
	user := testutil.NewUser(t, db, "partner", nil, true)

	key, token, err := svc.IssueToken(ctx, "partner")
	require.NoError(t, err)
	assert.Len(t, key, 40)
	assert.Equal(t, key[:8], token.Prefix)

	_, err = gate.Authorize(ctx, key)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Enable(ctx, "partner", DefaultAccountsLimit)
	require.NoError(t, err)
	caller, err := gate.Authorize(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, caller.User.ID)
}
