package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEnableAndDisable(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "partner", nil, true)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, db, []string{"partner"}, &out))
	assert.Contains(t, out.String(), "ENABLED")
	p := testutil.Profile(t, db, user.ID)
	assert.True(t, p.APIAddUserEnabled)
	assert.Equal(t, 3, p.APIUserThroughputLimitPerMin)

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"-accounts-limit=10", "partner"}, &out))
	assert.Equal(t, 10, testutil.Profile(t, db, user.ID).APIUserThroughputLimitPerMin)

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"-enabled=F", "partner"}, &out))
	assert.Contains(t, out.String(), "DISABLED")
	p = testutil.Profile(t, db, user.ID)
	assert.False(t, p.APIAddUserEnabled)
	assert.Equal(t, 10, p.APIUserThroughputLimitPerMin)
}

func TestRunIssueToken(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "partner", nil, true)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), db, []string{"-issue-token", "partner"}, &out))

	line := out.String()[strings.Index(out.String(), "API key"):]
	key := strings.TrimSpace(strings.TrimPrefix(line, "API key (shown once):"))
	require.Len(t, key, 40)

	var token models.APIToken
	require.NoError(t, db.Where("key_hash = ?", apikey.Hash(key)).First(&token).Error)
	assert.Equal(t, user.ID, token.UserID)
}

func TestRunErrors(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.NewUser(t, db, "partner", nil, true)
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing username", nil, "username is required"},
		{"unknown user", []string{"ghost"}, `user profile for "ghost" does not exist`},
		{"bad enabled", []string{"-enabled=maybe", "partner"}, "unknown value for -enabled"},
		{"negative limit", []string{"-accounts-limit=-2", "partner"}, "invalid value for -accounts-limit"},
		{"non numeric limit", []string{"-accounts-limit=lots", "partner"}, "invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(ctx, db, tt.args, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
