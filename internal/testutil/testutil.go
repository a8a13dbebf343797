// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a migrated and seeded in-memory SQLite database. A single
// connection is used so every query sees the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_busy_timeout=5000", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db))
	return db
}

// Caller is an API consumer fixture.
type Caller struct {
	User    models.User
	Profile models.Profile
	Gym     models.Gym
	Token   models.APIToken
	Key     string
}

// CallerOptions configure NewCaller.
type CallerOptions struct {
	Enabled     bool
	Limit       int
	Count       int
	WindowStart *time.Time
}

// NewCaller creates a gym, an account bound to it with the given API
// settings, and an API token for that account.
func NewCaller(t testing.TB, db *gorm.DB, opts CallerOptions) *Caller {
	t.Helper()

	gym := models.Gym{Name: "Iron Temple"}
	require.NoError(t, db.Create(&gym).Error)

	user := NewUser(t, db, "api-"+uuid.NewString()[:8], &gym.ID, true)

	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
		"api_add_user_enabled":              opts.Enabled,
		"api_user_throughput_limit_per_min": opts.Limit,
		"api_user_count_this_cycle":         opts.Count,
		"api_throughput_cycle_begin_time":   opts.WindowStart,
	}).Error)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)

	key, err := apikey.Generate()
	require.NoError(t, err)
	token := models.APIToken{UserID: user.ID, KeyHash: apikey.Hash(key), Prefix: apikey.Prefix(key)}
	require.NoError(t, db.Create(&token).Error)

	return &Caller{User: user, Profile: profile, Gym: gym, Token: token, Key: key}
}

// NewUser creates an account with profile and password "secret-pass".
func NewUser(t testing.TB, db *gorm.DB, username string, gymID *uuid.UUID, active bool, groups ...string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Username: username, Password: string(hash), IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	if !active {
		// the column default would override a false value on insert
		require.NoError(t, db.Model(&user).Update("is_active", false).Error)
		user.IsActive = false
	}
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID, GymID: gymID}).Error)

	if len(groups) > 0 {
		var gs []models.Group
		require.NoError(t, db.Where("name IN ?", groups).Find(&gs).Error)
		require.Len(t, gs, len(groups))
		require.NoError(t, db.Model(&user).Association("Groups").Append(gs))
	}
	return user
}

// Profile reloads the profile of userID.
func Profile(t testing.TB, db *gorm.DB, userID uuid.UUID) models.Profile {
	t.Helper()
	var p models.Profile
	require.NoError(t, db.Where("user_id = ?", userID).First(&p).Error)
	return p
}
