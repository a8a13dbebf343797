package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Caller is the account behind an API token, as loaded for one request.
type Caller struct {
	User    models.User
	Profile models.Profile
	TokenID uuid.UUID
}

func (c *Caller) QuotaSubject() quota.Subject {
	return quota.Subject{
		CallerID:    c.User.ID,
		Limit:       c.Profile.APIUserThroughputLimitPerMin,
		Count:       c.Profile.APIUserCountThisCycle,
		WindowStart: c.Profile.APIThroughputCycleBeginTime,
	}
}

// APIGate turns an API key into a trusted Caller.
type APIGate struct {
	db *gorm.DB
}

func NewAPIGate(db *gorm.DB) *APIGate {
	return &APIGate{db: db}
}

// Resolve loads the caller owning key without checking its privileges.
func (g *APIGate) Resolve(ctx context.Context, key string) (*Caller, error) {
	if key == "" {
		return nil, ErrUnauthenticated
	}

	db := g.db.WithContext(ctx)

	var token models.APIToken
	if err := db.Where("key_hash = ?", apikey.Hash(key)).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("lookup api token: %w", err)
	}

	caller := Caller{TokenID: token.ID}
	if err := db.First(&caller.User, "id = ?", token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("lookup token owner: %w", err)
	}
	if err := db.Where("user_id = ?", token.UserID).First(&caller.Profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("lookup token owner profile: %w", err)
	}
	return &caller, nil
}

// Authorize resolves key and requires the owner to be allowed to create
// accounts through the API.
func (g *APIGate) Authorize(ctx context.Context, key string) (*Caller, error) {
	caller, err := g.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if !caller.Profile.APIAddUserEnabled {
		return nil, ErrForbidden
	}
	return caller, nil
}
