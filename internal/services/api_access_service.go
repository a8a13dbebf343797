package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"gorm.io/gorm"
)

// DefaultAccountsLimit is the per-window limit granted when none is given.
const DefaultAccountsLimit = 3

// APIAccessService backs the admin command that grants or revokes API user
// creation rights.
type APIAccessService struct {
	db *gorm.DB
}

func NewAPIAccessService(db *gorm.DB) *APIAccessService {
	return &APIAccessService{db: db}
}

// Enable grants username the right to create users, limited to limit
// accounts per quota window.
func (s *APIAccessService) Enable(ctx context.Context, username string, limit int) (*models.Profile, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	return s.update(ctx, username, map[string]interface{}{
		"api_add_user_enabled":              true,
		"api_user_throughput_limit_per_min": limit,
	})
}

// Disable revokes the right; the configured limit is kept.
func (s *APIAccessService) Disable(ctx context.Context, username string) (*models.Profile, error) {
	return s.update(ctx, username, map[string]interface{}{
		"api_add_user_enabled": false,
	})
}

// IssueToken mints a new API token for username and returns its raw key,
// which is not stored anywhere.
func (s *APIAccessService) IssueToken(ctx context.Context, username string) (string, *models.APIToken, error) {
	profile, err := s.profileOf(ctx, username)
	if err != nil {
		return "", nil, err
	}

	key, err := apikey.Generate()
	if err != nil {
		return "", nil, err
	}
	token := models.APIToken{
		UserID:  profile.UserID,
		KeyHash: apikey.Hash(key),
		Prefix:  apikey.Prefix(key),
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return "", nil, fmt.Errorf("store api token: %w", err)
	}
	return key, &token, nil
}

func (s *APIAccessService) update(ctx context.Context, username string, fields map[string]interface{}) (*models.Profile, error) {
	profile, err := s.profileOf(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := s.db.WithContext(ctx).First(profile, "id = ?", profile.ID).Error; err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	return profile, nil
}

func (s *APIAccessService) profileOf(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username = ?", username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return &profile, nil
}
