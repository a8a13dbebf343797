package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/tenant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxUsernameLen = 150

// RegistrationService provisions gym accounts on behalf of API callers.
type RegistrationService struct {
	db       *gorm.DB
	quota    quota.Tracker
	hashCost int
}

func NewRegistrationService(db *gorm.DB, tracker quota.Tracker) *RegistrationService {
	return &RegistrationService{db: db, quota: tracker, hashCost: bcrypt.DefaultCost}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func (s *RegistrationService) WithHashCost(cost int) *RegistrationService {
	s.hashCost = cost
	return s
}

// Register creates an account for caller's gym. The user, its profile and
// its group grants are written in one transaction; the caller's quota is
// advanced only after that transaction committed.
func (s *RegistrationService) Register(ctx context.Context, caller *Caller, req *dto.RegisterUserRequest) (*models.User, error) {
	if err := s.quota.Check(ctx, caller.QuotaSubject()); err != nil {
		return nil, err
	}

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  strings.TrimSpace(req.Username),
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.TrimSpace(req.Email),
		IsActive:  true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		tokenID := caller.TokenID
		profile := models.Profile{
			UserID:    user.ID,
			GymID:     caller.Profile.GymID,
			CreatedBy: &tokenID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		user.Profile = &profile

		groups, err := lookupRoles(tx, req.Roles)
		if err != nil {
			return err
		}
		if len(groups) > 0 {
			if err := tx.Model(&user).Association("Groups").Append(groups); err != nil {
				return fmt.Errorf("assign roles: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.quota.Advance(ctx, caller.User.ID); err != nil {
		slog.Error("quota advance failed after registration",
			"user_id", caller.User.ID.String(), "new_user_id", user.ID.String(), "error", err)
	}

	slog.Info("user registered via api",
		"user_id", caller.User.ID.String(), "new_user_id", user.ID.String(), "token_id", caller.TokenID.String())
	return &user, nil
}

// ListCreatedBy returns the accounts registered with the given token.
func (s *RegistrationService) ListCreatedBy(ctx context.Context, tokenID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Scopes(tenant.CreatedBy(tokenID)).Order("users.created_at ASC").Find(&users).Error
	return users, err
}

func validateRegistration(req *dto.RegisterUserRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("%w: username must be at most %d characters", ErrValidation, maxUsernameLen)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: email is not valid", ErrValidation)
		}
	}
	return nil
}

// lookupRoles maps role names to groups. Unknown names are skipped; no
// names at all means the default role.
func lookupRoles(tx *gorm.DB, names []string) ([]models.Group, error) {
	if len(names) == 0 {
		names = []string{models.DefaultRole}
	}
	var groups []models.Group
	if err := tx.Where("name IN ?", names).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("lookup roles: %w", err)
	}
	return groups, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
