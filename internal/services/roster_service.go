package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive      = "active"
	StatusDeactivated = "deactivated"
)

// Roster is a gym's accounts split by administrative permission.
type Roster struct {
	Admins  []models.User
	Members []models.User
}

// RosterService classifies the accounts of a gym into admins (trainers,
// managers) and plain members.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

func (s *RosterService) Members(ctx context.Context, gymID uuid.UUID, status string) ([]models.User, error) {
	return s.find(ctx, gymID, status, "NOT EXISTS (?)")
}

func (s *RosterService) Admins(ctx context.Context, gymID uuid.UUID, status string) ([]models.User, error) {
	return s.find(ctx, gymID, status, "EXISTS (?)")
}

func (s *RosterService) Classify(ctx context.Context, gymID uuid.UUID, status string) (*Roster, error) {
	admins, err := s.Admins(ctx, gymID, status)
	if err != nil {
		return nil, err
	}
	members, err := s.Members(ctx, gymID, status)
	if err != nil {
		return nil, err
	}
	return &Roster{Admins: admins, Members: members}, nil
}

// IsStaff reports whether userID may view the roster of gymID: a general
// manager of all gyms, or a manager or trainer bound to that gym.
func (s *RosterService) IsStaff(ctx context.Context, userID, gymID uuid.UUID) (bool, error) {
	var codenames []string
	err := s.db.WithContext(ctx).Table("permissions").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Joins("JOIN user_groups ON user_groups.group_id = group_permissions.group_id").
		Where("user_groups.user_id = ?", userID).
		Pluck("permissions.codename", &codenames).Error
	if err != nil {
		return false, fmt.Errorf("lookup permissions: %w", err)
	}

	gymStaff := false
	for _, c := range codenames {
		switch c {
		case models.PermManageGyms:
			return true, nil
		case models.PermManageGym, models.PermGymTrainer:
			gymStaff = true
		}
	}
	if !gymStaff {
		return false, nil
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup profile: %w", err)
	}
	return count > 0, nil
}

func (s *RosterService) find(ctx context.Context, gymID uuid.UUID, status, grantCond string) ([]models.User, error) {
	active, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.WithContext(ctx).
		Scopes(tenant.ForGym(gymID)).
		Where("users.is_active = ?", active).
		Where(grantCond, s.adminGrant()).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return users, nil
}

// adminGrant selects the group permissions that make users.id an admin.
func (s *RosterService) adminGrant() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true}).
		Table("user_groups").
		Select("1").
		Joins("JOIN group_permissions ON group_permissions.group_id = user_groups.group_id").
		Joins("JOIN permissions ON permissions.id = group_permissions.permission_id").
		Where("user_groups.user_id = users.id").
		Where("permissions.codename IN ?", models.AdminPermissions)
}

func parseStatus(status string) (bool, error) {
	switch status {
	case "", StatusActive:
		return true, nil
	case StatusDeactivated:
		return false, nil
	default:
		return false, ErrInvalidStatus
	}
}
