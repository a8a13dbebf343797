package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForGym returns a GORM scope restricting users to those whose profile is
// bound to gymID. The query must be on the users table.
func ForGym(gymID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Table("profiles").Select("user_id").Where("gym_id = ?", gymID))
	}
}

// CreatedBy returns a GORM scope restricting users to those provisioned
// with the given API token.
func CreatedBy(tokenID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Table("profiles").Select("user_id").Where("created_by = ?", tokenID))
	}
}
