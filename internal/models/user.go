package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account of the gym application. Accounts created through the
// API are bound to the caller's gym via their Profile.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Email     string    `gorm:"size:254" json:"email"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"-"`
	Groups    []Group   `gorm:"many2many:user_groups" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
