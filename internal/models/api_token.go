package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIToken authorizes API-driven user registration for its owner.
// Only the SHA-256 of the key is stored.
type APIToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	KeyHash   string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	Prefix    string    `gorm:"size:8" json:"prefix"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (t *APIToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
