package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gym struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:60;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (g *Gym) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
