package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds per-account gym binding and the API registration settings.
// The quota counter and its window start are always written together.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GymID     *uuid.UUID `gorm:"type:uuid;index" json:"gym_id"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index" json:"-"`

	APIAddUserEnabled            bool       `gorm:"not null;default:false" json:"api_add_user_enabled"`
	APIUserThroughputLimitPerMin int        `gorm:"not null;default:0" json:"api_user_throughput_limit_per_min"`
	APIUserCountThisCycle        int        `gorm:"not null;default:0" json:"api_user_count_this_cycle"`
	APIThroughputCycleBeginTime  *time.Time `json:"api_throughput_cycle_begin_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
