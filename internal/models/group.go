package models

// Permission codenames that make a gym account an administrator.
const (
	PermManageGym  = "manage_gym"
	PermManageGyms = "manage_gyms"
	PermGymTrainer = "gym_trainer"
)

// DefaultRole is granted when a registration names no roles.
const DefaultRole = "gym_member"

// AdminPermissions lists the codenames used for roster classification.
var AdminPermissions = []string{PermManageGym, PermManageGyms, PermGymTrainer}

type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions" json:"permissions,omitempty"`
}

type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Codename string `gorm:"size:100;not null;uniqueIndex" json:"codename"`
	Name     string `gorm:"size:255" json:"name"`
}
