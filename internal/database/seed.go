package database

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"gorm.io/gorm"
)

type roleSeed struct {
	group string
	perms []string
}

var permissionNames = map[string]string{
	models.PermManageGym:  "Can manage a single gym",
	models.PermManageGyms: "Can manage all gyms",
	models.PermGymTrainer: "Trainer, can see the users for a gym",
}

var roleSeeds = []roleSeed{
	{group: models.DefaultRole},
	{group: "gym_trainer", perms: []string{models.PermGymTrainer}},
	{group: "gym_manager", perms: []string{models.PermManageGym}},
	{group: "general_gym_manager", perms: []string{models.PermManageGyms}},
}

// SeedRoles creates the gym permissions and the default groups. Existing rows
// are left untouched, so it is safe to call on every start.
func SeedRoles(db *gorm.DB) error {
	perms := make(map[string]models.Permission, len(permissionNames))
	for codename, name := range permissionNames {
		p := models.Permission{Codename: codename, Name: name}
		if err := db.Where("codename = ?", codename).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", codename, err)
		}
		perms[codename] = p
	}

	for _, seed := range roleSeeds {
		g := models.Group{Name: seed.group}
		if err := db.Where("name = ?", seed.group).FirstOrCreate(&g).Error; err != nil {
			return fmt.Errorf("seed group %s: %w", seed.group, err)
		}
		if len(seed.perms) == 0 {
			continue
		}
		granted := make([]models.Permission, 0, len(seed.perms))
		for _, codename := range seed.perms {
			granted = append(granted, perms[codename])
		}
		if err := db.Model(&g).Association("Permissions").Append(granted); err != nil {
			return fmt.Errorf("seed group %s permissions: %w", seed.group, err)
		}
	}
	return nil
}
