package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/models"
)

// AutoMigrate creates or updates the schema for all application models.
// Development and test convenience; production uses cmd/migrate with the
// SQL files in migrations/.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.Allergen{},
		&models.UserAppliance{},
		&models.Category{},
		&models.Unit{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.AIUsage{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
