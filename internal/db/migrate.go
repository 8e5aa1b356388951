package db

import (
	"fmt"

	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model trestle persists, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Task{},
		&models.TaskRelationship{},
		&models.ProjectBaseline{},
		&models.TaskBaseline{},
	}
}

// AutoMigrate creates or updates all trestle tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
