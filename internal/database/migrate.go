package database

import (
	"gorm.io/gorm"

	"github.com/jamaney/card-backend/internal/models"
)

// Migrate applies the schema for all application models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
	)
}
