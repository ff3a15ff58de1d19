package database

import (
	"tripcards/internal/models"

	"gorm.io/gorm"
)

// Models lists every persisted model in migration order. Parents come before
// children so foreign keys resolve on a fresh database.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Destination{},
		&models.Category{},
		&models.Business{},
		&models.Tripcard{},
		&models.TripcardBusiness{},
		&models.Review{},
		&models.Follow{},
	}
}

// Migrate runs GORM auto-migration for all application models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
