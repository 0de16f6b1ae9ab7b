package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
)

// Models lists every relational model in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Session{},
		&models.Tanker{},
		&models.Location{},
		&models.Deployment{},
		&models.Maintenance{},
		&models.Invoice{},
		&models.Partner{},
		&models.Alert{},
		&models.MigrationRun{},
	}
}

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}
	return db.AutoMigrate(Models()...)
}
