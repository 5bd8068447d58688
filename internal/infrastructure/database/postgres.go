package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "healthtrack.",
		},
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates all application tables plus the Casbin policy
// table used for admin RBAC.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBServiceProvider{},
		&repositories.DBOneTimePasscode{},
		&repositories.DBHealthRecord{},
		&repositories.DBMedicine{},
		&repositories.DBPrescription{},
		&repositories.DBMentalHealthLog{},
		&repositories.DBLifestyleLog{},
		&repositories.DBInsurancePolicy{},
		&repositories.DBActivityLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
