package database

import (
	"fmt"

	"parking-app/config"
	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/permits"
	"parking-app/internal/domain/units"
	"parking-app/internal/infra/logging"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	db, err := Open(config.DB_DRIVER, config.DB_URL)
	if err != nil {
		logging.Logger.WithError(err).Fatal("Failed to connect to database")
	}

	DB = db

	if err := Migrate(DB); err != nil {
		logging.Logger.WithError(err).Fatal("AutoMigrate error")
	}

	logging.Logger.Infof("Connected to %s and migrated successfully", config.DB_DRIVER)
}

// Open connects with the named driver: "postgres" (default) or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// one connection: in-memory databases are per-connection and sqlite
		// allows a single writer anyway
		sqlDB.SetMaxOpenConns(1)

		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&associations.Association{},
		&units.Unit{},
		&permits.Permit{},
	); err != nil {
		return err
	}

	// Rows written before statuses were normalized may hold "active".
	// Server-side filters compare against the upper-case values only.
	if err := db.Exec("UPDATE permits SET status = UPPER(status) WHERE status <> UPPER(status)").Error; err != nil {
		return fmt.Errorf("normalize permit statuses: %w", err)
	}
	return nil
}
