package db

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-matching/internal/config"
)

// StateNames are the relationship states the service relies on.
var StateNames = []string{"active", "inactive"}

// NewDB opens the configured database, migrates the schema and makes sure
// the relationship state rows exist.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.App.ENV == "development" {
		level = logger.Info // log SQL queries
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := EnsureRelationshipStates(db); err != nil {
		return nil, err
	}

	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "mysql":
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, errors.New("unsupported DB_DRIVER " + driver)
	}
}

// Migrate ensures schema is in sync with models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RelationshipState{}, &Swipe{}, &Relationship{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// EnsureRelationshipStates inserts missing state rows. Safe to call on
// every start.
func EnsureRelationshipStates(db *gorm.DB) error {
	for _, name := range StateNames {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&RelationshipState{Name: name}).Error
		if err != nil {
			return fmt.Errorf("failed to seed relationship state %q: %w", name, err)
		}
	}
	return nil
}
