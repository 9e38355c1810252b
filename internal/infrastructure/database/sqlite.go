package database

import (
	"fmt"
	"log"

	"github.com/dukapoint/pos-engine/internal/config"
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens the device-local database file. The ledger is the
// durability boundary of the whole engine, so writes go through a single
// serialized connection and synchronous mode stays at FULL.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Single-writer discipline: the session service is the only writer and
	// sqlite serializes anyway, so one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Opened local sale database at %s", cfg.Path)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the durable entities
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.OfflineSale{},
		&entity.OfflineSaleItem{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
