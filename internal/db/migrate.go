// Package db opens the gorm connection and prepares the schema.
package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diewo77/invoice-builder/internal/config"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
)

// Open connects to the configured database. Postgres gets a few retries so
// the server can start alongside a database container.
func Open(cfg config.DatabaseConfig, debug bool, log *logger.Logger) (*gorm.DB, error) {
	log = logger.Or(log)
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	switch cfg.Driver {
	case "", "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return db, nil
	case "postgres":
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
			if err == nil {
				return db, nil
			}
			log.Warnw("database connection failed, retrying", "attempt", i+1, "error", err)
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connect postgres after retries: %w", err)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Seed inserts the default settings rows and tax presets when missing.
// Existing rows are never modified.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		inv := models.DefaultInvoiceSettings()
		if err := tx.FirstOrCreate(&inv, models.InvoiceSettings{ID: models.SingletonID}).Error; err != nil {
			return fmt.Errorf("seed invoice settings: %w", err)
		}
		var count int64
		if err := tx.Model(&models.TaxPreset{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			presets := models.DefaultTaxPresets()
			for i := range presets {
				presets[i].Position = i
			}
			if err := tx.Create(&presets).Error; err != nil {
				return fmt.Errorf("seed tax presets: %w", err)
			}
		}
		return nil
	})
}

// Setup runs Migrate then Seed.
func Setup(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	return Seed(db)
}
