package db

import (
	"fmt"
	"testing"

	"github.com/diewo77/invoice-builder/internal/config"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
)

func memoryConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{Driver: "sqlite", Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())}
}

func TestSetupSeedsOnce(t *testing.T) {
	gdb, err := Open(memoryConfig(t), false, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Setup(gdb); err != nil {
		t.Fatalf("setup: %v", err)
	}
	// running again must not duplicate presets or reset settings
	if err := gdb.Model(&models.InvoiceSettings{}).Where("id = ?", models.SingletonID).Update("prefix", "ACME").Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := Setup(gdb); err != nil {
		t.Fatalf("second setup: %v", err)
	}

	var presets []models.TaxPreset
	gdb.Order("position").Find(&presets)
	if len(presets) != 3 || presets[0].Name != "GST" || presets[0].Rate != 18 {
		t.Fatalf("unexpected presets %+v", presets)
	}
	var s models.InvoiceSettings
	gdb.First(&s, models.SingletonID)
	if s.Prefix != "ACME" {
		t.Fatalf("seed overwrote settings: prefix=%q", s.Prefix)
	}
	for _, table := range []string{"invoices", "clients", "business_settings", "payment_settings"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}, false, nil); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
