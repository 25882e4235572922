package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/config"
	"github.com/diewo77/invoice-builder/internal/db"
	"github.com/diewo77/invoice-builder/internal/logger"
)

var testNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, false, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Setup(gdb); err != nil {
		t.Fatalf("failed to set up test db: %v", err)
	}
	return gdb
}
