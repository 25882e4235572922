package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PATH", "DEV", "PREVIEW_DEBOUNCE_MS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "invoices.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if !cfg.App.Dev {
		t.Fatalf("expected dev default true")
	}
	if cfg.Preview.Debounce() != 300*time.Millisecond {
		t.Fatalf("expected 300ms debounce got %s", cfg.Preview.Debounce())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DEV", "no")
	t.Setenv("PREVIEW_DEBOUNCE_MS", "not-a-number")
	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected 9090 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Port != 6543 {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.App.Dev {
		t.Fatalf("expected dev false for 'no'")
	}
	if cfg.Preview.DebounceMS != 300 {
		t.Fatalf("malformed int should fall back to default, got %d", cfg.Preview.DebounceMS)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	if got, want := d.DSN(), "host=h port=1 user=u password=p dbname=n sslmode=disable"; got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
	if got, want := d.URL(), "postgres://u:p@h:1/n?sslmode=disable"; got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}
