package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("HARD_CAP", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()
	if cfg.PageSize != 50 {
		t.Errorf("PageSize: got %d, want 50", cfg.PageSize)
	}
	if cfg.HardCap != 950 {
		t.Errorf("HardCap: got %d, want 950", cfg.HardCap)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Errorf("StorageDriver: got %q, want sqlite", cfg.StorageDriver)
	}
	if cfg.MapZoom != 11 {
		t.Errorf("MapZoom: got %d, want 11", cfg.MapZoom)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("YELP_API_KEY", "secret")
	t.Setenv("PAGE_SIZE", "20")
	t.Setenv("HARD_CAP", "not-a-number")
	t.Setenv("LOCATION", "  Vancouver ")
	t.Setenv("CATEGORY", "bubbletea")
	t.Setenv("STORAGE_DRIVER", "Postgres")

	cfg := Load()
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey: got %q, want secret", cfg.APIKey)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize: got %d, want 20", cfg.PageSize)
	}
	if cfg.HardCap != 950 {
		t.Errorf("HardCap should fall back on bad int, got %d", cfg.HardCap)
	}
	if cfg.Location != "Vancouver" {
		t.Errorf("Location: got %q, want Vancouver", cfg.Location)
	}
	if cfg.Interactive() {
		t.Error("config with location and category should not be interactive")
	}
	if cfg.StorageDriver != "postgres" {
		t.Errorf("StorageDriver: got %q, want postgres", cfg.StorageDriver)
	}
}

func TestInteractiveWhenQueryMissing(t *testing.T) {
	cfg := &Config{Location: "Burnaby"}
	if !cfg.Interactive() {
		t.Error("missing category should require the interactive front end")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
