package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"facility-survey/internal/survey/handlers"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3000" || cfg.DBDriver != "sqlite3" || cfg.StorageDriver != "local" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Errorf("max upload = %d", cfg.MaxUploadBytes)
	}
	if cfg.PlaceholderImageURL != handlers.PlaceholderImagePath {
		t.Errorf("placeholder = %q, want %q", cfg.PlaceholderImageURL, handlers.PlaceholderImagePath)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surveyd.json")
	body := `{"port": "4000", "db": {"driver": "pgx", "dsn": "postgres://file"}, "session_ttl": "5m"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DB_DSN", "postgres://env")
	t.Setenv("STORAGE_DRIVER", "s3")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "4000" || cfg.DBDriver != "pgx" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DBDSN != "postgres://env" || cfg.StorageDriver != "s3" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
