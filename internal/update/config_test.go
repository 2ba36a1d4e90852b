package update

import (
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DataFilePath != ".habitd.json" {
		t.Fatalf("unexpected data file default: %+v", cfg)
	}
	if cfg.ExportDir != "." {
		t.Fatalf("unexpected export dir default: %+v", cfg)
	}
	if cfg.SyncDebounce != 1500*time.Millisecond {
		t.Fatalf("unexpected debounce default: %+v", cfg)
	}
	if cfg.SyncEnabled() {
		t.Fatal("sync must be disabled without credentials")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("HABITD_DATA_FILE", "data/habits.json")
	t.Setenv("HABITD_EXPORT_DIR", "exports")
	t.Setenv("HABITD_SYNC_URL", "https://sync.example.com")
	t.Setenv("HABITD_SYNC_USERNAME", "ayse")
	t.Setenv("HABITD_SYNC_PASSWORD", "secret")
	t.Setenv("HABITD_SYNC_DEBOUNCE_MS", "250")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataFilePath != "data/habits.json" || cfg.ExportDir != "exports" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.SyncURL != "https://sync.example.com" || cfg.SyncUsername != "ayse" || cfg.SyncPassword != "secret" {
		t.Fatalf("unexpected sync overrides: %+v", cfg)
	}
	if cfg.SyncDebounce != 250*time.Millisecond {
		t.Fatalf("unexpected debounce override: %+v", cfg)
	}
	if !cfg.SyncEnabled() {
		t.Fatal("expected sync enabled with full credentials")
	}
}

func TestRuntimeConfigIgnoresBlankAndInvalidEnv(t *testing.T) {
	t.Setenv("HABITD_DATA_FILE", "   ")
	t.Setenv("HABITD_SYNC_DEBOUNCE_MS", "soon")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataFilePath != ".habitd.json" {
		t.Fatalf("blank env must not override: %+v", cfg)
	}
	if cfg.SyncDebounce != 1500*time.Millisecond {
		t.Fatalf("invalid int must not override: %+v", cfg)
	}
}
