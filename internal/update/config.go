package update

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ozankoca/habitd/internal/syncclient"
)

type RuntimeConfig struct {
	DataFilePath string
	ExportDir    string
	SyncURL      string
	SyncUsername string
	SyncPassword string
	SyncDebounce time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataFilePath: ".habitd.json",
		ExportDir:    ".",
		SyncDebounce: syncclient.DefaultDebounce,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvStr("HABITD_DATA_FILE"); ok {
		cfg.DataFilePath = v
	}
	if v, ok := getEnvStr("HABITD_EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := getEnvStr("HABITD_SYNC_URL"); ok {
		cfg.SyncURL = v
	}
	if v, ok := getEnvStr("HABITD_SYNC_USERNAME"); ok {
		cfg.SyncUsername = v
	}
	if v, ok := getEnvStr("HABITD_SYNC_PASSWORD"); ok {
		cfg.SyncPassword = v
	}
	if v, ok := getEnvInt("HABITD_SYNC_DEBOUNCE_MS"); ok && v > 0 {
		cfg.SyncDebounce = time.Duration(v) * time.Millisecond
	}
	return cfg
}

// SyncEnabled reports whether all sync settings needed to build a
// client are present.
func (c RuntimeConfig) SyncEnabled() bool {
	return c.SyncURL != "" && c.SyncUsername != "" && c.SyncPassword != ""
}

func getEnvStr(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
