package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Where session JSON files live.
	SessionsDir string

	// Optional bearer token; auth is disabled when empty (local use).
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Folder scan cap for the import picker.
	ScanLimit int
}

func Load() Config {
	cfg := Config{
		Port:           envOr("PORT", "5050"),
		SessionsDir:    envOr("PREPDECK_SESSIONS_DIR", "sessions"),
		APIKey:         os.Getenv("PREPDECK_API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 16777216), // 16MB
		ScanLimit:      envInt("SCAN_LIMIT", 200),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 16777216
	}
	if cfg.ScanLimit <= 0 {
		cfg.ScanLimit = 200
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SessionsDir == "" {
		return fmt.Errorf("PREPDECK_SESSIONS_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
