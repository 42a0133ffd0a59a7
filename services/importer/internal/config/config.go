package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSource         = "sample_power_usage_500.csv"
	defaultBatchSize      = 500
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the importer.
type Config struct {
	DatabaseURL    string
	Source         string
	BatchSize      int
	RequestTimeout time.Duration
	Replace        bool
	DryRun         bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.Source = strings.TrimSpace(os.Getenv("IMPORT_SOURCE"))
	if cfg.Source == "" {
		cfg.Source = defaultSource
	}

	cfg.BatchSize = defaultBatchSize
	if v := strings.TrimSpace(os.Getenv("IMPORT_BATCH_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid IMPORT_BATCH_SIZE: %s", v)
		}
		cfg.BatchSize = n
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("IMPORT_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid IMPORT_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	cfg.Replace = envBool("IMPORT_REPLACE")
	cfg.DryRun = envBool("DRY_RUN")

	return cfg, nil
}

func envBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}
