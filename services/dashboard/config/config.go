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
	defaultDatasetSource = "sample_power_usage_500.csv"
	defaultPort          = 8080
	defaultPreviewRows   = 100
	defaultChartWidth    = 800
	defaultChartHeight   = 450
	defaultLoadTimeout   = 30 * time.Second
)

// Config holds environment-driven settings for the dashboard.
type Config struct {
	DatasetSource string
	Port          int
	BearerToken   string
	PreviewRows   int
	ChartWidth    int
	ChartHeight   int
	LoadTimeout   time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		DatasetSource: defaultDatasetSource,
		Port:          defaultPort,
		PreviewRows:   defaultPreviewRows,
		ChartWidth:    defaultChartWidth,
		ChartHeight:   defaultChartHeight,
		LoadTimeout:   defaultLoadTimeout,
	}

	if src := strings.TrimSpace(os.Getenv("DATASET_SOURCE")); src != "" {
		cfg.DatasetSource = src
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	var err error
	if cfg.PreviewRows, err = positiveInt("PREVIEW_ROWS", cfg.PreviewRows); err != nil {
		return cfg, err
	}
	if cfg.ChartWidth, err = positiveInt("CHART_WIDTH", cfg.ChartWidth); err != nil {
		return cfg, err
	}
	if cfg.ChartHeight, err = positiveInt("CHART_HEIGHT", cfg.ChartHeight); err != nil {
		return cfg, err
	}

	if v := strings.TrimSpace(os.Getenv("LOAD_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOAD_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, errors.New("LOAD_TIMEOUT must be positive")
		}
		cfg.LoadTimeout = d
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def, fmt.Errorf("invalid %s: %s", key, s)
	}
	return v, nil
}
