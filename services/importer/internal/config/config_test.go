package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/power")
	t.Setenv("IMPORT_SOURCE", "")
	t.Setenv("IMPORT_BATCH_SIZE", "")
	t.Setenv("IMPORT_REQUEST_TIMEOUT", "")
	t.Setenv("IMPORT_REPLACE", "")
	t.Setenv("DRY_RUN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultSource, cfg.Source)
	assert.Equal(t, defaultBatchSize, cfg.BatchSize)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.False(t, cfg.Replace)
	assert.False(t, cfg.DryRun)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/power")
	t.Setenv("IMPORT_SOURCE", "https://example.com/usage.csv")
	t.Setenv("IMPORT_BATCH_SIZE", "50")
	t.Setenv("IMPORT_REQUEST_TIMEOUT", "5s")
	t.Setenv("IMPORT_REPLACE", "true")
	t.Setenv("DRY_RUN", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/usage.csv", cfg.Source)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Replace)
	assert.True(t, cfg.DryRun)
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/power")
	t.Setenv("IMPORT_BATCH_SIZE", "0")
	_, err := Load()
	assert.Error(t, err)
}
