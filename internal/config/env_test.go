package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesStructuredConfig(t *testing.T) {
	t.Setenv("ADAPTER_SERVER_URL", "https://shelf.example.com")
	t.Setenv("STORAGE_DB_DATABASE_URI", "/tmp/shelf.db")
	t.Setenv("SYNC_INTERVAL", "2m")
	t.Setenv("SYNC_MAX_ATTEMPTS", "7")
	t.Setenv("CONFIG", "/tmp/config.json")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://shelf.example.com", cfg.Adapter.ServerURL)
	assert.Equal(t, "/tmp/shelf.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Sync.SyncInterval)
	assert.Equal(t, 7, cfg.Sync.MaxAttempts)
	assert.Equal(t, "/tmp/config.json", cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Zero(t, cfg.Sync.MaxAttempts)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "soon")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}
