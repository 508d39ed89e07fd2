package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	err := json.Unmarshal([]byte(`"5m"`), &d)

	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalJSON_Number(t *testing.T) {
	var d Duration
	err := json.Unmarshal([]byte(`1000000000`), &d)

	require.NoError(t, err)
	assert.Equal(t, time.Second, time.Duration(d))
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	err := json.Unmarshal([]byte(`"not-a-duration"`), &d)

	assert.Error(t, err)
}

func TestParseJSON_FullConfig(t *testing.T) {
	content := `{
		"app": {"version": "1.2.3"},
		"adapter": {"server_url": "https://shelf.example.com", "request_timeout": "20s"},
		"storage": {"db": {"dsn": "shelf.db"}},
		"sync": {"sync_interval": "3m", "retry_interval": "10m", "max_attempts": 4}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "https://shelf.example.com", cfg.Adapter.ServerURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "shelf.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 3*time.Minute, cfg.Sync.SyncInterval)
	assert.Equal(t, 10*time.Minute, cfg.Sync.RetryInterval)
	assert.Equal(t, 4, cfg.Sync.MaxAttempts)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storage": `), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}
