package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ORIGIN", "APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "SEED_DATA",
		"HEARTBEAT_INTERVAL_SECONDS", "SYNC_INTERVAL_SECONDS", "SNAPSHOT_LOG_LIMIT",
		"SHUTDOWN_TIMEOUT_SECONDS",
	} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Origin)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 30*time.Second, cfg.Realtime.HeartbeatInterval)
	assert.Equal(t, 30*time.Second, cfg.Realtime.SyncInterval)
	assert.Equal(t, 20, cfg.Realtime.SnapshotLogLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("ORIGIN", "http://display.local")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("HEARTBEAT_INTERVAL_SECONDS", "5")
	t.Setenv("SYNC_INTERVAL_SECONDS", "7")
	t.Setenv("SNAPSHOT_LOG_LIMIT", "50")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "http://display.local", cfg.Origin)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 5*time.Second, cfg.Realtime.HeartbeatInterval)
	assert.Equal(t, 7*time.Second, cfg.Realtime.SyncInterval)
	assert.Equal(t, 50, cfg.Realtime.SnapshotLogLimit)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_LogFormatFollowsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	unsetEnv(t, "LOG_FORMAT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SEED_DATA", "maybe"},
		{"HEARTBEAT_INTERVAL_SECONDS", "soon"},
		{"SYNC_INTERVAL_SECONDS", "x"},
		{"SNAPSHOT_LOG_LIMIT", "many"},
		{"SHUTDOWN_TIMEOUT_SECONDS", "later"},
		{"HEARTBEAT_INTERVAL_SECONDS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
