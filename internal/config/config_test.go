package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PATRIMOINE_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "@daily", cfg.HistorySchedule)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATRIMOINE_DATA_DIR", dir)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("HISTORY_SNAPSHOT_SCHEDULE", "0 18 * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "0 18 * * *", cfg.HistorySchedule)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PATRIMOINE_DATA_DIR", t.TempDir())
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("PATRIMOINE_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.DirExists(t, cfg.DataDir)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{DataDir: "/var/lib/patrimoine"}
	assert.Equal(t, "/var/lib/patrimoine/patrimoine.db", cfg.DatabasePath())
}
