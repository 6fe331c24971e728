// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir         string // Base directory for the database file (always absolute)
	Port            int
	LogLevel        string
	DevMode         bool
	HistorySchedule string // cron expression for the net-worth snapshot job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory:
	// 1. PATRIMOINE_DATA_DIR environment variable
	// 2. Default to ./data
	// Always resolved to an absolute path, created if missing.
	dataDir := getEnv("PATRIMOINE_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := getEnvInt("PORT", 8090)
	if err != nil {
		return nil, err
	}

	return &Config{
		DataDir:         absDataDir,
		Port:            port,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvBool("DEV_MODE", false),
		HistorySchedule: getEnv("HISTORY_SNAPSHOT_SCHEDULE", "@daily"),
	}, nil
}

// DatabasePath returns the path of the sqlite file inside the data directory
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "patrimoine.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
