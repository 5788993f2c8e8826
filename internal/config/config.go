package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port            string
	Origin          string
	Environment     string
	SeedData        bool
	ShutdownTimeout time.Duration
	Log             LogConfig
	Realtime        RealtimeConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// RealtimeConfig holds push channel settings
type RealtimeConfig struct {
	HeartbeatInterval time.Duration
	SyncInterval      time.Duration
	SnapshotLogLimit  int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	environment := getEnv("APP_ENV", "development")

	defaultFormat := "json"
	if environment == "development" {
		defaultFormat = "console"
	}
	logConfig := LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", defaultFormat),
	}

	seedData, err := strconv.ParseBool(getEnv("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}

	heartbeatSeconds, err := strconv.Atoi(getEnv("HEARTBEAT_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid HEARTBEAT_INTERVAL_SECONDS: %w", err)
	}

	syncSeconds, err := strconv.Atoi(getEnv("SYNC_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL_SECONDS: %w", err)
	}

	snapshotLogLimit, err := strconv.Atoi(getEnv("SNAPSHOT_LOG_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_LOG_LIMIT: %w", err)
	}

	shutdownSeconds, err := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS: %w", err)
	}

	if heartbeatSeconds <= 0 || syncSeconds <= 0 {
		return nil, fmt.Errorf("realtime intervals must be positive")
	}

	return &Config{
		Port:            getEnv("PORT", "3001"),
		Origin:          getEnv("ORIGIN", "http://localhost:5173"),
		Environment:     environment,
		SeedData:        seedData,
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
		Log:             logConfig,
		Realtime: RealtimeConfig{
			HeartbeatInterval: time.Duration(heartbeatSeconds) * time.Second,
			SyncInterval:      time.Duration(syncSeconds) * time.Second,
			SnapshotLogLimit:  snapshotLogLimit,
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
