// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// DBPath is the SQLite database file.
	DBPath string

	// CustomerServiceURL and InventoryServiceURL are the base URLs of the
	// remote collaborators.
	CustomerServiceURL  string
	InventoryServiceURL string

	// HTTPTimeout bounds every remote lookup call.
	HTTPTimeout time.Duration

	// SeedEnabled controls whether the startup seed routine runs.
	SeedEnabled bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// FromEnv reads configuration from the environment, falling back to defaults
// suitable for local development.
func FromEnv() Config {
	return Config{
		Port:                getEnvInt("PORT", 8080),
		DBPath:              getEnv("DB_PATH", "./data/billing.db"),
		CustomerServiceURL:  getEnv("CUSTOMER_SERVICE_URL", "http://localhost:8081"),
		InventoryServiceURL: getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082"),
		HTTPTimeout:         getEnvDuration("HTTP_TIMEOUT", 5*time.Second),
		SeedEnabled:         getEnvBool("SEED_ENABLED", true),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
