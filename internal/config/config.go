// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the travelbook CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// DatabaseURL selects the store. A postgres:// or postgresql:// URL uses
	// Postgres; anything else is a SQLite file path. Defaults to "travelbook.db".
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// SessionSecret is the HMAC key for session tokens. Required.
	SessionSecret string

	// SessionFile is where the signed-in session token is kept.
	// Defaults to ".travelbook-session".
	SessionFile string

	// SessionTTL is how long a session stays valid. Defaults to 24h.
	SessionTTL time.Duration

	// SeedAdminEmail and SeedAdminPassword are the credentials of the
	// administrator created on first start.
	SeedAdminEmail    string
	SeedAdminPassword string

	// BcryptCost is the password hashing work factor. Defaults to 10.
	BcryptCost int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable whose value does not parse.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:       getEnv("DATABASE_URL", "travelbook.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SessionFile:       getEnv("SESSION_FILE", ".travelbook-session"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@travel.com"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	var missing []string

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be a positive duration such as 24h")
	}
	cfg.SessionTTL = ttl

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST must be an integer: %w", err)
	}
	cfg.BcryptCost = cost

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
