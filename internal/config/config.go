// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the service.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// DatabaseURL, when set, switches storage from in-memory to PostgreSQL.
	DatabaseURL string
	// MigrationsPath is the directory golang-migrate reads schema files from.
	MigrationsPath string
	// DefaultLanguage is the fallback content language ("en" or "so").
	DefaultLanguage string
	// SeedDemoData loads the demo content set into the memory store at boot.
	SeedDemoData bool
}

// Load reads configuration from environment variables and validates it.
// A .env file is optional; real environments provide variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		SeedDemoData:    getBoolEnv("SEED_DEMO_DATA", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: PORT must be numeric, got %q", c.Port)
	}

	switch c.DefaultLanguage {
	case "en", "so":
	default:
		return fmt.Errorf("config: DEFAULT_LANGUAGE must be \"en\" or \"so\", got %q", c.DefaultLanguage)
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): scheme or host missing", c.DatabaseURL)
		}
		if strings.TrimSpace(c.MigrationsPath) == "" {
			return fmt.Errorf("config: MIGRATIONS_PATH is required when DATABASE_URL is set")
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
