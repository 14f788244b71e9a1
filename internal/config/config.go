package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// Config holds process configuration read from the environment
type Config struct {
	// Server
	Port int
	Env  string

	// Logging
	LogLevel string

	// Parallel source reads and page writes
	Concurrency int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("LIVINGSTYLE_PORT", 8080),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LIVINGSTYLE_LOG_LEVEL", "info"),
		Concurrency: getEnvInt("LIVINGSTYLE_CONCURRENCY", 8),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("LIVINGSTYLE_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("LIVINGSTYLE_CONCURRENCY must be positive, got %d", c.Concurrency)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LIVINGSTYLE_LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	return nil
}

// Level returns the configured log level, info when unset or invalid
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
