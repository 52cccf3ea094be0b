package config

import (
	"errors"
	"os"
	"strconv"
)

const defaultSessionSecret = "default-secret-key-change-me"

// ErrDefaultSessionSecret is returned by Validate when release mode runs with the built-in secret.
var ErrDefaultSessionSecret = errors.New("SESSION_SECRET must be set in release mode")

type Config struct {
	Port string

	// DBDriver is "postgres" (default), "mysql" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SessionSecret string
	// SessionStore is "memory" (default, server-side) or "cookie".
	SessionStore string
	// SessionMaxAge is the cookie lifetime in seconds; 0 keeps it for the browser session only.
	SessionMaxAge int

	GinMode string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	BcryptCost int
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "notesuser"),
		DBPassword:    getEnv("DB_PASSWORD", "notespassword"),
		DBName:        getEnv("DB_NAME", "notes"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionStore:  getEnv("SESSION_STORE", "memory"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 0),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		BcryptCost:    getEnvInt("BCRYPT_COST", 0),
	}
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// Validate rejects settings that are only acceptable in development.
func (c *Config) Validate() error {
	if c.IsRelease() && c.SessionSecret == defaultSessionSecret {
		return ErrDefaultSessionSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
