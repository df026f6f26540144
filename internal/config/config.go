// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DBPath      string        // Path to the SQLite database file
	Port        string        // HTTP listen port
	SessionTTL  time.Duration // Lifetime of an issued session
	CORSOrigins []string      // Allowed CORS origins, comma-separated in env
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	ttlMinutes := getEnvAsInt("INKWELL_SESSION_TTL_MINUTES", 60)

	return &Config{
		DBPath:      getEnv("INKWELL_DB_PATH", "./inkwell.db"),
		Port:        getEnv("INKWELL_PORT", "8080"),
		SessionTTL:  time.Duration(ttlMinutes) * time.Minute,
		CORSOrigins: strings.Split(getEnv("INKWELL_CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
