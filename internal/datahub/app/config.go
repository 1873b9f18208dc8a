package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SessionSecret string // Required: HMAC secret for session tokens
	Issuer        string // Optional: issuer claim for session tokens (default: datahub)

	SessionTTL           time.Duration // Optional: session token lifetime (default: 24h)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./datahub.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing
	OnlineWindow         time.Duration // Optional: trailing window for "online" accounts (default: 5m)
	MetadataSyncInterval time.Duration // Optional: metadata refresh interval (default: 1h)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file. Every value except the session secret has a default.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		SessionSecret:        os.Getenv("DATAHUB_SESSION_SECRET"),
		Issuer:               getEnvOrDefault("DATAHUB_ISSUER", "datahub"),
		SessionTTL:           getEnvDurationOrDefault("DATAHUB_SESSION_TTL", 24*time.Hour),
		DatabaseFile:         getEnvOrDefault("DATAHUB_DATABASE_FILE", "datahub.db"),
		PepperFile:           os.Getenv("DATAHUB_PEPPER_FILE"),
		OnlineWindow:         getEnvDurationOrDefault("DATAHUB_ONLINE_WINDOW", 5*time.Minute),
		MetadataSyncInterval: getEnvDurationOrDefault("DATAHUB_METADATA_SYNC_INTERVAL", 1*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
