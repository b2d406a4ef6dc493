// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Analysis AnalysisConfig
	Upload   UploadConfig
	Sentry   SentryConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// SessionConfig holds session lifecycle configuration.
type SessionConfig struct {
	IdleTTL         time.Duration
	JanitorSchedule string // cron spec, e.g. "@every 1m"
}

// DatabaseConfig holds upload history database configuration. Driver is
// "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. An empty URL disables the shared
// spending cache in favour of an in-process one.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	CacheTTL time.Duration
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	OverspendThreshold float64
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxBytes          int64
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// SentryConfig holds error reporting configuration. An empty DSN disables it.
type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
	Debug            bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Session: SessionConfig{
			IdleTTL:         getEnvAsDuration("SESSION_IDLE_TTL", 2*time.Hour),
			JanitorSchedule: getEnv("SESSION_JANITOR_SCHEDULE", "@every 1m"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DATABASE_DRIVER", "sqlite"),
			URL:             getEnv("DATABASE_URL", "file::memory:?cache=shared"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("SPENDING_CACHE_TTL", 24*time.Hour),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRY", 12*time.Hour),
		},
		Analysis: AnalysisConfig{
			OverspendThreshold: getEnvAsFloat("OVERSPEND_THRESHOLD", 10),
		},
		Upload: UploadConfig{
			MaxBytes:          int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			RateLimitRequests: getEnvAsInt("UPLOAD_RATE_LIMIT", 30),
			RateLimitWindow:   getEnvAsDuration("UPLOAD_RATE_WINDOW", time.Minute),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			TracesSampleRate: getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", 0),
			Debug:            getEnvAsBool("SENTRY_DEBUG", false),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
