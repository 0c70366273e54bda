package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from environment variables.
type Config struct {
	// Server
	Port string
	Env  string // "development" or "production"

	// Database
	DatabaseURL string

	// Cache
	CacheBackend  string // "memory", "redis" or "postgres"
	CacheSweep    time.Duration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Auth
	JWTSecret      string
	JWTExpiry      time.Duration
	BcryptCost     int
	MinPasswordLen int

	// Game
	StartingBalance int64

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, applying defaults for
// everything that is not security sensitive. It returns an error when a
// required value is missing outside of test environments.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CacheBackend:    getEnv("CACHE_BACKEND", "memory"),
		CacheSweep:      getDuration("CACHE_SWEEP_INTERVAL", 5*time.Minute),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getInt("REDIS_DB", 0),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiry:       getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		BcryptCost:      getInt("BCRYPT_ROUNDS", 12),
		MinPasswordLen:  getInt("MIN_PASSWORD_LENGTH", 6),
		StartingBalance: getInt64("STARTING_BALANCE", 1000),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.CacheBackend {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q (want memory, redis or postgres)", cfg.CacheBackend)
	}

	if cfg.Env != "test" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
