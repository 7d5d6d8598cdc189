package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	CORSOrigin  string

	// Rate limiting for mutating engagement routes
	RateLimitRPS   float64
	RateLimitBurst int

	// Counter reconciliation sweep interval. Zero disables the periodic sweep
	// (the on-demand queue still runs).
	ReconcileInterval time.Duration
}

// Load reads configuration from the environment, falling back to local-dev defaults.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://gitwrite.db"),
		JWTSecret:         getEnv("JWT_SECRET", "secret_key_change_me"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 10),
		ReconcileInterval: getEnvDuration("RECONCILE_INTERVAL", 6*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
