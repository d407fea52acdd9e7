// Package config reads runtime settings from the environment with
// development defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	Environment string
	DatabaseDSN string
	RedisAddr   string
	JWTSecret   string
	JWTExpires  time.Duration
	BcryptCost  int

	RateLimitEnabled        bool
	RateLimitWindow         time.Duration
	RateLimitMax            int
	RateLimitSkipSuccessful bool
}

func Load() *Config {
	return &Config{
		Addr:        getEnv("ADDR", ":3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/blog-db?parseTime=true"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		JWTSecret:   getEnv("JWT_SECRET", "your-default-secret"),
		JWTExpires:  getEnvDuration("JWT_EXPIRES", 168*time.Hour),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),

		RateLimitEnabled:        getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWindow:         time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
		RateLimitMax:            getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitSkipSuccessful: getEnvBool("RATE_LIMIT_SKIP_SUCCESSFUL", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
