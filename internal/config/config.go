package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret        string
	SessionTokenTTL  time.Duration
	RememberTokenTTL time.Duration

	MediaRoot string

	ModelURL           string
	ModelMinConfidence float64

	LoginLockWindow time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MediaRoot: getEnv("MEDIA_ROOT", "./static"),

		ModelURL: os.Getenv("MODEL_URL"),
	}

	var err error
	cfg.SessionTokenTTL, err = parseHours("JWT_TTL_HOURS", 8)
	if err != nil {
		return nil, err
	}
	cfg.RememberTokenTTL, err = parseHours("JWT_REMEMBER_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg.ModelMinConfidence = 0.60
	if raw := os.Getenv("MODEL_MIN_CONFIDENCE"); raw != "" {
		conf, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MODEL_MIN_CONFIDENCE: %w", err)
		}
		cfg.ModelMinConfidence = conf
	}

	cfg.LoginLockWindow, err = time.ParseDuration(getEnv("LOGIN_LOCK_WINDOW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_LOCK_WINDOW: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseHours(key string, fallback int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Hour, nil
	}

	hours, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(hours) * time.Hour, nil
}
