package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	Addr            string
	BaseURL         string
	UploadDir       string
	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenAge  time.Duration
	AllowedOrigin   string
	LogLevel        string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	accessKey := os.Getenv("ACCESS_TOKEN_KEY")
	if accessKey == "" {
		return Config{}, errors.New("ACCESS_TOKEN_KEY env var is required")
	}
	refreshKey := os.Getenv("REFRESH_TOKEN_KEY")
	if refreshKey == "" {
		return Config{}, errors.New("REFRESH_TOKEN_KEY env var is required")
	}

	age, err := time.ParseDuration(envOrDefault("ACCESS_TOKEN_AGE", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ACCESS_TOKEN_AGE: %w", err)
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "5000"))

	return Config{
		DatabaseURL:     dsn,
		RedisAddr:       envOrDefault("REDIS_ADDR", "localhost:6379"),
		Addr:            addr,
		BaseURL:         envOrDefault("BASE_URL", fmt.Sprintf("http://localhost%s", addr)),
		UploadDir:       envOrDefault("UPLOAD_DIR", "uploads"),
		AccessTokenKey:  accessKey,
		RefreshTokenKey: refreshKey,
		AccessTokenAge:  age,
		AllowedOrigin:   envOrDefault("CORS_ALLOWED_ORIGIN", "*"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
