package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	DatabaseURL     string
	HTTPAddr        string
	JWTSecret       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	cfg := Config{
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:        strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		ShutdownTimeout: parseSeconds(strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasks.db"
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8000"
	}

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func parseSeconds(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
