package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	CountriesURL     string
	CountriesTimeout time.Duration
	OptionsCount     int
	MailWorkerCount  int
	MailQueueSize    int
	MailFrom         string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:flagquiz.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		CountriesURL:     envOr("COUNTRIES_URL", ""),
		CountriesTimeout: time.Duration(envIntOr("COUNTRIES_TIMEOUT_SECONDS", 15)) * time.Second,
		OptionsCount:     envIntOr("OPTIONS_COUNT", 6),
		MailWorkerCount:  envIntOr("MAIL_WORKER_COUNT", 1),
		MailQueueSize:    envIntOr("MAIL_QUEUE_SIZE", 16),
		MailFrom:         envOr("MAIL_FROM", "hello@flagquiz.local"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
