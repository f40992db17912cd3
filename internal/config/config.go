package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BaseURL maps to BASE_URL, the help-center root to scrape.
	BaseURL string `envconfig:"BASE_URL" default:"https://help.moengage.com"`

	// BatchSize maps to BATCH_SIZE, the number of articles fetched
	// concurrently per chunk.
	BatchSize int `envconfig:"BATCH_SIZE" default:"5"`

	// RateLimit maps to RATE_LIMIT, the pause between chunks and the
	// per-domain request interval.
	RateLimit time.Duration `envconfig:"RATE_LIMIT" default:"1s"`

	// Retries maps to RETRIES, per-page fetch attempts before recording
	// a failure.
	Retries int `envconfig:"RETRIES" default:"3"`

	// NavTimeout maps to NAV_TIMEOUT, the navigation deadline per page.
	NavTimeout time.Duration `envconfig:"NAV_TIMEOUT" default:"30s"`

	// Settle maps to SETTLE, how long to let client-side rendering run
	// after the body is ready.
	Settle time.Duration `envconfig:"SETTLE" default:"2s"`

	// UserAgent maps to USER_AGENT, sent by both the browser and the
	// robots.txt fetcher.
	UserAgent string `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`

	// DatabaseURL maps to DB_URL. Optional: when set, extraction results
	// are also archived to Postgres.
	DatabaseURL string `envconfig:"DB_URL"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// Try to load .env first. Missing file is fine (vars may be injected
	// directly in CI or containers); only warn when it exists but fails.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Warnf(".env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
