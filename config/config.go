// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration.
type Config struct {
	ListenAddr     string        `env:"LISTEN_ADDR" envDefault:":9000"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	DatabaseDSN    string        `env:"DATABASE_DSN" envDefault:"file:rangda.db"`
	SigningKeyFile string        `env:"SIGNING_KEY_FILE"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"1440h"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
