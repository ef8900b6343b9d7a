// Package config loads touchtree CLI settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the CLI reads before flags are applied.
type Config struct {
	MediaDB      string        `env:"TOUCHTREE_MEDIA_DB" envDefault:"assets.db"`
	FetchTimeout time.Duration `env:"TOUCHTREE_FETCH_TIMEOUT" envDefault:"5s"`
	LogLevel     string        `env:"TOUCHTREE_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"TOUCHTREE_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout < 0 {
		return Config{}, fmt.Errorf("parse env: TOUCHTREE_FETCH_TIMEOUT must not be negative")
	}
	return cfg, nil
}
