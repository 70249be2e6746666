// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server
	Port       int    `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Storage
	DBPath string `env:"DB_PATH" envDefault:"./data/divido.db"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// HistoryLimit caps how many expense/payment records a single global
	// balance computation reads.
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"50"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
