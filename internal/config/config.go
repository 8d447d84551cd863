// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"data/studyhub.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// New loads configuration from a .env file (if present) and the
// environment. Real environment variables win over .env entries.
func New() (*Config, error) {
	// A missing .env is not an error; deployments set real env vars.
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
