package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port              string   `env:"PORT" envDefault:"5000"`
	GinMode           string   `env:"GIN_MODE" envDefault:"debug"`
	DatabaseDriver    string   `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseDSN       string   `env:"DATABASE_DSN" envDefault:"cafes.db"`
	AllowedOrigins    []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	APIKey            string   `env:"CAFE_API_KEY"`
	APIKeyHash        string   `env:"CAFE_API_KEY_HASH"`
	JWTSecret         string   `env:"JWT_SECRET"`
	StrictStatusCodes bool     `env:"STRICT_STATUS_CODES" envDefault:"false"`
}

func (c Config) Release() bool {
	return c.GinMode == "release"
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
