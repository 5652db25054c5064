package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// HashPepper is appended to every password before hashing. Rotating it
	// invalidates all stored password hashes.
	HashPepper string `env:"HASH_PEPPER,required" validate:"required,min=16"`

	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"12" validate:"min=1,max=720"`
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"@hourly" validate:"required"`

	// UniquenessCaseInsensitive makes the username/email uniqueness lookups
	// case-insensitive. Off by default; collation-sensitive deployments opt in.
	UniquenessCaseInsensitive bool `env:"UNIQUENESS_CASE_INSENSITIVE" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
