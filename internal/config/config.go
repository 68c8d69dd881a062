// Package config loads the settings shared by the lattice tools from the
// environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"honnef.co/go/lattice"
)

// Prefix is prepended to every variable name, e.g. LATTICE_FLATNESS.
const Prefix = "LATTICE"

type Config struct {
	CoordinateSystem string  `envconfig:"COORDINATE_SYSTEM" default:"y-up"`
	Flatness         float64 `envconfig:"FLATNESS" default:"0.1"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"warning"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every field holds a usable value.
func (cfg *Config) Validate() error {
	if _, err := lattice.ParseCoordinateSystem(cfg.CoordinateSystem); err != nil {
		return fmt.Errorf("%s_COORDINATE_SYSTEM: %w", Prefix, err)
	}
	if cfg.Flatness < 0 {
		return fmt.Errorf("%s_FLATNESS must not be negative, got %v: %w", Prefix, cfg.Flatness, lattice.ErrInvalidArgument)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%s_LOG_LEVEL: %w", Prefix, err)
	}
	return nil
}

// Context returns the query context described by cfg. Invalid fields fall
// back to their defaults.
func (cfg *Config) Context() lattice.Context {
	ctx := lattice.DefaultContext()
	if cs, err := lattice.ParseCoordinateSystem(cfg.CoordinateSystem); err == nil {
		ctx.System = cs
	}
	if cfg.Flatness > 0 {
		ctx.Flatness = cfg.Flatness
	}
	return ctx
}

// Level returns the configured log level, or warning if it can't be parsed.
func (cfg *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}
