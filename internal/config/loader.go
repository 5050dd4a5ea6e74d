package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	envPrefix = "MOLKKY_"
	envFile   = "MOLKKY_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MOLKKY_CONFIG is set
//  3. env (prefix MOLKKY_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// MOLKKY_TARGET_SCORE -> target_score. Underscores are kept so keys match
	// the flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		if s == envFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TargetScore < 1:
		return fmt.Errorf("%w: target_score must be positive, got %d", ErrInvalidConfig, c.TargetScore)
	case c.CanBeReset && (c.ResetScore < 0 || c.ResetScore >= c.TargetScore):
		return fmt.Errorf("%w: reset_score must be in [0, %d), got %d", ErrInvalidConfig, c.TargetScore, c.ResetScore)
	case c.MissesForElimination < 1:
		return fmt.Errorf("%w: misses_for_elimination must be positive, got %d", ErrInvalidConfig, c.MissesForElimination)
	}
	return nil
}
