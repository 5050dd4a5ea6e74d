// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped with this package's sentinel errors.
package config

import (
	"github.com/okian/molkky/internal/domain/dedupe"
	"github.com/okian/molkky/internal/domain/round"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile is the YAML file rounds and players are kept in. Empty keeps
	// everything in memory.
	DataFile string `koanf:"data_file"`

	// DedupeSize sets how many attempt request ids are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// Default rules for new rounds. Rounds can override the first three.
	TargetScore              int  `koanf:"target_score"`
	ResetScore               int  `koanf:"reset_score"`
	MissesForElimination     int  `koanf:"misses_for_elimination"`
	CanBeReset               bool `koanf:"can_be_reset"`
	ContinueUntilAllFinished bool `koanf:"continue_until_all_finished"`
}

// New creates a Config with defaults.
func New() *Config {
	rules := round.DefaultConfig()
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":9080",
		DedupeSize:               dedupe.DefaultMaxSize,
		TargetScore:              rules.TargetScore,
		ResetScore:               rules.ResetScore,
		MissesForElimination:     rules.MissesForElimination,
		CanBeReset:               rules.CanBeReset,
		ContinueUntilAllFinished: rules.ContinueUntilAllFinished,
	}
}

// RoundConfig returns the default rules for new rounds.
func (c *Config) RoundConfig() round.Config {
	rules := round.DefaultConfig()
	rules.TargetScore = c.TargetScore
	rules.ResetScore = c.ResetScore
	rules.MissesForElimination = c.MissesForElimination
	rules.CanBeReset = c.CanBeReset
	rules.ContinueUntilAllFinished = c.ContinueUntilAllFinished
	return rules
}
