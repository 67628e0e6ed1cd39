// Package config loads simulator settings from a YAML file over
// defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the simulator configuration.
type Config struct {
	Sim       Sim       `yaml:"sim"`
	Log       Log       `yaml:"log"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Sim controls the tick loop and batch execution.
type Sim struct {
	// TickMs is the fixed simulation step. 50ms = 20Hz.
	TickMs int32 `yaml:"tick_ms"`

	// MaxTicks bounds a match; reaching it ends the match in a draw.
	MaxTicks int32 `yaml:"max_ticks"`

	// Seed feeds the match RNG. Batch runs derive per-match seeds from it.
	Seed uint64 `yaml:"seed"`

	// Matches is how many seeded matches a batch run plays.
	Matches int `yaml:"matches"`

	// Workers caps concurrent matches in a batch. 0 = GOMAXPROCS.
	Workers int `yaml:"workers"`

	// BalanceOverlay optionally points at a YAML file with skill tuning
	// overrides applied on top of the built-in tables.
	BalanceOverlay string `yaml:"balance_overlay"`
}

// Log controls the slog setup.
type Log struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Telemetry controls the optional match-result sink.
type Telemetry struct {
	// DSN is a PostgreSQL connection string. Empty disables the sink.
	DSN string `yaml:"dsn"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sim: Sim{
			TickMs:   50,
			MaxTicks: 6000, // five minutes of match time
			Seed:     1,
			Matches:  1,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Sim.TickMs <= 0 {
		return fmt.Errorf("sim.tick_ms must be positive, got %d", c.Sim.TickMs)
	}
	if c.Sim.MaxTicks <= 0 {
		return fmt.Errorf("sim.max_ticks must be positive, got %d", c.Sim.MaxTicks)
	}
	if c.Sim.Matches < 1 {
		return fmt.Errorf("sim.matches must be at least 1, got %d", c.Sim.Matches)
	}
	return nil
}
