package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Sim.TickMs != 50 {
		t.Errorf("tick_ms = %d, want default 50", cfg.Sim.TickMs)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `sim:
  seed: 99
  matches: 8
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Sim.Seed)
	}
	if cfg.Sim.Matches != 8 {
		t.Errorf("matches = %d, want 8", cfg.Sim.Matches)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
	// Untouched fields keep their defaults.
	if cfg.Sim.TickMs != 50 {
		t.Errorf("tick_ms = %d, want default 50", cfg.Sim.TickMs)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sim:\n  tick_ms: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("negative tick accepted")
	}
}
