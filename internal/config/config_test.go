package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-gym/internal/env"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
env:
  id: snake-small-v0
  grid_size: 12
  render_mode: rgb_array
  seed: 5
rollout:
  policy: random
  episodes: 3
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Env.ID != "snake-small-v0" || cfg.Env.GridSize != 12 || cfg.Env.Seed != 5 {
		t.Errorf("env section = %+v", cfg.Env)
	}
	if cfg.Rollout.Policy != "random" || cfg.Rollout.Episodes != 3 {
		t.Errorf("rollout section = %+v", cfg.Rollout)
	}
	// Unset keys keep defaults.
	if cfg.Rollout.MaxSteps != 1000 || cfg.Render.FPS != 4 {
		t.Errorf("defaults not kept: max_steps=%d fps=%d", cfg.Rollout.MaxSteps, cfg.Render.FPS)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, expected debug", cfg.LogLevel())
	}

	envCfg, err := cfg.EnvironmentConfig()
	if err != nil {
		t.Fatalf("EnvironmentConfig() failed: %v", err)
	}
	if envCfg.GridSize != 12 || envCfg.RenderMode != env.RenderBuffer || envCfg.Seed != 5 || envCfg.WindowSize != 512 {
		t.Errorf("EnvironmentConfig() = %+v", envCfg)
	}
}

func TestEnvironmentConfigUsesPresetSize(t *testing.T) {
	cfg := Default()
	cfg.Env.ID = "snake-small-v0"
	envCfg, err := cfg.EnvironmentConfig()
	if err != nil {
		t.Fatalf("EnvironmentConfig() failed: %v", err)
	}
	if envCfg.GridSize != 10 {
		t.Errorf("GridSize = %d, expected preset size 10", envCfg.GridSize)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("env: [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown env", func(c *Config) { c.Env.ID = "pong-v0" }, "env.id"},
		{"negative grid", func(c *Config) { c.Env.GridSize = -2 }, "env.grid_size"},
		{"bad render mode", func(c *Config) { c.Env.RenderMode = "vr" }, "env.render_mode"},
		{"zero window", func(c *Config) { c.Render.WindowSize = 0 }, "render.window_size"},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"unknown policy", func(c *Config) { c.Rollout.Policy = "dqn" }, "rollout.policy"},
		{"zero episodes", func(c *Config) { c.Rollout.Episodes = 0 }, "rollout.episodes"},
		{"zero max steps", func(c *Config) { c.Rollout.MaxSteps = 0 }, "rollout.max_steps"},
		{"missing db path", func(c *Config) { c.Storage.DBPath = "" }, "storage.db_path"},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() accepted an invalid config")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() error %q does not mention %s", err, tc.field)
			}
		})
	}

	disabled := Default()
	disabled.Storage.Enabled = false
	disabled.Storage.DBPath = ""
	if err := disabled.Validate(); err != nil {
		t.Errorf("db_path should not be required with storage disabled: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.snakegym/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if expected := filepath.Join(home, ".snakegym", "runs.db"); got != expected {
		t.Errorf("ExpandHome() = %q, expected %q", got, expected)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
