// Package config provides YAML-based configuration loading for snake-gym.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-gym/internal/env"
	"github.com/vovakirdan/snake-gym/internal/policy"
	"github.com/vovakirdan/snake-gym/internal/registry"
)

// Config is the top-level configuration file.
type Config struct {
	Env     EnvConfig     `yaml:"env"`
	Render  RenderConfig  `yaml:"render"`
	Rollout RolloutConfig `yaml:"rollout"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EnvConfig selects and tunes the environment.
type EnvConfig struct {
	ID         string `yaml:"id"`
	GridSize   int    `yaml:"grid_size"` // 0 keeps the preset size
	RenderMode string `yaml:"render_mode"`
	Seed       int64  `yaml:"seed"`
}

// RenderConfig defines renderer parameters.
type RenderConfig struct {
	WindowSize int `yaml:"window_size"` // Pixel side length of buffer frames
	FPS        int `yaml:"fps"`         // Presentation frame rate
}

// RolloutConfig defines rollout parameters.
type RolloutConfig struct {
	Policy   string `yaml:"policy"`
	Episodes int    `yaml:"episodes"`
	MaxSteps int    `yaml:"max_steps"`
}

// StorageConfig defines where run summaries are kept.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks every field and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	if !registry.Exists(c.Env.ID) {
		errs = append(errs, fmt.Errorf("env.id: unknown environment %q", c.Env.ID))
	}
	if c.Env.GridSize < 0 {
		errs = append(errs, fmt.Errorf("env.grid_size: must not be negative, got %d", c.Env.GridSize))
	}
	if _, err := env.ParseRenderMode(c.Env.RenderMode); err != nil {
		errs = append(errs, fmt.Errorf("env.render_mode: %w", err))
	}
	if c.Render.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("render.window_size: must be positive, got %d", c.Render.WindowSize))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps: must be positive, got %d", c.Render.FPS))
	}
	if !policy.Exists(c.Rollout.Policy) {
		errs = append(errs, fmt.Errorf("rollout.policy: unknown policy %q", c.Rollout.Policy))
	}
	if c.Rollout.Episodes <= 0 {
		errs = append(errs, fmt.Errorf("rollout.episodes: must be positive, got %d", c.Rollout.Episodes))
	}
	if c.Rollout.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("rollout.max_steps: must be positive, got %d", c.Rollout.MaxSteps))
	}
	if c.Storage.Enabled && c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path: required when storage is enabled"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// EnvironmentConfig resolves the env section against its preset.
func (c Config) EnvironmentConfig() (env.Config, error) {
	p, err := registry.Lookup(c.Env.ID)
	if err != nil {
		return env.Config{}, err
	}
	cfg := p.Config
	if c.Env.GridSize > 0 {
		cfg.GridSize = c.Env.GridSize
	}
	mode, err := env.ParseRenderMode(c.Env.RenderMode)
	if err != nil {
		return env.Config{}, err
	}
	cfg.RenderMode = mode
	cfg.Seed = c.Env.Seed
	cfg.WindowSize = c.Render.WindowSize
	return cfg, nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
