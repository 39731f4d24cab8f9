package config

import (
	_ "embed"
)

//go:embed defaults/snakegym.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: EnvConfig{
			ID:         "snake-v0",
			RenderMode: "none",
		},
		Render: RenderConfig{
			WindowSize: 512,
			FPS:        4,
		},
		Rollout: RolloutConfig{
			Policy:   "greedy",
			Episodes: 10,
			MaxSteps: 1000,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "~/.snakegym/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
