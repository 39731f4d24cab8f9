package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/env"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/policy"
	"github.com/vovakirdan/snake-gym/internal/registry"
)

var (
	flagPlayEnv       string
	flagPlayGrid      int
	flagPlayAutopilot string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an environment with the keyboard",
	Long: `Drive the agent yourself. The episode ends when the agent reaches the
target; press R to start a new one.

Controls:
  Arrows/WASD/HJKL - Move
  R                - New episode
  P                - Toggle autopilot
  ?                - Help
  Q/Esc/Ctrl+C     - Quit

Examples:
  snakegym play
  snakegym play --env snake-small-v0
  snakegym play --grid 20 --autopilot epsilon-greedy`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayEnv, "env", "", "Environment preset (default from config)")
	playCmd.Flags().IntVar(&flagPlayGrid, "grid", 0, "Grid size override")
	playCmd.Flags().StringVar(&flagPlayAutopilot, "autopilot", "greedy", "Policy toggled with P (empty disables)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, func(c *config.Config) {
		if flagPlayEnv != "" {
			c.Env.ID = flagPlayEnv
		}
		if flagPlayGrid > 0 {
			c.Env.GridSize = flagPlayGrid
		}
	})
	if err != nil {
		return err
	}

	envCfg, err := cfg.EnvironmentConfig()
	if err != nil {
		return err
	}
	// The play model draws frames itself.
	envCfg.RenderMode = env.RenderNone

	e, err := env.New(envCfg)
	if err != nil {
		return err
	}
	defer e.Close()

	var autopilot policy.Policy
	if flagPlayAutopilot != "" {
		autopilot, err = policy.New(flagPlayAutopilot, cfg.Env.Seed)
		if err != nil {
			return err
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	preset, err := registry.Lookup(cfg.Env.ID)
	if err != nil {
		return err
	}
	title := preset.Title
	if cfg.Env.GridSize > 0 {
		title = fmt.Sprintf("Snake %dx%d", envCfg.GridSize, envCfg.GridSize)
	}

	m, err := tui.NewPlayModel(e, title, autopilot, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Render.FPS,
		Seed:     cfg.Env.Seed,
	})
	if err != nil {
		return err
	}
	return tui.RunPlay(m)
}
