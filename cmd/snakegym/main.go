// snakegym is a grid-world reinforcement learning environment: an agent
// moves on an N x N grid and the episode ends when it reaches the target.
//
// Usage:
//
//	snakegym list              - List environment presets
//	snakegym play              - Play an environment with the keyboard
//	snakegym rollout           - Run a policy for a number of episodes
//	snakegym runs              - Show stored rollout summaries
//	snakegym frame             - Write one rendered frame as PNG
//	snakegym serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Configuration file (default search path otherwise)
//	--seed <value>      - Set RNG seed for reproducible episodes
//	--log-level <level> - debug, info, warn or error
//	--db <path>         - Set database path (default: ~/.snakegym/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakegym",
	Short: "snake-gym - a grid-world environment for reinforcement learning",
	Long: `snake-gym is a minimal reinforcement learning environment. An agent
moves on a square grid and the episode ends when it reaches the target.

Available commands:
  list     - Show environment presets
  play     - Drive the agent with the keyboard
  rollout  - Run a policy and report the success rate
  runs     - View stored rollout summaries
  frame    - Render one frame to a PNG file
  serve    - Start SSH server for remote play

Examples:
  snakegym list
  snakegym play --env snake-small-v0
  snakegym rollout --policy random --episodes 100
  snakegym frame -o frame.png --seed 42
  snakegym serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(rolloutCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configuration file, applies global flag overrides and
// then the command's own overrides, and validates the result once.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.Config)) (config.Config, error) {
	cfg, err := config.Read(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Env.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	for _, apply := range overrides {
		apply(&cfg)
	}
	return cfg, cfg.Validate()
}

// newLogger builds the CLI logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakegym",
		Level:           cfg.LogLevel(),
	})
}
