package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/env"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/policy"
	"github.com/vovakirdan/snake-gym/internal/rollout"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var (
	flagRolloutEnv      string
	flagRolloutGrid     int
	flagRolloutPolicy   string
	flagRolloutEpisodes int
	flagRolloutMaxSteps int
	flagRolloutRender   string
	flagRolloutNoSave   bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Run a policy for a number of episodes",
	Long: `Drive an environment with a built-in policy and report how often it
reaches the target. Episodes that hit --max-steps are truncated and count
as failures.

With --render presentation the episodes are shown in the terminal at the
configured frame rate. Summaries are saved to the runs database unless
storage is disabled or --no-save is given.

Examples:
  snakegym rollout
  snakegym rollout --policy random --episodes 100 --max-steps 500
  snakegym rollout --env snake-small-v0 --render presentation
  snakegym rollout --seed 42 --no-save`,
	RunE: runRollout,
}

func init() {
	rolloutCmd.Flags().StringVar(&flagRolloutEnv, "env", "", "Environment preset (default from config)")
	rolloutCmd.Flags().IntVar(&flagRolloutGrid, "grid", 0, "Grid size override")
	rolloutCmd.Flags().StringVar(&flagRolloutPolicy, "policy", "", "Policy name (default from config)")
	rolloutCmd.Flags().IntVar(&flagRolloutEpisodes, "episodes", 0, "Number of episodes (default from config)")
	rolloutCmd.Flags().IntVar(&flagRolloutMaxSteps, "max-steps", 0, "Step limit per episode (default from config)")
	rolloutCmd.Flags().StringVar(&flagRolloutRender, "render", "", "Render mode: none, presentation")
	rolloutCmd.Flags().BoolVar(&flagRolloutNoSave, "no-save", false, "Do not store the summary")
}

func runRollout(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, applyRolloutFlags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	envCfg, err := cfg.EnvironmentConfig()
	if err != nil {
		return err
	}
	if envCfg.RenderMode == env.RenderPresentation {
		pcfg := tui.DefaultPresenterConfig()
		pcfg.FPS = cfg.Render.FPS
		pcfg.Title = fmt.Sprintf("%s / %s", cfg.Env.ID, cfg.Rollout.Policy)
		envCfg.Presenter = tui.Factory(pcfg)
	}

	e, err := env.New(envCfg)
	if err != nil {
		return err
	}

	p, err := policy.New(cfg.Rollout.Policy, cfg.Env.Seed)
	if err != nil {
		e.Close()
		return err
	}

	opts := rollout.Options{
		Episodes: cfg.Rollout.Episodes,
		MaxSteps: cfg.Rollout.MaxSteps,
		Logger:   logger,
	}
	if envCfg.RenderMode == env.RenderPresentation {
		opts.Render = func() error {
			_, err := e.Render()
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := rollout.Run(ctx, e, p, opts)
	// Restore the terminal before printing anything.
	if err := e.Close(); err != nil {
		logger.Warn("presenter close failed", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	printSummary(cfg.Env.ID, summary)

	if cfg.Storage.Enabled && !flagRolloutNoSave {
		saveSummary(logger, cfg, summary)
	}
	return nil
}

func applyRolloutFlags(cfg *config.Config) {
	if flagRolloutEnv != "" {
		cfg.Env.ID = flagRolloutEnv
	}
	if flagRolloutGrid > 0 {
		cfg.Env.GridSize = flagRolloutGrid
	}
	if flagRolloutPolicy != "" {
		cfg.Rollout.Policy = flagRolloutPolicy
	}
	if flagRolloutEpisodes > 0 {
		cfg.Rollout.Episodes = flagRolloutEpisodes
	}
	if flagRolloutMaxSteps > 0 {
		cfg.Rollout.MaxSteps = flagRolloutMaxSteps
	}
	if flagRolloutRender != "" {
		cfg.Env.RenderMode = flagRolloutRender
	}
}

func printSummary(envID string, s rollout.Summary) {
	status := "completed"
	if s.Cancelled {
		status = "cancelled"
	}
	fmt.Printf("Rollout %s - %s on %s (%dx%d)\n", status, s.Policy, envID, s.GridSize, s.GridSize)
	fmt.Println()
	fmt.Printf("  Episodes:     %d\n", s.Episodes)
	fmt.Printf("  Successes:    %d (%.1f%%)\n", s.Successes, s.SuccessRate()*100)
	fmt.Printf("  Mean steps:   %.1f\n", s.MeanSteps())
	fmt.Printf("  Total return: %.0f\n", s.Return)
	fmt.Printf("  Duration:     %s\n", s.Duration.Round(time.Millisecond))
}

func saveSummary(logger *log.Logger, cfg config.Config, s rollout.Summary) {
	dbPath, err := config.ExpandHome(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not resolve runs database", "error", err)
		return
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		// The rollout itself succeeded; storage is best effort.
		logger.Warn("could not open runs database", "path", dbPath, "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		EnvID:      cfg.Env.ID,
		Policy:     s.Policy,
		GridSize:   s.GridSize,
		Episodes:   s.Episodes,
		Successes:  s.Successes,
		TotalSteps: s.TotalSteps,
		DurationMs: s.Duration.Milliseconds(),
		Cancelled:  s.Cancelled,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return
	}
	logger.Debug("run saved", "id", id, "path", dbPath)
}
