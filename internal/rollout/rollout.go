// Package rollout drives an environment with a policy for a number of
// episodes and aggregates the outcome.
package rollout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-gym/internal/env"
	"github.com/vovakirdan/snake-gym/internal/policy"
)

// Environment is the part of *env.Env a rollout needs.
type Environment interface {
	Reset() (env.Observation, env.Info, error)
	Step(a env.Action) (env.StepResult, error)
	GridSize() int
}

// Options controls a rollout.
type Options struct {
	Episodes int
	// MaxSteps truncates an episode that has not reached the target.
	MaxSteps int
	// Render, when set, is called after every step. The starting frame of an
	// episode is not rendered here: a presenting env shows it from Reset.
	Render func() error
	Logger *log.Logger
}

// EpisodeResult describes one finished episode.
type EpisodeResult struct {
	Steps   int
	Reached bool
	Return  float64
}

// Summary aggregates a rollout.
type Summary struct {
	Policy     string
	GridSize   int
	Episodes   int
	Successes  int
	TotalSteps int
	Return     float64
	Duration   time.Duration
	Cancelled  bool
}

// SuccessRate is the fraction of episodes that reached the target.
func (s Summary) SuccessRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Episodes)
}

// MeanSteps is the average episode length.
func (s Summary) MeanSteps() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.Episodes)
}

// Run plays opts.Episodes episodes. Cancelling ctx stops the rollout
// between steps; the partial summary is returned with ctx's error.
func Run(ctx context.Context, e Environment, p policy.Policy, opts Options) (Summary, error) {
	if opts.Episodes <= 0 {
		return Summary{}, fmt.Errorf("rollout: episodes must be positive, got %d", opts.Episodes)
	}
	if opts.MaxSteps <= 0 {
		return Summary{}, fmt.Errorf("rollout: max steps must be positive, got %d", opts.MaxSteps)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	summary := Summary{Policy: p.Name(), GridSize: e.GridSize()}
	start := time.Now()

	for i := 0; i < opts.Episodes; i++ {
		res, err := runEpisode(ctx, e, p, opts)
		if err != nil {
			summary.Duration = time.Since(start)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				summary.Cancelled = true
				logger.Warn("rollout cancelled", "completed", summary.Episodes)
			}
			return summary, err
		}
		summary.Episodes++
		summary.TotalSteps += res.Steps
		summary.Return += res.Return
		if res.Reached {
			summary.Successes++
		}
		logger.Debug("episode finished",
			"episode", i+1,
			"steps", res.Steps,
			"reached", res.Reached,
		)
	}

	summary.Duration = time.Since(start)
	logger.Info("rollout finished",
		"policy", summary.Policy,
		"episodes", summary.Episodes,
		"success_rate", fmt.Sprintf("%.2f", summary.SuccessRate()),
		"mean_steps", fmt.Sprintf("%.1f", summary.MeanSteps()),
	)
	return summary, nil
}

func runEpisode(ctx context.Context, e Environment, p policy.Policy, opts Options) (EpisodeResult, error) {
	obs, _, err := e.Reset()
	if err != nil {
		return EpisodeResult{}, fmt.Errorf("rollout: reset: %w", err)
	}

	var result EpisodeResult
	for result.Steps < opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		step, err := e.Step(p.Act(obs))
		if err != nil {
			return result, fmt.Errorf("rollout: step: %w", err)
		}
		result.Steps++
		result.Return += step.Reward
		obs = step.Observation

		if opts.Render != nil {
			if err := opts.Render(); err != nil {
				return result, fmt.Errorf("rollout: render: %w", err)
			}
		}
		if step.Done {
			result.Reached = true
			break
		}
	}
	return result, nil
}
