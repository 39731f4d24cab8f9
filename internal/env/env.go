// Package env implements the snake grid-world environment: a single-point
// agent moves on an N×N grid toward a target placed at random on Reset.
// Reaching the target ends the episode with reward 1.
//
// An Env is owned by one goroutine. Run several instances for parallelism.
package env

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/render"
)

// DefaultGridSize is the side length used by DefaultConfig.
const DefaultGridSize = 40

// Config holds the construction parameters of an Env.
type Config struct {
	GridSize   int
	RenderMode RenderMode
	// WindowSize is the side length in pixels of buffer-mode frames.
	WindowSize int
	// Seed drives target placement. 0 seeds from the clock.
	Seed int64
	// Presenter builds the live surface for presentation mode. It is called
	// at most once, on the first frame that needs presenting.
	Presenter render.PresenterFactory
}

// DefaultConfig returns a 40×40 environment without rendering.
func DefaultConfig() Config {
	return Config{
		GridSize:   DefaultGridSize,
		RenderMode: RenderNone,
		WindowSize: render.DefaultWindowSize,
	}
}

// Env is the grid-world environment.
type Env struct {
	size       int
	mode       RenderMode
	windowSize int
	rng        *rand.Rand

	newPresenter render.PresenterFactory
	presenter    render.Presenter

	agent  core.Point
	target core.Point
	state  State
	steps  int
}

// New validates cfg and builds an environment in the Uninitialized state.
func New(cfg Config) (*Env, error) {
	if cfg.GridSize <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", ErrConfiguration, cfg.GridSize)
	}
	mode, err := ParseRenderMode(string(cfg.RenderMode))
	if err != nil {
		return nil, err
	}
	if mode == RenderPresentation && cfg.Presenter == nil {
		return nil, fmt.Errorf("%w: presentation mode needs a presenter", ErrConfiguration)
	}
	windowSize := cfg.WindowSize
	if windowSize <= 0 {
		windowSize = render.DefaultWindowSize
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Env{
		size:         cfg.GridSize,
		mode:         mode,
		windowSize:   windowSize,
		rng:          rand.New(rand.NewSource(seed)),
		newPresenter: cfg.Presenter,
		state:        StateUninitialized,
	}, nil
}

// Seed reseeds target placement for subsequent resets.
func (e *Env) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// GridSize returns N.
func (e *Env) GridSize() int {
	return e.size
}

// RenderMode returns the configured render mode.
func (e *Env) RenderMode() RenderMode {
	return e.mode
}

// State returns the episode state.
func (e *Env) State() State {
	return e.state
}

// ActionSpace returns the actions Step accepts.
func (e *Env) ActionSpace() []Action {
	return Actions()
}

// Reset starts a new episode. The agent is placed at (N/2, N/2) and the
// target is drawn uniformly over the remaining cells.
func (e *Env) Reset() (Observation, Info, error) {
	if e.size == 1 {
		return Observation{}, Info{}, fmt.Errorf("%w: a 1x1 grid has no free cell for the target", ErrConfiguration)
	}

	e.agent = core.Point{X: e.size / 2, Y: e.size / 2}
	e.target = e.agent
	for e.target == e.agent {
		e.target = core.Point{X: e.rng.Intn(e.size), Y: e.rng.Intn(e.size)}
	}
	e.state = StateActive
	e.steps = 0

	if e.mode == RenderPresentation {
		//nolint:errcheck // Presentation is best-effort, the episode does not depend on it
		e.present()
	}

	return e.Observation(), e.Info(), nil
}

// Step moves the agent one cell. Moves into a wall leave that axis
// unchanged. The episode ends when the agent lands on the target.
func (e *Env) Step(a Action) (StepResult, error) {
	switch e.state {
	case StateUninitialized:
		return StepResult{}, ErrNotReset
	case StateTerminated:
		return StepResult{}, ErrEpisodeDone
	}

	d, ok := a.Displacement()
	if !ok {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}

	e.agent = e.agent.Add(d).ClampTo(e.size)
	e.steps++

	done := e.agent == e.target
	reward := 0.0
	if done {
		reward = 1
		e.state = StateTerminated
	}

	return StepResult{
		Observation: e.Observation(),
		Reward:      reward,
		Done:        done,
		Info:        e.Info(),
	}, nil
}

// Render draws the current frame according to the render mode.
// Buffer mode returns a new image; the other modes return nil.
func (e *Env) Render() (*image.RGBA, error) {
	if e.state == StateUninitialized {
		return nil, ErrNotReset
	}
	switch e.mode {
	case RenderBuffer:
		return render.Rasterize(e.frame(), e.windowSize), nil
	case RenderPresentation:
		return nil, e.present()
	default:
		return nil, nil
	}
}

// Close releases the presenter if one was created. It is safe to call more
// than once and on environments that never rendered.
func (e *Env) Close() error {
	if e.presenter == nil {
		return nil
	}
	p := e.presenter
	e.presenter = nil
	return p.Close()
}

func (e *Env) present() error {
	if e.presenter == nil {
		p, err := e.newPresenter()
		if err != nil {
			return fmt.Errorf("env: cannot create presenter: %w", err)
		}
		e.presenter = p
	}
	return e.presenter.Present(e.frame())
}

func (e *Env) frame() render.Frame {
	return render.Frame{
		GridSize: e.size,
		Agent:    e.agent,
		Target:   e.target,
	}
}
