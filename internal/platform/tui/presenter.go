package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/render"
)

// ErrPresenterStopped is returned by Present once the program has exited.
var ErrPresenterStopped = errors.New("tui: presenter stopped")

// PresenterConfig holds settings for the live presenter.
type PresenterConfig struct {
	// FPS caps how often frames are shown. Present blocks until the next
	// frame slot, like a game clock.
	FPS    int
	Title  string
	Output io.Writer
	// AltScreen switches to the terminal's alternate screen buffer.
	AltScreen bool
}

// DefaultPresenterConfig returns a 4 FPS presenter on stdout.
func DefaultPresenterConfig() PresenterConfig {
	return PresenterConfig{
		FPS:       4,
		Title:     "snake-gym",
		Output:    os.Stdout,
		AltScreen: true,
	}
}

// frameMsg delivers a new frame to the presenter program.
type frameMsg render.Frame

// frameModel displays the latest frame. It ignores input; the program is
// stopped by Presenter.Close.
type frameModel struct {
	title  string
	frame  render.Frame
	frames int
	screen *core.Screen
}

func newFrameModel(title string, w, h int) frameModel {
	return frameModel{title: title, screen: core.NewScreen(w, h)}
}

func (m frameModel) Init() tea.Cmd {
	return nil
}

func (m frameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = render.Frame(msg)
		m.frames++
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m frameModel) View() string {
	m.screen.Clear()
	if m.frames == 0 {
		return RenderScreen(m.screen)
	}
	m.screen.DrawText(0, 0, fmt.Sprintf(" %s  frame %d  agent (%d,%d)  target (%d,%d)",
		m.title, m.frames, m.frame.Agent.X, m.frame.Agent.Y, m.frame.Target.X, m.frame.Target.Y))
	if !render.DrawGrid(m.screen, m.frame, hudHeight) {
		render.DrawTooSmall(m.screen, m.frame.GridSize)
	}
	return RenderScreen(m.screen)
}

// Presenter shows environment frames in the terminal through a Bubble Tea
// program running on its own goroutine.
type Presenter struct {
	program  *tea.Program
	interval time.Duration
	next     time.Time
	done     chan struct{}

	closeOnce sync.Once
	runErr    error
}

// NewPresenter starts the presenter program.
func NewPresenter(cfg PresenterConfig) (*Presenter, error) {
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("tui: presenter fps must be positive, got %d", cfg.FPS)
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	w, h := core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	opts := []tea.ProgramOption{
		tea.WithOutput(out),
		tea.WithInput(nil),
	}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := &Presenter{
		program:  tea.NewProgram(newFrameModel(cfg.Title, w, h), opts...),
		interval: time.Second / time.Duration(cfg.FPS),
		done:     make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		_, p.runErr = p.program.Run()
	}()
	return p, nil
}

// Factory adapts NewPresenter to render.PresenterFactory.
func Factory(cfg PresenterConfig) render.PresenterFactory {
	return func() (render.Presenter, error) {
		return NewPresenter(cfg)
	}
}

// Present waits for the next frame slot and hands the frame to the program.
func (p *Presenter) Present(f render.Frame) error {
	select {
	case <-p.done:
		if p.runErr != nil {
			return fmt.Errorf("%w: %w", ErrPresenterStopped, p.runErr)
		}
		return ErrPresenterStopped
	default:
	}

	if wait := time.Until(p.next); wait > 0 {
		time.Sleep(wait)
	}
	p.next = time.Now().Add(p.interval)

	p.program.Send(frameMsg(f))
	return nil
}

// Close stops the program and restores the terminal. Safe to call twice.
func (p *Presenter) Close() error {
	p.closeOnce.Do(func() {
		p.program.Quit()
		<-p.done
	})
	return p.runErr
}
