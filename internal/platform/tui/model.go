package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/env"
	"github.com/vovakirdan/snake-gym/internal/policy"
	"github.com/vovakirdan/snake-gym/internal/render"
)

const hudHeight = 2

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// PlayModel is the Bubble Tea model for playing an environment by hand.
// An optional autopilot policy can take over on a timer.
type PlayModel struct {
	env       *env.Env
	title     string
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	autopilot policy.Policy

	obs       env.Observation
	info      env.Info
	reward    float64
	done      bool
	episodes  int
	successes int
	autoOn    bool
	status    string
	quitting  bool
}

// NewPlayModel resets e and wraps it in a play model. e should use
// RenderNone; the model draws frames itself. autopilot may be nil.
func NewPlayModel(e *env.Env, title string, autopilot policy.Policy, cfg core.RuntimeConfig) (PlayModel, error) {
	m := PlayModel{
		env:       e,
		title:     title,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:    cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		autopilot: autopilot,
	}
	if err := m.reset(); err != nil {
		return PlayModel{}, err
	}
	return m, nil
}

// Init starts the tick loop when an autopilot is configured.
func (m PlayModel) Init() tea.Cmd {
	if m.autopilot == nil {
		return nil
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		if err := m.reset(); err != nil {
			m.status = errorStyle.Render(err.Error())
		}
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		if m.autopilot == nil {
			m.status = "No autopilot configured"
			return m, nil
		}
		m.autoOn = !m.autoOn
		m.status = ""
		return m, nil
	}

	if a, ok := m.keys.ActionFor(msg); ok {
		m.autoOn = false
		m.step(a)
	}
	return m, nil
}

func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.autoOn && m.autopilot != nil {
		if m.done {
			if err := m.reset(); err != nil {
				m.status = errorStyle.Render(err.Error())
				m.autoOn = false
			}
		} else {
			m.step(m.autopilot.Act(m.obs))
		}
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *PlayModel) reset() error {
	obs, info, err := m.env.Reset()
	if err != nil {
		return err
	}
	m.obs = obs
	m.info = info
	m.reward = 0
	m.done = false
	m.episodes++
	m.status = ""
	return nil
}

func (m *PlayModel) step(a env.Action) {
	res, err := m.env.Step(a)
	switch {
	case errors.Is(err, env.ErrEpisodeDone):
		m.status = "Episode over. Press r for a new one"
		return
	case err != nil:
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.obs = res.Observation
	m.info = res.Info
	m.reward = res.Reward
	if res.Done {
		m.done = true
		m.successes++
		m.status = successStyle.Render(fmt.Sprintf("Target reached in %d steps! Press r for a new episode", res.Info.Steps))
	}
}

// Observation returns the last observation shown.
func (m PlayModel) Observation() env.Observation {
	return m.obs
}

// Done reports whether the current episode has terminated.
func (m PlayModel) Done() bool {
	return m.done
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	hud := fmt.Sprintf(" %s  Episode %d  Steps %d  Reward %.0f  Distance %.2f  Reached %d/%d",
		m.title, m.episodes, m.info.Steps, m.reward, m.info.Distance, m.successes, m.episodes)
	if m.autoOn {
		hud += "  [autopilot: " + m.autopilot.Name() + "]"
	}
	m.screen.DrawText(0, 0, hud)
	for x := 0; x < m.screen.Width(); x++ {
		m.screen.SetColored(x, 1, '─', core.ColorGray)
	}

	frame := render.Frame{GridSize: m.env.GridSize(), Agent: m.obs.Agent, Target: m.obs.Target}
	if !render.DrawGrid(m.screen, frame, hudHeight) {
		render.DrawTooSmall(m.screen, frame.GridSize)
	}

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteRune('\n')
	if m.status != "" {
		sb.WriteString(" " + m.status)
	} else {
		sb.WriteString(m.help.View(m.keys))
	}
	return sb.String()
}

// RunPlay starts the Bubble Tea program for interactive play.
func RunPlay(m PlayModel) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
