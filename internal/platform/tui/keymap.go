package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-gym/internal/env"
)

// KeyMap defines the key bindings for interactive play.
type KeyMap struct {
	Right     key.Binding
	Up        key.Binding
	Left      key.Binding
	Down      key.Binding
	Reset     key.Binding
	Autopilot key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reset, k.Autopilot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns arrow, WASD and vim bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new episode"),
		),
		Autopilot: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "autopilot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ActionFor translates a key to an environment action.
func (k KeyMap) ActionFor(msg tea.KeyMsg) (env.Action, bool) {
	switch {
	case key.Matches(msg, k.Right):
		return env.ActionRight, true
	case key.Matches(msg, k.Up):
		return env.ActionUp, true
	case key.Matches(msg, k.Left):
		return env.ActionLeft, true
	case key.Matches(msg, k.Down):
		return env.ActionDown, true
	}
	return 0, false
}
