package env

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// Action is one of the four moves available to the agent.
type Action int

const (
	ActionRight Action = iota
	ActionUp
	ActionLeft
	ActionDown
)

// NumActions is the size of the action space.
const NumActions = 4

// displacements is indexed by Action.
var displacements = [NumActions]core.Point{
	ActionRight: {X: 1, Y: 0},
	ActionUp:    {X: 0, Y: 1},
	ActionLeft:  {X: -1, Y: 0},
	ActionDown:  {X: 0, Y: -1},
}

// Valid reports whether a is inside the action space.
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// Displacement returns the unit move for a. ok is false for invalid actions.
func (a Action) Displacement() (d core.Point, ok bool) {
	if !a.Valid() {
		return core.Point{}, false
	}
	return displacements[a], true
}

func (a Action) String() string {
	switch a {
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionLeft:
		return "left"
	case ActionDown:
		return "down"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Actions returns the full action space in index order.
func Actions() []Action {
	return []Action{ActionRight, ActionUp, ActionLeft, ActionDown}
}

// ParseAction accepts an action name ("right", "up", "left", "down") or
// its index.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions() {
		if s == a.String() {
			return a, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Action(n).Valid() {
		return Action(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}
