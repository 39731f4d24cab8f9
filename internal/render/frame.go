// Package render draws environment frames. It owns the two drawing surfaces
// the environment can ask for: an RGB pixel buffer and a terminal cell
// screen. Live presentation is delegated to a Presenter supplied by the
// platform layer.
package render

import "github.com/vovakirdan/snake-gym/internal/core"

// Frame is everything a renderer needs to draw one picture of the grid.
type Frame struct {
	GridSize int
	Agent    core.Point
	Target   core.Point
}

// Reached reports whether the agent sits on the target in this frame.
func (f Frame) Reached() bool {
	return f.Agent == f.Target
}

// Presenter shows frames on a live surface.
// Present must not retain the frame after returning.
type Presenter interface {
	Present(f Frame) error
	Close() error
}

// PresenterFactory builds a Presenter on first use.
type PresenterFactory func() (Presenter, error)
