package env

import (
	"fmt"
	"strings"
)

// RenderMode selects which renderer call the environment makes.
// It never changes the simulation itself.
type RenderMode string

const (
	// RenderNone makes no renderer calls.
	RenderNone RenderMode = "none"
	// RenderPresentation draws to a live surface on Reset and Render.
	RenderPresentation RenderMode = "presentation"
	// RenderBuffer returns a pixel buffer from Render.
	RenderBuffer RenderMode = "buffer"
)

// ParseRenderMode accepts a mode name. "human" and "rgb_array" are accepted
// as aliases for presentation and buffer; empty means none.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RenderNone, nil
	case "presentation", "human":
		return RenderPresentation, nil
	case "buffer", "rgb_array":
		return RenderBuffer, nil
	default:
		return "", fmt.Errorf("%w: unknown render mode %q", ErrConfiguration, s)
	}
}
