package env

import (
	"errors"
	"testing"

	"github.com/vovakirdan/snake-gym/internal/core"
)

func TestActionDisplacements(t *testing.T) {
	tests := []struct {
		action   Action
		expected core.Point
	}{
		{ActionRight, core.Point{X: 1, Y: 0}},
		{ActionUp, core.Point{X: 0, Y: 1}},
		{ActionLeft, core.Point{X: -1, Y: 0}},
		{ActionDown, core.Point{X: 0, Y: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			d, ok := tc.action.Displacement()
			if !ok {
				t.Fatalf("Displacement() reported %v as invalid", tc.action)
			}
			if d != tc.expected {
				t.Errorf("Displacement() = %v, expected %v", d, tc.expected)
			}
		})
	}

	if _, ok := Action(NumActions).Displacement(); ok {
		t.Error("Displacement() accepted an out-of-range action")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		wantErr  bool
	}{
		{"right", ActionRight, false},
		{"UP", ActionUp, false},
		{" left ", ActionLeft, false},
		{"3", ActionDown, false},
		{"0", ActionRight, false},
		{"4", 0, true},
		{"-1", 0, true},
		{"jump", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			a, err := ParseAction(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidAction) {
					t.Errorf("ParseAction(%q) error = %v, expected ErrInvalidAction", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) failed: %v", tc.in, err)
			}
			if a != tc.expected {
				t.Errorf("ParseAction(%q) = %v, expected %v", tc.in, a, tc.expected)
			}
		})
	}
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in       string
		expected RenderMode
		wantErr  bool
	}{
		{"", RenderNone, false},
		{"none", RenderNone, false},
		{"presentation", RenderPresentation, false},
		{"human", RenderPresentation, false},
		{"buffer", RenderBuffer, false},
		{"rgb_array", RenderBuffer, false},
		{"window", "", true},
	}

	for _, tc := range tests {
		mode, err := ParseRenderMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseRenderMode(%q) error = %v, expected ErrConfiguration", tc.in, err)
			}
			continue
		}
		if err != nil || mode != tc.expected {
			t.Errorf("ParseRenderMode(%q) = (%q, %v), expected %q", tc.in, mode, err, tc.expected)
		}
	}
}
