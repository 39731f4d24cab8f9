package registry

import (
	"testing"

	"github.com/vovakirdan/snake-gym/internal/env"
)

func TestBuiltinPresets(t *testing.T) {
	list := List()
	if len(list) < 2 {
		t.Fatalf("expected at least 2 presets, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	p, err := Lookup("snake-v0")
	if err != nil {
		t.Fatalf("Lookup(snake-v0) failed: %v", err)
	}
	if p.Config.GridSize != 40 {
		t.Errorf("snake-v0 grid size = %d, expected 40", p.Config.GridSize)
	}
}

func TestMakeWithOverride(t *testing.T) {
	e, err := Make("snake-small-v0", func(cfg *env.Config) {
		cfg.Seed = 7
		cfg.RenderMode = env.RenderBuffer
	})
	if err != nil {
		t.Fatalf("Make() failed: %v", err)
	}
	if e.GridSize() != 10 {
		t.Errorf("GridSize() = %d, expected 10", e.GridSize())
	}
	if e.RenderMode() != env.RenderBuffer {
		t.Errorf("RenderMode() = %q, expected buffer", e.RenderMode())
	}

	// The override must not leak into the registered preset.
	p, _ := Lookup("snake-small-v0")
	if p.Config.RenderMode != env.RenderNone {
		t.Errorf("preset mutated by override: %q", p.Config.RenderMode)
	}
}

func TestMakeUnknown(t *testing.T) {
	if Exists("tetris-v0") {
		t.Fatal("Exists() reported an unregistered ID")
	}
	if _, err := Make("tetris-v0", nil); err == nil {
		t.Error("Make() accepted an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register(Preset{ID: "snake-v0", Config: env.DefaultConfig()})
}
