// Package registry maps environment IDs to preset configurations.
// Presets register themselves in init() functions so frontends can list and
// build environments by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-gym/internal/env"
)

// Preset is a named environment configuration.
type Preset struct {
	ID    string
	Title string
	// Config is the base configuration. Make copies it before applying
	// overrides.
	Config env.Config
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same ID is already registered.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: environment %q already registered", p.ID))
	}
	presets[p.ID] = p
}

// List returns all registered presets, sorted by ID.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the preset registered under id.
func Lookup(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("registry: unknown environment %q", id)
	}
	return p, nil
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}

// Make builds an environment from a preset. override, if non-nil, may
// adjust the copied configuration first.
func Make(id string, override func(*env.Config)) (*env.Env, error) {
	p, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	cfg := p.Config
	if override != nil {
		override(&cfg)
	}
	return env.New(cfg)
}
