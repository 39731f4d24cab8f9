// Package policy provides simple driver policies for rollouts and demos.
// They are baselines, not learners.
package policy

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/env"
)

// Policy picks the next action from an observation.
type Policy interface {
	Name() string
	Act(obs env.Observation) env.Action
}

// Random picks uniformly over the action space.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a uniform random policy.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) Name() string { return "random" }

func (p *Random) Act(env.Observation) env.Action {
	return env.Action(p.rng.Intn(env.NumActions))
}

// Greedy closes the larger axis gap first. With probability Epsilon it
// takes a random action instead.
type Greedy struct {
	Epsilon float64
	rng     *rand.Rand
}

// NewGreedy creates a greedy policy with the given exploration rate.
func NewGreedy(rng *rand.Rand, epsilon float64) *Greedy {
	return &Greedy{Epsilon: epsilon, rng: rng}
}

func (p *Greedy) Name() string { return "greedy" }

func (p *Greedy) Act(obs env.Observation) env.Action {
	if p.Epsilon > 0 && p.rng.Float64() < p.Epsilon {
		return env.Action(p.rng.Intn(env.NumActions))
	}
	return Toward(obs.Delta())
}

// Toward returns the action that shrinks the larger component of d.
// Ties go to the x axis. A zero delta yields ActionRight.
func Toward(d core.Point) env.Action {
	if core.Abs(d.X) >= core.Abs(d.Y) && d.X != 0 {
		if d.X > 0 {
			return env.ActionRight
		}
		return env.ActionLeft
	}
	if d.Y > 0 {
		return env.ActionUp
	}
	if d.Y < 0 {
		return env.ActionDown
	}
	return env.ActionRight
}

// Factory builds a policy from a seeded random source.
type Factory func(rng *rand.Rand) Policy

var factories = map[string]Factory{
	"random": func(rng *rand.Rand) Policy { return NewRandom(rng) },
	"greedy": func(rng *rand.Rand) Policy { return NewGreedy(rng, 0) },
	"epsilon-greedy": func(rng *rand.Rand) Policy {
		return NewGreedy(rng, 0.1)
	},
}

// New creates the named policy. Seed 0 seeds from the clock.
func New(name string, seed int64) (Policy, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("policy: unknown policy %q", name)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return f(rand.New(rand.NewSource(seed))), nil
}

// Exists reports whether a policy name is known.
func Exists(name string) bool {
	_, ok := factories[name]
	return ok
}

// Names returns the known policy names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
