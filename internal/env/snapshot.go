package env

import "github.com/vovakirdan/snake-gym/internal/core"

// State is the lifecycle state of an episode.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Observation is a value snapshot of the two positions.
type Observation struct {
	Agent  core.Point
	Target core.Point
}

// Delta returns Target - Agent.
func (o Observation) Delta() core.Point {
	return o.Target.Sub(o.Agent)
}

// Info carries diagnostics that are not part of the observation.
type Info struct {
	// Distance is the Euclidean distance from agent to target.
	Distance float64
	// Manhattan is the number of moves needed to reach the target.
	Manhattan int
	// Steps counts Step calls in the current episode.
	Steps int
}

// StepResult is returned by Step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        Info
}

// Observation returns the current positions.
func (e *Env) Observation() Observation {
	return Observation{Agent: e.agent, Target: e.target}
}

// Info returns diagnostics for the current positions.
func (e *Env) Info() Info {
	return Info{
		Distance:  e.target.Sub(e.agent).Norm(),
		Manhattan: e.agent.Manhattan(e.target),
		Steps:     e.steps,
	}
}
