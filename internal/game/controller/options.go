package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// AgentView is the read-only slice of engine state an Option needs to
// decide whether it applies and what to do, decoupled from *game.Engine so
// Options can be unit tested against fakes.
type AgentView struct {
	ID       int
	Team     int
	Snapshot game.AgentSnapshot
	Engine   *game.Engine
	Mem      *AgentMemory
}

// Option is one scripted behavior: CanStart gates whether it is eligible
// this tick, ShouldTerminate lets a running option hand control back, and
// Act produces the action. This mirrors the options/skills pattern used by
// hierarchical scripted agents: a small ranked list evaluated top to
// bottom, first eligible wins (spec.md §4.8).
type Option struct {
	Name            string
	CanStart        func(AgentView) bool
	ShouldTerminate func(AgentView) bool
	Act             func(AgentView) game.EncodedAction
}

// AgentMemory is the scripted controller's per-agent persistent state: its
// role, spiral search cursor, A*-derived current target, oscillation
// guard, and the option currently running.
type AgentMemory struct {
	Role          game.Role
	Spiral        *SpiralSearch
	Guard         OscillationGuard
	Target        game.Pos
	HasTarget     bool
	CurrentOption string
}

// NewAgentMemory seeds a fresh memory block for a newly spawned agent.
func NewAgentMemory(role game.Role, origin game.Pos) *AgentMemory {
	return &AgentMemory{Role: role, Spiral: NewSpiralSearch(origin)}
}
