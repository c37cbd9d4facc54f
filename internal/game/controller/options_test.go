package controller

import (
	"testing"

	"github.com/lucasdow/tribalvillage/internal/game"
)

func TestNewAgentMemory_SeedsSpiralAtOrigin(t *testing.T) {
	origin := game.Pos{X: 3, Y: 4}
	mem := NewAgentMemory(game.RoleFighter, origin)
	if mem.Spiral == nil {
		t.Fatal("expected a non-nil spiral search")
	}
	if mem.Spiral.Origin() != origin {
		t.Errorf("expected spiral to start at %v, got %v", origin, mem.Spiral.Origin())
	}
	if mem.HasTarget {
		t.Error("expected a fresh memory to have no target yet")
	}
}

func TestEscapeOption_OnlyStartsWhileGuardIsEscaping(t *testing.T) {
	e := testEngine(t)
	opt := escapeOption()
	mem := NewAgentMemory(game.RoleFighter, game.Pos{X: 2, Y: 2})
	view := AgentView{Engine: e, Snapshot: e.Agent(0), Mem: mem}

	if opt.CanStart(view) {
		t.Error("expected escape to not be eligible when the guard is not escaping")
	}

	for i := 0; i < 10; i++ {
		mem.Guard.Record(game.Pos{X: 0, Y: 0})
	}
	mem.Guard.CheckStuck(game.RoleFighter)

	if !opt.CanStart(view) {
		t.Error("expected escape to become eligible once the guard enters Escape mode")
	}
	if opt.ShouldTerminate(view) {
		t.Error("expected escape to keep running while still escaping")
	}
}

func TestStepSpiral_LazilyInitializesSpiralIfMissing(t *testing.T) {
	e := testEngine(t)
	snap := e.Agent(0)
	view := AgentView{Engine: e, Snapshot: snap, Mem: &AgentMemory{}}

	action := stepSpiral(view)
	verb, _ := action.Decode()
	if verb != game.VerbMove && verb != game.VerbNoop {
		t.Errorf("expected stepSpiral to move or noop, got verb %v", verb)
	}
	if view.Mem.Spiral == nil {
		t.Error("expected stepSpiral to lazily create a spiral search")
	}
}

func TestSpiralOption_NeverTerminates(t *testing.T) {
	opt := spiralOption()
	e := testEngine(t)
	view := AgentView{Engine: e, Snapshot: e.Agent(0), Mem: NewAgentMemory(game.RoleGatherer, game.Pos{})}
	if !opt.CanStart(view) {
		t.Error("expected spiral to always be able to start as the last-resort option")
	}
	if opt.ShouldTerminate(view) {
		t.Error("expected spiral to never request termination")
	}
}
