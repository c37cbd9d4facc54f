package controller

import (
	"testing"

	"github.com/lucasdow/tribalvillage/internal/game"
)

func TestBuilderOptions_ConstructIsAlwaysEligible(t *testing.T) {
	opts := BuilderOptions()
	var construct *Option
	for i := range opts {
		if opts[i].Name == "construct" {
			construct = &opts[i]
		}
	}
	if construct == nil {
		t.Fatal("expected a construct option")
	}
	e := testEngine(t)
	view := AgentView{Engine: e, Snapshot: e.Agent(0), Mem: NewAgentMemory(game.RoleBuilder, game.Pos{X: 1, Y: 1})}
	if !construct.CanStart(view) {
		t.Error("expected construct to always be eligible to start")
	}
	if construct.ShouldTerminate(view) {
		t.Error("expected construct to never request termination on its own")
	}
}

func TestBuildAct_FallsBackToOpenTileWhenNothingUnderConstruction(t *testing.T) {
	e := testEngine(t)
	snap := e.Agent(0)
	view := AgentView{Engine: e, Team: 0, Snapshot: snap, Mem: NewAgentMemory(game.RoleBuilder, snap.Pos)}

	action := buildAct(view)
	verb, arg := action.Decode()
	if verb != game.VerbBuild {
		t.Fatalf("expected buildAct to fall back to a Build action, got verb %v", verb)
	}
	dir, ok := game.DirectionFromArg(arg & 0x7)
	if !ok || !e.CanEnter(snap.Pos.Add(dir.Delta())) {
		t.Errorf("expected the Build action to target an open tile, got arg %d", arg)
	}
}
