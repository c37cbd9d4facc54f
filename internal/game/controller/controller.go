package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// Controller drives the scripted baseline policy for every agent: one
// AgentMemory (role, spiral cursor, oscillation guard) per agent id,
// refreshed across Reset/respawn.
type Controller struct {
	memory       map[int]*AgentMemory
	agentsPerTeam int
}

// NewController creates an empty controller; call Reset once the engine
// has spawned its initial agents.
func NewController(agentsPerTeam int) *Controller {
	return &Controller{memory: make(map[int]*AgentMemory), agentsPerTeam: agentsPerTeam}
}

// Reset (re)assigns roles and fresh memory for every agent id up to count.
func (c *Controller) Reset(count int, e *game.Engine) {
	c.memory = make(map[int]*AgentMemory, count)
	for id := 0; id < count; id++ {
		team := id / c.agentsPerTeam
		slot := id % c.agentsPerTeam
		role := RoleFor(team, slot)
		c.memory[id] = NewAgentMemory(role, e.Agent(id).Pos)
	}
}

// Decide evaluates agent id's option list for its role and returns the
// action to submit this tick. It also feeds the oscillation guard and
// handles Escape mode, re-running the option selection after a record so
// Escape can preempt whatever was running.
func (c *Controller) Decide(e *game.Engine, id int) game.EncodedAction {
	mem, ok := c.memory[id]
	if !ok {
		team := id / c.agentsPerTeam
		slot := id % c.agentsPerTeam
		mem = NewAgentMemory(RoleFor(team, slot), e.Agent(id).Pos)
		c.memory[id] = mem
	}

	snap := e.Agent(id)
	if !snap.Alive {
		return game.Encode(game.VerbNoop, 0)
	}
	mem.Guard.Record(snap.Pos)
	mem.Guard.CheckStuck(mem.Role)

	view := AgentView{ID: id, Team: id / c.agentsPerTeam, Snapshot: snap, Engine: e, Mem: mem}
	opts := optionsForRole(mem.Role)

	for _, opt := range opts {
		if opt.Name == mem.CurrentOption && opt.ShouldTerminate(view) {
			continue
		}
		if opt.CanStart(view) {
			mem.CurrentOption = opt.Name
			return opt.Act(view)
		}
	}
	return game.Encode(game.VerbNoop, 0)
}

func optionsForRole(role game.Role) []Option {
	switch role {
	case game.RoleBuilder:
		return BuilderOptions()
	case game.RoleFighter:
		return FighterOptions()
	default:
		return GathererOptions()
	}
}
