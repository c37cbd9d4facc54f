package game

import "math/rand"

// World bundles every collaborator a tick phase needs: the grid, entity
// store, observation buffers, per-team state, the single deterministic
// RNG, and the running stat counters. Passing one *World around (rather
// than five separate arguments) keeps phase functions short while still
// making every dependency explicit at the call site, following the
// teacher's Engine-struct-holds-everything shape.
type World struct {
	Grid  *Grid
	Store *EntityStore
	Obs   *Observations
	Teams map[TeamID]*Team
	Stats *Stats
	RNG   *rand.Rand
	Tick  int
}

// Config is the subset of internal/config.Config the engine itself reads;
// kept local to avoid an import cycle between game and config.
type Config struct {
	Width, Height  int
	NumTeams       int
	AgentsPerTeam  int
	Seed           int64
	ObservationRadius int
}

// AgentResult is what Step reports back per agent per tick, mirroring the
// pull-model external interface in spec.md §4.10. Step fills in Reward and
// Terminated; ActionValid is not set by Step.
type AgentResult struct {
	Reward      float64
	Terminated  bool
	ActionValid bool
}

// Engine owns the World and drives the fixed per-tick phase order from
// spec.md §5: tint decay, cooldown decay, emergency deaths, per-agent
// actions in ascending agentId order, wildlife, spawner/tumor, deaths
// again, population/respawn, stats/step increment.
type Engine struct {
	world *World

	pendingActions [MaxAgents]EncodedAction
	hasAction      [MaxAgents]bool

	rewards    [MaxAgents]float64
	terminated [MaxAgents]bool

	cfg Config
}

// NewEngine constructs an Engine and performs an initial Reset.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.Reset()
	return e
}

// Reset rebuilds the world from scratch: a fresh grid, empty entity store,
// one Team per configured team, and one spawned Villager agent per team
// slot, and clears all bookkeeping (spec.md §4.10 "reset").
func (e *Engine) Reset() {
	grid := NewGrid(e.cfg.Width, e.cfg.Height)
	store := NewEntityStore()
	radius := e.cfg.ObservationRadius
	if radius == 0 {
		radius = ObservationRadius
	}
	obs := NewObservations(grid, radius)
	teams := make(map[TeamID]*Team, e.cfg.NumTeams)
	for i := 0; i < e.cfg.NumTeams; i++ {
		teams[TeamID(i)] = NewTeam(TeamID(i))
	}

	e.world = &World{
		Grid:  grid,
		Store: store,
		Obs:   obs,
		Teams: teams,
		Stats: &Stats{},
		RNG:   seedRNG(e.cfg.Seed),
	}

	for t := 0; t < e.cfg.NumTeams; t++ {
		for slot := 0; slot < e.cfg.AgentsPerTeam; slot++ {
			agentID := t*e.cfg.AgentsPerTeam + slot
			pos := e.spawnPositionFor(t, slot)
			e.world.spawnAgent(agentID, TeamID(t), UnitVillager, pos)
		}
	}

	for i := range e.hasAction {
		e.hasAction[i] = false
		e.rewards[i] = 0
		e.terminated[i] = false
	}
}

// spawnPositionFor deterministically places team t's slot-th starting
// agent, since terrain painting (and thus "valid open tile") is the
// external worldgen collaborator's job; the engine only needs any distinct
// in-bounds, passable starting tile per slot.
func (e *Engine) spawnPositionFor(team, slot int) Pos {
	cols := e.cfg.Width / (e.cfg.NumTeams + 1)
	x := cols * (team + 1)
	y := 2 + slot*2
	if y >= e.cfg.Height {
		y = y % e.cfg.Height
	}
	return Pos{X: x, Y: y}
}

// spawnAgent creates (or respawns) the agent entity at id with class at
// pos, resetting its HP/inventory and rebuilding its observation window.
func (w *World) spawnAgent(id int, team TeamID, class UnitClass, pos Pos) {
	agent := w.Store.Agent(id)
	if agent == nil {
		agent = &Thing{Kind: KindAgent, AgentID: id}
		w.Store.Add(agent)
	}
	agent.TeamID = team
	agent.UnitClass = class
	agent.MaxHP = agentMaxHP(class)
	agent.HP = agent.MaxHP
	agent.AttackDamage = agentBaseDamage(class)
	agent.Stance = StanceAggressive
	agent.Inventory = NewInventory(MaxInventory)
	agent.Cooldown = 0
	agent.Orientation = DirS

	if !w.Grid.CanEnter(pos) {
		pos = w.firstOpenNear(pos)
	}
	w.Grid.PlaceBlocking(agent, pos)
	w.Store.setTerminated(id, false)
	w.Obs.Rebuild(id, pos)
}

func (w *World) firstOpenNear(p Pos) Pos {
	for r := 1; r < 50; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				c := p.Add(Pos{X: dx, Y: dy})
				if w.Grid.CanEnter(c) {
					return c
				}
			}
		}
	}
	return p
}

func agentMaxHP(class UnitClass) int {
	switch class {
	case UnitKnight:
		return 160
	case UnitManAtArms:
		return 120
	case UnitCavalry:
		return 130
	case UnitSiege:
		return 90
	case UnitMonk:
		return 60
	default:
		return 80
	}
}

func agentBaseDamage(class UnitClass) int {
	switch class {
	case UnitInfantry:
		return 8
	case UnitManAtArms:
		return 10
	case UnitKnight:
		return 14
	case UnitArcher:
		return 6
	case UnitLongbowman:
		return 9
	case UnitScorpion:
		return 12
	case UnitCavalry:
		return 11
	case UnitSiege:
		return 20
	case UnitMonk:
		return 0
	default:
		return 2
	}
}

// SetActions queues one encoded action per agent for the next Step call.
// An out-of-range agent id is a boundary error (spec.md §7): the caller
// misused the interface, this is not an in-simulation agent action.
func (e *Engine) SetActions(actions map[int]EncodedAction) error {
	for id, a := range actions {
		if id < 0 || id >= MaxAgents {
			return &BoundaryError{Op: "SetActions", Msg: "agent id out of range"}
		}
		e.pendingActions[id] = a
		e.hasAction[id] = true
	}
	return nil
}

// Step advances the simulation by exactly one tick, in the fixed phase
// order from spec.md §5, and returns each agent's reward/termination
// result for this tick. Rewards and the hasAction queue reset afterward.
func (e *Engine) Step() map[int]AgentResult {
	w := e.world

	w.Grid.DecrementTints()
	e.decrementCooldowns()
	e.emergencyDeaths()

	for id := 0; id < e.cfg.NumTeams*e.cfg.AgentsPerTeam; id++ {
		agent := w.Store.Agent(id)
		if agent == nil || w.Store.Terminated(id) {
			continue
		}
		if !e.hasAction[id] {
			continue
		}
		e.terminated[id] = false
		before := agent.HP
		w.ApplyAction(agent, e.pendingActions[id])
		e.accumulateReward(id, agent, before)
	}

	w.AdvanceWildlife()
	w.AdvanceSpawners()
	w.AdvanceTumors()
	w.DecayCorpses()
	w.AdvanceProduction()

	e.emergencyDeaths()
	e.respawnTerminated()

	w.Stats.Tick++
	w.Tick = w.Stats.Tick

	results := make(map[int]AgentResult, e.cfg.NumTeams*e.cfg.AgentsPerTeam)
	for id := 0; id < e.cfg.NumTeams*e.cfg.AgentsPerTeam; id++ {
		results[id] = AgentResult{
			Reward:     e.rewards[id],
			Terminated: e.terminated[id] || w.Store.Terminated(id),
		}
		e.rewards[id] = 0
		e.hasAction[id] = false
	}
	return results
}

// accumulateReward is a minimal shaping signal: damage dealt/taken and
// resource delta are out of scope for the core engine per spec.md's
// Non-goals on reward design; this only tracks survival and HP delta as a
// placeholder the external trainer is expected to replace.
func (e *Engine) accumulateReward(id int, agent *Thing, hpBefore int) {
	if agent.HP < hpBefore {
		e.rewards[id] -= float64(hpBefore-agent.HP) * 0.01
	}
}

// decrementCooldowns advances every entity's action cooldown by one tick.
// Corpses (whose Cooldown is the decay countdown run by DecayCorpses) and
// dead agents (whose Cooldown is the respawn timer) are skipped.
func (e *Engine) decrementCooldowns() {
	for _, t := range e.world.Store.All() {
		if t.Kind == KindCorpse || (t.Kind == KindAgent && e.world.Store.Terminated(t.AgentID)) {
			continue
		}
		if t.Cooldown > 0 {
			t.Cooldown--
		}
	}
}

// emergencyDeaths sweeps for any entity whose HP reached zero outside the
// normal combat path (e.g. starvation, future hazard phases) and applies
// death handling, per spec.md §5's two death-sweep points in the tick order.
func (e *Engine) emergencyDeaths() {
	w := e.world
	for _, agent := range append([]*Thing(nil), w.Store.ByKind(KindAgent)...) {
		if agent.HP <= 0 && agent.IsValidPos() {
			w.killAgent(agent)
			e.terminated[agent.AgentID] = true
		}
	}
}

// respawnPeriod is how long a dead agent waits before returning to play.
const respawnPeriod = 20

// respawnTerminated advances a per-agent respawn timer (stored in
// Cooldown, unused while dead) and respawns agents once it elapses.
func (e *Engine) respawnTerminated() {
	w := e.world
	for id := 0; id < e.cfg.NumTeams*e.cfg.AgentsPerTeam; id++ {
		agent := w.Store.Agent(id)
		if agent == nil || !w.Store.Terminated(id) {
			continue
		}
		agent.Cooldown++
		if agent.Cooldown < respawnPeriod {
			continue
		}
		team := agent.TeamID
		class := agent.UnitClass
		pos := e.spawnPositionFor(int(team), id%e.cfg.AgentsPerTeam)
		w.spawnAgent(id, team, class, pos)
		w.Stats.AgentsRespawned++
	}
}

// Stats exposes the running counters for telemetry/debugging.
func (e *Engine) Stats() Stats { return *e.world.Stats }

// Observation returns the current observation tensor for an agent.
func (e *Engine) Observation(agentID int) *ObservationBuffer {
	return e.world.Obs.BufferFor(agentID)
}

// AgentSnapshot exposes the read-only state a scripted controller needs to
// decide its next action, without handing out the mutable *Thing itself.
type AgentSnapshot struct {
	Pos        Pos
	TeamID     TeamID
	HP, MaxHP  int
	UnitClass  UnitClass
	Alive      bool
	Inventory  map[ItemKey]int
}

// Agent returns a snapshot of agent id's current state.
func (e *Engine) Agent(id int) AgentSnapshot {
	a := e.world.Store.Agent(id)
	if a == nil {
		return AgentSnapshot{}
	}
	var inv map[ItemKey]int
	if a.Inventory != nil {
		inv = a.Inventory.Snapshot()
	}
	return AgentSnapshot{
		Pos: a.Pos, TeamID: a.TeamID, HP: a.HP, MaxHP: a.MaxHP,
		UnitClass: a.UnitClass, Alive: a.IsValidPos() && !e.world.Store.Terminated(id),
		Inventory: inv,
	}
}

// CanEnter reports whether a tile is currently enterable.
func (e *Engine) CanEnter(p Pos) bool { return e.world.Grid.CanEnter(p) }

// InBounds reports whether p is a valid grid coordinate.
func (e *Engine) InBounds(p Pos) bool { return e.world.Grid.InBounds(p) }

// TerrainAt returns the terrain type at p.
func (e *Engine) TerrainAt(p Pos) TerrainType { return e.world.Grid.Tile(p).Terrain }

// ThingAt returns the kind and team occupying p (blocking, then
// background), or (KindNone, NoTeam) if empty.
func (e *Engine) ThingAt(p Pos) (Kind, TeamID) {
	if t := e.world.Grid.Blocking(p); t != nil {
		return t.Kind, t.TeamID
	}
	if t := e.world.Grid.Background(p); t != nil {
		return t.Kind, t.TeamID
	}
	return KindNone, NoTeam
}

// NearestOfKind returns the closest tile within maxR (Chebyshev) holding
// any of the given kinds, scanning outward ring by ring.
func (e *Engine) NearestOfKind(from Pos, kinds []Kind, maxR int) (Pos, bool) {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	for r := 0; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if absInt(dx) != r && absInt(dy) != r {
					continue
				}
				p := from.Add(Pos{X: dx, Y: dy})
				if !e.InBounds(p) {
					continue
				}
				k, _ := e.ThingAt(p)
				if want[k] {
					return p, true
				}
			}
		}
	}
	return Pos{}, false
}

// Width/Height expose the grid dimensions.
func (e *Engine) Width() int  { return e.world.Grid.Width }
func (e *Engine) Height() int { return e.world.Grid.Height }

// StatsPathfindFailure lets a scripted controller report that its A*
// search exhausted its node budget and fell back to a cheaper strategy
// (spec.md §7: never fatal, just counted).
func (e *Engine) StatsPathfindFailure() { e.world.Stats.PathfindFailures++ }

// ApplyTerrain paints terrain/biome onto the grid from an external
// generator (internal/game/worldgen), keeping the noise/painting
// collaborator out of the core engine's own dependency graph per
// spec.md §1/§6's out-of-scope boundary. terrain/biome are row-major
// [Height][Width] grids matching the engine's configured dimensions.
func (e *Engine) ApplyTerrain(terrain [][]TerrainType, biome [][]BiomeType) {
	g := e.world.Grid
	for y := 0; y < g.Height && y < len(terrain); y++ {
		for x := 0; x < g.Width && x < len(terrain[y]); x++ {
			tile := g.Tile(Pos{X: x, Y: y})
			tile.Terrain = terrain[y][x]
			if biome != nil && y < len(biome) && x < len(biome[y]) {
				tile.Biome = biome[y][x]
			}
		}
	}
}
