package game

import "testing"

// newTestWorld builds a minimal World for unit tests, with two teams and no
// terrain features beyond the default all-grass grid.
func newTestWorld(t *testing.T, width, height int) *World {
	t.Helper()
	grid := NewGrid(width, height)
	store := NewEntityStore()
	obs := NewObservations(grid, ObservationRadius)
	teams := map[TeamID]*Team{
		0: NewTeam(0),
		1: NewTeam(1),
	}
	return &World{
		Grid:  grid,
		Store: store,
		Obs:   obs,
		Teams: teams,
		Stats: &Stats{},
		RNG:   seedRNG(1),
	}
}

// spawnTestAgent creates a live Villager agent at pos with a fresh inventory.
func spawnTestAgent(w *World, id int, team TeamID, pos Pos) *Thing {
	agent := &Thing{
		Kind: KindAgent, AgentID: id, TeamID: team,
		UnitClass: UnitVillager, HP: 80, MaxHP: 80,
		Inventory: NewInventory(MaxInventory),
		Stance:    StanceAggressive,
	}
	w.Store.Add(agent)
	w.Grid.PlaceBlocking(agent, pos)
	w.Obs.Rebuild(id, pos)
	return agent
}
