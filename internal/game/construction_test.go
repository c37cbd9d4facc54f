package game

import "testing"

func TestPlaceBuilding_WithdrawsStockpileAndCreatesZeroHP(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	w.Teams[0].Stockpile.Deposit(ResourceWood, 100)

	ok, _ := w.PlaceBuilding(agent, KindHouse, Pos{X: 3, Y: 2})
	if !ok {
		t.Fatal("expected building placement to succeed with enough stockpile")
	}
	if w.Teams[0].Stockpile.Get(ResourceWood) != 70 {
		t.Errorf("expected 30 wood withdrawn, got balance %d", w.Teams[0].Stockpile.Get(ResourceWood))
	}
	b := w.Grid.Blocking(Pos{X: 3, Y: 2})
	if b == nil || b.Kind != KindHouse || b.HP != 0 {
		t.Fatalf("expected a zero-HP House at the target tile, got %+v", b)
	}
}

func TestPlaceBuilding_FailsWithoutFunds(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})

	ok, reason := w.PlaceBuilding(agent, KindHouse, Pos{X: 3, Y: 2})
	if ok {
		t.Fatal("expected placement to fail with an empty stockpile")
	}
	if reason != NoopInfeasible {
		t.Errorf("expected NoopInfeasible, got %v", reason)
	}
	if w.Grid.Blocking(Pos{X: 3, Y: 2}) != nil {
		t.Error("expected no building to be placed on a failed withdraw")
	}
}

func TestPlaceBuilding_RejectsWater(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	w.Teams[0].Stockpile.Deposit(ResourceWood, 1000)
	w.Grid.Tile(Pos{X: 3, Y: 2}).Terrain = TerrainWater

	ok, reason := w.PlaceBuilding(agent, KindHouse, Pos{X: 3, Y: 2})
	if ok || reason != NoopInfeasible {
		t.Fatal("expected placement on water to fail as infeasible")
	}
}

func TestBuild_AccumulatesAndCompletes(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	b := &Thing{Kind: KindHouse, TeamID: 0, MaxHP: buildingMaxHP}
	w.Store.Add(b)
	w.Grid.PlaceBlocking(b, Pos{X: 3, Y: 2})

	for i := 0; i < 9; i++ {
		ok, _ := w.Build(agent, DirE)
		if !ok {
			t.Fatalf("expected Build to succeed on iteration %d", i)
		}
	}
	if b.HP != 90 {
		t.Fatalf("expected HP 90 after 9 contributions of 10, got %d", b.HP)
	}
	if w.Stats.BuildingsBuilt != 0 {
		t.Fatal("expected BuildingsBuilt to stay 0 before completion")
	}

	ok, _ := w.Build(agent, DirE)
	if !ok || b.HP != buildingMaxHP {
		t.Fatalf("expected final contribution to complete the building, got HP=%d", b.HP)
	}
	if w.Stats.BuildingsBuilt != 1 {
		t.Errorf("expected BuildingsBuilt to increment once on completion, got %d", w.Stats.BuildingsBuilt)
	}

	// Building on a completed structure is a no-op.
	ok, reason := w.Build(agent, DirE)
	if ok || reason != NoopInfeasible {
		t.Error("expected Build against a finished structure to be an infeasible no-op")
	}
}

func TestUse_TrainEnqueuesAndProducesUnit(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	w.Teams[0].Stockpile.Deposit(ResourceFood, 1000)

	barracks := &Thing{Kind: KindBarracks, TeamID: 0, HP: buildingMaxHP, MaxHP: buildingMaxHP}
	w.Store.Add(barracks)
	w.Grid.PlaceBlocking(barracks, Pos{X: 3, Y: 2})

	ok, _ := w.Use(agent, DirE, UnitInfantry)
	if !ok {
		t.Fatal("expected Use(Train) to enqueue a unit with enough food")
	}
	if len(barracks.ProductionQueue) != 1 {
		t.Fatalf("expected one queued slot, got %d", len(barracks.ProductionQueue))
	}

	for i := 0; i < trainTicks; i++ {
		w.AdvanceProduction()
	}
	if len(barracks.ProductionQueue) != 0 {
		t.Error("expected production queue to drain once training finishes")
	}

	found := false
	for id := 0; id < MaxAgents; id++ {
		a := w.Store.Agent(id)
		if a != nil && id != 0 && a.UnitClass == UnitInfantry {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected a new Infantry agent to be spawned after training completed")
	}
}

func TestUse_DropoffMovesInventoryToStockpile(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	agent.Inventory.Add(Key(ItemWood), 3)

	granary := &Thing{Kind: KindGranary, TeamID: 0, HP: buildingMaxHP, MaxHP: buildingMaxHP}
	w.Store.Add(granary)
	w.Grid.PlaceBlocking(granary, Pos{X: 3, Y: 2})

	ok, _ := w.Use(agent, DirE, UnitVillager)
	if !ok {
		t.Fatal("expected dropoff to succeed with carried resources")
	}
	if agent.Inventory.Count(Key(ItemWood)) != 0 {
		t.Error("expected inventory to be emptied by dropoff")
	}
	if w.Teams[0].Stockpile.Get(ResourceWood) != 3 {
		t.Errorf("expected stockpile to gain 3 wood, got %d", w.Teams[0].Stockpile.Get(ResourceWood))
	}
}

func TestUse_RejectsUnfinishedBuilding(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	agent := spawnTestAgent(w, 0, TeamID(0), Pos{X: 2, Y: 2})
	granary := &Thing{Kind: KindGranary, TeamID: 0, HP: 10, MaxHP: buildingMaxHP}
	w.Store.Add(granary)
	w.Grid.PlaceBlocking(granary, Pos{X: 3, Y: 2})

	ok, reason := w.Use(agent, DirE, UnitVillager)
	if ok || reason != NoopInfeasible {
		t.Error("expected Use against an unfinished building to be infeasible")
	}
}
