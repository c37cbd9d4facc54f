package game

import "testing"

func TestAdvanceSpawners_SpawnsTumorAfterCooldown(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	spawner := &Thing{Kind: KindSpawner, HP: 100, MaxHP: 100, SpawnCooldown: 0}
	w.Store.Add(spawner)
	w.Grid.PlaceBlocking(spawner, Pos{X: 4, Y: 4})

	w.AdvanceSpawners()

	if len(w.Store.ByKind(KindTumor)) != 1 {
		t.Fatalf("expected one Tumor spawned, got %d", len(w.Store.ByKind(KindTumor)))
	}
	if spawner.SpawnCooldown != spawnerCooldownTicks {
		t.Errorf("expected cooldown reset to %d, got %d", spawnerCooldownTicks, spawner.SpawnCooldown)
	}
}

func TestAdvanceSpawners_CapsLiveTumors(t *testing.T) {
	w := newTestWorld(t, 12, 12)
	spawner := &Thing{Kind: KindSpawner, HP: 100, MaxHP: 100, SpawnCooldown: 0}
	w.Store.Add(spawner)
	w.Grid.PlaceBlocking(spawner, Pos{X: 6, Y: 6})

	for i := 0; i < maxTumorsPerSpawner+3; i++ {
		spawner.SpawnCooldown = 0
		w.AdvanceSpawners()
	}

	if len(w.Store.ByKind(KindTumor)) > maxTumorsPerSpawner {
		t.Errorf("expected no more than %d live tumors, got %d", maxTumorsPerSpawner, len(w.Store.ByKind(KindTumor)))
	}
}

func TestRecountSpawnerTumors_ReflectsCombatDeaths(t *testing.T) {
	w := newTestWorld(t, 12, 12)
	spawner := &Thing{Kind: KindSpawner, HP: 100, MaxHP: 100, SpawnCooldown: 0}
	w.Store.Add(spawner)
	w.Grid.PlaceBlocking(spawner, Pos{X: 6, Y: 6})
	w.AdvanceSpawners()

	if spawner.TumorCount != 1 {
		t.Fatalf("expected TumorCount 1 after first spawn, got %d", spawner.TumorCount)
	}

	tumor := w.Store.ByKind(KindTumor)[0]
	w.destroyThing(tumor)

	w.recountSpawnerTumors()
	if spawner.TumorCount != 0 {
		t.Errorf("expected TumorCount to drop to 0 after the tumor died outside the spawn path, got %d", spawner.TumorCount)
	}
}

func TestAdvanceTumors_RefreshesFrozenTintAround(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	tumor := &Thing{Kind: KindTumor, HP: 20, MaxHP: 20}
	w.Store.Add(tumor)
	w.Grid.PlaceBlocking(tumor, Pos{X: 4, Y: 4})

	w.AdvanceTumors()

	if !w.Grid.Tile(Pos{X: 4, Y: 4}).Tint.Frozen() {
		t.Error("expected the tumor's own tile to be frozen")
	}
	if !w.Grid.Tile(Pos{X: 5, Y: 4}).Tint.Frozen() {
		t.Error("expected an adjacent tile within freeze radius to be frozen")
	}
	if w.Grid.Tile(Pos{X: 4, Y: 6}).Tint.Frozen() {
		t.Error("expected a tile outside the freeze radius to stay unfrozen")
	}
}
