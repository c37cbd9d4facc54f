package game

// spawnerCooldownTicks is how often a Spawner attempts to spawn a Tumor.
const spawnerCooldownTicks = 40

// maxTumorsPerSpawner caps how many live Tumors one Spawner will maintain.
const maxTumorsPerSpawner = 6

// tumorFreezeRadius is the Chebyshev radius a Tumor freezes around itself
// each tick (the clippy-purple tint, spec.md §4.9).
const tumorFreezeRadius = 1

// tumorFreezeTicks is the tint countdown a Tumor refreshes on its neighborhood.
const tumorFreezeTicks = 3

// AdvanceSpawners ticks every Spawner's cooldown and, once it elapses,
// attempts to place a new Tumor on an adjacent open tile (spec.md §4.9).
func (w *World) AdvanceSpawners() {
	w.recountSpawnerTumors()
	for _, sp := range w.Store.ByKind(KindSpawner) {
		sp.SpawnCooldown--
		if sp.SpawnCooldown > 0 {
			continue
		}
		sp.SpawnCooldown = spawnerCooldownTicks
		if sp.TumorCount >= maxTumorsPerSpawner {
			continue
		}
		if w.spawnTumorNear(sp) {
			sp.TumorCount++
			w.Stats.TumorsSpawned++
		}
	}
}

func (w *World) spawnTumorNear(spawner *Thing) bool {
	for _, n := range w.Grid.Neighbors8(spawner.Pos) {
		if !w.Grid.CanEnter(n) {
			continue
		}
		t := w.Store.Recycle(KindTumor)
		if t == nil {
			t = &Thing{Kind: KindTumor}
			w.Store.Add(t)
		}
		t.HP = 20
		t.MaxHP = 20
		t.TeamID = NoTeam
		w.Grid.PlaceBlocking(t, n)
		w.Obs.UpdateCell(n, w.Store)
		return true
	}
	return false
}

// AdvanceTumors refreshes the frozen tint on every live Tumor's
// neighborhood, the mechanism by which Tumors lock down territory
// (spec.md §4.9). A destroyed Tumor frees its spawner's slot through
// recountSpawnerTumors at the next spawner phase.
func (w *World) AdvanceTumors() {
	for _, t := range append([]*Thing(nil), w.Store.ByKind(KindTumor)...) {
		for dy := -tumorFreezeRadius; dy <= tumorFreezeRadius; dy++ {
			for dx := -tumorFreezeRadius; dx <= tumorFreezeRadius; dx++ {
				p := t.Pos.Add(Pos{X: dx, Y: dy})
				if w.Grid.InBounds(p) {
					w.Grid.Tile(p).ApplyTint(TintFrozen, tumorFreezeTicks)
				}
			}
		}
	}
}

// recountSpawnerTumors refreshes each Spawner's live TumorCount by
// scanning nearby Tumors. Tumors can be destroyed by combat outside the
// spawner's own code path (no back-reference from Tumor to Spawner), so
// the count is recomputed lazily each spawner phase rather than
// decremented eagerly on every kill.
func (w *World) recountSpawnerTumors() {
	for _, sp := range w.Store.ByKind(KindSpawner) {
		count := 0
		for _, t := range w.Store.ByKind(KindTumor) {
			if t.Pos.Chebyshev(sp.Pos) <= maxTumorSpawnerScanRadius {
				count++
			}
		}
		sp.TumorCount = count
	}
}

// maxTumorSpawnerScanRadius bounds the recount scan to tumors plausibly
// owned by a given spawner.
const maxTumorSpawnerScanRadius = 20
