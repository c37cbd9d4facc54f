package game

// buildingMaxHP is the HP (and construction target) for every building kind.
// A real catalog would vary this per kind; spec.md treats construction
// progress uniformly as "HP accumulated toward MaxHP".
const buildingMaxHP = 100

// buildContribution is how much Constructed advances per Build action tick.
const buildContribution = 10

// PlaceBuilding starts construction of kind at pos for agent's team: the
// team's stockpile pays cost atomically, a zero-HP building entity is
// created, and it begins accumulating HP toward completion via Build
// actions (spec.md §4.7).
func (w *World) PlaceBuilding(agent *Thing, kind Kind, pos Pos) (bool, NoopReason) {
	if !BuildingKinds[kind] {
		return false, NoopInvalid
	}
	if !w.Grid.InBounds(pos) || !BuildableTerrain(w.Grid.Tile(pos).Terrain) || w.Grid.Blocking(pos) != nil {
		return false, NoopInfeasible
	}
	team, ok := w.Teams[agent.TeamID]
	if !ok {
		return false, NoopInfeasible
	}
	cost := buildingCost(kind)
	if !team.Stockpile.Withdraw(cost) {
		return false, NoopInfeasible
	}

	b := &Thing{
		Kind:    kind,
		TeamID:  agent.TeamID,
		MaxHP:   buildingMaxHP,
		HP:      0,
		Hearts:  buildingHearts(kind),
	}
	w.Store.Add(b)
	w.Grid.PlaceBlocking(b, pos)
	w.Obs.UpdateCell(pos, w.Store)
	w.Stats.ActionBuild++
	return true, NoopNone
}

// buildingCost is the stockpile price of placing a building. Simplified to
// a few price tiers: wood only for houses and most buildings, wood plus
// stone for the Castle and the military/blacksmith buildings; a full
// catalog is out of scope per spec.md's representative-subset compression.
func buildingCost(kind Kind) map[Resource]int {
	switch kind {
	case KindHouse:
		return map[Resource]int{ResourceWood: 30}
	case KindCastle:
		return map[Resource]int{ResourceStone: 200, ResourceWood: 100}
	case KindBlacksmith, KindBarracks, KindArcheryRange, KindStable, KindSiegeWorkshop:
		return map[Resource]int{ResourceWood: 100, ResourceStone: 20}
	default:
		return map[Resource]int{ResourceWood: 60}
	}
}

// buildingHearts is the lives a door/altar carries on top of HP; zero for
// every other building kind (spec.md §4.6 door/altar damage rule).
func buildingHearts(kind Kind) int {
	switch kind {
	case KindDoor:
		return 3
	case KindAltar:
		return 5
	default:
		return 0
	}
}

// Build advances construction of the building in dir by one contribution.
// Completed buildings (Constructed == HP == MaxHP) are a no-op target.
func (w *World) Build(agent *Thing, dir Direction) (bool, NoopReason) {
	target := w.Grid.Blocking(agent.Pos.Add(dir.Delta()))
	if target == nil || !BuildingKinds[target.Kind] || target.TeamID != agent.TeamID {
		return false, NoopInfeasible
	}
	if target.HP >= target.MaxHP {
		return false, NoopInfeasible
	}
	target.Constructed += buildContribution
	if target.Constructed > target.MaxHP {
		target.Constructed = target.MaxHP
	}
	target.HP = target.Constructed
	w.Stats.ActionBuild++
	if target.HP >= target.MaxHP {
		w.Stats.BuildingsBuilt++
	}
	w.Obs.UpdateCell(target.Pos, w.Store)
	return true, NoopNone
}

// trainCost is the per-unit-class resource price at a training building.
func trainCost(class UnitClass) map[Resource]int {
	switch class {
	case UnitArcher, UnitLongbowman, UnitScorpion:
		return map[Resource]int{ResourceWood: 25, ResourceGold: 10}
	case UnitCavalry:
		return map[Resource]int{ResourceFood: 60, ResourceGold: 20}
	case UnitSiege:
		return map[Resource]int{ResourceWood: 150, ResourceGold: 50}
	default:
		return map[Resource]int{ResourceFood: 50}
	}
}

// trainTicks is how long a unit takes to finish in a production queue.
const trainTicks = 30

// Use dispatches a Use(dir) action against the building in dir per its
// BuildingUseKind (spec.md §4.7): Train enqueues a unit, Dropoff moves the
// agent's stockpile-resource items into the team stockpile (other carried
// items stay in the inventory), Storage/Craft/Blacksmith/
// Loom/Oven/Market/Altar apply their building-specific effect.
func (w *World) Use(agent *Thing, dir Direction, trainClass UnitClass) (bool, NoopReason) {
	target := w.Grid.Blocking(agent.Pos.Add(dir.Delta()))
	if target == nil || target.HP < target.MaxHP || target.TeamID != agent.TeamID {
		return false, NoopInfeasible
	}
	use, ok := BuildingUseKind[target.Kind]
	if !ok || use == UseNone {
		return false, NoopInfeasible
	}
	w.Stats.ActionUse++

	switch use {
	case UseTrain:
		return w.useTrain(agent, target, trainClass)
	case UseDropoff:
		return w.useDropoff(agent, target)
	case UseStorage:
		return w.useStorage(agent, target)
	case UseBlacksmith:
		return w.useBlacksmith(agent, target)
	case UseLoom, UseOven, UseCraft:
		return w.useCraft(agent, target, use)
	case UseMarket:
		return w.useMarket(agent, target)
	case UseAltar:
		return w.useAltar(agent, target)
	default:
		return false, NoopInfeasible
	}
}

func (w *World) useTrain(agent, building *Thing, class UnitClass) (bool, NoopReason) {
	if len(building.ProductionQueue) >= 5 {
		return false, NoopInfeasible
	}
	team, ok := w.Teams[agent.TeamID]
	if !ok || !team.Stockpile.Withdraw(trainCost(class)) {
		return false, NoopInfeasible
	}
	building.ProductionQueue = append(building.ProductionQueue, ProductionSlot{
		Kind: KindAgent, UnitClass: class, TicksRemaining: trainTicks,
	})
	return true, NoopNone
}

func (w *World) useDropoff(agent, building *Thing) (bool, NoopReason) {
	team, ok := w.Teams[agent.TeamID]
	if !ok || agent.Inventory == nil || agent.Inventory.IsEmpty() {
		return false, NoopInfeasible
	}
	deposited := false
	for key, n := range agent.Inventory.Snapshot() {
		if key.ThingKind != KindNone {
			continue
		}
		if res, ok := resourceForItem(key.Item); ok {
			team.Stockpile.Deposit(res, n)
			agent.Inventory.Remove(key, n)
			deposited = true
		}
	}
	if !deposited {
		return false, NoopInfeasible
	}
	return true, NoopNone
}

func (w *World) useStorage(agent, building *Thing) (bool, NoopReason) {
	if building.Barrel == nil {
		building.Barrel = NewInventory(building.BarrelCapacity)
	}
	if agent.Inventory == nil || agent.Inventory.IsEmpty() {
		return false, NoopInfeasible
	}
	moved := false
	for key, n := range agent.Inventory.Snapshot() {
		added := building.Barrel.Add(key, n)
		if added > 0 {
			agent.Inventory.Remove(key, added)
			moved = true
		}
	}
	if !moved {
		return false, NoopInfeasible
	}
	return true, NoopNone
}

// useBlacksmith spends stockpile resources to raise the team's blacksmith
// tier by one, capped at tier 3. The armor tier is not changed here.
func (w *World) useBlacksmith(agent, building *Thing) (bool, NoopReason) {
	team, ok := w.Teams[agent.TeamID]
	if !ok || team.BlacksmithTier >= 3 {
		return false, NoopInfeasible
	}
	cost := map[Resource]int{ResourceGold: 50 * (team.BlacksmithTier + 1), ResourceStone: 30}
	if !team.Stockpile.Withdraw(cost) {
		return false, NoopInfeasible
	}
	team.BlacksmithTier++
	return true, NoopNone
}

// useCraft converts raw resources carried by the agent into a finished
// item at a Loom/Oven/generic craft building.
func (w *World) useCraft(agent, building *Thing, use UseKind) (bool, NoopReason) {
	if agent.Inventory == nil {
		return false, NoopInfeasible
	}
	var in ItemKey
	var out ItemKey
	switch use {
	case UseLoom:
		in, out = Key(ItemWheat), Key(ItemBread)
	case UseOven:
		in, out = Key(ItemFish), Key(ItemBread)
	default:
		in, out = Key(ItemStone), Key(ItemBar)
	}
	if agent.Inventory.Count(in) == 0 {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(in, 1)
	if agent.Inventory.Add(out, 1) == 0 {
		agent.Inventory.Add(in, 1) // refund: no room to carry the crafted item
		return false, NoopInfeasible
	}
	return true, NoopNone
}

// useMarket exchanges one team stockpile resource for gold at a fixed rate.
func (w *World) useMarket(agent, building *Thing) (bool, NoopReason) {
	team, ok := w.Teams[agent.TeamID]
	if !ok {
		return false, NoopInfeasible
	}
	const rate = 3
	if team.Stockpile.Get(ResourceWood) < rate {
		return false, NoopInfeasible
	}
	team.Stockpile.Withdraw(map[Resource]int{ResourceWood: rate})
	team.Stockpile.Deposit(ResourceGold, 1)
	return true, NoopNone
}

// useAltar donates a carried relic to restore one heart to the team altar.
func (w *World) useAltar(agent, altar *Thing) (bool, NoopReason) {
	if agent.Inventory == nil || agent.Inventory.Count(ThingKey(KindRelic)) == 0 {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(ThingKey(KindRelic), 1)
	altar.Hearts++
	return true, NoopNone
}

// AdvanceProduction ticks every building's production queue by one step,
// spawning a finished unit adjacent to the building when a slot completes
// (spec.md §4.7).
func (w *World) AdvanceProduction() {
	for _, b := range w.Store.ByKind(KindAltar) {
		w.tickQueue(b)
	}
	for _, kind := range []Kind{KindBarracks, KindArcheryRange, KindStable, KindSiegeWorkshop} {
		for _, b := range w.Store.ByKind(kind) {
			w.tickQueue(b)
		}
	}
}

func (w *World) tickQueue(b *Thing) {
	if len(b.ProductionQueue) == 0 {
		return
	}
	slot := &b.ProductionQueue[0]
	slot.TicksRemaining--
	if slot.TicksRemaining > 0 {
		return
	}
	w.spawnTrainedUnit(b, slot.UnitClass)
	b.ProductionQueue = b.ProductionQueue[1:]
}

func (w *World) spawnTrainedUnit(building *Thing, class UnitClass) {
	for _, n := range w.Grid.Neighbors8(building.Pos) {
		if w.Grid.CanEnter(n) {
			for id := 0; id < MaxAgents; id++ {
				if w.Store.Agent(id) == nil {
					w.spawnAgent(id, building.TeamID, class, n)
					return
				}
			}
			return
		}
	}
}
