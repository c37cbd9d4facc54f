package game

// Verb is the high-level action an agent can submit each tick.
type Verb uint8

const (
	VerbNoop Verb = iota
	VerbMove
	VerbAttack
	VerbUse
	VerbBuild
	VerbGive
	VerbPickup
	VerbDrop
	VerbPlace
	VerbPlant
	numVerbs
)

// ArgBits is how many low bits of an encoded action carry the argument,
// per spec.md §4.3's `(verb<<ArgBits)|arg` wire format.
const ArgBits = 5

// ArgMask isolates the argument bits of an encoded action.
const ArgMask = (1 << ArgBits) - 1

// EncodedAction is the 16-bit packed action submitted per agent per tick.
type EncodedAction uint16

// Encode packs a verb and argument byte into the wire format.
func Encode(verb Verb, arg uint8) EncodedAction {
	return EncodedAction(uint16(verb)<<ArgBits | uint16(arg&ArgMask))
}

// Decode splits an encoded action back into verb and argument.
func (a EncodedAction) Decode() (Verb, uint8) {
	return Verb(a >> ArgBits), uint8(a) & ArgMask
}

// buildableByArg maps the Build verb's argument byte to a building kind.
var buildableByArg = []Kind{
	KindHouse, KindGranary, KindLumberYard, KindQuarry, KindWeavingLoom,
	KindClayOven, KindBlacksmith, KindBarracks, KindArcheryRange, KindStable,
	KindSiegeWorkshop, KindOutpost, KindCastle, KindMarket, KindDropoffFood,
	KindStorage, KindDoor, KindWall,
}

// trainableByArg maps the Use verb's argument byte (when targeting a Train
// building) to the unit class to enqueue.
var trainableByArg = []UnitClass{
	UnitVillager, UnitMonk, UnitInfantry, UnitManAtArms, UnitKnight,
	UnitArcher, UnitLongbowman, UnitScorpion, UnitCavalry, UnitSiege,
}

// placeableByArg maps the Place verb's argument byte to a carried
// thing-kind item that can be dropped as a standing entity (e.g. Lantern).
var placeableByArg = []Kind{KindLantern, KindBarrel}

// giveItemByArg maps the Give verb's argument byte to the item handed to
// an adjacent ally.
var giveItemByArg = []Item{
	ItemGold, ItemStone, ItemBar, ItemWater, ItemWheat, ItemWood, ItemSpear,
	ItemArmor, ItemBread, ItemFish, ItemPlant, ItemMeat,
}

// ApplyAction decodes and executes one agent's submitted action for the
// tick, per spec.md §4.3/§4.5: invalid verbs/args or infeasible targets
// never panic, they resolve to a counted no-op.
func (w *World) ApplyAction(agent *Thing, encoded EncodedAction) {
	verb, arg := encoded.Decode()
	if verb >= numVerbs {
		w.Stats.RecordNoop(NoopInvalid)
		return
	}

	var ok bool
	var reason NoopReason

	switch verb {
	case VerbNoop:
		ok, reason = true, NoopNone
	case VerbMove:
		ok, reason = w.moveAgent(agent, arg)
	case VerbAttack:
		dir, valid := DirectionFromArg(arg)
		if !valid {
			ok, reason = false, NoopInvalid
			break
		}
		ok, reason = w.Attack(agent, dir)
	case VerbUse:
		ok, reason = w.applyUse(agent, arg)
	case VerbBuild:
		ok, reason = w.applyBuild(agent, arg)
	case VerbGive:
		ok, reason = w.applyGive(agent, arg)
	case VerbPickup:
		ok, reason = w.applyPickup(agent)
	case VerbDrop:
		ok, reason = w.applyDrop(agent, arg)
	case VerbPlace:
		ok, reason = w.applyPlace(agent, arg)
	case VerbPlant:
		ok, reason = w.applyPlant(agent, arg)
	default:
		ok, reason = false, NoopInvalid
	}

	if !ok {
		w.Stats.RecordNoop(reason)
	}
}

func (w *World) moveAgent(agent *Thing, arg uint8) (bool, NoopReason) {
	dir, valid := DirectionFromArg(arg)
	if !valid {
		return false, NoopInvalid
	}
	dst := agent.Pos.Add(dir.Delta())
	agent.Orientation = dir
	if !w.Grid.CanEnter(dst) {
		return false, NoopInfeasible
	}
	w.Grid.MoveBlocking(agent, dst)
	w.Obs.Rebuild(agent.AgentID, dst)
	w.Stats.ActionMove++
	return true, NoopNone
}

// applyUse dispatches the Use verb. The low 3 arg bits select direction;
// the remaining bits (only meaningful against a Train building) select
// the unit class to enqueue.
func (w *World) applyUse(agent *Thing, arg uint8) (bool, NoopReason) {
	dirArg := arg & 0x7
	classArg := arg >> 3
	dir, valid := DirectionFromArg(dirArg)
	if !valid {
		return false, NoopInvalid
	}
	class := UnitVillager
	if int(classArg) < len(trainableByArg) {
		class = trainableByArg[classArg]
	}
	return w.Use(agent, dir, class)
}

func (w *World) applyBuild(agent *Thing, arg uint8) (bool, NoopReason) {
	dirArg := arg & 0x7
	kindArg := arg >> 3
	dir, valid := DirectionFromArg(dirArg)
	if !valid || int(kindArg) >= len(buildableByArg) {
		return false, NoopInvalid
	}
	// Build toward an own-team building still under construction advances it.
	if site := w.Grid.Blocking(agent.Pos.Add(dir.Delta())); site != nil && BuildingKinds[site.Kind] && site.TeamID == agent.TeamID && site.HP < site.MaxHP {
		return w.Build(agent, dir)
	}
	kind := buildableByArg[kindArg]
	return w.PlaceBuilding(agent, kind, agent.Pos.Add(dir.Delta()))
}

func (w *World) applyGive(agent *Thing, arg uint8) (bool, NoopReason) {
	dirArg := arg & 0x7
	itemArg := arg >> 3
	dir, valid := DirectionFromArg(dirArg)
	if !valid || int(itemArg) >= len(giveItemByArg) {
		return false, NoopInvalid
	}
	target := w.Grid.Blocking(agent.Pos.Add(dir.Delta()))
	if target == nil || target.Kind != KindAgent || target.TeamID != agent.TeamID || agent.Inventory == nil {
		return false, NoopInfeasible
	}
	key := Key(giveItemByArg[itemArg])
	if agent.Inventory.Count(key) == 0 {
		return false, NoopInfeasible
	}
	if target.Inventory == nil {
		return false, NoopInfeasible
	}
	added := target.Inventory.Add(key, 1)
	if added == 0 {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(key, 1)
	w.Stats.ActionGive++
	return true, NoopNone
}

func (w *World) applyPickup(agent *Thing) (bool, NoopReason) {
	bg := w.Grid.Background(agent.Pos)
	if bg == nil || agent.Inventory == nil {
		return false, NoopInfeasible
	}
	key, ok := itemForLooseKind(bg.Kind)
	if !ok {
		return false, NoopInfeasible
	}
	if agent.Inventory.Add(key, 1) == 0 {
		return false, NoopInfeasible
	}
	w.Grid.ClearBackground(bg, bg.Pos)
	w.Store.Remove(bg)
	w.Obs.UpdateCell(agent.Pos, w.Store)
	w.Stats.ActionPickup++
	return true, NoopNone
}

// itemForLooseKind maps a loose background entity kind to the inventory
// item it becomes when picked up.
func itemForLooseKind(k Kind) (ItemKey, bool) {
	switch k {
	case KindRelic:
		return ThingKey(KindRelic), true
	case KindLantern:
		return ThingKey(KindLantern), true
	default:
		return ItemKey{}, false
	}
}

func (w *World) applyDrop(agent *Thing, arg uint8) (bool, NoopReason) {
	if int(arg) >= len(giveItemByArg) || agent.Inventory == nil {
		return false, NoopInvalid
	}
	key := Key(giveItemByArg[arg])
	if agent.Inventory.Count(key) == 0 {
		return false, NoopInfeasible
	}
	if w.Grid.Background(agent.Pos) != nil {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(key, 1)
	w.Stats.ActionDrop++
	return true, NoopNone
}

func (w *World) applyPlace(agent *Thing, arg uint8) (bool, NoopReason) {
	dirArg := arg & 0x7
	kindArg := arg >> 3
	dir, valid := DirectionFromArg(dirArg)
	if !valid || int(kindArg) >= len(placeableByArg) {
		return false, NoopInvalid
	}
	kind := placeableByArg[kindArg]
	if agent.Inventory == nil || agent.Inventory.Count(ThingKey(kind)) == 0 {
		return false, NoopInfeasible
	}
	dst := agent.Pos.Add(dir.Delta())
	if !w.Grid.InBounds(dst) || (w.Grid.Blocking(dst) != nil && ThingBlocksMovement(kind)) {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(ThingKey(kind), 1)
	placed := &Thing{Kind: kind, TeamID: agent.TeamID, HP: 1, MaxHP: 1, LanternHealthy: true}
	w.Store.Add(placed)
	if ThingBlocksMovement(kind) {
		w.Grid.PlaceBlocking(placed, dst)
	} else {
		w.Grid.PlaceBackground(placed, dst)
	}
	w.Obs.UpdateCell(dst, w.Store)
	w.Stats.ActionPlace++
	return true, NoopNone
}

func (w *World) applyPlant(agent *Thing, arg uint8) (bool, NoopReason) {
	dir, valid := DirectionFromArg(arg)
	if !valid || !isCardinal(dir) {
		return false, NoopInvalid
	}
	if agent.Inventory == nil || agent.Inventory.Count(Key(ItemWheat)) == 0 {
		return false, NoopInfeasible
	}
	dst := agent.Pos.Add(dir.Delta())
	if !w.Grid.InBounds(dst) || w.Grid.Tile(dst).Terrain != TerrainFertile || w.Grid.Background(dst) != nil {
		return false, NoopInfeasible
	}
	agent.Inventory.Remove(Key(ItemWheat), 1)
	plant := &Thing{Kind: KindWheat, HP: 1, MaxHP: 1}
	w.Store.Add(plant)
	w.Grid.PlaceBackground(plant, dst)
	w.Obs.UpdateCell(dst, w.Store)
	w.Stats.ActionPlant++
	return true, NoopNone
}

func isCardinal(d Direction) bool {
	for _, c := range CardinalDirections {
		if c == d {
			return true
		}
	}
	return false
}
