package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// gatherableKinds are the resource node kinds a Gatherer will harvest.
var gatherableKinds = []game.Kind{
	game.KindTree, game.KindStone, game.KindGold, game.KindWheat, game.KindBush,
}

// dropoffKinds are the building kinds a full Gatherer walks back to.
var dropoffKinds = []game.Kind{
	game.KindGranary, game.KindLumberYard, game.KindQuarry, game.KindDropoffFood,
}

const gathererSearchRadius = 20

// GathererOptions returns the Gatherer role's option list, evaluated top
// to bottom. Per spec.md §9's Open Question resolution, the hearts-priority
// gold-chase behavior (preferring Gold over other resources when both are
// visible) applies only to Villager-class Gatherers — other unit classes
// never hold the Gatherer role in practice, but the guard is explicit here
// so a future role reassignment can't silently pick it up.
func GathererOptions() []Option {
	return []Option{
		escapeOption(),
		{
			Name:     "deliver",
			CanStart: func(v AgentView) bool { return inventoryFull(v) },
			ShouldTerminate: func(v AgentView) bool {
				return !inventoryFull(v)
			},
			Act: func(v AgentView) game.EncodedAction {
				return moveOrUseTowardNearest(v, dropoffKinds, true)
			},
		},
		{
			Name: "chase_gold",
			CanStart: func(v AgentView) bool {
				return v.Snapshot.UnitClass == game.UnitVillager && visibleKind(v, game.KindGold, gathererSearchRadius)
			},
			ShouldTerminate: func(v AgentView) bool {
				return inventoryFull(v) || !visibleKind(v, game.KindGold, gathererSearchRadius)
			},
			Act: func(v AgentView) game.EncodedAction {
				return moveOrUseTowardNearest(v, []game.Kind{game.KindGold}, false)
			},
		},
		{
			Name:     "harvest",
			CanStart: func(v AgentView) bool { return true },
			ShouldTerminate: func(v AgentView) bool {
				return inventoryFull(v)
			},
			Act: func(v AgentView) game.EncodedAction {
				return moveOrUseTowardNearest(v, gatherableKinds, false)
			},
		},
		spiralOption(),
	}
}

func inventoryFull(v AgentView) bool {
	total := 0
	for _, n := range v.Snapshot.Inventory {
		total += n
	}
	return total >= game.MaxInventory
}

func visibleKind(v AgentView, k game.Kind, radius int) bool {
	_, ok := v.Engine.NearestOfKind(v.Snapshot.Pos, []game.Kind{k}, radius)
	return ok
}

// moveOrUseTowardNearest paths toward the nearest tile holding one of
// kinds; if already adjacent, emits Use toward it in both the dropoff and
// the gather case. The engine's Use verb acts only on a completed building
// of the agent's own team that has a use kind, so a Use toward a resource
// node resolves to an infeasible no-op and harvests nothing.
func moveOrUseTowardNearest(v AgentView, kinds []game.Kind, viaUse bool) game.EncodedAction {
	target, ok := v.Engine.NearestOfKind(v.Snapshot.Pos, kinds, gathererSearchRadius)
	if !ok {
		return stepSpiral(v)
	}
	if v.Snapshot.Pos.Chebyshev(target) <= 1 {
		dir := directionBetween(v.Snapshot.Pos, target)
		if dir == game.DirNone {
			return game.Encode(game.VerbNoop, 0)
		}
		if viaUse {
			return game.Encode(game.VerbUse, uint8(dirArg(dir)))
		}
		return game.Encode(game.VerbUse, uint8(dirArg(dir)))
	}
	passable := func(p game.Pos) bool { return v.Engine.CanEnter(p) || p == target }
	dir, found := FindPath(v.Snapshot.Pos, target, passable)
	if !found {
		v.Engine.StatsPathfindFailure()
		return stepSpiral(v)
	}
	return game.Encode(game.VerbMove, uint8(dirArg(dir)))
}

// dirArg maps a Direction to its 0..7 action-encoding arg byte.
func dirArg(d game.Direction) int {
	for i, cand := range game.AllDirections {
		if cand == d {
			return i
		}
	}
	return 0
}

func escapeOption() Option {
	return Option{
		Name:            "escape",
		CanStart:        func(v AgentView) bool { return v.Mem.Guard.Escaping() },
		ShouldTerminate: func(v AgentView) bool { return !v.Mem.Guard.Escaping() },
		Act: func(v AgentView) game.EncodedAction {
			for _, d := range game.AllDirections {
				if v.Engine.CanEnter(v.Snapshot.Pos.Add(d.Delta())) {
					return game.Encode(game.VerbMove, uint8(dirArg(d)))
				}
			}
			return game.Encode(game.VerbNoop, 0)
		},
	}
}

func spiralOption() Option {
	return Option{
		Name:            "spiral",
		CanStart:        func(v AgentView) bool { return true },
		ShouldTerminate: func(v AgentView) bool { return false },
		Act: func(v AgentView) game.EncodedAction {
			return stepSpiral(v)
		},
	}
}

func stepSpiral(v AgentView) game.EncodedAction {
	if v.Mem.Spiral == nil {
		v.Mem.Spiral = NewSpiralSearch(v.Snapshot.Pos)
	}
	v.Mem.Spiral.Recenter(v.Snapshot.Pos)
	dir := v.Mem.Spiral.Next()
	if !v.Engine.CanEnter(v.Snapshot.Pos.Add(dir.Delta())) {
		return game.Encode(game.VerbNoop, 0)
	}
	return game.Encode(game.VerbMove, uint8(dirArg(dir)))
}
