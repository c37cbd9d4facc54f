package game

import "math/rand"

// wildlife movement probabilities per spec.md §4.9: cows herd (move toward
// the flock centroid half the time), wolves pack-hunt the nearest agent,
// bears strike any adjacent agent and otherwise wander now and then.
const (
	herdMoveChance  = 0.5
	packMoveChance  = 0.7
	wanderMoveChance = 0.35
)

// AdvanceWildlife runs one tick of AI for every cow, wolf, and bear,
// called once per tick after agent actions resolve (spec.md §5 tick order).
func (w *World) AdvanceWildlife() {
	w.advanceCows()
	w.advanceWolves()
	w.advanceBears()
}

func (w *World) advanceCows() {
	cows := w.Store.ByKind(KindCow)
	if len(cows) == 0 {
		return
	}
	centroid := w.centroidOf(cows)
	for _, c := range cows {
		if w.RNG.Float64() > herdMoveChance {
			continue
		}
		w.stepToward(c, centroid)
	}
}

func (w *World) advanceWolves() {
	agents := w.Store.ByKind(KindAgent)
	for _, wolf := range w.Store.ByKind(KindWolf) {
		if w.RNG.Float64() > packMoveChance {
			continue
		}
		target, ok := w.nearestLiveAgent(wolf.Pos, agents)
		if !ok {
			w.wander(wolf)
			continue
		}
		if wolf.Pos.Chebyshev(target.Pos) <= 1 {
			w.strike(wolf, target)
			continue
		}
		w.stepToward(wolf, target.Pos)
	}
}

func (w *World) advanceBears() {
	agents := w.Store.ByKind(KindAgent)
	for _, bear := range w.Store.ByKind(KindBear) {
		if adjacent, ok := w.nearestLiveAgent(bear.Pos, agents); ok && bear.Pos.Chebyshev(adjacent.Pos) <= 1 {
			w.strike(bear, adjacent)
			continue
		}
		if w.RNG.Float64() > wanderMoveChance {
			continue
		}
		w.wander(bear)
	}
}

func (w *World) centroidOf(things []*Thing) Pos {
	if len(things) == 0 {
		return Pos{}
	}
	var sx, sy int
	for _, t := range things {
		sx += t.Pos.X
		sy += t.Pos.Y
	}
	return Pos{X: sx / len(things), Y: sy / len(things)}
}

func (w *World) nearestLiveAgent(from Pos, agents []*Thing) (*Thing, bool) {
	var best *Thing
	bestDist := 1 << 30
	for _, a := range agents {
		if a.HP <= 0 || !a.IsValidPos() {
			continue
		}
		d := from.Chebyshev(a.Pos)
		if d < bestDist {
			bestDist = d
			best = a
		}
	}
	return best, best != nil
}

// stepToward moves t one tile closer to dst along whichever axis has the
// larger gap, falling back to a random passable neighbor if blocked.
func (w *World) stepToward(t *Thing, dst Pos) {
	gapX := dst.X - t.Pos.X
	gapY := dst.Y - t.Pos.Y
	if gapX == 0 && gapY == 0 {
		return
	}
	step := Pos{X: sign(gapX)}
	if gapY*gapY > gapX*gapX {
		step = Pos{Y: sign(gapY)}
	}
	candidate := t.Pos.Add(step)
	if w.Grid.CanEnter(candidate) {
		w.Grid.MoveBlocking(t, candidate)
		w.Obs.UpdateCell(candidate, w.Store)
		return
	}
	w.wander(t)
}

// wander moves t to a uniformly random passable neighbor, or does nothing
// if none are open.
func (w *World) wander(t *Thing) {
	neighbors := w.Grid.Neighbors8(t.Pos)
	shuffled := append([]Pos(nil), neighbors...)
	w.RNG.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	for _, n := range shuffled {
		if w.Grid.CanEnter(n) {
			w.Grid.MoveBlocking(t, n)
			w.Obs.UpdateCell(n, w.Store)
			return
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// seedRNG builds the single deterministic RNG threaded through every
// randomized decision in the simulation (spec.md §5: "one seeded RNG").
func seedRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
