package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// spiralTurns is the clockwise turn sequence a growing square spiral
// walks: N, E, S, W, repeating, with each pair of arcs one tile longer.
var spiralTurns = [4]game.Direction{game.DirN, game.DirE, game.DirS, game.DirW}

// SpiralSearch walks an outward square spiral from an origin, used by
// Gatherers with no remembered resource to explore toward. Arc lengths
// follow 1,1,2,2,3,3,... and the spiral recenters on the agent's current
// position every SpiralRecenterArcs arcs, per spec.md §4.8.
type SpiralSearch struct {
	origin     game.Pos
	turnIdx    int
	arcLen     int
	stepInArc  int
	arcsWalked int
}

// NewSpiralSearch starts a spiral centered on origin.
func NewSpiralSearch(origin game.Pos) *SpiralSearch {
	return &SpiralSearch{origin: origin, arcLen: 1}
}

// Next returns the direction to step this tick and advances the spiral's
// internal arc-length bookkeeping.
func (s *SpiralSearch) Next() game.Direction {
	dir := spiralTurns[s.turnIdx%len(spiralTurns)]
	s.stepInArc++
	if s.stepInArc >= s.arcLen {
		s.stepInArc = 0
		s.turnIdx++
		s.arcsWalked++
		// lengths increase every two arcs: 1,1,2,2,3,3,...
		if s.arcsWalked%2 == 0 {
			s.arcLen++
		}
	}
	return dir
}

// Recenter reports whether the spiral has walked enough arcs that it
// should be restarted from a new origin (spec.md §4.8's 100-arc recenter),
// and resets its internal state around the given new origin when so.
func (s *SpiralSearch) Recenter(origin game.Pos) bool {
	if s.arcsWalked < game.SpiralRecenterArcs {
		return false
	}
	*s = SpiralSearch{origin: origin, arcLen: 1}
	return true
}

// Origin returns the spiral's current center.
func (s *SpiralSearch) Origin() game.Pos { return s.origin }
