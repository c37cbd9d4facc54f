package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// OscillationGuard detects an agent bouncing between too few distinct
// tiles and forces a temporary Escape mode to break the loop, per
// spec.md §4.8.
type OscillationGuard struct {
	ring     [game.OscillationRingSize]game.Pos
	count    int
	next     int
	escaping int // ticks remaining in Escape mode
}

// stuckWindow is how many recent positions are inspected for the
// distinct-position check, narrower for Builders (who legitimately linger
// near a single construction site) than other roles.
func stuckWindow(role game.Role) int {
	if role == game.RoleBuilder {
		return 6
	}
	return 10
}

// Record appends the agent's current position to the ring buffer.
func (g *OscillationGuard) Record(p game.Pos) {
	g.ring[g.next] = p
	g.next = (g.next + 1) % game.OscillationRingSize
	if g.count < game.OscillationRingSize {
		g.count++
	}
	if g.escaping > 0 {
		g.escaping--
	}
}

// CheckStuck inspects the last stuckWindow(role) recorded positions; if at
// most two distinct tiles appear among them, Escape mode is triggered for
// EscapeTicks.
func (g *OscillationGuard) CheckStuck(role game.Role) {
	window := stuckWindow(role)
	if g.count < window {
		return
	}
	seen := make(map[game.Pos]bool, window)
	for i := 0; i < window; i++ {
		idx := (g.next - 1 - i + game.OscillationRingSize) % game.OscillationRingSize
		seen[g.ring[idx]] = true
	}
	if len(seen) <= 2 {
		g.escaping = game.EscapeTicks
	}
}

// Escaping reports whether the guard is currently forcing escape behavior.
func (g *OscillationGuard) Escaping() bool { return g.escaping > 0 }
