// Package controller implements the scripted (non-learned) baseline
// policy: a deterministic per-agent Role, spiral/A* search, and an
// anti-oscillation guard, composed through an options pattern
// (canStart/shouldTerminate/act) per role.
package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// roleWeights assigns most slots to Gatherer, a minority to Builder and
// Fighter, matching a typical economy-heavy RTS opening.
var roleWeights = []game.Role{
	game.RoleGatherer, game.RoleGatherer, game.RoleGatherer,
	game.RoleBuilder,
	game.RoleFighter, game.RoleFighter,
}

// RoleFor deterministically assigns a role to a team slot: pure function
// of (team, slot) so two engines seeded identically always agree, with no
// dependency on the simulation's own RNG stream (spec.md §4.8).
func RoleFor(team, slot int) game.Role {
	idx := (team*31 + slot*17) % len(roleWeights)
	return roleWeights[idx]
}
