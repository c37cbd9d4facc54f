package controller

import "github.com/lucasdow/tribalvillage/internal/game"

const fighterScanRadius = 12

// FighterOptions returns the Fighter role's option list: escape first,
// attack an adjacent enemy on sight, otherwise path toward the target held
// in the agent's memory, otherwise patrol via spiral search. These options
// never pick a target themselves, so without one set in memory the chase
// option patrols.
func FighterOptions() []Option {
	return []Option{
		escapeOption(),
		{
			Name: "attack_adjacent",
			CanStart: func(v AgentView) bool {
				_, found := adjacentEnemy(v)
				return found
			},
			ShouldTerminate: func(v AgentView) bool {
				_, found := adjacentEnemy(v)
				return !found
			},
			Act: func(v AgentView) game.EncodedAction {
				dir, _ := adjacentEnemy(v)
				return game.Encode(game.VerbAttack, uint8(dirArg(dir)))
			},
		},
		{
			Name:            "chase",
			CanStart:        func(v AgentView) bool { return true },
			ShouldTerminate: func(v AgentView) bool { return false },
			Act: func(v AgentView) game.EncodedAction {
				return chaseOrPatrol(v)
			},
		},
	}
}

func adjacentEnemy(v AgentView) (game.Direction, bool) {
	for _, d := range game.AllDirections {
		p := v.Snapshot.Pos.Add(d.Delta())
		if !v.Engine.InBounds(p) {
			continue
		}
		k, team := v.Engine.ThingAt(p)
		if k == game.KindNone {
			continue
		}
		if team != game.NoTeam && team != game.TeamID(v.Team) {
			return d, true
		}
		if k == game.KindWolf || k == game.KindBear {
			return d, true
		}
	}
	return game.DirNone, false
}

func chaseOrPatrol(v AgentView) game.EncodedAction {
	if !v.Mem.HasTarget {
		return stepSpiral(v)
	}
	passable := func(p game.Pos) bool { return v.Engine.CanEnter(p) }
	dir, found := FindPath(v.Snapshot.Pos, v.Mem.Target, passable)
	if !found {
		v.Engine.StatsPathfindFailure()
		return stepSpiral(v)
	}
	return game.Encode(game.VerbMove, uint8(dirArg(dir)))
}
