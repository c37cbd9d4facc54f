package controller

import "github.com/lucasdow/tribalvillage/internal/game"

// BuilderOptions returns the Builder role's option list: escape first,
// then issue Build toward the first adjacent tile holding something of the
// agent's team (which advances a building still under construction),
// falling back to placing a new House on an adjacent open, non-water tile.
// Only adjacent tiles are considered; the builder does not walk toward
// distant construction sites.
func BuilderOptions() []Option {
	return []Option{
		escapeOption(),
		{
			Name:     "construct",
			CanStart: func(v AgentView) bool { return true },
			ShouldTerminate: func(v AgentView) bool {
				return false
			},
			Act: func(v AgentView) game.EncodedAction {
				return buildAct(v)
			},
		},
	}
}

func buildAct(v AgentView) game.EncodedAction {
	for _, d := range game.AllDirections {
		p := v.Snapshot.Pos.Add(d.Delta())
		if !v.Engine.InBounds(p) {
			continue
		}
		if k, team := v.Engine.ThingAt(p); k != game.KindNone && team == game.TeamID(v.Team) {
			return game.Encode(game.VerbBuild, uint8(dirArg(d)))
		}
	}
	for _, d := range game.AllDirections {
		p := v.Snapshot.Pos.Add(d.Delta())
		if v.Engine.InBounds(p) && v.Engine.CanEnter(p) && v.Engine.TerrainAt(p) != game.TerrainWater {
			return game.Encode(game.VerbBuild, uint8(dirArg(d)))
		}
	}
	return game.Encode(game.VerbNoop, 0)
}
