package worldgen

import "github.com/lucasdow/tribalvillage/internal/game"

// Thresholds are the elevation/moisture cutoffs used to classify terrain
// and biome from the two noise fields.
type Thresholds struct {
	WaterMax     float64
	DuneMin      float64
	SandMin      float64
	ForestMinMoi float64
	SnowMin      float64
}

// DefaultThresholds are tuned for a roughly even split of terrain types
// across a map.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WaterMax:     0.3,
		DuneMin:      0.8,
		SandMin:      0.65,
		ForestMinMoi: 0.55,
		SnowMin:      0.85,
	}
}

// DetermineTerrain classifies one tile's terrain from elevation and
// moisture, mirroring the teacher's elevation/moisture biome classifier
// adapted to this simulation's terrain enum.
func DetermineTerrain(elevation, moisture float64, t Thresholds) game.TerrainType {
	switch {
	case elevation < t.WaterMax:
		return game.TerrainWater
	case elevation > t.DuneMin:
		return game.TerrainDune
	case elevation > t.SandMin:
		return game.TerrainSand
	case moisture > t.ForestMinMoi:
		return game.TerrainGrass
	default:
		return game.TerrainGrass
	}
}

// DetermineBiome classifies a tile's coloring-only biome label from the
// same two fields, independent of terrain (spec.md §3: Biome never affects
// gameplay).
func DetermineBiome(elevation, moisture float64, t Thresholds) game.BiomeType {
	switch {
	case elevation > t.SnowMin:
		return game.BiomeTundra
	case elevation < t.WaterMax+0.1 && moisture > t.ForestMinMoi:
		return game.BiomeSwamp
	case moisture < 0.3:
		return game.BiomeDesert
	default:
		return game.BiomeTemperate
	}
}

// Painter generates a full terrain/biome grid for a map of the given size.
type Painter struct {
	elevation *NoiseGenerator
	moisture  *NoiseGenerator
	thresholds Thresholds
}

// NewPainter creates a painter with independently seeded elevation and
// moisture noise fields.
func NewPainter(seed int64) *Painter {
	return &Painter{
		elevation:  NewNoiseGenerator(seed),
		moisture:   NewNoiseGenerator(seed + 1),
		thresholds: DefaultThresholds(),
	}
}

// Paint generates [height][width] terrain and biome grids ready for
// Engine.ApplyTerrain.
func (p *Painter) Paint(width, height int) ([][]game.TerrainType, [][]game.BiomeType) {
	terrain := make([][]game.TerrainType, height)
	biome := make([][]game.BiomeType, height)
	for y := 0; y < height; y++ {
		terrain[y] = make([]game.TerrainType, width)
		biome[y] = make([]game.BiomeType, width)
		for x := 0; x < width; x++ {
			elev := p.elevation.Octave2D(float64(x), float64(y), 4, 0.03, 0.5)
			moi := p.moisture.Octave2D(float64(x), float64(y), 3, 0.05, 0.5)
			terrain[y][x] = DetermineTerrain(elev, moi, p.thresholds)
			biome[y][x] = DetermineBiome(elev, moi, p.thresholds)
		}
	}
	return terrain, biome
}

// IsPassable reports whether a terrain type allows entry, independent of
// occupancy.
func IsPassable(t game.TerrainType) bool { return !game.IsBlockedTerrain(t) }
