package worldgen

import (
	"testing"

	"github.com/lucasdow/tribalvillage/internal/game"
)

func TestDetermineTerrain_LowElevationIsWater(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineTerrain(0.1, 0.5, th); got != game.TerrainWater {
		t.Errorf("expected low elevation to classify as water, got %v", got)
	}
}

func TestDetermineTerrain_HighElevationIsDune(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineTerrain(0.9, 0.5, th); got != game.TerrainDune {
		t.Errorf("expected very high elevation to classify as dune, got %v", got)
	}
}

func TestDetermineTerrain_MidHighElevationIsSand(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineTerrain(0.7, 0.5, th); got != game.TerrainSand {
		t.Errorf("expected mid-high elevation to classify as sand, got %v", got)
	}
}

func TestDetermineTerrain_MidElevationIsGrass(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineTerrain(0.5, 0.9, th); got != game.TerrainGrass {
		t.Errorf("expected mid elevation to classify as grass, got %v", got)
	}
}

func TestDetermineBiome_HighElevationIsTundra(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineBiome(0.9, 0.5, th); got != game.BiomeTundra {
		t.Errorf("expected very high elevation to classify as tundra biome, got %v", got)
	}
}

func TestDetermineBiome_LowMoistureIsDesert(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineBiome(0.5, 0.1, th); got != game.BiomeDesert {
		t.Errorf("expected low moisture to classify as desert biome, got %v", got)
	}
}

func TestDetermineBiome_DefaultsToTemperate(t *testing.T) {
	th := DefaultThresholds()
	if got := DetermineBiome(0.5, 0.5, th); got != game.BiomeTemperate {
		t.Errorf("expected middling elevation/moisture to classify as temperate, got %v", got)
	}
}

func TestPainter_PaintProducesFullSizedGrid(t *testing.T) {
	p := NewPainter(5)
	terrain, biome := p.Paint(10, 6)
	if len(terrain) != 6 || len(biome) != 6 {
		t.Fatalf("expected 6 rows, got terrain=%d biome=%d", len(terrain), len(biome))
	}
	for y, row := range terrain {
		if len(row) != 10 {
			t.Fatalf("expected row %d to have 10 columns, got %d", y, len(row))
		}
	}
	for y, row := range biome {
		if len(row) != 10 {
			t.Fatalf("expected biome row %d to have 10 columns, got %d", y, len(row))
		}
	}
}

func TestPainter_PaintIsDeterministicForSameSeed(t *testing.T) {
	a, b := NewPainter(11), NewPainter(11)
	ta, ba := a.Paint(8, 8)
	tb, bb := b.Paint(8, 8)
	for y := range ta {
		for x := range ta[y] {
			if ta[y][x] != tb[y][x] || ba[y][x] != bb[y][x] {
				t.Fatalf("expected identical seeds to paint identical maps, diverged at (%d,%d)", x, y)
			}
		}
	}
}

func TestIsPassable_MatchesBlockedTerrain(t *testing.T) {
	if IsPassable(game.TerrainWater) {
		t.Error("expected water to be impassable")
	}
	if !IsPassable(game.TerrainGrass) {
		t.Error("expected grass to be passable")
	}
}
