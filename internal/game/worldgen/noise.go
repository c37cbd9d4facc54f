// Package worldgen paints terrain and biome onto a fresh map using
// OpenSimplex noise, kept outside the core engine's own dependency graph:
// it produces plain [][]game.TerrainType/[][]game.BiomeType grids that the
// caller feeds to Engine.ApplyTerrain.
package worldgen

import "github.com/ojrac/opensimplex-go"

// NoiseGenerator wraps OpenSimplex noise with seed support.
type NoiseGenerator struct {
	noise opensimplex.Noise
	seed  int64
}

// NewNoiseGenerator creates a noise generator seeded deterministically.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{noise: opensimplex.New(seed), seed: seed}
}

// Eval2D returns the noise value at (x, y), normalized to [0, 1].
func (n *NoiseGenerator) Eval2D(x, y float64) float64 {
	return (n.noise.Eval2(x, y) + 1) / 2
}

// Octave2D combines multiple noise octaves into fractal terrain/moisture
// fields: octaves layers, each doubling frequency and scaling amplitude by
// persistence.
func (n *NoiseGenerator) Octave2D(x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += n.Eval2D(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

// Seed returns the generator's seed.
func (n *NoiseGenerator) Seed() int64 { return n.seed }
