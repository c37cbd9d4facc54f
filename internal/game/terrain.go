package game

// TerrainType is the fixed-after-generation terrain label of a tile
// (spec.md §3). It is painted by the external worldgen collaborator and
// only ever mutated by the engine in the two carve-outs spec.md allows:
// Fertile creation around a newly placed Mill-equivalent, and Road never
// being overwritten by placement.
type TerrainType uint8

const (
	TerrainEmpty TerrainType = iota
	TerrainWater
	TerrainBridge
	TerrainFertile
	TerrainRoad
	TerrainGrass
	TerrainDune
	TerrainSand
	TerrainSnow
)

// IsBlockedTerrain reports whether a unit may never enter a tile of this
// terrain, regardless of occupancy.
func IsBlockedTerrain(t TerrainType) bool { return t == TerrainWater }

// BuildableTerrain reports whether a building may be placed on this terrain.
func BuildableTerrain(t TerrainType) bool {
	switch t {
	case TerrainEmpty, TerrainGrass, TerrainSand, TerrainSnow, TerrainDune, TerrainRoad:
		return true
	default:
		return false
	}
}

// BiomeType is a per-tile label used only for base tile coloring; it has no
// gameplay effect in the core engine.
type BiomeType uint8

const (
	BiomeTemperate BiomeType = iota
	BiomeDesert
	BiomeTundra
	BiomeSwamp
)

// TintCode names the semantic source of an action tint, used by both the
// observation Tint layer and (out of scope) renderers.
type TintCode uint8

const (
	TintNone TintCode = iota
	TintHeal
	TintDeath
	TintFrozen // clippy-purple: tumor/spawner freeze effect
	TintAttack
	TintBuild
)

// Tint is the transient action-tint overlay on a tile plus its countdown,
// kept in one struct with a single decrement step per spec.md §9 ("Tint as
// backchannel") to avoid the render/observation channels diverging.
type Tint struct {
	Code      TintCode
	Countdown int
}

// Active reports whether a tint is still in effect.
func (t Tint) Active() bool { return t.Countdown > 0 && t.Code != TintNone }

// Frozen reports whether this tint freezes the tile (clippy-purple).
func (t Tint) Frozen() bool { return t.Active() && t.Code == TintFrozen }

// Tile is a single grid cell's terrain/biome/tint state. Entities occupying
// the tile live in Grid.blocking/background, not here.
type Tile struct {
	Pos     Pos
	Terrain TerrainType
	Biome   BiomeType
	Tint    Tint
}

// DecrementTint advances the tint countdown by one tick. It returns true if the
// tint expired this tick (countdown reached exactly zero), signaling
// observers that frozen/heal/death status just lifted.
func (t *Tile) DecrementTint() (expired bool) {
	if t.Tint.Countdown <= 0 {
		return false
	}
	t.Tint.Countdown--
	if t.Tint.Countdown == 0 {
		t.Tint = Tint{}
		return true
	}
	return false
}

// ApplyTint overwrites the tile's action tint, replacing whatever was there.
func (t *Tile) ApplyTint(code TintCode, countdown int) {
	t.Tint = Tint{Code: code, Countdown: countdown}
}
