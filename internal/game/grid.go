package game

// Grid is the fixed 2D tile map plus its overlaid spatial index: one
// movement-blocking entity per tile (`blocking`) and any number of
// non-blocking decorations stacked logically above it (`background`,
// modeled here as a single top decoration since the spec's background kinds
// never stack in practice — corpses/skeletons/lanterns/relics/barrels).
// Invariant (spec.md §3): for every occupied tile, grid[pos] == that entity;
// moving or removing an entity must update exactly one slot.
type Grid struct {
	Width, Height int

	tiles      []Tile
	blocking   []*Thing
	background []*Thing
}

// NewGrid creates a grid of the given size with every tile defaulted to
// TerrainGrass and no occupants. Terrain painting is the worldgen
// collaborator's job (spec.md §1/§6 out-of-scope boundary).
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:      width,
		Height:     height,
		tiles:      make([]Tile, width*height),
		blocking:   make([]*Thing, width*height),
		background: make([]*Thing, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[g.index(Pos{X: x, Y: y})] = Tile{Pos: Pos{X: x, Y: y}, Terrain: TerrainGrass}
		}
	}
	return g
}

func (g *Grid) index(p Pos) int { return p.Y*g.Width + p.X }

// InBounds reports whether p is a valid tile coordinate.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Tile returns the terrain/biome/tint record at p. Caller must check InBounds first.
func (g *Grid) Tile(p Pos) *Tile { return &g.tiles[g.index(p)] }

// Blocking returns the movement-blocking occupant at p, or nil.
func (g *Grid) Blocking(p Pos) *Thing {
	if !g.InBounds(p) {
		return nil
	}
	return g.blocking[g.index(p)]
}

// Background returns the non-blocking decoration at p, or nil.
func (g *Grid) Background(p Pos) *Thing {
	if !g.InBounds(p) {
		return nil
	}
	return g.background[g.index(p)]
}

// CanEnter reports whether a unit may move onto p: in bounds, not blocked
// terrain (water), not frozen, and unoccupied in the blocking layer.
func (g *Grid) CanEnter(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	idx := g.index(p)
	if IsBlockedTerrain(g.tiles[idx].Terrain) {
		return false
	}
	if g.tiles[idx].Tint.Frozen() {
		return false
	}
	return g.blocking[idx] == nil
}

// PlaceBlocking occupies p with t in the blocking layer. Caller must ensure
// CanEnter(p) first; PlaceBlocking does not itself validate occupancy/terrain,
// since spawn and forced-move paths intentionally bypass the frozen/terrain
// checks. Out-of-bounds p is always an internal bug, not a caller-facing
// boundary case, so it is the one condition PlaceBlocking itself enforces.
func (g *Grid) PlaceBlocking(t *Thing, p Pos) {
	mustHold(g.InBounds(p), "Grid.PlaceBlocking", "position out of bounds")
	g.blocking[g.index(p)] = t
	t.Pos = p
}

// ClearBlocking empties the blocking slot at p if it currently holds t.
func (g *Grid) ClearBlocking(t *Thing, p Pos) {
	if !g.InBounds(p) {
		return
	}
	idx := g.index(p)
	if g.blocking[idx] == t {
		g.blocking[idx] = nil
	}
}

// MoveBlocking relocates t from its current Pos to dst, maintaining the
// grid[pos] == entity invariant. Caller must ensure CanEnter(dst) first.
func (g *Grid) MoveBlocking(t *Thing, dst Pos) {
	g.ClearBlocking(t, t.Pos)
	g.PlaceBlocking(t, dst)
}

// PlaceBackground sets the decorative occupant at p.
func (g *Grid) PlaceBackground(t *Thing, p Pos) {
	g.background[g.index(p)] = t
	t.Pos = p
}

// ClearBackground empties the background slot at p if it currently holds t.
func (g *Grid) ClearBackground(t *Thing, p Pos) {
	if !g.InBounds(p) {
		return
	}
	idx := g.index(p)
	if g.background[idx] == t {
		g.background[idx] = nil
	}
}

// Remove clears whichever layer t occupies, by kind.
func (g *Grid) Remove(t *Thing) {
	if ThingBlocksMovement(t.Kind) {
		g.ClearBlocking(t, t.Pos)
	} else {
		g.ClearBackground(t, t.Pos)
	}
}

// Neighbors8 returns the up-to-8 in-bounds tiles adjacent to p.
func (g *Grid) Neighbors8(p Pos) []Pos {
	out := make([]Pos, 0, 8)
	for _, d := range AllDirections {
		n := p.Add(d.Delta())
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors4 returns the up-to-4 cardinal in-bounds tiles adjacent to p.
func (g *Grid) Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range CardinalDirections {
		n := p.Add(d.Delta())
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// DecrementTints advances every tile's tint countdown by one tick, the
// first phase of the world-step tick order (spec.md §5).
func (g *Grid) DecrementTints() {
	for i := range g.tiles {
		g.tiles[i].DecrementTint()
	}
}

// TeamMaskCache speeds up per-tile "which teams have presence here" queries
// used by vision/claim checks, rebuilt lazily and invalidated on any
// blocking-layer mutation (spec.md §9 "team-mask cache" design note).
type TeamMaskCache struct {
	grid  *Grid
	dirty bool
	mask  []uint32 // bit i set => team i has a blocking entity on this tile's 3x3 neighborhood
}

// NewTeamMaskCache creates a cache bound to a grid, initially dirty.
func NewTeamMaskCache(g *Grid) *TeamMaskCache {
	return &TeamMaskCache{grid: g, dirty: true, mask: make([]uint32, g.Width*g.Height)}
}

// Invalidate marks the cache stale; call after any blocking-layer mutation.
func (c *TeamMaskCache) Invalidate() { c.dirty = true }

// rebuild recomputes every tile's team presence mask from the current
// blocking layer.
func (c *TeamMaskCache) rebuild() {
	for i := range c.mask {
		c.mask[i] = 0
	}
	g := c.grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Pos{X: x, Y: y}
			t := g.Blocking(p)
			if t == nil || t.TeamID < 0 {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := Pos{X: x + dx, Y: y + dy}
					if g.InBounds(n) {
						c.mask[g.index(n)] |= 1 << uint(t.TeamID)
					}
				}
			}
		}
	}
	c.dirty = false
}

// TeamsNear returns the bitmask of team IDs with blocking presence in the
// 3x3 neighborhood of p, rebuilding the cache first if it is stale.
func (c *TeamMaskCache) TeamsNear(p Pos) uint32 {
	if c.dirty {
		c.rebuild()
	}
	if !c.grid.InBounds(p) {
		return 0
	}
	return c.mask[c.grid.index(p)]
}
