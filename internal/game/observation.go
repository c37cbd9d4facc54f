package game

// Layer names one plane of a per-agent observation tensor.
type Layer uint8

const (
	LayerTerrain Layer = iota
	LayerTint
	LayerKind
	LayerTeam
	LayerHP
	LayerOrientation
	NumLayers
)

// ObservationBuffer is one agent's [Layers, 2R+1, 2R+1] window, stored flat
// and row-major so it can be handed to a caller as a single tensor slice
// (spec.md §4.4).
type ObservationBuffer struct {
	Radius int
	Side   int
	Center Pos
	data   []float32
}

func newObservationBuffer(radius int) *ObservationBuffer {
	side := 2*radius + 1
	return &ObservationBuffer{
		Radius: radius,
		Side:   side,
		data:   make([]float32, int(NumLayers)*side*side),
	}
}

func (b *ObservationBuffer) cellIndex(layer Layer, dx, dy int) int {
	lx := dx + b.Radius
	ly := dy + b.Radius
	return (int(layer)*b.Side+ly)*b.Side + lx
}

// inWindow reports whether offset (dx,dy) falls within the buffer's window.
func (b *ObservationBuffer) inWindow(dx, dy int) bool {
	return dx >= -b.Radius && dx <= b.Radius && dy >= -b.Radius && dy <= b.Radius
}

// Set writes one cell of one layer at a tile offset relative to the center.
func (b *ObservationBuffer) Set(layer Layer, dx, dy int, v float32) {
	if !b.inWindow(dx, dy) {
		return
	}
	b.data[b.cellIndex(layer, dx, dy)] = v
}

// Get reads one cell of one layer at a tile offset relative to the center.
func (b *ObservationBuffer) Get(layer Layer, dx, dy int) float32 {
	if !b.inWindow(dx, dy) {
		return 0
	}
	return b.data[b.cellIndex(layer, dx, dy)]
}

// Tensor returns the flat [Layers, Side, Side] buffer for external consumers.
func (b *ObservationBuffer) Tensor() []float32 { return b.data }

// clear zeroes every cell, used before a full rebuild.
func (b *ObservationBuffer) clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Observations owns one ObservationBuffer per agent and knows how to
// rebuild a window fully (on spawn/respawn/move) or touch a single cell
// incrementally (on a tile or occupant mutation elsewhere on the grid),
// per spec.md §9's "incremental-update observation buffers" design note.
type Observations struct {
	grid    *Grid
	radius  int
	buffers [MaxAgents]*ObservationBuffer
}

// NewObservations creates the per-agent buffer set bound to a grid.
func NewObservations(grid *Grid, radius int) *Observations {
	return &Observations{grid: grid, radius: radius}
}

// BufferFor lazily allocates and returns the buffer for an agent id.
func (o *Observations) BufferFor(agentID int) *ObservationBuffer {
	if o.buffers[agentID] == nil {
		o.buffers[agentID] = newObservationBuffer(o.radius)
	}
	return o.buffers[agentID]
}

// writeCell fills every layer of one absolute tile position into a buffer
// at the given offset from its center.
func (o *Observations) writeCell(b *ObservationBuffer, dx, dy int, p Pos) {
	if !o.grid.InBounds(p) {
		b.Set(LayerTerrain, dx, dy, float32(TerrainWater)) // out-of-bounds reads as water: impassable
		b.Set(LayerKind, dx, dy, float32(KindNone))
		b.Set(LayerTeam, dx, dy, float32(NoTeam))
		b.Set(LayerHP, dx, dy, 0)
		b.Set(LayerTint, dx, dy, 0)
		b.Set(LayerOrientation, dx, dy, float32(DirNone))
		return
	}
	tile := o.grid.Tile(p)
	b.Set(LayerTerrain, dx, dy, float32(tile.Terrain))
	b.Set(LayerTint, dx, dy, float32(tile.Tint.Code))

	occ := o.grid.Blocking(p)
	if occ == nil {
		occ = o.grid.Background(p)
	}
	if occ == nil {
		b.Set(LayerKind, dx, dy, float32(KindNone))
		b.Set(LayerTeam, dx, dy, float32(NoTeam))
		b.Set(LayerHP, dx, dy, 0)
		b.Set(LayerOrientation, dx, dy, float32(DirNone))
		return
	}
	b.Set(LayerKind, dx, dy, float32(occ.Kind))
	b.Set(LayerTeam, dx, dy, float32(occ.TeamID))
	b.Set(LayerHP, dx, dy, float32(occ.HP))
	b.Set(LayerOrientation, dx, dy, float32(occ.Orientation))
}

// Rebuild recomputes an agent's entire window around center. Called on
// spawn, respawn, and every move since the window itself shifts.
func (o *Observations) Rebuild(agentID int, center Pos) {
	b := o.BufferFor(agentID)
	b.Center = center
	b.clear()
	for dy := -b.Radius; dy <= b.Radius; dy++ {
		for dx := -b.Radius; dx <= b.Radius; dx++ {
			o.writeCell(b, dx, dy, center.Add(Pos{X: dx, Y: dy}))
		}
	}
}

// UpdateCell incrementally refreshes p in every agent whose current window
// contains it, without a full rebuild. Called after in-place mutations at
// p that don't move the agent itself (combat, construction, pickup,
// wildlife and tumor placement). Tint-only changes (tumor freezing, tint
// decay) are not pushed through UpdateCell and show up in an agent's
// window at its next full Rebuild.
func (o *Observations) UpdateCell(p Pos, agents *EntityStore) {
	for id := 0; id < MaxAgents; id++ {
		b := o.buffers[id]
		if b == nil {
			continue
		}
		ag := agents.Agent(id)
		if ag == nil || agents.Terminated(id) {
			continue
		}
		dx := p.X - b.Center.X
		dy := p.Y - b.Center.Y
		if b.inWindow(dx, dy) {
			o.writeCell(b, dx, dy, p)
		}
	}
}
