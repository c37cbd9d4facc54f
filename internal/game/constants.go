package game

// Tunable simulation-wide constants. Grouped here rather than scattered
// through config so every file that needs one has a single import.
const (
	// MaxAgents bounds the dense agents[] mirror array (spec.md §4.2).
	MaxAgents = 256

	// MaxInventory is the default per-entity carry cap before a per-kind
	// override applies.
	MaxInventory = 5

	// ObservationRadius is half the side length (minus one, halved) of the
	// per-agent observation window: window side = 2*ObservationRadius+1.
	ObservationRadius = 5

	// AStarExploredCap bounds scripted-controller pathfinding search effort
	// (spec.md §4.8).
	AStarExploredCap = 250

	// SpiralRecenterArcs is how many spiral arcs a gatherer walks before
	// recentering its search, per spec.md §4.8.
	SpiralRecenterArcs = 100

	// OscillationRingSize is the anti-oscillation position ring buffer length.
	OscillationRingSize = 12

	// EscapeTicks is how long Escape mode persists once triggered.
	EscapeTicks = 10
)
