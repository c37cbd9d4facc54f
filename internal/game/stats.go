package game

// Stats accumulates per-run counters surfaced through the external
// interface for debugging and training telemetry (spec.md §7: invalid and
// infeasible actions are counted, never thrown).
type Stats struct {
	Tick int

	ActionInvalid    int // malformed verb/arg, counted as Noop
	ActionInfeasible int // valid verb/arg but couldn't execute, counted as Noop
	ActionNoop       int
	ActionMove       int
	ActionAttack     int
	ActionUse        int
	ActionBuild      int
	ActionGive       int
	ActionPickup     int
	ActionDrop       int
	ActionPlace      int
	ActionPlant      int

	AgentsKilled    int
	AgentsRespawned int
	TumorsSpawned   int
	BuildingsBuilt  int

	PathfindFailures int // A* exhausted its node budget; fell back to greedy/spiral
}

// NoopReason classifies why an action resolved to a no-op, for stat bookkeeping.
type NoopReason uint8

const (
	NoopNone NoopReason = iota
	NoopInvalid
	NoopInfeasible
)

// RecordNoop increments the appropriate counter for a no-op resolution.
func (s *Stats) RecordNoop(reason NoopReason) {
	s.ActionNoop++
	switch reason {
	case NoopInvalid:
		s.ActionInvalid++
	case NoopInfeasible:
		s.ActionInfeasible++
	}
}
