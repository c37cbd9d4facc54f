package game

import "testing"

func TestStats_RecordNoop(t *testing.T) {
	s := &Stats{}
	s.RecordNoop(NoopInvalid)
	s.RecordNoop(NoopInfeasible)
	s.RecordNoop(NoopNone)

	if s.ActionNoop != 3 {
		t.Errorf("expected every RecordNoop call to increment ActionNoop, got %d", s.ActionNoop)
	}
	if s.ActionInvalid != 1 {
		t.Errorf("expected ActionInvalid=1, got %d", s.ActionInvalid)
	}
	if s.ActionInfeasible != 1 {
		t.Errorf("expected ActionInfeasible=1, got %d", s.ActionInfeasible)
	}
}
