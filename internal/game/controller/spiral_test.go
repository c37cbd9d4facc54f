package controller

import (
	"testing"

	"github.com/lucasdow/tribalvillage/internal/game"
)

func TestSpiralSearch_ArcLengthsGrowInPairs(t *testing.T) {
	s := NewSpiralSearch(game.Pos{X: 0, Y: 0})
	// First two arcs are length 1, then two arcs of length 2, then two of
	// length 3, with the turns cycling N,E,S,W.
	want := []game.Direction{
		game.DirN, game.DirE,
		game.DirS, game.DirS, game.DirW, game.DirW,
		game.DirN, game.DirN, game.DirN,
	}
	for i, d := range want {
		if got := s.Next(); got != d {
			t.Fatalf("spiral step %d: expected %v, got %v", i, d, got)
		}
	}
}

func TestSpiralSearch_RecenterAfterEnoughArcs(t *testing.T) {
	s := NewSpiralSearch(game.Pos{X: 5, Y: 5})
	// Arc lengths run 1,1,2,2,...: the first 2k arcs take k(k+1) steps.
	pairs := game.SpiralRecenterArcs / 2
	for i := 0; i < pairs*(pairs+1); i++ {
		s.Next()
	}
	if !s.Recenter(game.Pos{X: 9, Y: 9}) {
		t.Fatal("expected spiral to be ready to recenter after enough arcs")
	}
	if s.Origin() != (game.Pos{X: 9, Y: 9}) {
		t.Errorf("expected origin to update to the new center, got %v", s.Origin())
	}
}

func TestSpiralSearch_NoRecenterTooSoon(t *testing.T) {
	s := NewSpiralSearch(game.Pos{X: 0, Y: 0})
	s.Next()
	if s.Recenter(game.Pos{X: 1, Y: 1}) {
		t.Error("expected no recenter after a single step")
	}
}
