package controller

import (
	"container/heap"

	"github.com/lucasdow/tribalvillage/internal/game"
)

// astarNode is one open-set entry. seq is the insertion order, used as the
// deterministic tie-break so two runs with identical costs always expand
// nodes in the same order regardless of map iteration (spec.md §4.8).
type astarNode struct {
	pos      game.Pos
	g        int
	f        int
	seq      int
	index    int // heap.Interface bookkeeping
}

type nodeHeap []*astarNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Passable reports whether a tile may be entered, for the pathfinder's
// use — supplied by the caller so the search stays decoupled from the
// engine's own grid representation.
type Passable func(p game.Pos) bool

// FindPath runs an A* search from start to goal using Chebyshev distance
// as the heuristic (consistent for 8-directional movement), capped at
// AStarExploredCap expanded nodes. Returns the first step to take and
// ok=false if the cap is hit before reaching the goal (caller should fall
// back to spiral/greedy movement, never treat this as fatal — spec.md §7).
func FindPath(start, goal game.Pos, passable Passable) (game.Direction, bool) {
	if start == goal {
		return game.DirNone, true
	}

	open := &nodeHeap{}
	heap.Init(open)
	seq := 0
	startNode := &astarNode{pos: start, g: 0, f: start.Chebyshev(goal), seq: seq}
	heap.Push(open, startNode)

	cameFrom := map[game.Pos]game.Pos{}
	bestG := map[game.Pos]int{start: 0}
	explored := 0

	for open.Len() > 0 && explored < game.AStarExploredCap {
		cur := heap.Pop(open).(*astarNode)
		explored++
		if cur.pos == goal {
			return firstStep(start, goal, cameFrom), true
		}
		for _, d := range game.AllDirections {
			n := cur.pos.Add(d.Delta())
			if !passable(n) {
				continue
			}
			tentativeG := cur.g + 1
			if existing, ok := bestG[n]; ok && tentativeG >= existing {
				continue
			}
			bestG[n] = tentativeG
			cameFrom[n] = cur.pos
			seq++
			heap.Push(open, &astarNode{pos: n, g: tentativeG, f: tentativeG + n.Chebyshev(goal), seq: seq})
		}
	}
	return game.DirNone, false
}

// firstStep walks the cameFrom chain back from goal to the tile adjacent
// to start, returning the direction of that first move.
func firstStep(start, goal game.Pos, cameFrom map[game.Pos]game.Pos) game.Direction {
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			return game.DirNone
		}
		if prev == start {
			return directionBetween(start, cur)
		}
		cur = prev
	}
}

func directionBetween(from, to game.Pos) game.Direction {
	for _, d := range game.AllDirections {
		if from.Add(d.Delta()) == to {
			return d
		}
	}
	return game.DirNone
}
