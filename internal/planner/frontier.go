package planner

import "container/heap"

// node is one frontier entry: a reached state, its path from the start, and
// the A* bookkeeping values.
type node struct {
	state State
	key   string
	g     int // cost of the path so far
	f     int // g + heuristic
	path  []Move
	seq   int // insertion order, for deterministic tie-breaking
	index int
}

// frontier is a priority queue ordered by (f asc, g desc, seq asc). Preferring
// larger g among equal-f nodes expands deeper, more-certain paths first; the
// insertion sequence keeps the order fully deterministic.
type frontier struct {
	nodes []*node
	seq   int
}

func newFrontier() *frontier {
	fr := &frontier{}
	heap.Init(fr)
	return fr
}

func (fr *frontier) push(n *node) {
	n.seq = fr.seq
	fr.seq++
	heap.Push(fr, n)
}

func (fr *frontier) popMin() *node {
	return heap.Pop(fr).(*node)
}

func (fr *frontier) isEmpty() bool {
	return len(fr.nodes) == 0
}

func (fr *frontier) Len() int { return len(fr.nodes) }

func (fr *frontier) Less(i, j int) bool {
	a, b := fr.nodes[i], fr.nodes[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return a.seq < b.seq
}

func (fr *frontier) Swap(i, j int) {
	fr.nodes[i], fr.nodes[j] = fr.nodes[j], fr.nodes[i]
	fr.nodes[i].index = i
	fr.nodes[j].index = j
}

func (fr *frontier) Push(x any) {
	n := x.(*node)
	n.index = len(fr.nodes)
	fr.nodes = append(fr.nodes, n)
}

func (fr *frontier) Pop() any {
	old := fr.nodes
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	fr.nodes = old[:n-1]
	return x
}
