package graph

import "fmt"

// Regular is an in-memory regular graph with a precomputed adjacency list.
type Regular struct {
	nodes  []int
	adj    [][]int
	degree int
}

// NewRing builds a cycle of n nodes where each node is connected to its
// two immediate neighbours. n must be at least 3 so the neighbour set of
// every node is distinct.
func NewRing(n int) (*Regular, error) {
	if n < 3 {
		return nil, fmt.Errorf("ring requires at least 3 nodes, got %d", n)
	}

	g := &Regular{
		nodes:  make([]int, n),
		adj:    make([][]int, n),
		degree: 2,
	}
	for i := 0; i < n; i++ {
		g.nodes[i] = i
		g.adj[i] = []int{(i - 1 + n) % n, (i + 1) % n}
	}
	return g, nil
}

// NewTorus builds a w x h lattice with wrap-around edges and a von Neumann
// neighbourhood (up, down, left, right), giving every node degree 4.
// Both dimensions must be at least 3 so neighbours are distinct.
func NewTorus(w, h int) (*Regular, error) {
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("torus requires dimensions of at least 3, got %dx%d", w, h)
	}

	n := w * h
	g := &Regular{
		nodes:  make([]int, n),
		adj:    make([][]int, n),
		degree: 4,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := y*w + x
			g.nodes[id] = id
			g.adj[id] = []int{
				((y-1+h)%h)*w + x, // up
				((y+1)%h)*w + x,   // down
				y*w + (x-1+w)%w,   // left
				y*w + (x+1)%w,     // right
			}
		}
	}
	return g, nil
}

// Nodes returns all node ids in ascending order.
func (g *Regular) Nodes() []int { return g.nodes }

// Neighbours returns the out-neighbour set of a node.
func (g *Regular) Neighbours(id int) []int { return g.adj[id] }

// Degree returns the common neighbourhood size.
func (g *Regular) Degree() int { return g.degree }

// Len returns the number of nodes.
func (g *Regular) Len() int { return len(g.nodes) }

// DenseAttributes is a slice-backed Attributes implementation for graphs
// with contiguous ids starting at zero.
type DenseAttributes struct {
	strategy []int
	actions  []uint8
	score    []int
}

// NewDenseAttributes creates an attribute store for n nodes. All
// attributes start at zero, i.e. every cell is empty.
func NewDenseAttributes(n int) *DenseAttributes {
	return &DenseAttributes{
		strategy: make([]int, n),
		actions:  make([]uint8, n),
		score:    make([]int, n),
	}
}

func (a *DenseAttributes) Strategy(id int) int          { return a.strategy[id] }
func (a *DenseAttributes) SetStrategy(id, strategy int) { a.strategy[id] = strategy }

func (a *DenseAttributes) Actions(id int) uint8            { return a.actions[id] }
func (a *DenseAttributes) SetActions(id int, actions uint8) { a.actions[id] = actions }

func (a *DenseAttributes) Score(id int) int     { return a.score[id] }
func (a *DenseAttributes) SetScore(id, score int) { a.score[id] = score }
