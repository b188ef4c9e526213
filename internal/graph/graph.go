// Package graph defines the graph and attribute collaborators the game
// core consumes. The core never assumes a concrete representation; it
// relies only on the regular-graph contract: every node carries a stable
// integer id and the same fixed out-degree, defined once at construction.
package graph

// Graph exposes a fixed-degree graph to the simulation core.
type Graph interface {
	// Nodes returns all node ids in ascending order. The returned slice
	// must not be mutated.
	Nodes() []int

	// Neighbours returns the fixed out-neighbour set of a node in a
	// stable order. The returned slice must not be mutated.
	Neighbours(id int) []int

	// Degree returns the common neighbourhood size shared by all nodes.
	Degree() int

	// Len returns the number of nodes.
	Len() int
}

// Attributes is the per-node attribute store. Strategy is a small integer
// (0 = empty cell), actions is the 8-bit movement genome, and score is the
// generation-scoped fitness accumulator.
type Attributes interface {
	Strategy(id int) int
	SetStrategy(id, strategy int)

	Actions(id int) uint8
	SetActions(id int, actions uint8)

	Score(id int) int
	SetScore(id, score int)
}
