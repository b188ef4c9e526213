// Package simulation provides a scenario harness for multi-generation
// experiments against the real game model, plus assertions over the
// collected generation history.
package simulation

import (
	"github.com/nvandessel/followflee/internal/game"
	"github.com/nvandessel/followflee/internal/graph"
)

// AgentSpec places one agent on the starting grid.
type AgentSpec struct {
	Cell     int
	Strategy game.Strategy
	Genome   game.Genome
}

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name string

	// Topology is "ring" or "torus". Nodes sizes a ring; Width and
	// Height size a torus.
	Topology string
	Nodes    int
	Width    int
	Height   int

	Params game.Params
	Agents []AgentSpec
	Seed   uint64

	// Generations is the number of Step calls to execute.
	Generations int

	// BeforeGeneration, when non-nil, is called before each generation.
	// Use it to manipulate attributes between generations.
	BeforeGeneration func(gen int, attrs *graph.DenseAttributes)
}

// GenerationSnapshot captures the full population state after one
// generation.
type GenerationSnapshot struct {
	Index  int
	Census game.Census

	// Strategies, Scores and Genomes map occupied cell id to the agent's
	// attributes at the generation boundary.
	Strategies map[int]game.Strategy
	Scores     map[int]int
	Genomes    map[int]game.Genome
}

// SimulationResult captures all generations and the final model state.
type SimulationResult struct {
	Generations []GenerationSnapshot
	Model       *game.Model
	Attrs       *graph.DenseAttributes
}

// Final returns the last generation's snapshot.
func (r SimulationResult) Final() GenerationSnapshot {
	return r.Generations[len(r.Generations)-1]
}
