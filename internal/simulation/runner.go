package simulation

import (
	"testing"

	"github.com/nvandessel/followflee/internal/game"
	"github.com/nvandessel/followflee/internal/graph"
	"github.com/nvandessel/followflee/internal/random"
)

// Runner orchestrates multi-generation experiments against a real graph
// and game model.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected generation history.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	g := r.buildGraph(scenario)
	attrs := graph.NewDenseAttributes(g.Len())

	for _, a := range scenario.Agents {
		attrs.SetStrategy(a.Cell, int(a.Strategy))
		attrs.SetActions(a.Cell, uint8(a.Genome))
	}

	src := random.NewPCG(scenario.Seed)
	m, err := game.New(scenario.Params, g, attrs, src, nil)
	if err != nil {
		r.t.Fatalf("Run(%s): model construction: %v", scenario.Name, err)
	}
	m.BeforeLoop()

	snapshots := make([]GenerationSnapshot, 0, scenario.Generations)
	for gen := 0; gen < scenario.Generations; gen++ {
		if scenario.BeforeGeneration != nil {
			scenario.BeforeGeneration(gen, attrs)
		}
		if _, err := m.Step(); err != nil {
			r.t.Fatalf("Run(%s): generation %d: %v", scenario.Name, gen, err)
		}
		snapshots = append(snapshots, r.snapshot(gen, m, attrs))
	}

	return SimulationResult{Generations: snapshots, Model: m, Attrs: attrs}
}

// buildGraph constructs the scenario's graph.
func (r *Runner) buildGraph(scenario Scenario) *graph.Regular {
	r.t.Helper()

	var g *graph.Regular
	var err error
	switch scenario.Topology {
	case "ring":
		g, err = graph.NewRing(scenario.Nodes)
	case "torus":
		g, err = graph.NewTorus(scenario.Width, scenario.Height)
	default:
		r.t.Fatalf("buildGraph(%s): unknown topology %q", scenario.Name, scenario.Topology)
	}
	if err != nil {
		r.t.Fatalf("buildGraph(%s): %v", scenario.Name, err)
	}
	return g
}

// snapshot records the population state at a generation boundary.
func (r *Runner) snapshot(index int, m *game.Model, attrs *graph.DenseAttributes) GenerationSnapshot {
	snap := GenerationSnapshot{
		Index:      index,
		Census:     m.Census(),
		Strategies: make(map[int]game.Strategy),
		Scores:     make(map[int]int),
		Genomes:    make(map[int]game.Genome),
	}
	for _, id := range m.Agents() {
		snap.Strategies[id] = game.Strategy(attrs.Strategy(id))
		snap.Scores[id] = attrs.Score(id)
		snap.Genomes[id] = game.Genome(attrs.Actions(id))
	}
	return snap
}
