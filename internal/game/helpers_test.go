package game

import (
	"testing"

	"github.com/nvandessel/followflee/internal/graph"
	"github.com/nvandessel/followflee/internal/random"
)

// defaultParams returns a valid parameter set tests can tweak.
func defaultParams() Params {
	return Params{RepMode: "simpleBD", RepRate: 0, StepsPerGen: 1}
}

// ringModel builds a model over an n-node ring with zeroed attributes.
func ringModel(t *testing.T, n int, params Params, seed uint64) (*Model, *graph.DenseAttributes) {
	t.Helper()
	g, err := graph.NewRing(n)
	if err != nil {
		t.Fatalf("NewRing(%d): %v", n, err)
	}
	attrs := graph.NewDenseAttributes(n)
	m, err := New(params, g, attrs, random.NewPCG(seed), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, attrs
}

// torusModel builds a model over a w x h torus with zeroed attributes.
func torusModel(t *testing.T, w, h int, params Params, seed uint64) (*Model, *graph.DenseAttributes) {
	t.Helper()
	g, err := graph.NewTorus(w, h)
	if err != nil {
		t.Fatalf("NewTorus(%d,%d): %v", w, h, err)
	}
	attrs := graph.NewDenseAttributes(w * h)
	m, err := New(params, g, attrs, random.NewPCG(seed), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, attrs
}

// place seeds an agent on a cell before BeforeLoop.
func place(attrs *graph.DenseAttributes, id int, s Strategy, genome Genome) {
	attrs.SetStrategy(id, int(s))
	attrs.SetActions(id, uint8(genome))
}

// checkPartition verifies that agents and empty cells are disjoint and
// together cover the full node set, and that occupancy matches the
// strategy attribute.
func checkPartition(t *testing.T, m *Model) {
	t.Helper()

	seen := make(map[int]string)
	for _, id := range m.Agents() {
		if prev, ok := seen[id]; ok {
			t.Fatalf("node %d appears twice (%s and agent)", id, prev)
		}
		seen[id] = "agent"
		if Strategy(m.attrs.Strategy(id)) == Empty {
			t.Errorf("agent cell %d has empty strategy", id)
		}
	}
	for _, id := range m.EmptyCells() {
		if prev, ok := seen[id]; ok {
			t.Fatalf("node %d appears twice (%s and empty)", id, prev)
		}
		seen[id] = "empty"
		if Strategy(m.attrs.Strategy(id)) != Empty {
			t.Errorf("empty cell %d has strategy %d", id, m.attrs.Strategy(id))
		}
	}

	if len(seen) != m.graph.Len() {
		t.Errorf("partition covers %d nodes, graph has %d", len(seen), m.graph.Len())
	}
}

// step runs one generation and fails the test on error or stop.
func step(t *testing.T, m *Model) {
	t.Helper()
	cont, err := m.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !cont {
		t.Fatal("Step reported stop")
	}
}
