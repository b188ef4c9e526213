package simulation

import (
	"testing"

	"github.com/nvandessel/followflee/internal/game"
)

// AssertPopulationConstant asserts that the number of agents never drifts
// across the run.
func AssertPopulationConstant(t *testing.T, result SimulationResult, want int) {
	t.Helper()
	for _, snap := range result.Generations {
		if got := len(snap.Strategies); got != want {
			t.Errorf("AssertPopulationConstant: generation %d has %d agents, want %d", snap.Index, got, want)
		}
	}
}

// AssertCellsSum asserts that cooperators, defectors and empty cells sum
// to the graph size in every generation.
func AssertCellsSum(t *testing.T, result SimulationResult, total int) {
	t.Helper()
	for _, snap := range result.Generations {
		c := snap.Census
		if c.Cooperators+c.Defectors+c.Empty != total {
			t.Errorf("AssertCellsSum: generation %d: %d+%d+%d != %d",
				snap.Index, c.Cooperators, c.Defectors, c.Empty, total)
		}
	}
}

// AssertNoEmptyAgents asserts that every tracked agent cell holds a real
// strategy.
func AssertNoEmptyAgents(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Generations {
		for cell, s := range snap.Strategies {
			if s != game.Cooperator && s != game.Defector {
				t.Errorf("AssertNoEmptyAgents: generation %d: cell %d holds strategy %v", snap.Index, cell, s)
			}
		}
	}
}

// AssertIdenticalRuns asserts that two runs produced the same history:
// same positions, strategies, scores and genomes every generation.
func AssertIdenticalRuns(t *testing.T, a, b SimulationResult) {
	t.Helper()
	if len(a.Generations) != len(b.Generations) {
		t.Fatalf("AssertIdenticalRuns: %d vs %d generations", len(a.Generations), len(b.Generations))
	}
	for i := range a.Generations {
		sa, sb := a.Generations[i], b.Generations[i]
		if len(sa.Strategies) != len(sb.Strategies) {
			t.Errorf("AssertIdenticalRuns: generation %d: %d vs %d agents", i, len(sa.Strategies), len(sb.Strategies))
			continue
		}
		for cell, s := range sa.Strategies {
			if sb.Strategies[cell] != s {
				t.Errorf("AssertIdenticalRuns: generation %d: cell %d strategy %v vs %v", i, cell, s, sb.Strategies[cell])
			}
			if sa.Scores[cell] != sb.Scores[cell] {
				t.Errorf("AssertIdenticalRuns: generation %d: cell %d score %d vs %d", i, cell, sa.Scores[cell], sb.Scores[cell])
			}
			if sa.Genomes[cell] != sb.Genomes[cell] {
				t.Errorf("AssertIdenticalRuns: generation %d: cell %d genome %#x vs %#x", i, cell, sa.Genomes[cell], sb.Genomes[cell])
			}
		}
	}
}

// AssertGenomePoolClosed asserts that every genome present after the run
// already existed in the initial population. Replacement clones, it never
// mutates.
func AssertGenomePoolClosed(t *testing.T, result SimulationResult, initial []game.Genome) {
	t.Helper()
	pool := make(map[game.Genome]bool, len(initial))
	for _, g := range initial {
		pool[g] = true
	}
	for _, snap := range result.Generations {
		for cell, g := range snap.Genomes {
			if !pool[g] {
				t.Errorf("AssertGenomePoolClosed: generation %d: cell %d carries novel genome %#x", snap.Index, cell, g)
			}
		}
	}
}
