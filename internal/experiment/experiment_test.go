package experiment

import (
	"context"
	"strings"
	"testing"

	"github.com/nvandessel/followflee/internal/game"
	"github.com/nvandessel/followflee/internal/results"
)

func sampleSpec() Spec {
	return Spec{
		Topology:       "torus",
		Width:          5,
		Height:         5,
		Params:         game.Params{RepMode: "simpleBD", RepRate: 0.2, StepsPerGen: 1},
		Generations:    5,
		Seed:           42,
		CoopFraction:   0.4,
		DefectFraction: 0.4,
	}
}

func TestRun_RecordsEveryGeneration(t *testing.T) {
	store := results.NewInMemoryRunStore()
	ctx := context.Background()

	res, err := Run(ctx, sampleSpec(), store, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Generations != 5 {
		t.Errorf("completed %d generations, want 5", res.Generations)
	}
	if !strings.HasPrefix(res.RunID, "run-") {
		t.Errorf("run ID %q has no run- prefix", res.RunID)
	}

	run, err := store.GetRun(ctx, res.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Topology != "torus" || run.Nodes != 25 || run.Seed != 42 {
		t.Errorf("stored run = %+v", run)
	}
	if run.Generations != 5 {
		t.Errorf("stored run completed %d generations, want 5", run.Generations)
	}

	stats, err := store.GetGenerations(ctx, res.RunID)
	if err != nil {
		t.Fatalf("GetGenerations: %v", err)
	}
	if len(stats) != 5 {
		t.Fatalf("stored %d snapshots, want 5", len(stats))
	}
	for i, g := range stats {
		if g.Generation != i+1 {
			t.Errorf("snapshot %d has generation %d", i, g.Generation)
		}
		// Population is conserved: replacement swaps cells, never counts.
		if g.Cooperators+g.Defectors+g.Empty != 25 {
			t.Errorf("generation %d: cells do not sum to 25: %+v", g.Generation, g)
		}
	}
}

func TestRun_SeedFractionsRespected(t *testing.T) {
	spec := sampleSpec()
	spec.Generations = 1
	spec.Params.RepRate = 0

	res, err := Run(context.Background(), spec, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// floor(25*0.4) = 10 of each strategy, 5 empty. Replacement preserves
	// the totals but may convert between strategies.
	total := res.Final.Cooperators + res.Final.Defectors
	if total != 20 || res.Final.Empty != 5 {
		t.Errorf("final census = %+v, want 20 agents and 5 empty", res.Final)
	}
}

func TestRun_DeterministicForSameSeed(t *testing.T) {
	ctx := context.Background()

	var finals [2]game.Census
	var ids [2]string
	for i := range finals {
		res, err := Run(ctx, sampleSpec(), nil, nil, nil)
		if err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		finals[i] = res.Final
		ids[i] = res.RunID
	}

	if finals[0] != finals[1] {
		t.Errorf("same seed produced different outcomes: %+v vs %+v", finals[0], finals[1])
	}
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	ctx := context.Background()

	spec := sampleSpec()
	spec.Generations = 20
	res1, err := Run(ctx, spec, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	spec.Seed = 1337
	res2, err := Run(ctx, spec, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Not guaranteed for every seed pair, but these diverge.
	if res1.Final == res2.Final {
		t.Errorf("different seeds produced identical outcomes: %+v", res1.Final)
	}
}

func TestRun_InvalidSpecs(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"unknown topology", func(s *Spec) { s.Topology = "lattice" }},
		{"tiny ring", func(s *Spec) { s.Topology = "ring"; s.Nodes = 2 }},
		{"bad rep mode", func(s *Spec) { s.Params.RepMode = "moran" }},
		{"zero generations", func(s *Spec) { s.Generations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := sampleSpec()
			tt.mutate(&spec)
			if _, err := Run(ctx, spec, nil, nil, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spec := sampleSpec()
	spec.Generations = 1000
	if _, err := Run(ctx, spec, nil, nil, nil); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRun_RingTopology(t *testing.T) {
	spec := Spec{
		Topology:       "ring",
		Nodes:          20,
		Params:         game.Params{RepMode: "neighbourBD", RepRate: 0.1, StepsPerGen: 2},
		Generations:    3,
		Seed:           7,
		CoopFraction:   0.5,
		DefectFraction: 0.25,
	}

	store := results.NewInMemoryRunStore()
	res, err := Run(context.Background(), spec, store, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Generations != 3 {
		t.Errorf("completed %d generations, want 3", res.Generations)
	}
	// floor(20*0.5) + floor(20*0.25) = 15 agents.
	if got := res.Final.Cooperators + res.Final.Defectors; got != 15 {
		t.Errorf("final population %d, want 15", got)
	}
}
