package results

import (
	"context"
	"testing"
	"time"
)

// storeFactories builds each RunStore implementation for the shared
// conformance tests.
var storeFactories = map[string]func(t *testing.T) RunStore{
	"memory": func(t *testing.T) RunStore {
		return NewInMemoryRunStore()
	},
	"sqlite": func(t *testing.T) RunStore {
		s, err := NewSQLiteRunStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewSQLiteRunStore: %v", err)
		}
		return s
	},
}

func sampleRun(id string) Run {
	return Run{
		ID:          id,
		Topology:    "torus",
		Nodes:       900,
		RepMode:     "neighbourBD",
		RepRate:     0.1,
		StepsPerGen: 1,
		Seed:        42,
	}
}

func TestRunStore_CreateAndGet(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()
			ctx := context.Background()

			run := sampleRun("run-1")
			if err := s.CreateRun(ctx, run); err != nil {
				t.Fatalf("CreateRun: %v", err)
			}

			got, err := s.GetRun(ctx, "run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if got.Topology != "torus" || got.Nodes != 900 || got.Seed != 42 {
				t.Errorf("GetRun = %+v", got)
			}
			if got.CreatedAt.IsZero() {
				t.Error("CreatedAt was not defaulted")
			}

			if _, err := s.GetRun(ctx, "missing"); err == nil {
				t.Error("expected error for missing run")
			}
		})
	}
}

func TestRunStore_RequiresID(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			if err := s.CreateRun(context.Background(), Run{}); err == nil {
				t.Error("expected error for empty run ID")
			}
		})
	}
}

func TestRunStore_ListRunsMostRecentFirst(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()
			ctx := context.Background()

			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			for i, id := range []string{"old", "mid", "new"} {
				run := sampleRun(id)
				run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
				if err := s.CreateRun(ctx, run); err != nil {
					t.Fatalf("CreateRun(%s): %v", id, err)
				}
			}

			runs, err := s.ListRuns(ctx)
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			if len(runs) != 3 {
				t.Fatalf("got %d runs, want 3", len(runs))
			}
			want := []string{"new", "mid", "old"}
			for i := range want {
				if runs[i].ID != want[i] {
					t.Errorf("runs[%d] = %s, want %s", i, runs[i].ID, want[i])
				}
			}
		})
	}
}

func TestRunStore_GenerationsRoundTrip(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()
			ctx := context.Background()

			if err := s.CreateRun(ctx, sampleRun("run-1")); err != nil {
				t.Fatalf("CreateRun: %v", err)
			}

			for gen := 1; gen <= 3; gen++ {
				stats := GenerationStats{
					RunID:       "run-1",
					Generation:  gen,
					Cooperators: 10 - gen,
					Defectors:   5 + gen,
					Empty:       3,
					MinScore:    -1,
					MaxScore:    12,
					MeanScore:   4.5,
				}
				if err := s.RecordGeneration(ctx, stats); err != nil {
					t.Fatalf("RecordGeneration(%d): %v", gen, err)
				}
			}

			stats, err := s.GetGenerations(ctx, "run-1")
			if err != nil {
				t.Fatalf("GetGenerations: %v", err)
			}
			if len(stats) != 3 {
				t.Fatalf("got %d snapshots, want 3", len(stats))
			}
			for i, g := range stats {
				if g.Generation != i+1 {
					t.Errorf("snapshot %d has generation %d", i, g.Generation)
				}
			}
			if stats[0].Cooperators != 9 || stats[0].Defectors != 6 || stats[0].MeanScore != 4.5 {
				t.Errorf("snapshot 0 = %+v", stats[0])
			}
		})
	}
}

func TestRunStore_FinishRun(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()
			ctx := context.Background()

			if err := s.CreateRun(ctx, sampleRun("run-1")); err != nil {
				t.Fatalf("CreateRun: %v", err)
			}
			if err := s.FinishRun(ctx, "run-1", 100); err != nil {
				t.Fatalf("FinishRun: %v", err)
			}

			got, err := s.GetRun(ctx, "run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if got.Generations != 100 {
				t.Errorf("generations = %d, want 100", got.Generations)
			}

			if err := s.FinishRun(ctx, "missing", 1); err == nil {
				t.Error("expected error for missing run")
			}
		})
	}
}

func TestSQLiteRunStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewSQLiteRunStore(dir)
	if err != nil {
		t.Fatalf("NewSQLiteRunStore: %v", err)
	}
	if err := s.CreateRun(ctx, sampleRun("run-1")); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewSQLiteRunStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetRun(ctx, "run-1"); err != nil {
		t.Errorf("run lost across reopen: %v", err)
	}
}
