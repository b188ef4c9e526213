// Package experiment wires a graph, a seeded population and a game model
// into a full simulation run, recording per-generation statistics.
package experiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nvandessel/followflee/internal/game"
	"github.com/nvandessel/followflee/internal/graph"
	"github.com/nvandessel/followflee/internal/logging"
	"github.com/nvandessel/followflee/internal/random"
	"github.com/nvandessel/followflee/internal/results"
)

// Spec describes a single simulation run.
type Spec struct {
	// Topology is "ring" or "torus".
	Topology string

	// Nodes is the ring size. Used only for ring topology.
	Nodes int

	// Width and Height are the torus dimensions. Used only for torus
	// topology.
	Width  int
	Height int

	// Params are the per-generation model parameters.
	Params game.Params

	// Generations is the number of generations to run.
	Generations int

	// Seed initializes the pseudo-random source.
	Seed uint64

	// CoopFraction and DefectFraction are the fractions of nodes seeded
	// as cooperators and defectors. The remainder stays empty.
	CoopFraction   float64
	DefectFraction float64
}

// Result summarizes a completed run.
type Result struct {
	// RunID identifies the run in the store.
	RunID string

	// Generations is the number of generations completed.
	Generations int

	// Final is the population census after the last generation.
	Final game.Census
}

// Run executes a simulation run end to end: it builds the graph, seeds
// the population, steps the model for the requested generations, and
// records each generation's census in store. The store and tracer may be
// nil, in which case nothing is persisted or traced.
func Run(ctx context.Context, spec Spec, store results.RunStore, log *slog.Logger, tracer *logging.GenerationLogger) (Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	g, err := buildGraph(spec)
	if err != nil {
		return Result{}, err
	}

	attrs := graph.NewDenseAttributes(g.Len())
	src := random.NewPCG(spec.Seed)
	seedPopulation(g, attrs, src, spec.CoopFraction, spec.DefectFraction)

	m, err := game.New(spec.Params, g, attrs, src, log)
	if err != nil {
		return Result{}, err
	}
	m.BeforeLoop()

	if spec.Generations < 1 {
		return Result{}, fmt.Errorf("generations must be positive, got %d", spec.Generations)
	}

	runID := newRunID(spec)
	if store != nil {
		run := results.Run{
			ID:          runID,
			Topology:    spec.Topology,
			Nodes:       g.Len(),
			RepMode:     spec.Params.RepMode,
			RepRate:     spec.Params.RepRate,
			StepsPerGen: spec.Params.StepsPerGen,
			Seed:        spec.Seed,
			CreatedAt:   time.Now().UTC(),
		}
		if err := store.CreateRun(ctx, run); err != nil {
			return Result{}, fmt.Errorf("recording run: %w", err)
		}
	}

	log.Info("run started",
		"run_id", runID,
		"topology", spec.Topology,
		"nodes", g.Len(),
		"agents", len(m.Agents()),
		"generations", spec.Generations)

	completed := 0
	for gen := 1; gen <= spec.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("run interrupted at generation %d: %w", gen, err)
		}

		cont, err := m.Step()
		if err != nil {
			return Result{}, fmt.Errorf("generation %d: %w", gen, err)
		}

		census := m.Census()
		completed++

		tracer.Log(map[string]any{
			"run_id":      runID,
			"generation":  gen,
			"cooperators": census.Cooperators,
			"defectors":   census.Defectors,
			"empty":       census.Empty,
			"mean_score":  census.MeanScore,
		})

		if store != nil {
			stats := results.GenerationStats{
				RunID:       runID,
				Generation:  gen,
				Cooperators: census.Cooperators,
				Defectors:   census.Defectors,
				Empty:       census.Empty,
				MinScore:    census.MinScore,
				MaxScore:    census.MaxScore,
				MeanScore:   census.MeanScore,
			}
			if err := store.RecordGeneration(ctx, stats); err != nil {
				return Result{}, fmt.Errorf("recording generation %d: %w", gen, err)
			}
		}

		if !cont {
			break
		}
	}

	if store != nil {
		if err := store.FinishRun(ctx, runID, completed); err != nil {
			return Result{}, fmt.Errorf("finishing run: %w", err)
		}
	}

	final := m.Census()
	log.Info("run finished",
		"run_id", runID,
		"generations", completed,
		"cooperators", final.Cooperators,
		"defectors", final.Defectors)

	return Result{RunID: runID, Generations: completed, Final: final}, nil
}

// buildGraph constructs the regular graph the spec asks for.
func buildGraph(spec Spec) (*graph.Regular, error) {
	switch spec.Topology {
	case "ring":
		return graph.NewRing(spec.Nodes)
	case "torus":
		return graph.NewTorus(spec.Width, spec.Height)
	default:
		return nil, fmt.Errorf("unknown topology: %s (valid: ring, torus)", spec.Topology)
	}
}

// seedPopulation places the initial agents. Node ids are shuffled with
// the run's own source, then the first floor(n*coop) become cooperators
// and the next floor(n*defect) become defectors, each with a uniformly
// random genome. The rest stay empty.
func seedPopulation(g graph.Graph, attrs graph.Attributes, src random.Source, coop, defect float64) {
	nodes := g.Nodes()
	ids := make([]int, len(nodes))
	copy(ids, nodes)
	src.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	n := len(ids)
	numCoop := int(math.Floor(float64(n) * coop))
	numDefect := int(math.Floor(float64(n) * defect))

	for i := 0; i < numCoop && i < n; i++ {
		attrs.SetStrategy(ids[i], int(game.Cooperator))
		attrs.SetActions(ids[i], uint8(src.Uniform(255)))
	}
	for i := numCoop; i < numCoop+numDefect && i < n; i++ {
		attrs.SetStrategy(ids[i], int(game.Defector))
		attrs.SetActions(ids[i], uint8(src.Uniform(255)))
	}
}

// newRunID derives a short, unique run identifier from the spec and the
// current time.
func newRunID(spec Spec) string {
	content := fmt.Sprintf("%s|%d|%dx%d|%s|%f|%d|%d|%d",
		spec.Topology, spec.Nodes, spec.Width, spec.Height,
		spec.Params.RepMode, spec.Params.RepRate, spec.Params.StepsPerGen,
		spec.Seed, time.Now().UnixNano())
	hash := sha256.Sum256([]byte(content))
	return "run-" + hex.EncodeToString(hash[:])[:12]
}
