// Package results provides persistence for simulation runs and their
// per-generation statistics.
package results

import (
	"context"
	"time"
)

// Run is a single simulation run with its parameters.
type Run struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Topology is the graph topology: "ring" or "torus".
	Topology string `json:"topology"`

	// Nodes is the total number of cells in the graph.
	Nodes int `json:"nodes"`

	// RepMode is the replacement strategy used.
	RepMode string `json:"rep_mode"`

	// RepRate is the fraction of the population replaced per generation.
	RepRate float64 `json:"rep_rate"`

	// StepsPerGen is the number of sub-steps per generation.
	StepsPerGen int `json:"steps_per_gen"`

	// Seed is the random seed the run started from.
	Seed uint64 `json:"seed"`

	// Generations is the number of generations completed.
	Generations int `json:"generations"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at"`
}

// GenerationStats is a per-generation snapshot of the population.
type GenerationStats struct {
	// RunID identifies the run this snapshot belongs to.
	RunID string `json:"run_id"`

	// Generation is the generation number, starting at 1.
	Generation int `json:"generation"`

	// Cooperators and Defectors count occupied cells by strategy.
	Cooperators int `json:"cooperators"`
	Defectors   int `json:"defectors"`

	// Empty counts unoccupied cells.
	Empty int `json:"empty"`

	// MinScore, MaxScore and MeanScore summarize agent scores for the
	// generation.
	MinScore  int     `json:"min_score"`
	MaxScore  int     `json:"max_score"`
	MeanScore float64 `json:"mean_score"`
}

// RunStore persists simulation runs and their generation statistics.
type RunStore interface {
	// CreateRun records a new run. The run's ID must be unique.
	CreateRun(ctx context.Context, run Run) error

	// RecordGeneration appends a generation snapshot to a run.
	RecordGeneration(ctx context.Context, stats GenerationStats) error

	// FinishRun records the number of generations a run completed.
	FinishRun(ctx context.Context, id string, generations int) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (Run, error)

	// ListRuns returns all runs, most recent first.
	ListRuns(ctx context.Context) ([]Run, error)

	// GetGenerations returns a run's snapshots in generation order.
	GetGenerations(ctx context.Context, runID string) ([]GenerationStats, error)

	// Close releases any resources held by the store.
	Close() error
}
