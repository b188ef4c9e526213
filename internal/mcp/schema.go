package mcp

import "time"

// RunInput defines the input for the followflee_run tool.
type RunInput struct {
	Topology       string  `json:"topology,omitempty" jsonschema:"Graph topology: 'ring' or 'torus' (default: torus)"`
	Nodes          int     `json:"nodes,omitempty" jsonschema:"Ring size (ring topology only)"`
	Width          int     `json:"width,omitempty" jsonschema:"Torus width (torus topology only)"`
	Height         int     `json:"height,omitempty" jsonschema:"Torus height (torus topology only)"`
	RepMode        string  `json:"rep_mode,omitempty" jsonschema:"Replacement mode: 'simpleBD' or 'neighbourBD' (default: neighbourBD)"`
	RepRate        float64 `json:"rep_rate,omitempty" jsonschema:"Fraction of the population replaced per generation (0.0-1.0)"`
	StepsPerGen    int     `json:"steps_per_gen,omitempty" jsonschema:"Scan+move sub-steps per agent per generation (default: 1)"`
	Generations    int     `json:"generations,omitempty" jsonschema:"Number of generations to run (default: 100)"`
	Seed           uint64  `json:"seed,omitempty" jsonschema:"Random seed; the same seed reproduces the same run"`
	CoopFraction   float64 `json:"coop_fraction,omitempty" jsonschema:"Fraction of cells seeded as cooperators (default: 0.5)"`
	DefectFraction float64 `json:"defect_fraction,omitempty" jsonschema:"Fraction of cells seeded as defectors (default: 0.25)"`
}

// RunOutput defines the output for the followflee_run tool.
type RunOutput struct {
	RunID       string  `json:"run_id" jsonschema:"Identifier of the recorded run"`
	Generations int     `json:"generations" jsonschema:"Number of generations completed"`
	Cooperators int     `json:"cooperators" jsonschema:"Cooperators in the final generation"`
	Defectors   int     `json:"defectors" jsonschema:"Defectors in the final generation"`
	Empty       int     `json:"empty" jsonschema:"Empty cells in the final generation"`
	MeanScore   float64 `json:"mean_score" jsonschema:"Mean agent score in the final generation"`
	Message     string  `json:"message" jsonschema:"Human-readable result message"`
}

// StatsInput defines the input for the followflee_stats tool.
type StatsInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run to inspect; omit to list all runs"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of generation snapshots to return (default: all)"`
}

// StatsOutput defines the output for the followflee_stats tool.
type StatsOutput struct {
	Runs        []RunSummary         `json:"runs,omitempty" jsonschema:"Recorded runs, most recent first"`
	Generations []GenerationListItem `json:"generations,omitempty" jsonschema:"Per-generation snapshots for the requested run"`
	Count       int                  `json:"count" jsonschema:"Number of items returned"`
}

// RunSummary provides a list view of a recorded run.
type RunSummary struct {
	ID          string    `json:"id"`
	Topology    string    `json:"topology"`
	Nodes       int       `json:"nodes"`
	RepMode     string    `json:"rep_mode"`
	RepRate     float64   `json:"rep_rate"`
	Seed        uint64    `json:"seed"`
	Generations int       `json:"generations"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerationListItem provides a list view of a generation snapshot.
type GenerationListItem struct {
	Generation  int     `json:"generation"`
	Cooperators int     `json:"cooperators"`
	Defectors   int     `json:"defectors"`
	Empty       int     `json:"empty"`
	MinScore    int     `json:"min_score"`
	MaxScore    int     `json:"max_score"`
	MeanScore   float64 `json:"mean_score"`
}
