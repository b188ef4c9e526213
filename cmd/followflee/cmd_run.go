package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvandessel/followflee/internal/config"
	"github.com/nvandessel/followflee/internal/experiment"
	"github.com/nvandessel/followflee/internal/game"
	"github.com/nvandessel/followflee/internal/logging"
	"github.com/nvandessel/followflee/internal/results"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and record per-generation statistics",
		Long: `Run a follow/flee simulation. Parameters come from
.followflee/config.yaml (plus FOLLOWFLEE_* environment variables) and
can be overridden with flags. Results are recorded in the project's
.followflee/followflee.db.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			tracer := logging.NewGenerationLogger(filepath.Join(root, ".followflee"), cfg.Logging.Level)
			defer tracer.Close()

			noStore, _ := cmd.Flags().GetBool("no-store")
			var store results.RunStore
			if !noStore {
				sqlStore, err := results.NewSQLiteRunStore(root)
				if err != nil {
					return fmt.Errorf("failed to open run store: %w", err)
				}
				defer sqlStore.Close()
				store = sqlStore
			}

			spec := experiment.Spec{
				Topology: cfg.Graph.Topology,
				Nodes:    cfg.Graph.Nodes,
				Width:    cfg.Graph.Width,
				Height:   cfg.Graph.Height,
				Params: game.Params{
					RepMode:     cfg.Model.RepMode,
					RepRate:     cfg.Model.RepRate,
					StepsPerGen: cfg.Model.StepsPerGen,
				},
				Generations:    cfg.Run.Generations,
				Seed:           cfg.Run.Seed,
				CoopFraction:   cfg.Run.CoopFraction,
				DefectFraction: cfg.Run.DefectFraction,
			}

			res, err := experiment.Run(context.Background(), spec, store, log, tracer)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"run_id":      res.RunID,
					"generations": res.Generations,
					"cooperators": res.Final.Cooperators,
					"defectors":   res.Final.Defectors,
					"empty":       res.Final.Empty,
					"min_score":   res.Final.MinScore,
					"max_score":   res.Final.MaxScore,
					"mean_score":  res.Final.MeanScore,
				})
			}

			fmt.Printf("Run %s completed %d generations\n", res.RunID, res.Generations)
			fmt.Printf("  Cooperators: %d\n", res.Final.Cooperators)
			fmt.Printf("  Defectors:   %d\n", res.Final.Defectors)
			fmt.Printf("  Empty cells: %d\n", res.Final.Empty)
			fmt.Printf("  Mean score:  %.2f\n", res.Final.MeanScore)
			return nil
		},
	}

	cmd.Flags().String("topology", "", "Graph topology (ring, torus)")
	cmd.Flags().Int("nodes", 0, "Ring size (ring topology)")
	cmd.Flags().Int("width", 0, "Torus width")
	cmd.Flags().Int("height", 0, "Torus height")
	cmd.Flags().String("rep-mode", "", "Replacement mode (simpleBD, neighbourBD)")
	cmd.Flags().Float64("rep-rate", -1, "Fraction of population replaced per generation")
	cmd.Flags().Int("steps-per-gen", 0, "Scan+move sub-steps per agent per generation")
	cmd.Flags().Int("generations", 0, "Number of generations to run")
	cmd.Flags().Uint64("seed", 0, "Random seed")
	cmd.Flags().Float64("coop", -1, "Fraction of cells seeded as cooperators")
	cmd.Flags().Float64("defect", -1, "Fraction of cells seeded as defectors")
	cmd.Flags().Bool("no-store", false, "Do not record the run in the database")

	return cmd
}

// applyRunFlags overlays explicitly set flags on top of the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("topology") {
		cfg.Graph.Topology, _ = cmd.Flags().GetString("topology")
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Graph.Nodes, _ = cmd.Flags().GetInt("nodes")
	}
	if cmd.Flags().Changed("width") {
		cfg.Graph.Width, _ = cmd.Flags().GetInt("width")
	}
	if cmd.Flags().Changed("height") {
		cfg.Graph.Height, _ = cmd.Flags().GetInt("height")
	}
	if cmd.Flags().Changed("rep-mode") {
		cfg.Model.RepMode, _ = cmd.Flags().GetString("rep-mode")
	}
	if cmd.Flags().Changed("rep-rate") {
		cfg.Model.RepRate, _ = cmd.Flags().GetFloat64("rep-rate")
	}
	if cmd.Flags().Changed("steps-per-gen") {
		cfg.Model.StepsPerGen, _ = cmd.Flags().GetInt("steps-per-gen")
	}
	if cmd.Flags().Changed("generations") {
		cfg.Run.Generations, _ = cmd.Flags().GetInt("generations")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("coop") {
		cfg.Run.CoopFraction, _ = cmd.Flags().GetFloat64("coop")
	}
	if cmd.Flags().Changed("defect") {
		cfg.Run.DefectFraction, _ = cmd.Flags().GetFloat64("defect")
	}
}
