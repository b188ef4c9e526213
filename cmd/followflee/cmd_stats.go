package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/followflee/internal/results"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [run-id]",
		Short: "List recorded runs or show a run's generation history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			store, err := results.NewSQLiteRunStore(root)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer store.Close()

			ctx := context.Background()

			if len(args) == 0 {
				return listRuns(ctx, store, jsonOut)
			}
			return showRun(ctx, store, args[0], jsonOut)
		},
	}

	return cmd
}

func listRuns(ctx context.Context, store results.RunStore, jsonOut bool) error {
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"runs":  runs,
			"count": len(runs),
		})
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-16s %-8s %6s %-12s %8s %12s %6s\n",
		"RUN", "TOPO", "NODES", "REP MODE", "RATE", "GENERATIONS", "SEED")
	for _, run := range runs {
		fmt.Printf("%-16s %-8s %6d %-12s %8.2f %12d %6d\n",
			run.ID, run.Topology, run.Nodes, run.RepMode, run.RepRate, run.Generations, run.Seed)
	}
	return nil
}

func showRun(ctx context.Context, store results.RunStore, id string, jsonOut bool) error {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	stats, err := store.GetGenerations(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to read generations: %w", err)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"run":         run,
			"generations": stats,
		})
	}

	fmt.Printf("Run %s: %s, %d nodes, %s @ %.2f, seed %d\n",
		run.ID, run.Topology, run.Nodes, run.RepMode, run.RepRate, run.Seed)
	fmt.Printf("%12s %12s %10s %8s %6s %6s %10s\n",
		"GENERATION", "COOPERATORS", "DEFECTORS", "EMPTY", "MIN", "MAX", "MEAN")
	for _, g := range stats {
		fmt.Printf("%12d %12d %10d %8d %6d %6d %10.2f\n",
			g.Generation, g.Cooperators, g.Defectors, g.Empty, g.MinScore, g.MaxScore, g.MeanScore)
	}
	return nil
}
