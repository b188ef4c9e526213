package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/followflee/internal/experiment"
	"github.com/nvandessel/followflee/internal/game"
)

// registerTools registers all followflee MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "followflee_run",
		Description: "Run a follow/flee spatial prisoner's dilemma simulation and record per-generation statistics",
	}, s.handleRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "followflee_stats",
		Description: "List recorded simulation runs or inspect a run's per-generation statistics",
	}, s.handleStats)
}

// handleRun executes a simulation run with the given parameters and
// records it in the store.
func (s *Server) handleRun(ctx context.Context, req *sdk.CallToolRequest, args RunInput) (*sdk.CallToolResult, RunOutput, error) {
	spec := runSpec(args)

	res, err := experiment.Run(ctx, spec, s.store, s.log, nil)
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("simulation failed: %w", err)
	}

	out := RunOutput{
		RunID:       res.RunID,
		Generations: res.Generations,
		Cooperators: res.Final.Cooperators,
		Defectors:   res.Final.Defectors,
		Empty:       res.Final.Empty,
		MeanScore:   res.Final.MeanScore,
		Message: fmt.Sprintf("Completed %d generations: %d cooperators, %d defectors, %d empty cells",
			res.Generations, res.Final.Cooperators, res.Final.Defectors, res.Final.Empty),
	}
	return nil, out, nil
}

// handleStats lists runs, or returns a run's generation history when a
// run ID is given.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	if args.RunID == "" {
		runs, err := s.store.ListRuns(ctx)
		if err != nil {
			return nil, StatsOutput{}, fmt.Errorf("failed to list runs: %w", err)
		}

		out := StatsOutput{Runs: make([]RunSummary, 0, len(runs)), Count: len(runs)}
		for _, run := range runs {
			out.Runs = append(out.Runs, RunSummary{
				ID:          run.ID,
				Topology:    run.Topology,
				Nodes:       run.Nodes,
				RepMode:     run.RepMode,
				RepRate:     run.RepRate,
				Seed:        run.Seed,
				Generations: run.Generations,
				CreatedAt:   run.CreatedAt,
			})
		}
		return nil, out, nil
	}

	if _, err := s.store.GetRun(ctx, args.RunID); err != nil {
		return nil, StatsOutput{}, err
	}

	stats, err := s.store.GetGenerations(ctx, args.RunID)
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("failed to read generations: %w", err)
	}
	if args.Limit > 0 && len(stats) > args.Limit {
		stats = stats[len(stats)-args.Limit:]
	}

	out := StatsOutput{Generations: make([]GenerationListItem, 0, len(stats)), Count: len(stats)}
	for _, g := range stats {
		out.Generations = append(out.Generations, GenerationListItem{
			Generation:  g.Generation,
			Cooperators: g.Cooperators,
			Defectors:   g.Defectors,
			Empty:       g.Empty,
			MinScore:    g.MinScore,
			MaxScore:    g.MaxScore,
			MeanScore:   g.MeanScore,
		})
	}
	return nil, out, nil
}

// runSpec maps tool arguments onto an experiment spec, filling defaults
// for omitted fields.
func runSpec(args RunInput) experiment.Spec {
	spec := experiment.Spec{
		Topology: args.Topology,
		Nodes:    args.Nodes,
		Width:    args.Width,
		Height:   args.Height,
		Params: game.Params{
			RepMode:     args.RepMode,
			RepRate:     args.RepRate,
			StepsPerGen: args.StepsPerGen,
		},
		Generations:    args.Generations,
		Seed:           args.Seed,
		CoopFraction:   args.CoopFraction,
		DefectFraction: args.DefectFraction,
	}

	if spec.Topology == "" {
		spec.Topology = "torus"
	}
	if spec.Topology == "torus" && spec.Width == 0 && spec.Height == 0 {
		spec.Width, spec.Height = 30, 30
	}
	if spec.Params.RepMode == "" {
		spec.Params.RepMode = "neighbourBD"
	}
	if spec.Params.StepsPerGen == 0 {
		spec.Params.StepsPerGen = 1
	}
	if spec.Generations == 0 {
		spec.Generations = 100
	}
	if spec.CoopFraction == 0 && spec.DefectFraction == 0 {
		spec.CoopFraction, spec.DefectFraction = 0.5, 0.25
	}
	return spec
}
