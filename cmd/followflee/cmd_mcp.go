package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/followflee/internal/config"
	"github.com/nvandessel/followflee/internal/logging"
	"github.com/nvandessel/followflee/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Start the MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing followflee tools
(followflee_run, followflee_stats) to MCP clients over stdio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "followflee",
				Version: version,
				Root:    root,
				Log:     logging.NewLogger(cfg.Logging.Level, os.Stderr),
			})
			if err != nil {
				return err
			}

			return server.Run(context.Background())
		},
	}
}
