// Package mcp provides an MCP (Model Context Protocol) server for
// followflee: tools to launch simulation runs and inspect recorded
// results.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/followflee/internal/results"
)

// Server wraps the MCP SDK server and the run store.
type Server struct {
	server *sdk.Server
	store  results.RunStore
	log    *slog.Logger
	root   string
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "followflee")
	Version string // Server version
	Root    string // Project root directory
	Log     *slog.Logger
}

// NewServer creates a new MCP server with followflee tools.
func NewServer(cfg *Config) (*Server, error) {
	store, err := results.NewSQLiteRunStore(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create run store: %w", err)
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server: mcpServer,
		store:  store,
		log:    log,
		root:   cfg.Root,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}
