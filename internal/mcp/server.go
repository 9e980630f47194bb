package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localstore/localstore/internal/metrics"
	"github.com/localstore/localstore/internal/storage"
)

// Server wraps the MCP SDK server around the document store.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	name      string
	version   string
}

// Config holds MCP server configuration. Store and Logger are required;
// Metrics is optional (nil disables instrumentation).
type Config struct {
	Name    string
	Version string
	Store   *storage.Store
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewServer creates the MCP server and registers all resources and tools.
// Registrations are fixed at construction; the server is immutable after.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		store:   cfg.Store,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		name:    cfg.Name,
		version: cfg.Version,
	}

	s.registerResources()
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport. Blocks until the
// session ends or ctx is canceled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("MCP server running",
		"name", s.name,
		"version", s.version,
		"root", s.store.Root())
	return s.mcpServer.Run(ctx, transport)
}
