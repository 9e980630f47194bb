package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localstore/localstore/internal/config"
	"github.com/localstore/localstore/internal/log"
	"github.com/localstore/localstore/internal/mcp"
	"github.com/localstore/localstore/internal/metrics"
	"github.com/localstore/localstore/internal/security"
	"github.com/localstore/localstore/internal/storage"
)

// ServerName identifies this server to MCP clients.
const ServerName = "local-file-server"

const metricsReadHeaderTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads configuration and applies flag overrides, flags taking
// final precedence over environment and file values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("path"); v != "" {
		cfg.Path = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(log.Config{Level: level})
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sandbox, err := security.NewSandbox(cfg.Path)
	if err != nil {
		return fmt.Errorf("initializing sandbox: %w", err)
	}

	store, err := storage.NewStore(sandbox, logger.With("component", "storage"))
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, m, logger)
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:    ServerName,
		Version: AppVersion,
		Store:   store,
		Logger:  logger.With("component", "mcp"),
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	logger.Info("starting MCP server",
		"name", ServerName,
		"version", AppVersion,
		"path", sandbox.Root(),
		"transport", "stdio")

	if err := server.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server shut down")
	return nil
}

// startMetricsServer serves the Prometheus endpoint in the background and
// shuts it down when ctx is canceled.
func startMetricsServer(ctx context.Context, addr string, m *metrics.Metrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
