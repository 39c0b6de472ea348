package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/xmlprobe/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - PROBE_TIMEOUT_MS: default fetch timeout
	// - PROBE_CACHE_TTL_MS: document cache lifetime (default: 0, disabled)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting xmlprobe MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
