package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/internal/cache"
	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/logging"
	"github.com/usestring/xmlprobe/internal/mcp"
	"github.com/usestring/xmlprobe/internal/mcp/tools"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/client"
)

// Server is the xmlprobe MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin xml tools.
//
// Configuration comes from the environment unless WithConfig is given.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Load()
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	clientOpts := []client.Option{
		client.WithUserAgent(cfg.config.UserAgent),
		client.WithMaxBodyBytes(int64(cfg.config.MaxBodyBytes)),
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(cfg.httpClient))
	}
	c := client.New(clientOpts...)

	probeOpts := []probe.Option{probe.WithMaxFetchTime(cfg.config.MaxFetchTime)}
	var docCache *cache.DocumentCache
	if cfg.config.CacheTTL > 0 {
		docCache, err = cache.NewDocumentCache(cfg.config.CacheMaxItems, cfg.config.CacheTTL)
		if err != nil {
			_ = logCleanup()
			return nil, fmt.Errorf("failed to create document cache: %w", err)
		}
		probeOpts = append(probeOpts, probe.WithCache(docCache))
	}
	if cfg.clock != nil {
		probeOpts = append(probeOpts, probe.WithClock(cfg.clock))
	}
	p := probe.New(c, probeOpts...)

	toolDeps := &tools.Deps{
		Client: c,
		Probe:  p,
		Cache:  docCache,
		Config: cfg.config,
	}

	// Same values, public type.
	deps := &Deps{
		Client: c,
		Probe:  p,
		Cache:  docCache,
		Config: cfg.config,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
