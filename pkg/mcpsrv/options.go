package mcpsrv

import (
	"context"
	"net/http"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/probe"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client
	clock      probe.Clock

	// Logging overrides
	logLevel string
	logFile  string

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Custom extensions - registration callbacks that preserve generic type info
	toolRegistrations     []func(*mcp.Server)
	promptRegistrations   []func(*mcp.Server)
	resourceRegistrations []func(*mcp.Server)

	// Deferred tool registrations that need access to Deps
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithHTTPClient sets the HTTP client used to fetch documents.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithClock replaces the wall clock used by age checks.
func WithClock(c probe.Clock) Option {
	return func(cfg *serverConfig) {
		cfg.clock = c
	}
}

// WithoutBuiltinTools disables the builtin xml tools and schema resources.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables the builtin prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server. In is unmarshaled from
// the call arguments and Out is marshaled as structured output; the zero
// value of Out is checked at registration (see AddTool).
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool built from Deps. The builder runs once,
// after the probe and cache exist. See the package example.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			handler := builder(deps)
			AddTool(srv, tool, handler)
		})
	}
}

// WithPrompt registers a custom prompt with the server.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResource registers a custom resource with a fixed URI.
func WithResource(resource *mcp.Resource, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResource(resource, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template, such as
// "status://{host}/{check}", with the server.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
