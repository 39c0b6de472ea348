package tools

import (
	"github.com/usestring/xmlprobe/internal/cache"
	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client *client.Client
	Probe  *probe.Probe
	Cache  *cache.DocumentCache // nil when caching is disabled
	Config *config.Config
}
