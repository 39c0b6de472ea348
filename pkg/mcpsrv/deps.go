package mcpsrv

import (
	"github.com/usestring/xmlprobe/internal/cache"
	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/client"
)

// Deps contains the dependencies available to custom tools. Custom tools get
// the same probe, cache and client the builtin tools use.
type Deps struct {
	Client *client.Client
	Probe  *probe.Probe
	Cache  *cache.DocumentCache // nil when PROBE_CACHE_TTL_MS is 0
	Config *config.Config
}
