package ticker

import (
	"fmt"
	"sync"
	"time"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
	"github.com/swordfeng/ireina/pkg/logging"
)

// Deps carries the process-wide collaborators handed to every source.
type Deps struct {
	Client *httpclient.Client
	Logger *logging.Logger
	TTL    time.Duration
}

// Factory creates a source from its configuration.
type Factory func(deps Deps, cfg config.SourceConfig) (Source, error)

var (
	registry = make(map[string]Factory)
	mu       sync.RWMutex
)

// Register adds a source factory to the registry
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = factory
}

// Create creates a new source instance from config
func Create(deps Deps, cfg config.SourceConfig) (Source, error) {
	mu.RLock()
	factory, ok := registry[cfg.Type]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSourceType, cfg.Type)
	}
	return factory(deps, cfg)
}

// List returns all registered source type names
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
