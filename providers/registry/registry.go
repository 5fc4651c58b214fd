// Package registry routes model names to provider instances. Lookups are
// cache-first: the first request for a model constructs the adapter its
// catalog entry calls for, and every later request for that name returns the
// same instance until Reset. Providers are keyed by model name, so two
// catalog entries served by the same vendor still get separate instances.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/modelgate/modelgate/catalog"
	"github.com/modelgate/modelgate/config"
	"github.com/modelgate/modelgate/providers/ai"
	"github.com/modelgate/modelgate/providers/ai/fal"
	"github.com/modelgate/modelgate/providers/ai/gemini"
	"github.com/modelgate/modelgate/providers/ai/openrouter"
)

// ErrUnimplementedProvider is returned when a model's catalog entry names a
// vendor family no adapter handles.
var ErrUnimplementedProvider = errors.New("no provider implemented for vendor family")

// Registry holds constructed provider instances keyed by model name.
type Registry struct {
	config  config.Config
	catalog *catalog.Catalog

	mu    sync.Mutex
	cache map[string]ai.Provider
	group singleflight.Group
}

// New creates a registry over the given configuration and model catalog.
func New(cfg config.Config, cat *catalog.Catalog) *Registry {
	return &Registry{
		config:  cfg,
		catalog: cat,
		cache:   make(map[string]ai.Provider),
	}
}

// GetProvider returns the provider serving the named model, constructing and
// caching it on first use. Concurrent first requests for the same name share
// one construction. A cached name is served without consulting the catalog
// again.
func (registry *Registry) GetProvider(name string) (ai.Provider, error) {
	registry.mu.Lock()
	if provider, ok := registry.cache[name]; ok {
		registry.mu.Unlock()
		return provider, nil
	}
	registry.mu.Unlock()

	result, err, _ := registry.group.Do(name, func() (any, error) {
		entry, err := registry.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}

		provider, err := registry.buildProvider(entry)
		if err != nil {
			return nil, err
		}

		slog.Info("provider constructed",
			"model", entry.Name,
			"provider", provider.Name(),
			"vendor_family", entry.VendorFamily,
		)

		registry.mu.Lock()
		registry.cache[name] = provider
		registry.mu.Unlock()
		return provider, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(ai.Provider), nil
}

// buildProvider selects an adapter for a catalog entry. The model name is
// checked before the vendor family, so explicitly named models win over
// family routing.
func (registry *Registry) buildProvider(entry catalog.ModelEntry) (ai.Provider, error) {
	switch {
	case entry.Name == "fal" || entry.VendorFamily == "fal-ai":
		return fal.New(registry.config.FalAPIKey), nil
	case entry.Name == "gemini" || entry.VendorFamily == "google":
		return gemini.New(registry.config.GeminiAPIKey), nil
	case entry.Name == "openrouter",
		entry.VendorFamily == "openai",
		entry.VendorFamily == "anthropic",
		entry.VendorFamily == "perplexity":
		return openrouter.New(registry.config.OpenRouterAPIKey), nil
	default:
		return nil, fmt.Errorf("%w: %q (model %q)", ErrUnimplementedProvider, entry.VendorFamily, entry.Name)
	}
}

// Reset drops every cached provider. The next GetProvider for each name
// constructs a fresh instance.
func (registry *Registry) Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.cache = make(map[string]ai.Provider)
}
