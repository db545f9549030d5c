package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/karamlee/polyask/internal/config"
)

// Factory defines how to create an adapter of a specific type. Each adapter
// variant (openai, anthropic, ...) registers a factory that knows how to
// build instances from configuration.
type Factory struct {
	// Type is the adapter type identifier used in configuration.
	Type string

	// Description is a human-readable description of the adapter.
	Description string

	// Create instantiates a new adapter from configuration.
	Create func(cfg config.ProviderConfig) (Provider, error)

	// Validate performs adapter-specific configuration validation.
	// Optional: if nil, no additional validation is performed.
	Validate func(cfg config.ProviderConfig) error
}

var (
	factoryMu  sync.RWMutex
	factoryMap = make(map[string]Factory)
)

// RegisterFactory registers an adapter factory for a specific type. It should
// be called from init() in each adapter package. Panics on duplicate or
// incomplete registration.
func RegisterFactory(f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	if f.Type == "" {
		panic("provider factory type cannot be empty")
	}
	if f.Create == nil {
		panic(fmt.Sprintf("provider factory %q must have a Create function", f.Type))
	}
	if _, exists := factoryMap[f.Type]; exists {
		panic(fmt.Sprintf("provider factory %q already registered", f.Type))
	}

	factoryMap[f.Type] = f
}

// GetFactory returns the factory for an adapter type, if registered.
func GetFactory(providerType string) (Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factoryMap[providerType]
	return f, ok
}

// ListTypes returns all registered adapter type names, sorted.
func ListTypes() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	types := make([]string, 0, len(factoryMap))
	for t := range factoryMap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ClearFactories removes all registered factories (for testing only).
func ClearFactories() {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	factoryMap = make(map[string]Factory)
}

// Registry builds the immutable adapter set handed to each streaming session.
// It replaces any global compiled workflow: constructed once at process start
// and passed by reference.
type Registry struct {
	providers []Provider
}

// NewRegistry creates adapters for every configuration entry. Names and
// labels must be unique across the set.
func NewRegistry(configs []config.ProviderConfig) (*Registry, error) {
	seenName := make(map[string]bool)
	seenLabel := make(map[string]bool)

	providers := make([]Provider, 0, len(configs))
	for _, cfg := range configs {
		if seenName[cfg.Name] {
			return nil, fmt.Errorf("duplicate provider name %q", cfg.Name)
		}
		if seenLabel[cfg.Label] {
			return nil, fmt.Errorf("duplicate provider label %q", cfg.Label)
		}
		seenName[cfg.Name] = true
		seenLabel[cfg.Label] = true

		p, err := createFromFactory(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider %s: %w", cfg.Name, err)
		}
		providers = append(providers, p)
	}

	return &Registry{providers: providers}, nil
}

// NewStaticRegistry wraps an already-constructed adapter set. Intended for
// tests and embedding; NewRegistry is the configuration-driven path.
func NewStaticRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Providers returns the configured adapter set in configuration order. The
// returned slice is a copy; the registry itself never changes after New.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Len returns the number of configured adapters.
func (r *Registry) Len() int {
	return len(r.providers)
}

func createFromFactory(cfg config.ProviderConfig) (Provider, error) {
	f, ok := GetFactory(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %s (registered types: %v)", cfg.Type, ListTypes())
	}

	if f.Validate != nil {
		if err := f.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration for provider type %s: %w", cfg.Type, err)
		}
	}

	return f.Create(cfg)
}
