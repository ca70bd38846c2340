package llm

import (
	"fmt"
	"log/slog"
)

// Factory builds an Extractor for one provider.
type Factory func(cfg Config, logger *slog.Logger) (Extractor, error)

// registry of provider factories, populated by init() in each provider
// package or explicitly via Register.
var providers = map[string]Factory{}

// Register registers a provider factory by name.
func Register(name string, factory Factory) {
	providers[name] = factory
}

// New builds the Extractor for the named provider using the registered
// factory. Unknown names are a configuration error, not a fallback.
func New(provider string, cfg Config, logger *slog.Logger) (Extractor, error) {
	factory, ok := providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown extraction provider: %s", provider)
	}
	return factory(cfg, logger)
}
