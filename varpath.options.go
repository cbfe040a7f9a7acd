package varpath

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	registry       *Registry
	filters        *FilterSet
	autoescape     bool
	maxSuggestions int
	logger         *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		autoescape:     DefaultAutoescape,
		maxSuggestions: DefaultMaxSuggestions,
	}
}

// WithRegistry makes the engine use an existing type registry, e.g. one
// shared between engines or DefaultRegistry().
// Default: a fresh registry seeded with the built-in adapters.
func WithRegistry(registry *Registry) Option {
	return func(c *engineConfig) {
		c.registry = registry
	}
}

// WithFilters makes the engine use an existing filter set.
// Default: a fresh set holding the built-in filters.
func WithFilters(filters *FilterSet) Option {
	return func(c *engineConfig) {
		c.filters = filters
	}
}

// WithAutoescape sets whether Text output is HTML-escaped.
// SafeText is never escaped.
// Default: false
func WithAutoescape(enabled bool) Option {
	return func(c *engineConfig) {
		c.autoescape = enabled
	}
}

// WithSuggestions sets how many "did you mean" candidates Trace reports.
// Use 0 to disable suggestions.
// Default: 3
func WithSuggestions(n int) Option {
	return func(c *engineConfig) {
		if n < 0 {
			n = 0
		}
		c.maxSuggestions = n
	}
}

// WithLogger sets the logger for the engine and, when the engine creates
// them, its registry and filter set.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
