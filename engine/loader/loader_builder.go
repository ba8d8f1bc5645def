package loader

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel pre-populates the model cache.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}

// WithBuiltins controls whether Resolve recognises the built-in mesh names. Enabled by default.
//
// Parameters:
//   - enabled: whether built-in names resolve without touching the filesystem
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithBuiltins(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.builtins = enabled
	}
}
