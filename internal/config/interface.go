package config

import "context"

// Source is an arbitrary configuration source the remote layer reads
// endpoint values from, one recognized key at a time.
type Source interface {
	// Lookup returns the value stored under key and whether it is present.
	Lookup(key string) (string, bool)
}

// MapSource adapts a plain map to the Source interface.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}
