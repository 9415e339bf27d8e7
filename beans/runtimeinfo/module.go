// Package runtimeinfo is a managed bean exposing process runtime facts. It
// is compiled into the binary and registered through the application's core
// module list.
package runtimeinfo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/registry"
)

// Namespace is the contract namespace for the built-in beans.
const Namespace = "org.vk.mgrid"

// Descriptor returns the RuntimeInfo managed-interface contract.
func Descriptor() mbean.Descriptor {
	return mbean.Descriptor{
		Namespace:  Namespace,
		Name:       "RuntimeInfo",
		Operations: []string{"Uptime", "NumGoroutine", "GoVersion"},
	}
}

// bean is the single implementation of the RuntimeInfo contract.
type bean struct {
	started time.Time
}

// New instantiates the RuntimeInfo implementation.
func New() mbean.Caller {
	return &bean{started: time.Now()}
}

// Call dispatches one operation by name.
func (b *bean) Call(ctx context.Context, method string, args []any) (any, error) {
	switch method {
	case "Uptime":
		return time.Since(b.started).String(), nil
	case "NumGoroutine":
		return runtime.NumGoroutine(), nil
	case "GoVersion":
		return runtime.Version(), nil
	}
	return nil, fmt.Errorf("runtimeinfo: unknown operation %q", method)
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the bean's factory with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(Descriptor(), New)
}
