package mbean

import (
	"context"
	"errors"

	"github.com/vk/mgrid/internal/objectname"
)

// ErrNameNotFound is reported by a registry connection when an operation
// names an object that is not (or no longer) registered. Connections wrap it
// so callers can match with errors.Is.
var ErrNameNotFound = errors.New("object name not found")

// Entry is one registered binding as reported by QueryAll.
type Entry struct {
	// TypeName is the namespace-qualified contract name of the binding.
	TypeName string
	// Name is the object name the binding is registered under.
	Name objectname.Name
}

// Connection is an open session to a registry, local or remote. The local
// registry satisfies it directly and is always open; remote connections are
// created immediately before use, owned exclusively by the operation that
// created them, and closed exactly once on every exit path.
type Connection interface {
	// IsRegistered reports whether name currently has a binding.
	IsRegistered(ctx context.Context, name objectname.Name) (bool, error)

	// IsInstanceOf reports whether the object bound to name satisfies the
	// contract identified by typeName. When name has no binding the error
	// matches ErrNameNotFound.
	IsInstanceOf(ctx context.Context, name objectname.Name, typeName string) (bool, error)

	// Invoke forwards one operation call to the object bound to name and
	// returns its result. Errors raised by the object itself pass through
	// unwrapped.
	Invoke(ctx context.Context, name objectname.Name, method string, args []any) (any, error)

	// QueryAll lists every registered binding.
	QueryAll(ctx context.Context) ([]Entry, error)

	// Close releases the session. Closing is best-effort cleanup, never a
	// user-observable operation: failures are swallowed and logged, so Close
	// returns nothing. It is safe to call on a nil or already-closed
	// connection.
	Close()
}
