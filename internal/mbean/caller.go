package mbean

import "context"

// Caller is the generic dispatch surface every managed object implements.
// A single entry point replaces runtime interface proxying: typed clients
// forward each named method to Call.
type Caller interface {
	// Call invokes the named operation with the given arguments and returns
	// its result. Implementations are synchronous; the call blocks the
	// calling goroutine until the operation completes or ctx expires.
	Call(ctx context.Context, method string, args []any) (any, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, method string, args []any) (any, error)

// Call invokes the wrapped function.
func (f CallerFunc) Call(ctx context.Context, method string, args []any) (any, error) {
	return f(ctx, method, args)
}
