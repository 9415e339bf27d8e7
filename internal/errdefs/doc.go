// Package errdefs defines the error taxonomy shared by every layer of the
// toolkit.
//
// Three sentinel categories exist. ErrInvalidArgument marks caller mistakes
// that are detectable without touching the network (absent descriptor,
// missing configuration value, malformed or unregistered object name).
// ErrConnectFailed marks a failure to establish an authenticated connection
// to a remote registry. ErrOperationFailed marks a registry operation that
// failed after a connection was available, wrapping the underlying cause.
//
// Callers classify with errors.Is against the sentinels; the original cause
// stays reachable through the wrap chain.
package errdefs
