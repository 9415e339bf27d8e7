// Package remote reaches a managed-object registry over the network.
//
// Connections are deliberately short-lived: a connection is opened
// immediately before an operation, owned exclusively by that operation, and
// closed on every exit path. Nothing is pooled, cached, or retried. The
// Proxy type builds on this to give transparent call semantics: each method
// call on a proxy is a fresh authenticated round trip
// (connect -> invoke -> close) against the endpoint the proxy was bound to
// at creation time.
package remote
