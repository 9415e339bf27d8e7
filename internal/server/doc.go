// Package server exposes an in-process registry as a remote management
// endpoint over HTTP. Clients open an authenticated session with basic-auth
// credentials, receive a bearer token, and address the registry operations
// under /v1. Error responses carry a classification code so the client side
// can reconstruct the failure it represents.
package server
