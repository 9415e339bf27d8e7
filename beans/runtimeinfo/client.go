package runtimeinfo

import (
	"context"
	"fmt"

	"github.com/vk/mgrid/internal/mbean"
)

// Client is the statically typed face of the RuntimeInfo contract. It
// forwards each named method to the generic Call entry point, so the same
// client works against the in-process registry and a remote proxy.
type Client struct {
	caller mbean.Caller
}

// NewClient wraps a dispatch surface in a typed client.
func NewClient(caller mbean.Caller) *Client {
	return &Client{caller: caller}
}

// Uptime returns how long the serving process has been up.
func (c *Client) Uptime(ctx context.Context) (string, error) {
	return callString(ctx, c.caller, "Uptime")
}

// GoVersion returns the serving process's Go runtime version.
func (c *Client) GoVersion(ctx context.Context) (string, error) {
	return callString(ctx, c.caller, "GoVersion")
}

// NumGoroutine returns the serving process's goroutine count.
func (c *Client) NumGoroutine(ctx context.Context) (int, error) {
	v, err := c.caller.Call(ctx, "NumGoroutine", nil)
	if err != nil {
		return 0, err
	}
	// JSON transports deliver numbers as float64.
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("runtimeinfo: NumGoroutine returned %T, want a number", v)
}

func callString(ctx context.Context, caller mbean.Caller, method string) (string, error) {
	v, err := caller.Call(ctx, method, nil)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("runtimeinfo: %s returned %T, want string", method, v)
	}
	return s, nil
}
