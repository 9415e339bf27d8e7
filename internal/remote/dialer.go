package remote

import (
	"context"

	"github.com/vk/mgrid/internal/mbean"
)

// Dialer opens a connection to a registry endpoint. The default
// implementation dials over HTTP; tests substitute their own.
type Dialer interface {
	Dial(ctx context.Context, ep Endpoint) (mbean.Connection, error)
}

// httpDialer is the production Dialer.
type httpDialer struct{}

func (httpDialer) Dial(ctx context.Context, ep Endpoint) (mbean.Connection, error) {
	conn, err := Dial(ctx, ep)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
