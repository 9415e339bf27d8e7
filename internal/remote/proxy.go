package remote

import (
	"context"

	"github.com/vk/mgrid/internal/config"
	"github.com/vk/mgrid/internal/ctxlog"
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
)

// Proxy represents a remote managed object locally. It implements
// mbean.Caller: every Call opens a fresh authenticated connection, forwards
// the one method call, and tears the connection down. The proxy owns its
// (descriptor, name, endpoint) triple for its lifetime but never a live
// connection, so concurrent calls on one proxy are fully independent and the
// proxy itself has no closed state.
type Proxy struct {
	desc   mbean.Descriptor
	name   objectname.Name
	ep     Endpoint
	dialer Dialer
}

// Option customizes proxy construction.
type Option func(*Proxy)

// WithDialer substitutes the connection dialer. Used by tests.
func WithDialer(d Dialer) Option {
	return func(p *Proxy) { p.dialer = d }
}

// NewProxy builds a proxy for the managed object registered under name on
// the endpoint described by src.
//
// The four endpoint values are read first; a missing one fails with
// ErrInvalidArgument naming it, before any connection attempt. One full
// connect -> validate -> close cycle then runs eagerly so an invalid
// interface/name/endpoint combination fails at creation time rather than at
// first call. The preflight connection is never reused.
func NewProxy(ctx context.Context, desc mbean.Descriptor, name objectname.Name, src config.Source, opts ...Option) (*Proxy, error) {
	if desc.IsZero() {
		return nil, errdefs.InvalidArgumentf("managed interface descriptor is required")
	}
	if !desc.ManagedContract() {
		return nil, errdefs.InvalidArgumentf("type %s is not a managed interface contract", desc.TypeName())
	}
	ep, err := EndpointFromSource(src)
	if err != nil {
		return nil, err
	}

	p := &Proxy{desc: desc, name: name, ep: ep, dialer: httpDialer{}}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.preflight(ctx); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Remote proxy created.", "type", desc.TypeName(), "name", name.String(), "endpoint", ep.ServiceURL())
	return p, nil
}

// NewProxyFor is NewProxy with the object name derived from the descriptor.
func NewProxyFor(ctx context.Context, desc mbean.Descriptor, src config.Source, opts ...Option) (*Proxy, error) {
	name, err := mbean.ObjectNameFor(desc, nil)
	if err != nil {
		return nil, err
	}
	return NewProxy(ctx, desc, name, src, opts...)
}

// preflight runs the eager connect -> validate -> close cycle.
func (p *Proxy) preflight(ctx context.Context) error {
	conn, err := p.dialer.Dial(ctx, p.ep)
	if err != nil {
		return err
	}
	defer conn.Close()
	return mbean.Validate(ctx, p.desc, p.name, conn)
}

// Call implements mbean.Caller with one full connection lifecycle per call:
// dial, invoke, close on every exit path.
//
// The call target is not revalidated here; validation happened once, at
// proxy creation. A name unregistered since then surfaces as the invocation
// error the endpoint reports, not as a structured validation failure. That
// trade of staleness risk for call latency is deliberate.
//
// Dial failures surface as ErrConnectFailed and abort the call before any
// remote side effect. Errors from the invocation itself pass through with
// their identity intact; this layer wraps nothing on that path.
func (p *Proxy) Call(ctx context.Context, method string, args []any) (any, error) {
	conn, err := p.dialer.Dial(ctx, p.ep)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return conn.Invoke(ctx, p.name, method, args)
}

// Descriptor returns the contract the proxy was bound to.
func (p *Proxy) Descriptor() mbean.Descriptor { return p.desc }

// Name returns the object name the proxy was bound to.
func (p *Proxy) Name() objectname.Name { return p.name }
