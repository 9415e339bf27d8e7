package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vk/mgrid/internal/ctxlog"
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
	"github.com/vk/mgrid/internal/remote"
	"github.com/vk/mgrid/internal/server"
)

// Run executes the configured action.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "action", cfg.Action)

	switch cfg.Action {
	case "serve":
		return a.serve(ctx, cfg)
	case "query":
		return a.query(ctx)
	case "invoke":
		return a.invoke(ctx, cfg)
	case "register":
		return a.register(ctx, cfg)
	case "unregister":
		return a.unregister(ctx, cfg)
	}
	return errdefs.InvalidArgumentf("unknown action %q", cfg.Action)
}

// serve hosts the local registry as a remote management endpoint. Every
// configured contract with a compiled-in implementation is registered before
// the listener starts.
func (a *App) serve(ctx context.Context, cfg *Config) error {
	if a.model.Endpoint == nil {
		return errdefs.InvalidArgumentf("the serve action needs an endpoint block in the configuration")
	}

	for _, c := range a.model.Contracts {
		desc := c.Descriptor()
		if _, ok := a.registry.DescriptorFor(desc.TypeName()); !ok {
			continue
		}
		name, err := a.registry.Register(ctx, desc)
		if err != nil {
			return err
		}
		a.logger.Info("Managed object registered.", "type", desc.TypeName(), "name", name.String())
	}

	port := cfg.Port
	if port == 0 {
		p, err := strconv.Atoi(a.model.Endpoint.Port)
		if err != nil {
			return errdefs.InvalidArgumentf("the configured endpoint port %q is not a number: %w", a.model.Endpoint.Port, err)
		}
		port = p
	}

	creds := server.Credentials{Login: a.model.Endpoint.Login, Password: a.model.Endpoint.Password}
	srv := server.New(a.registry, creds, a.logger)
	addr := fmt.Sprintf(":%d", port)
	a.logger.Info("Management endpoint starting.", "address", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		return fmt.Errorf("management endpoint failed: %w", err)
	}
	return nil
}

// query lists every binding registered on the remote endpoint.
func (a *App) query(ctx context.Context) error {
	ep, err := remote.EndpointFromSource(a.model.Endpoint)
	if err != nil {
		return err
	}
	conn, err := remote.Dial(ctx, ep)
	if err != nil {
		return err
	}
	defer conn.Close()

	entries, err := conn.QueryAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(a.outW, "%s\t%s\n", e.TypeName, e.Name)
	}
	return nil
}

// invoke performs one remote method call through a freshly built proxy.
func (a *App) invoke(ctx context.Context, cfg *Config) error {
	desc, err := a.descriptorFor(cfg.Contract)
	if err != nil {
		return err
	}
	name, err := a.objectNameFor(desc, cfg.Name)
	if err != nil {
		return err
	}

	var args []any
	if cfg.Args != "" {
		if err := json.Unmarshal([]byte(cfg.Args), &args); err != nil {
			return errdefs.InvalidArgumentf("arguments must be a JSON array: %w", err)
		}
	}

	proxy, err := remote.NewProxy(ctx, desc, name, a.model.Endpoint)
	if err != nil {
		return err
	}
	result, err := proxy.Call(ctx, cfg.Method, args)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cannot encode the invocation result: %w", err)
	}
	fmt.Fprintln(a.outW, string(encoded))
	return nil
}

// register asks the remote endpoint to register its implementation of the
// contract.
func (a *App) register(ctx context.Context, cfg *Config) error {
	desc, err := a.descriptorFor(cfg.Contract)
	if err != nil {
		return err
	}
	name, err := a.objectNameFor(desc, cfg.Name)
	if err != nil {
		return err
	}

	ep, err := remote.EndpointFromSource(a.model.Endpoint)
	if err != nil {
		return err
	}
	conn, err := remote.Dial(ctx, ep)
	if err != nil {
		return err
	}
	defer conn.Close()

	registered, err := conn.Register(ctx, desc.TypeName(), name)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, registered.String())
	return nil
}

// unregister removes a binding from the remote endpoint.
func (a *App) unregister(ctx context.Context, cfg *Config) error {
	if cfg.Name == "" {
		return errdefs.InvalidArgumentf("the unregister action needs an object name")
	}
	name, err := objectname.Parse(cfg.Name)
	if err != nil {
		return errdefs.InvalidArgumentf("malformed object name: %w", err)
	}

	ep, err := remote.EndpointFromSource(a.model.Endpoint)
	if err != nil {
		return err
	}
	conn, err := remote.Dial(ctx, ep)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Unregister(ctx, name)
}

// descriptorFor resolves a contract's descriptor from the configuration
// model first, then from the compiled-in factories.
func (a *App) descriptorFor(contract string) (mbean.Descriptor, error) {
	if contract == "" {
		return mbean.Descriptor{}, errdefs.InvalidArgumentf("a contract name is required")
	}
	if c, ok := a.model.Contracts[contract]; ok {
		return c.Descriptor(), nil
	}
	for _, desc := range a.registry.Descriptors() {
		if desc.Name == contract || desc.TypeName() == contract {
			return desc, nil
		}
	}
	return mbean.Descriptor{}, errdefs.InvalidArgumentf("unknown contract %q", contract)
}

// objectNameFor parses an explicit name or derives one from the descriptor.
func (a *App) objectNameFor(desc mbean.Descriptor, explicit string) (objectname.Name, error) {
	if explicit == "" {
		return mbean.ObjectNameFor(desc, nil)
	}
	name, err := objectname.Parse(explicit)
	if err != nil {
		return objectname.Name{}, errdefs.InvalidArgumentf("malformed object name: %w", err)
	}
	return name, nil
}
