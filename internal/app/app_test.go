package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mgrid/beans/runtimeinfo"
	"github.com/vk/mgrid/internal/config"
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/registry"
	"github.com/vk/mgrid/internal/server"
)

// modelLoader serves a fixed model, standing in for the HCL file loader.
type modelLoader struct {
	model *config.Model
	err   error
}

func (l *modelLoader) Load(ctx context.Context, path string) (*config.Model, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.model, nil
}

func baseConfig(action string) *Config {
	return &Config{Action: action, LogFormat: "text", LogLevel: "error"}
}

func TestNewApp_registersCoreModules(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a, err := NewApp(&out, baseConfig("query"), &modelLoader{})
	require.NoError(t, err)

	_, ok := a.Registry().DescriptorFor("org.vk.mgrid.RuntimeInfo")
	assert.True(t, ok)
}

func TestNewApp_contractParityMismatch(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("query")
	cfg.ConfigPath = "mgrid.hcl"
	loader := &modelLoader{model: &config.Model{
		Contracts: map[string]*config.Contract{
			"RuntimeInfo": {
				Name:       "RuntimeInfo",
				Namespace:  runtimeinfo.Namespace,
				Operations: []string{"Uptime", "SelfDestruct"},
			},
		},
	}}

	var out bytes.Buffer
	_, err := NewApp(&out, cfg, loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org.vk.mgrid.RuntimeInfo")
	assert.Contains(t, err.Error(), "do not match")
}

func TestNewApp_remoteOnlyContractIsAccepted(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("query")
	cfg.ConfigPath = "mgrid.hcl"
	loader := &modelLoader{model: &config.Model{
		Contracts: map[string]*config.Contract{
			"Thing": {Name: "Thing", Namespace: "org.example", Operations: []string{"Poke"}},
		},
	}}

	var out bytes.Buffer
	_, err := NewApp(&out, cfg, loader)
	assert.NoError(t, err)
}

func TestRun_unknownAction(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := baseConfig("explode")
	a, err := NewApp(&out, cfg, &modelLoader{})
	require.NoError(t, err)

	err = a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

// startServedRegistry hosts a registry with the runtimeinfo bean behind a
// real HTTP listener and returns the endpoint the client actions need.
func startServedRegistry(t *testing.T) *config.Endpoint {
	t.Helper()

	reg := registry.New()
	(&runtimeinfo.Module{}).Register(reg)
	_, err := reg.Register(context.Background(), runtimeinfo.Descriptor())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(reg, server.Credentials{Login: "admin", Password: "secret"}, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	host, port, err := net.SplitHostPort(strings.TrimPrefix(ts.URL, "http://"))
	require.NoError(t, err)
	return &config.Endpoint{Host: host, Port: port, Login: "admin", Password: "secret"}
}

func newClientApp(t *testing.T, out *bytes.Buffer, cfg *Config, ep *config.Endpoint) *App {
	t.Helper()
	cfg.ConfigPath = "mgrid.hcl"
	loader := &modelLoader{model: &config.Model{
		Endpoint:  ep,
		Contracts: map[string]*config.Contract{},
	}}
	a, err := NewApp(out, cfg, loader)
	require.NoError(t, err)
	return a
}

func TestRun_queryAction(t *testing.T) {
	t.Parallel()

	ep := startServedRegistry(t)
	var out bytes.Buffer
	cfg := baseConfig("query")
	a := newClientApp(t, &out, cfg, ep)

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "org.vk.mgrid.RuntimeInfo")
	assert.Contains(t, out.String(), "org.vk.mgrid:type=RuntimeInfo")
}

func TestRun_invokeAction(t *testing.T) {
	t.Parallel()

	ep := startServedRegistry(t)
	var out bytes.Buffer
	cfg := baseConfig("invoke")
	cfg.Contract = "RuntimeInfo"
	cfg.Method = "GoVersion"
	a := newClientApp(t, &out, cfg, ep)

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "go")
}

func TestRun_invokeActionRejectsMalformedArgs(t *testing.T) {
	t.Parallel()

	ep := startServedRegistry(t)
	var out bytes.Buffer
	cfg := baseConfig("invoke")
	cfg.Contract = "RuntimeInfo"
	cfg.Method = "GoVersion"
	cfg.Args = "{not json"
	a := newClientApp(t, &out, cfg, ep)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestRun_unregisterAction(t *testing.T) {
	t.Parallel()

	ep := startServedRegistry(t)
	var out bytes.Buffer
	cfg := baseConfig("unregister")
	cfg.Name = "org.vk.mgrid:type=RuntimeInfo"
	a := newClientApp(t, &out, cfg, ep)

	require.NoError(t, a.Run(context.Background(), cfg))

	// The binding is gone, so invoking through a fresh proxy fails preflight.
	invokeCfg := baseConfig("invoke")
	invokeCfg.Contract = "RuntimeInfo"
	invokeCfg.Method = "GoVersion"
	b := newClientApp(t, &out, invokeCfg, ep)
	err := b.Run(context.Background(), invokeCfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "not registered")
}

func TestRun_registerAction(t *testing.T) {
	t.Parallel()

	ep := startServedRegistry(t)

	// Clear the pre-registered binding first so register does real work.
	var out bytes.Buffer
	unregCfg := baseConfig("unregister")
	unregCfg.Name = "org.vk.mgrid:type=RuntimeInfo"
	a := newClientApp(t, &out, unregCfg, ep)
	require.NoError(t, a.Run(context.Background(), unregCfg))

	regCfg := baseConfig("register")
	regCfg.Contract = "RuntimeInfo"
	b := newClientApp(t, &out, regCfg, ep)
	require.NoError(t, b.Run(context.Background(), regCfg))
	assert.Contains(t, out.String(), "org.vk.mgrid:type=RuntimeInfo")
}
