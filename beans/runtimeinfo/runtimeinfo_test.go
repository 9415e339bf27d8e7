package runtimeinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/registry"
)

func TestDescriptor(t *testing.T) {
	t.Parallel()

	desc := Descriptor()
	assert.Equal(t, "org.vk.mgrid.RuntimeInfo", desc.TypeName())
	assert.True(t, desc.ManagedContract())
}

func TestBean_operations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := NewClient(New())

	uptime, err := client.Uptime(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, uptime)

	version, err := client.GoVersion(ctx)
	require.NoError(t, err)
	assert.Contains(t, version, "go")

	n, err := client.NumGoroutine(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestBean_unknownOperation(t *testing.T) {
	t.Parallel()

	_, err := New().Call(context.Background(), "Explode", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestClient_numGoroutineAcceptsWireNumbers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Over a JSON transport the count arrives as a float64.
	wire := mbean.CallerFunc(func(ctx context.Context, method string, args []any) (any, error) {
		return float64(7), nil
	})
	n, err := NewClient(wire).NumGoroutine(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	bad := mbean.CallerFunc(func(ctx context.Context, method string, args []any) (any, error) {
		return "seven", nil
	})
	_, err = NewClient(bad).NumGoroutine(ctx)
	assert.Error(t, err)
}

func TestModule_registersWithRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := registry.New()
	(&Module{}).Register(reg)

	name, err := reg.Register(ctx, Descriptor())
	require.NoError(t, err)
	assert.Equal(t, "org.vk.mgrid:type=RuntimeInfo", name.String())

	result, err := reg.Invoke(ctx, name, "GoVersion", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result)
}
