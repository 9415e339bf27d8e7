package mbean

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/objectname"
)

// fakeConn is a scriptable registry connection that counts its calls.
type fakeConn struct {
	registered    bool
	registeredErr error
	instance      bool
	instanceErr   error
	calls         int
}

func (f *fakeConn) IsRegistered(ctx context.Context, name objectname.Name) (bool, error) {
	f.calls++
	return f.registered, f.registeredErr
}

func (f *fakeConn) IsInstanceOf(ctx context.Context, name objectname.Name, typeName string) (bool, error) {
	f.calls++
	return f.instance, f.instanceErr
}

func (f *fakeConn) Invoke(ctx context.Context, name objectname.Name, method string, args []any) (any, error) {
	f.calls++
	return nil, nil
}

func (f *fakeConn) QueryAll(ctx context.Context) ([]Entry, error) {
	f.calls++
	return nil, nil
}

func (f *fakeConn) Close() {}

func mustName(t *testing.T, desc Descriptor) objectname.Name {
	t.Helper()
	name, err := ObjectNameFor(desc, nil)
	require.NoError(t, err)
	return name
}

func TestValidate_ok(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	conn := &fakeConn{registered: true, instance: true}

	require.NoError(t, Validate(context.Background(), desc, mustName(t, desc), conn))
	assert.Equal(t, 2, conn.calls)
}

func TestValidate_shapeChecksRunBeforeNetwork(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}

	err := Validate(context.Background(), Descriptor{}, objectname.Name{}, conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Zero(t, conn.calls)

	// Declares no operations, so it is not a managed contract.
	bare := Descriptor{Namespace: "org.example", Name: "Thing"}
	err = Validate(context.Background(), bare, objectname.Name{}, conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "org.example.Thing")
	assert.Zero(t, conn.calls)
}

func TestValidate_notRegistered(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	conn := &fakeConn{registered: false}

	err := Validate(context.Background(), desc, mustName(t, desc), conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "not registered")
	assert.Contains(t, err.Error(), "org.example:type=Thing")
}

func TestValidate_wrongInstance(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	conn := &fakeConn{registered: true, instance: false}

	err := Validate(context.Background(), desc, mustName(t, desc), conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "not an instance of")
	assert.Contains(t, err.Error(), "org.example.Thing")
}

func TestValidate_transportFailureWrapsCause(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	cause := errors.New("connection reset")
	conn := &fakeConn{registeredErr: cause}

	err := Validate(context.Background(), desc, mustName(t, desc), conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsOperationFailed(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "org.example.Thing")
	assert.Contains(t, err.Error(), "org.example:type=Thing")
}

func TestValidate_unregisterRaceNormalizesToNotRegistered(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	name := mustName(t, desc)
	conn := &fakeConn{
		registered:  true,
		instanceErr: fmt.Errorf("%w: %s", ErrNameNotFound, name),
	}

	err := Validate(context.Background(), desc, name, conn)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "not registered")
}
