package mbean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mgrid/internal/errdefs"
)

func thingDescriptor() Descriptor {
	return Descriptor{
		Namespace:  "org.example",
		Name:       "Thing",
		Operations: []string{"Poke"},
	}
}

func TestObjectNameFor(t *testing.T) {
	t.Parallel()

	name, err := ObjectNameFor(thingDescriptor(), nil)
	require.NoError(t, err)

	assert.Equal(t, "org.example:type=Thing", name.String())
	assert.Equal(t, "org.example", name.Namespace())
	assert.Equal(t, "Thing", name.Type())
}

func TestObjectNameFor_withAttributes(t *testing.T) {
	t.Parallel()

	name, err := ObjectNameFor(thingDescriptor(), map[string]string{"env": "prod"})
	require.NoError(t, err)
	assert.Equal(t, "org.example:env=prod,type=Thing", name.String())
}

func TestObjectNameFor_typeAttributeAlwaysWins(t *testing.T) {
	t.Parallel()

	name, err := ObjectNameFor(thingDescriptor(), map[string]string{"type": "Impostor"})
	require.NoError(t, err)
	assert.Equal(t, "Thing", name.Type())
}

func TestObjectNameFor_zeroDescriptor(t *testing.T) {
	t.Parallel()

	_, err := ObjectNameFor(Descriptor{}, nil)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestObjectNameFor_wrapsFormattingError(t *testing.T) {
	t.Parallel()

	desc := thingDescriptor()
	desc.Namespace = "org:example" // reserved character

	_, err := ObjectNameFor(desc, nil)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "org:example.Thing")
}
