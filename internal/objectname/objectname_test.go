package objectname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	name, err := New("org.example", map[string]string{"type": "Thing", "env": "prod"})
	require.NoError(t, err)

	assert.Equal(t, "org.example", name.Namespace())
	assert.Equal(t, "Thing", name.Type())
	assert.Equal(t, "org.example:env=prod,type=Thing", name.String())

	env, ok := name.Property("env")
	require.True(t, ok)
	assert.Equal(t, "prod", env)
}

func TestNew_copiesProperties(t *testing.T) {
	t.Parallel()

	props := map[string]string{"type": "Thing"}
	name, err := New("org.example", props)
	require.NoError(t, err)

	props["type"] = "Mutated"
	assert.Equal(t, "Thing", name.Type())
}

func TestNew_errorCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label     string
		namespace string
		props     map[string]string
	}{
		{"empty namespace", "", map[string]string{"type": "Thing"}},
		{"reserved char in namespace", "org:example", map[string]string{"type": "Thing"}},
		{"no properties", "org.example", nil},
		{"empty key", "org.example", map[string]string{"": "x"}},
		{"empty value", "org.example", map[string]string{"type": ""}},
		{"reserved char in key", "org.example", map[string]string{"a=b": "x"}},
		{"reserved char in value", "org.example", map[string]string{"type": "a,b"}},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.namespace, tc.props)
			assert.Error(t, err)
		})
	}
}

func TestParse_roundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"org.example:type=Thing",
		"org.example:env=prod,region=eu,type=Thing",
		"a:b=c",
	} {
		name, err := Parse(s)
		require.NoError(t, err, s)

		again, err := Parse(name.String())
		require.NoError(t, err, s)
		assert.True(t, name.Equal(again), s)
		assert.Equal(t, s, name.String())
	}
}

func TestParse_errorCases(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"no-separator",
		"org.example:novalue",
		"org.example:k=1,k=2",
		"org.example:",
	} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestEqual_ignoresPropertyOrder(t *testing.T) {
	t.Parallel()

	a, err := Parse("org.example:a=1,b=2")
	require.NoError(t, err)
	b, err := Parse("org.example:b=2,a=1")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())

	c, err := Parse("org.example:a=1,b=3")
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestTextMarshalling(t *testing.T) {
	t.Parallel()

	name, err := Parse("org.example:type=Thing")
	require.NoError(t, err)

	text, err := name.MarshalText()
	require.NoError(t, err)

	var decoded Name
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, name.Equal(decoded))

	_, err = Name{}.MarshalText()
	assert.Error(t, err)
}
