package objectname

import (
	"fmt"
	"sort"
	"strings"
)

// TypeProperty is the property key every managed object name carries.
const TypeProperty = "type"

// reserved characters that would make the canonical form ambiguous.
const illegalNamespaceChars = ":,\n"
const illegalPropertyChars = ":,=\n"

// Name is a canonical structured object name. The zero Name is invalid;
// build one with New or Parse.
type Name struct {
	namespace string
	keys      []string // lexicographically sorted
	props     map[string]string
}

// New builds a Name from a namespace and a property map. The map is copied;
// at least one property is required and keys are unique by construction.
func New(namespace string, props map[string]string) (Name, error) {
	if namespace == "" {
		return Name{}, fmt.Errorf("object name namespace is empty")
	}
	if strings.ContainsAny(namespace, illegalNamespaceChars) {
		return Name{}, fmt.Errorf("object name namespace %q contains a reserved character", namespace)
	}
	if len(props) == 0 {
		return Name{}, fmt.Errorf("object name needs at least one property")
	}

	copied := make(map[string]string, len(props))
	keys := make([]string, 0, len(props))
	for k, v := range props {
		if k == "" || v == "" {
			return Name{}, fmt.Errorf("object name property %q=%q is empty", k, v)
		}
		if strings.ContainsAny(k, illegalPropertyChars) || strings.ContainsAny(v, illegalPropertyChars) {
			return Name{}, fmt.Errorf("object name property %q=%q contains a reserved character", k, v)
		}
		copied[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Name{namespace: namespace, keys: keys, props: copied}, nil
}

// Parse reads a canonical string form back into a Name. Duplicate keys are
// rejected because they cannot round-trip.
func Parse(s string) (Name, error) {
	namespace, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Name{}, fmt.Errorf("object name %q has no ':' separator", s)
	}
	props := make(map[string]string)
	for _, pair := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return Name{}, fmt.Errorf("object name property %q has no '=' separator", pair)
		}
		if _, exists := props[k]; exists {
			return Name{}, fmt.Errorf("object name %q repeats property key %q", s, k)
		}
		props[k] = v
	}
	return New(namespace, props)
}

// IsZero reports whether n was never built.
func (n Name) IsZero() bool { return n.namespace == "" }

// Namespace returns the name's namespace segment.
func (n Name) Namespace() string { return n.namespace }

// Property returns the value stored under key.
func (n Name) Property(key string) (string, bool) {
	v, ok := n.props[key]
	return v, ok
}

// Type returns the value of the "type" property, or "" when absent.
func (n Name) Type() string { return n.props[TypeProperty] }

// Properties returns a copy of the property map.
func (n Name) Properties() map[string]string {
	copied := make(map[string]string, len(n.props))
	for k, v := range n.props {
		copied[k] = v
	}
	return copied
}

// String renders the canonical form, properties sorted by key.
func (n Name) String() string {
	if n.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.namespace)
	b.WriteByte(':')
	for i, k := range n.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(n.props[k])
	}
	return b.String()
}

// Equal reports whether two names address the same object: same namespace
// and identical property mapping, property order irrelevant.
func (n Name) Equal(other Name) bool {
	if n.namespace != other.namespace || len(n.props) != len(other.props) {
		return false
	}
	for k, v := range n.props {
		if ov, ok := other.props[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalText encodes the canonical form, for use in wire envelopes.
func (n Name) MarshalText() ([]byte, error) {
	if n.IsZero() {
		return nil, fmt.Errorf("cannot encode a zero object name")
	}
	return []byte(n.String()), nil
}

// UnmarshalText decodes a canonical form produced by MarshalText.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
