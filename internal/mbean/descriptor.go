package mbean

import (
	"slices"
	"unicode"
	"unicode/utf8"
)

// Descriptor identifies a managed-interface contract: a namespaced, named
// interface description with its declared operations. It is an immutable
// value supplied by the caller; this system never owns or mutates it.
type Descriptor struct {
	// Namespace is the package-style namespace, e.g. "org.example".
	Namespace string
	// Name is the interface's simple name, e.g. "Thing".
	Name string
	// Operations lists the method names the contract exposes.
	Operations []string
}

// IsZero reports whether d carries no identity at all.
func (d Descriptor) IsZero() bool { return d.Namespace == "" && d.Name == "" }

// TypeName returns the namespace-qualified contract name.
func (d Descriptor) TypeName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// ManagedContract reports whether d satisfies the managed-interface
// convention: a non-empty namespace, an exported simple name, and at least
// one declared operation.
func (d Descriptor) ManagedContract() bool {
	if d.Namespace == "" || d.Name == "" || len(d.Operations) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(d.Name)
	return unicode.IsUpper(r)
}

// HasOperation reports whether the contract declares method.
func (d Descriptor) HasOperation(method string) bool {
	return slices.Contains(d.Operations, method)
}
