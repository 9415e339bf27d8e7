// Package registry implements the in-process managed-object registry.
//
// The registry holds two mappings. The factory mapping goes from a contract's
// type name to the factories able to instantiate an implementation; it is
// populated at startup by explicit Module registration, and the "exactly one
// implementation" rule is an assertion checked against the mapping at
// registration time. The binding mapping goes from a canonical object name to
// the live object registered under it.
//
// A Registry is itself an always-open mbean.Connection, so validation and
// invocation run identically against the local registry and a remote one.
package registry
