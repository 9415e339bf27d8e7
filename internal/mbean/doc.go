// Package mbean holds the core contracts of the managed-object system: the
// interface descriptor, the generic call dispatch surface, the registry
// connection collaborator, object-name derivation, and validation.
//
// Dynamic interface proxying is expressed as an explicit dispatch table: a
// managed object is anything implementing Caller, whose single
// Call(ctx, method, args) entry point is served either by an in-process
// object or by a per-call remote round trip. Statically typed clients wrap a
// Caller and forward each named method to Call.
package mbean
