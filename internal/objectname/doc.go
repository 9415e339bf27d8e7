// Package objectname implements the canonical structured name that addresses
// a managed object: a namespace plus a set of unique key/value properties,
// rendered as "<namespace>:<key1>=<value1>,<key2>=<value2>".
//
// Names are immutable values. The canonical string form orders properties
// lexicographically by key, so parse and format round-trip without loss and
// two names compare equal independent of the order their properties were
// supplied in.
package objectname
