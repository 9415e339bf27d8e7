// Package config defines the format-agnostic configuration model: the
// remote endpoint description, the managed-contract definitions, and the
// Source key-lookup interface the remote layer reads endpoint values from.
//
// A format-specific loader (see internal/hcl) translates files into this
// model, keeping the rest of the system independent of the configuration
// syntax.
package config
