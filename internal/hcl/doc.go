// Package hcl implements the HCL-backed configuration loader. It parses
// endpoint and contract blocks and translates them into the format-agnostic
// config model. Attribute expressions may reference process environment
// variables through the "env" object, e.g. password = env.MGRID_PASSWORD.
package hcl
