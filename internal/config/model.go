package config

import "github.com/vk/mgrid/internal/mbean"

// Model is the unified representation of the application configuration.
type Model struct {
	// Endpoint describes the remote registry, when one is configured.
	Endpoint *Endpoint
	// Contracts maps a contract's simple name to its definition.
	Contracts map[string]*Contract
}

// Endpoint holds the four values a remote connection needs. All four are
// required together; the remote layer enforces that at use time.
type Endpoint struct {
	Host     string
	Port     string
	Login    string
	Password string
}

// Lookup implements Source. Empty values read as absent.
func (e *Endpoint) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	var v string
	switch key {
	case "host":
		v = e.Host
	case "port":
		v = e.Port
	case "login":
		v = e.Login
	case "password":
		v = e.Password
	}
	return v, v != ""
}

// Contract is the configured definition of a managed-interface contract.
type Contract struct {
	Name       string
	Namespace  string
	Operations []string
}

// Descriptor converts the definition into the core descriptor value.
func (c *Contract) Descriptor() mbean.Descriptor {
	return mbean.Descriptor{
		Namespace:  c.Namespace,
		Name:       c.Name,
		Operations: c.Operations,
	}
}
