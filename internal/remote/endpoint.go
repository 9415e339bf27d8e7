package remote

import (
	"fmt"
	"net"

	"github.com/vk/mgrid/internal/config"
	"github.com/vk/mgrid/internal/errdefs"
)

// Recognized endpoint configuration keys. All four are required together.
const (
	HostKey     = "host"
	PortKey     = "port"
	LoginKey    = "login"
	PasswordKey = "password"
)

var endpointKeys = []string{HostKey, PortKey, LoginKey, PasswordKey}

// Endpoint describes how to reach a remote registry. Credentials are held in
// memory only for as long as the owning proxy or connection lives.
type Endpoint struct {
	Host     string
	Port     string
	Login    string
	Password string
}

// EndpointFromSource reads the four required endpoint values from src,
// failing fast with ErrInvalidArgument naming the first missing key. No
// connection attempt happens here.
func EndpointFromSource(src config.Source) (Endpoint, error) {
	if src == nil {
		return Endpoint{}, errdefs.InvalidArgumentf("an endpoint configuration source is required")
	}
	values := make(map[string]string, len(endpointKeys))
	for _, key := range endpointKeys {
		v, ok := src.Lookup(key)
		if !ok || v == "" {
			return Endpoint{}, errdefs.InvalidArgumentf("the configuration value %q does not exist", key)
		}
		values[key] = v
	}
	return Endpoint{
		Host:     values[HostKey],
		Port:     values[PortKey],
		Login:    values[LoginKey],
		Password: values[PasswordKey],
	}, nil
}

// ServiceURL renders the connection URL for a registry endpoint. The
// two-segment host:port pattern with the registry path suffix is the wire
// contract of existing management endpoints and must be reproduced exactly.
func ServiceURL(host, port string) string {
	return fmt.Sprintf("service:mgmt:http://%s:%s/registry://%s:%s/mgrid", host, port, host, port)
}

// ServiceURL renders the endpoint's connection URL.
func (e Endpoint) ServiceURL() string { return ServiceURL(e.Host, e.Port) }

// baseURL is the HTTP base address of the endpoint.
func (e Endpoint) baseURL() string {
	return "http://" + net.JoinHostPort(e.Host, e.Port)
}
