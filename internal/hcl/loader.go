package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/mgrid/internal/config"
	"github.com/vk/mgrid/internal/ctxlog"
)

// fileSchema mirrors the top-level structure of a configuration file.
type fileSchema struct {
	Endpoint  *endpointSchema  `hcl:"endpoint,block"`
	Contracts []contractSchema `hcl:"contract,block"`
}

type endpointSchema struct {
	Host     string `hcl:"host,optional"`
	Port     string `hcl:"port,optional"`
	Login    string `hcl:"login,optional"`
	Password string `hcl:"password,optional"`
}

type contractSchema struct {
	Name       string            `hcl:"name,label"`
	Namespace  string            `hcl:"namespace"`
	Operations []operationSchema `hcl:"operation,block"`
}

type operationSchema struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader { return &Loader{} }

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, diags)
	}

	var fs fileSchema
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &fs); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode configuration file %s: %w", path, diags)
	}

	model := l.translate(&fs)
	logger.Debug("Configuration loaded.", "contracts", len(model.Contracts), "has_endpoint", model.Endpoint != nil)
	return model, nil
}

// translate converts the HCL-specific schema into the agnostic model.
func (l *Loader) translate(fs *fileSchema) *config.Model {
	model := &config.Model{Contracts: make(map[string]*config.Contract)}
	if fs.Endpoint != nil {
		model.Endpoint = &config.Endpoint{
			Host:     fs.Endpoint.Host,
			Port:     fs.Endpoint.Port,
			Login:    fs.Endpoint.Login,
			Password: fs.Endpoint.Password,
		}
	}
	for _, c := range fs.Contracts {
		ops := make([]string, 0, len(c.Operations))
		for _, op := range c.Operations {
			ops = append(ops, op.Name)
		}
		model.Contracts[c.Name] = &config.Contract{
			Name:       c.Name,
			Namespace:  c.Namespace,
			Operations: ops,
		}
	}
	return model
}

// evalContext exposes the process environment as the "env" object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}
