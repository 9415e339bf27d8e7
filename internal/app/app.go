package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/vk/mgrid/internal/config"
	"github.com/vk/mgrid/internal/ctxlog"
	"github.com/vk/mgrid/internal/registry"
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
}

// NewApp builds a fully initialized App: isolated logger, loaded
// configuration model, registry populated from the given modules (the
// compiled-in core set when none are passed), and a parity check between
// configured contracts and compiled-in factories.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model := &config.Model{Contracts: map[string]*config.Contract{}}
	if cfg.ConfigPath != "" {
		loaded, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
	}
	logger.Debug("Configuration model ready.", "contracts", len(model.Contracts))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Bean modules registered.", "count", len(modules))

	if err := validateContracts(model, reg); err != nil {
		return nil, err
	}
	logger.Debug("Contract validation passed.")

	return &App{outW: outW, logger: logger, registry: reg, model: model}, nil
}

// Registry returns the application's registry. Primarily for tests.
func (a *App) Registry() *registry.Registry { return a.registry }

// validateContracts checks that every configured contract that names a
// compiled-in factory agrees with it on the declared operations. A
// configured contract with no compiled-in factory is fine: it may describe a
// bean hosted by a remote endpoint only.
func validateContracts(model *config.Model, reg *registry.Registry) error {
	var errs []string
	for _, c := range model.Contracts {
		desc := c.Descriptor()
		compiled, ok := reg.DescriptorFor(desc.TypeName())
		if !ok {
			continue
		}
		declared := append([]string(nil), c.Operations...)
		built := append([]string(nil), compiled.Operations...)
		slices.Sort(declared)
		slices.Sort(built)
		if !slices.Equal(declared, built) {
			errs = append(errs, fmt.Sprintf("contract %s: configured operations %v do not match the compiled-in bean's %v",
				desc.TypeName(), declared, built))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("contract validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
