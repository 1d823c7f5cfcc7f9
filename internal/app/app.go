package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/gridflow/internal/builder"
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/module"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	model      *config.Model
	metrics    *prometheus.Registry
	httpServer *http.Server
}

// NewApp loads the graph definition and registers the component kinds. With
// no kinds given the core set is used. Registering the same kind twice is a
// programmer error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, kinds ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.GraphPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	logger.Debug("Graph definition loaded.", "paths", cfg.GraphPaths)

	reg := registry.New()
	if len(kinds) == 0 {
		kinds = coreKinds
	}
	for _, k := range kinds {
		k.Register(reg)
	}
	logger.Debug("Component kinds registered.", "kinds", reg.Kinds())

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		model:    model,
		metrics:  metrics,
	}, nil
}

// Registry returns the application's kind registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded graph definition.
func (a *App) Model() *config.Model {
	return a.model
}

// Build turns the loaded definition into a fresh module tree.
func (a *App) Build(ctx context.Context) (*module.Module, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	root, err := builder.New(a.registry).Build(ctx, a.model)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return root, nil
}
