// Package print provides the "print" kind, a sink that logs the sum and
// shape of every staged input each time it fires.
package print

import (
	"log/slog"
	"sort"

	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type Kernel struct {
	Label  string
	Logger *slog.Logger
}

func (k *Kernel) Fire(in component.Staged) (component.Staged, error) {
	if len(in) == 0 {
		k.Logger.Info("Printing input", "label", k.Label, "ports", 0)
		return component.Staged{}, nil
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(in))
	for name := range in {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		v := in[name]
		k.Logger.Info("Printing input", "label", k.Label, "port", name, "shape", v.Shape().String(), "sum", v.Sum())
	}
	return component.Staged{}, nil
}

// New accepts an optional label, defaulting to the component name. Output
// goes to the run's logger, or the default logger when the spec has none.
func New(spec registry.Spec) (component.Kernel, error) {
	if err := spec.Args.Check("label"); err != nil {
		return nil, err
	}
	label, err := spec.Args.String("label", spec.Name)
	if err != nil {
		return nil, err
	}
	logger := spec.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Kernel{Label: label, Logger: logger}, nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("print", &registry.RegisteredKind{
		Description: "logs its inputs",
		New:         New,
	})
}
