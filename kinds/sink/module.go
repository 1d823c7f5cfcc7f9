// Package sink provides the "sink" kind. A sink stages nothing, so it may
// have in-ports only.
package sink

import (
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kernel discards its inputs.
type Kernel struct{}

func (Kernel) Fire(component.Staged) (component.Staged, error) {
	return component.Staged{}, nil
}

func New(spec registry.Spec) (component.Kernel, error) {
	if err := spec.Args.Check(); err != nil {
		return nil, err
	}
	return Kernel{}, nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("sink", &registry.RegisteredKind{
		Description: "consumes its inputs",
		New:         New,
	})
}
