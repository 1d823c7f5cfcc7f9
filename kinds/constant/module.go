// Package constant provides the "constant" kind: a component that stages the
// same value on one out-port every time it fires.
package constant

import (
	"fmt"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kernel stages Value under Port.
type Kernel struct {
	Port  string
	Value array.Value
}

// Fire ignores its inputs.
func (k *Kernel) Fire(component.Staged) (component.Staged, error) {
	return component.Staged{k.Port: k.Value}, nil
}

// New builds the kernel from the component's declared ports. Arguments:
// port (default "out"), value (fill, default 0) or values (row-major list).
func New(spec registry.Spec) (component.Kernel, error) {
	if err := spec.Args.Check("port", "value", "values"); err != nil {
		return nil, err
	}
	name, err := spec.Args.String("port", "out")
	if err != nil {
		return nil, err
	}
	shape, ok := spec.OutPorts[name]
	if !ok {
		return nil, fmt.Errorf("constant needs an out port named '%s'", name)
	}
	if spec.Args.Has("values") {
		if spec.Args.Has("value") {
			return nil, fmt.Errorf("'value' and 'values' are mutually exclusive")
		}
		data, err := spec.Args.Floats("values")
		if err != nil {
			return nil, err
		}
		v, err := array.FromFloat64s(shape, data)
		if err != nil {
			return nil, err
		}
		return &Kernel{Port: name, Value: v}, nil
	}
	fill, err := spec.Args.Float("value", 0)
	if err != nil {
		return nil, err
	}
	return &Kernel{Port: name, Value: array.Full(shape, fill)}, nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("constant", &registry.RegisteredKind{
		Description: "stages a fixed value on one out port",
		New:         New,
	})
}
