// Package scale provides the "scale" kind, which multiplies one staged input
// by a constant factor.
package scale

import (
	"fmt"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type Kernel struct {
	From   string
	To     string
	Factor float64
}

func (k *Kernel) Fire(in component.Staged) (component.Staged, error) {
	v, ok := in[k.From]
	if !ok {
		return nil, errs.NotFound("staged input", k.From)
	}
	out, err := array.Scale(v, k.Factor)
	if err != nil {
		return nil, err
	}
	return component.Staged{k.To: out}, nil
}

// New reads from/to (defaults "in"/"out"), which must name declared ports,
// and factor (default 1).
func New(spec registry.Spec) (component.Kernel, error) {
	if err := spec.Args.Check("from", "to", "factor"); err != nil {
		return nil, err
	}
	from, err := spec.Args.String("from", "in")
	if err != nil {
		return nil, err
	}
	to, err := spec.Args.String("to", "out")
	if err != nil {
		return nil, err
	}
	factor, err := spec.Args.Float("factor", 1)
	if err != nil {
		return nil, err
	}
	if _, ok := spec.InPorts[from]; !ok {
		return nil, fmt.Errorf("scale needs an in port named '%s'", from)
	}
	if _, ok := spec.OutPorts[to]; !ok {
		return nil, fmt.Errorf("scale needs an out port named '%s'", to)
	}
	return &Kernel{From: from, To: to, Factor: factor}, nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("scale", &registry.RegisteredKind{
		Description: "multiplies one input by a constant",
		New:         New,
	})
}
