// Package pipe provides the "pipe" kind, which forwards one staged input to
// one staged output unchanged.
package pipe

import (
	"fmt"

	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kernel copies staged input From to staged output To.
type Kernel struct {
	From string
	To   string
}

// Fire fails with a NotFoundError when From was not staged.
func (k *Kernel) Fire(in component.Staged) (component.Staged, error) {
	v, ok := in[k.From]
	if !ok {
		return nil, errs.NotFound("staged input", k.From)
	}
	return component.Staged{k.To: v}, nil
}

// New reads the from/to arguments, defaulting to "in" and "out". Both must
// name ports the component declares.
func New(spec registry.Spec) (component.Kernel, error) {
	if err := spec.Args.Check("from", "to"); err != nil {
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
	if _, ok := spec.InPorts[from]; !ok {
		return nil, fmt.Errorf("pipe needs an in port named '%s'", from)
	}
	if _, ok := spec.OutPorts[to]; !ok {
		return nil, fmt.Errorf("pipe needs an out port named '%s'", to)
	}
	return &Kernel{From: from, To: to}, nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("pipe", &registry.RegisteredKind{
		Description: "forwards one input to one output",
		New:         New,
	})
}
