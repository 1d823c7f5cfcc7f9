package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/errs"
)

// Module is the interface that every kind package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Spec is everything a factory may use to build a kernel: the declared
// ports of the component, its arguments and the logger of the run that
// builds it. Logger may be nil outside a run.
type Spec struct {
	Name     string
	InPorts  map[string]array.Shape
	OutPorts map[string]array.Shape
	Args     Args
	Logger   *slog.Logger
}

// Factory builds the kernel for one component.
type Factory func(spec Spec) (component.Kernel, error)

// RegisteredKind holds the Go parts of a kind.
type RegisteredKind struct {
	// Description is shown by diagnostics that list the available kinds.
	Description string
	New         Factory
}

// Registry holds the kinds known to a single application instance.
type Registry struct {
	kinds map[string]*RegisteredKind
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]*RegisteredKind)}
}

// RegisterKind adds a kind. It panics if the name is already taken.
func (r *Registry) RegisterKind(name string, kind *RegisteredKind) {
	if _, exists := r.kinds[name]; exists {
		panic(fmt.Sprintf("kind with name '%s' already registered", name))
	}
	if kind == nil || kind.New == nil {
		panic(fmt.Sprintf("kind '%s' has no factory", name))
	}
	slog.Debug("Registering component kind.", "kind", name)
	r.kinds[name] = kind
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*RegisteredKind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return nil, errs.NotFound("kind", name)
	}
	return k, nil
}

// Build looks up the kind and runs its factory, returning a component with
// the declared ports already created.
func (r *Registry) Build(kind string, spec Spec) (*component.Component, error) {
	k, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	kernel, err := k.New(spec)
	if err != nil {
		return nil, fmt.Errorf("kind '%s': component '%s': %w", kind, spec.Name, err)
	}
	c := component.New(kind, kernel)
	for _, name := range sortedNames(spec.InPorts) {
		c.MakeInPort(name, spec.InPorts[name])
	}
	for _, name := range sortedNames(spec.OutPorts) {
		c.MakeOutPort(name, spec.OutPorts[name])
	}
	return c, nil
}

// Kinds lists the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedNames(m map[string]array.Shape) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
