package builder

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/module"
	"github.com/specialistvlad/gridflow/internal/registry"
	"github.com/specialistvlad/gridflow/internal/unit"
)

// node mirrors one module of the tree being built. It keeps direct pointers
// to the children so linking never has to go through handles.
type node struct {
	path       address.Address
	depth      int
	cfg        *config.Module
	mod        *module.Module
	components map[string]*component.Component
	submodules map[string]*node
	// fed records in-ports that some link targets, keyed by full address.
	fed map[string]struct{}
}

func (b *Builder) createNodes(ctx context.Context, cfg *config.Module, parent *node) (*node, error) {
	n := &node{
		cfg:        cfg,
		mod:        module.New(),
		components: make(map[string]*component.Component),
		submodules: make(map[string]*node),
		fed:        make(map[string]struct{}),
	}
	if parent != nil {
		n.path = parent.path.Child(cfg.Name)
		n.depth = parent.depth + 1
		n.fed = parent.fed
	}

	for _, p := range cfg.InPorts {
		shape, err := p.ArrayShape()
		if err != nil {
			return nil, err
		}
		n.mod.MakeInPort(p.Name, shape)
	}
	for _, p := range cfg.OutPorts {
		shape, err := p.ArrayShape()
		if err != nil {
			return nil, err
		}
		n.mod.MakeOutPort(p.Name, shape)
	}

	for _, c := range cfg.Components {
		comp, err := b.createComponent(ctx, n.path, c)
		if err != nil {
			return nil, fmt.Errorf("%s: component '%s': %w", c.Source, n.path.Child(c.Name), err)
		}
		n.components[c.Name] = comp
		n.mod.AddComponent(c.Name, comp)
	}

	for _, sub := range cfg.Modules {
		child, err := b.createNodes(ctx, sub, n)
		if err != nil {
			return nil, err
		}
		n.submodules[sub.Name] = child
		n.mod.AddSubmodule(sub.Name, child.mod)
	}

	return n, nil
}

func (b *Builder) createComponent(ctx context.Context, parent address.Address, c *config.Component) (*component.Component, error) {
	spec := registry.Spec{
		Name:     c.Name,
		Logger:   ctxlog.FromContext(ctx).With("component", parent.Child(c.Name).String()),
		InPorts:  make(map[string]array.Shape, len(c.InPorts)),
		OutPorts: make(map[string]array.Shape, len(c.OutPorts)),
		Args:     registry.Args(c.Arguments),
	}
	for _, p := range c.InPorts {
		shape, err := p.ArrayShape()
		if err != nil {
			return nil, err
		}
		spec.InPorts[p.Name] = shape
	}
	for _, p := range c.OutPorts {
		shape, err := p.ArrayShape()
		if err != nil {
			return nil, err
		}
		spec.OutPorts[p.Name] = shape
	}
	return b.registry.Build(c.Kind, spec)
}

// unit resolves a path relative to n. The empty path is n's own module.
func (n *node) unit(path address.Address) (unit.Unit, error) {
	cur := n
	for i, name := range path.Path {
		last := i == len(path.Path)-1
		if last {
			if c, ok := cur.components[name]; ok {
				return c, nil
			}
		}
		sub, ok := cur.submodules[name]
		if !ok {
			if last {
				return nil, errs.NotFound("component or submodule", cur.path.Child(name).String())
			}
			return nil, errs.NotFound("submodule", cur.path.Child(name).String())
		}
		cur = sub
	}
	return cur.mod, nil
}

func (n *node) walk(fn func(*node)) {
	fn(n)
	names := make([]string, 0, len(n.submodules))
	for name := range n.submodules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n.submodules[name].walk(fn)
	}
}

func (n *node) countComponents() int {
	total := 0
	n.walk(func(m *node) { total += len(m.components) })
	return total
}

// unfedInPorts lists component in-ports that no link targets.
func (n *node) unfedInPorts() []string {
	var out []string
	n.walk(func(m *node) {
		names := make([]string, 0, len(m.components))
		for name := range m.components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, p := range m.components[name].InPortNames() {
				full := m.path.Child(name).Child(p).String()
				if _, ok := m.fed[full]; !ok {
					out = append(out, full)
				}
			}
		}
	})
	return out
}
