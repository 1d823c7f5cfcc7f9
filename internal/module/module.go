package module

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/port"
	"github.com/specialistvlad/gridflow/internal/unit"
)

// ComponentHandle is the handle type a module keeps for each component.
type ComponentHandle = Handle[*component.Component]

// SubmoduleHandle is the handle type a module keeps for each submodule.
type SubmoduleHandle = Handle[*Module]

// Module is a named collection of components and submodules with a port
// boundary of its own.
type Module struct {
	unit.Base

	mu         sync.RWMutex
	components map[string]*ComponentHandle
	submodules map[string]*SubmoduleHandle
}

var _ unit.Unit = (*Module)(nil)

// New creates an empty module.
func New() *Module {
	return &Module{
		components: make(map[string]*ComponentHandle),
		submodules: make(map[string]*SubmoduleHandle),
	}
}

// AddComponent registers c under name behind a new handle, replacing any
// component already registered under that name.
func (m *Module) AddComponent(name string, c *component.Component) *ComponentHandle {
	h := NewHandle(c)
	m.mu.Lock()
	m.components[name] = h
	m.mu.Unlock()
	return h
}

// AddSubmodule registers sub under name behind a new handle, replacing any
// submodule already registered under that name.
func (m *Module) AddSubmodule(name string, sub *Module) *SubmoduleHandle {
	h := NewHandle(sub)
	m.mu.Lock()
	m.submodules[name] = h
	m.mu.Unlock()
	return h
}

// Component returns the handle of the named component.
func (m *Module) Component(name string) (*ComponentHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.components[name]
	if !ok {
		return nil, errs.NotFound("component", name)
	}
	return h, nil
}

// Submodule returns the handle of the named submodule.
func (m *Module) Submodule(name string) (*SubmoduleHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.submodules[name]
	if !ok {
		return nil, errs.NotFound("submodule", name)
	}
	return h, nil
}

// RemoveComponent drops the named component. Outstanding handles stay
// valid; ports aliased to the component keep their cells.
func (m *Module) RemoveComponent(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.components[name]; !ok {
		return errs.NotFound("component", name)
	}
	delete(m.components, name)
	return nil
}

// RemoveSubmodule drops the named submodule.
func (m *Module) RemoveSubmodule(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.submodules[name]; !ok {
		return errs.NotFound("submodule", name)
	}
	delete(m.submodules, name)
	return nil
}

// ComponentNames lists component names in sorted order.
func (m *Module) ComponentNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.components))
	for name := range m.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SubmoduleNames lists submodule names in sorted order.
func (m *Module) SubmoduleNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.submodules))
	for name := range m.submodules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve walks addr down through submodules and returns the handle of the
// component it names. Each submodule handle is held only while its child
// is looked up.
func (m *Module) Resolve(addr address.Address) (*ComponentHandle, error) {
	if addr.IsZero() {
		return nil, fmt.Errorf("empty component address")
	}
	owner, err := m.descend(addr.Parent())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	h, err := owner.Component(addr.Last())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	return h, nil
}

// ResolveModule walks addr down through submodules. The empty address
// resolves to m itself.
func (m *Module) ResolveModule(addr address.Address) (*Module, error) {
	owner, err := m.descend(addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	return owner, nil
}

func (m *Module) descend(path address.Address) (*Module, error) {
	cur := m
	for _, name := range path.Path {
		h, err := cur.Submodule(name)
		if err != nil {
			return nil, err
		}
		cur = h.Lock()
		h.Unlock()
	}
	return cur, nil
}

// Port finds the port an address names. The final segment is the port
// name; the rest names a component, a submodule, or is empty for m's own
// boundary. Out-ports are preferred when a unit has both directions under
// the same name.
func (m *Module) Port(addr address.Address) (*port.Port, port.Direction, error) {
	if addr.IsZero() {
		return nil, port.In, fmt.Errorf("empty port address")
	}
	owner, err := m.Unit(addr.Parent())
	if err != nil {
		return nil, port.In, err
	}
	if p, err := owner.OutPort(addr.Last()); err == nil {
		return p, port.Out, nil
	}
	p, err := owner.InPort(addr.Last())
	if err != nil {
		return nil, port.In, fmt.Errorf("port %s: %w", addr, errs.NotFound("port", addr.Last()))
	}
	return p, port.In, nil
}

// Unit returns the unit an address names: m itself for the empty address,
// otherwise a component or submodule of the addressed parent. Components
// win over submodules of the same name. The unit is returned without its
// handle held; only its port namespaces, which carry their own locks, may be
// used through it while a driver is running.
func (m *Module) Unit(addr address.Address) (unit.Unit, error) {
	if addr.IsZero() {
		return m, nil
	}
	parent, err := m.descend(addr.Parent())
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", addr, err)
	}
	if h, err := parent.Component(addr.Last()); err == nil {
		c := h.Lock()
		h.Unlock()
		return c, nil
	}
	h, err := parent.Submodule(addr.Last())
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", addr, errs.NotFound("component or submodule", addr.Last()))
	}
	sub := h.Lock()
	h.Unlock()
	return sub, nil
}

// Leaf is one component of a module tree together with its path.
type Leaf struct {
	Path   address.Address
	Handle *ComponentHandle
}

// Name returns the dotted path of the leaf.
func (l Leaf) Name() string {
	return l.Path.String()
}

// Leaves collects every component in the tree rooted at m. Components of a
// module come before its submodules; both are visited in name order, so
// the result is stable for a given tree.
func (m *Module) Leaves() []Leaf {
	var out []Leaf
	m.collect(address.Address{}, &out)
	return out
}

func (m *Module) collect(prefix address.Address, out *[]Leaf) {
	for _, name := range m.ComponentNames() {
		h, err := m.Component(name)
		if err != nil {
			continue
		}
		*out = append(*out, Leaf{Path: prefix.Child(name), Handle: h})
	}
	for _, name := range m.SubmoduleNames() {
		h, err := m.Submodule(name)
		if err != nil {
			continue
		}
		sub := h.Lock()
		h.Unlock()
		sub.collect(prefix.Child(name), out)
	}
}

// Describe renders the tree as indented text, one line per child.
func (m *Module) Describe() string {
	var sb strings.Builder
	m.describe(&sb, 0)
	return sb.String()
}

func (m *Module) describe(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range m.ComponentNames() {
		h, err := m.Component(name)
		if err != nil {
			continue
		}
		c := h.Lock()
		fmt.Fprintf(sb, "%s%s (%s) in=%v out=%v\n", indent, name, c.Kind(), c.InPortNames(), c.OutPortNames())
		h.Unlock()
	}
	for _, name := range m.SubmoduleNames() {
		h, err := m.Submodule(name)
		if err != nil {
			continue
		}
		sub := h.Lock()
		fmt.Fprintf(sb, "%smodule %s in=%v out=%v\n", indent, name, sub.InPortNames(), sub.OutPortNames())
		sub.describe(sb, depth+1)
		h.Unlock()
	}
}
