// Package unit provides the base abstraction that owns named input and output
// ports and wires them to the ports of other units.
package unit

import (
	"sort"
	"sync"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/port"
)

// Unit is the port contract shared by components and modules.
//
// In-port names and out-port names are separate namespaces: a unit may have
// an in-port and an out-port with the same name.
type Unit interface {
	// MakeInPort registers a new in-port with a private zeroed cell. An
	// existing in-port of the same name is replaced.
	MakeInPort(name string, shape array.Shape)
	// MakeOutPort registers a new out-port with a private zeroed cell. An
	// existing out-port of the same name is replaced.
	MakeOutPort(name string, shape array.Shape)

	// InPort looks up an in-port, failing with a NotFoundError.
	InPort(name string) (*port.Port, error)
	// OutPort looks up an out-port, failing with a NotFoundError.
	OutPort(name string) (*port.Port, error)

	// RemoveInPort drops an in-port, failing with a NotFoundError if absent.
	RemoveInPort(name string) error
	// RemoveOutPort drops an out-port, failing with a NotFoundError if absent.
	RemoveOutPort(name string) error

	// InPortNames lists in-port names in sorted order.
	InPortNames() []string
	// OutPortNames lists out-port names in sorted order.
	OutPortNames() []string

	// Connect aliases this unit's in-port `from` onto other's out-port `to`.
	Connect(from string, other Unit, to string) error
	// AliasInPort aliases this unit's in-port `from` onto other's in-port `to`.
	AliasInPort(from string, other Unit, to string) error
	// AliasOutPort aliases this unit's out-port `from` onto other's out-port `to`.
	AliasOutPort(from string, other Unit, to string) error
}

// Base implements Unit. The zero value is ready to use; it must not be copied
// after first use.
type Base struct {
	mu  sync.RWMutex
	in  map[string]*port.Port
	out map[string]*port.Port
}

var _ Unit = (*Base)(nil)

// MakeInPort implements Unit.
func (b *Base) MakeInPort(name string, shape array.Shape) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.in == nil {
		b.in = make(map[string]*port.Port)
	}
	b.in[name] = port.New(shape)
}

// MakeOutPort implements Unit.
func (b *Base) MakeOutPort(name string, shape array.Shape) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out == nil {
		b.out = make(map[string]*port.Port)
	}
	b.out[name] = port.New(shape)
}

// InPort implements Unit.
func (b *Base) InPort(name string) (*port.Port, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.in[name]
	if !ok {
		return nil, errs.NotFound("in port", name)
	}
	return p, nil
}

// OutPort implements Unit.
func (b *Base) OutPort(name string) (*port.Port, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.out[name]
	if !ok {
		return nil, errs.NotFound("out port", name)
	}
	return p, nil
}

// RemoveInPort implements Unit.
func (b *Base) RemoveInPort(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.in[name]; !ok {
		return errs.NotFound("in port", name)
	}
	delete(b.in, name)
	return nil
}

// RemoveOutPort implements Unit.
func (b *Base) RemoveOutPort(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.out[name]; !ok {
		return errs.NotFound("out port", name)
	}
	delete(b.out, name)
	return nil
}

// InPortNames implements Unit.
func (b *Base) InPortNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedKeys(b.in)
}

// OutPortNames implements Unit.
func (b *Base) OutPortNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedKeys(b.out)
}

// Connect implements Unit.
func (b *Base) Connect(from string, other Unit, to string) error {
	in, err := b.InPort(from)
	if err != nil {
		return err
	}
	out, err := other.OutPort(to)
	if err != nil {
		return err
	}
	return in.Entangle(out)
}

// AliasInPort implements Unit.
func (b *Base) AliasInPort(from string, other Unit, to string) error {
	in, err := b.InPort(from)
	if err != nil {
		return err
	}
	target, err := other.InPort(to)
	if err != nil {
		return err
	}
	return in.Entangle(target)
}

// AliasOutPort implements Unit.
func (b *Base) AliasOutPort(from string, other Unit, to string) error {
	out, err := b.OutPort(from)
	if err != nil {
		return err
	}
	target, err := other.OutPort(to)
	if err != nil {
		return err
	}
	return out.Entangle(target)
}

// Connect aliases fromUnit's in-port fromPort onto toUnit's out-port toPort.
func Connect(fromUnit Unit, fromPort string, toUnit Unit, toPort string) error {
	return fromUnit.Connect(fromPort, toUnit, toPort)
}

func sortedKeys(m map[string]*port.Port) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
