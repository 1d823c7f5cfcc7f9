package component

import (
	"fmt"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/internal/unit"
)

// Staged maps port names to values held between phases.
type Staged map[string]array.Value

// Clone returns a shallow copy. Values are immutable, so the copy is
// independent of the original.
func (s Staged) Clone() Staged {
	out := make(Staged, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Kernel computes staged outputs from staged inputs. A kernel must not
// touch ports; it sees only the copy of the inputs it is given and whatever
// parameters it was constructed with.
type Kernel interface {
	Fire(in Staged) (Staged, error)
}

// KernelFunc adapts a function to the Kernel interface.
type KernelFunc func(in Staged) (Staged, error)

// Fire calls f.
func (f KernelFunc) Fire(in Staged) (Staged, error) {
	return f(in)
}

// Component is a unit driven through Input, Fire and Output.
type Component struct {
	unit.Base

	kind    string
	kernel  Kernel
	inputs  Staged
	outputs Staged
}

var _ unit.Unit = (*Component)(nil)

// New creates a component without ports. kind is informational and shows up
// in error messages and diagnostics.
func New(kind string, kernel Kernel) *Component {
	return &Component{
		kind:    kind,
		kernel:  kernel,
		inputs:  make(Staged),
		outputs: make(Staged),
	}
}

// Kind returns the kind name given to New.
func (c *Component) Kind() string {
	return c.kind
}

// MakeInPort creates the in-port and seeds its staged input with zeros.
func (c *Component) MakeInPort(name string, shape array.Shape) {
	c.Base.MakeInPort(name, shape)
	c.inputs[name] = array.Zeros(shape)
}

// MakeOutPort creates the out-port and seeds its staged output with zeros.
func (c *Component) MakeOutPort(name string, shape array.Shape) {
	c.Base.MakeOutPort(name, shape)
	c.outputs[name] = array.Zeros(shape)
}

// RemoveInPort drops the in-port and its staged input.
func (c *Component) RemoveInPort(name string) error {
	if err := c.Base.RemoveInPort(name); err != nil {
		return err
	}
	delete(c.inputs, name)
	return nil
}

// RemoveOutPort drops the out-port and its staged output.
func (c *Component) RemoveOutPort(name string) error {
	if err := c.Base.RemoveOutPort(name); err != nil {
		return err
	}
	delete(c.outputs, name)
	return nil
}

// Input replaces the staged inputs with the current value of every in-port.
func (c *Component) Input() {
	names := c.InPortNames()
	staged := make(Staged, len(names))
	for _, name := range names {
		p, err := c.InPort(name)
		if err != nil {
			continue
		}
		staged[name] = p.Read()
	}
	c.inputs = staged
}

// Fire runs the kernel on a copy of the staged inputs. On success the staged
// outputs are replaced by the kernel result; on failure they are left as
// they were.
func (c *Component) Fire() error {
	if c.kernel == nil {
		c.outputs = make(Staged)
		return nil
	}
	out, err := c.kernel.Fire(c.inputs.Clone())
	if err != nil {
		return fmt.Errorf("%s: %w", c.kind, err)
	}
	if out == nil {
		out = make(Staged)
	}
	c.outputs = out
	return nil
}

// Output writes every staged output into the out-port of the same name.
// Every out-port is checked before the first write, so a failing Output
// leaves all ports untouched.
func (c *Component) Output() error {
	names := c.OutPortNames()
	type pending struct {
		name  string
		value array.Value
	}
	writes := make([]pending, 0, len(names))
	for _, name := range names {
		v, ok := c.outputs[name]
		if !ok {
			return &errs.IncompleteResultError{Port: name}
		}
		p, err := c.OutPort(name)
		if err != nil {
			return err
		}
		if v.Shape() != p.Shape() {
			return fmt.Errorf("out port %q: %w", name, errs.ShapeMismatch(p.Shape(), v.Shape()))
		}
		writes = append(writes, pending{name: name, value: v})
	}
	for _, w := range writes {
		p, err := c.OutPort(w.name)
		if err != nil {
			return err
		}
		if err := p.Write(w.value); err != nil {
			return err
		}
	}
	return nil
}

// StagedInput returns the staged input for name.
func (c *Component) StagedInput(name string) (array.Value, error) {
	v, ok := c.inputs[name]
	if !ok {
		return array.Value{}, errs.NotFound("staged input", name)
	}
	return v, nil
}

// StagedOutput returns the staged output for name.
func (c *Component) StagedOutput(name string) (array.Value, error) {
	v, ok := c.outputs[name]
	if !ok {
		return array.Value{}, errs.NotFound("staged output", name)
	}
	return v, nil
}

// StagedInputs returns a copy of the staged inputs.
func (c *Component) StagedInputs() Staged {
	return c.inputs.Clone()
}

// StagedOutputs returns a copy of the staged outputs.
func (c *Component) StagedOutputs() Staged {
	return c.outputs.Clone()
}
