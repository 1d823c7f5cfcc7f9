package port

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/errs"
)

// Direction says whether a port feeds a unit or is fed by it.
type Direction int

const (
	// In ports are read by the owning unit.
	In Direction = iota
	// Out ports are written by the owning unit.
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// cell is the shared slot behind one or more ports.
type cell struct {
	id    uuid.UUID
	mu    sync.RWMutex
	value array.Value
}

func newCell(v array.Value) *cell {
	return &cell{id: uuid.New(), value: v}
}

func (c *cell) load() array.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *cell) store(v array.Value) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// Port is a fixed-shape endpoint. Its shape never changes after New.
type Port struct {
	shape array.Shape
	cell  atomic.Pointer[cell]
}

// New creates a Port owning a private cell holding zeros of shape.
func New(shape array.Shape) *Port {
	p := &Port{shape: shape}
	p.cell.Store(newCell(array.Zeros(shape)))
	return p
}

// Shape returns the shape fixed at creation.
func (p *Port) Shape() array.Shape {
	return p.shape
}

// Read returns the current value of the referenced cell. The result is a
// shared handle, not a copy of the data.
func (p *Port) Read() array.Value {
	return p.cell.Load().load()
}

// Write replaces the value of the referenced cell. The value must have the
// port's shape.
func (p *Port) Write(v array.Value) error {
	if v.Shape() != p.shape {
		return errs.ShapeMismatch(p.shape, v.Shape())
	}
	p.cell.Load().store(v)
	return nil
}

// Entangle makes p reference the cell of other. Shapes must be equal; on a
// mismatch neither port changes. Entangling again is harmless, but it
// detaches p from whatever group it shared a cell with before.
func (p *Port) Entangle(other *Port) error {
	if other == nil {
		return errors.New("port: cannot entangle with a nil port")
	}
	if p.shape != other.shape {
		return errs.ShapeMismatch(p.shape, other.shape)
	}
	p.cell.Store(other.cell.Load())
	return nil
}

// CellID identifies the cell p currently references. Ports sharing a cell
// report the same id.
func (p *Port) CellID() uuid.UUID {
	return p.cell.Load().id
}

// SharesCellWith reports whether p and other reference the same cell.
func (p *Port) SharesCellWith(other *Port) bool {
	return other != nil && p.cell.Load() == other.cell.Load()
}
