package array

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Value is an immutable array payload. Copying a Value copies a handle, not
// the underlying data; no method mutates the backing tensor.
type Value struct {
	dense *tensor.Dense
	shape Shape
}

// Zeros returns a zero-filled Value of the given shape.
func Zeros(s Shape) Value {
	return Value{
		dense: tensor.New(tensor.WithShape(s.Dims()...), tensor.Of(tensor.Float64)),
		shape: s,
	}
}

// Full returns a Value of the given shape with every element set to x.
func Full(s Shape, x float64) Value {
	backing := make([]float64, s.Size())
	for i := range backing {
		backing[i] = x
	}
	return Value{
		dense: tensor.New(tensor.WithShape(s.Dims()...), tensor.WithBacking(backing)),
		shape: s,
	}
}

// FromFloat64s builds a Value from row-major data. The slice is copied.
func FromFloat64s(s Shape, data []float64) (Value, error) {
	if !s.IsValid() {
		return Value{}, fmt.Errorf("invalid shape %v", [MaxRank]int(s))
	}
	if len(data) != s.Size() {
		return Value{}, fmt.Errorf("shape %s needs %d elements, got %d", s, s.Size(), len(data))
	}
	backing := make([]float64, len(data))
	copy(backing, data)
	return Value{
		dense: tensor.New(tensor.WithShape(s.Dims()...), tensor.WithBacking(backing)),
		shape: s,
	}, nil
}

// Shape returns the shape the Value was constructed with.
func (v Value) Shape() Shape {
	return v.shape
}

// IsNil reports whether v is the zero Value, which holds no data.
func (v Value) IsNil() bool {
	return v.dense == nil
}

// Float64s returns a copy of the elements in row-major order.
func (v Value) Float64s() []float64 {
	if v.dense == nil {
		return nil
	}
	switch data := v.dense.Data().(type) {
	case []float64:
		out := make([]float64, len(data))
		copy(out, data)
		return out
	case float64:
		return []float64{data}
	default:
		panic(fmt.Sprintf("array: unexpected backing type %T", data))
	}
}

// Sum adds up every element.
func (v Value) Sum() float64 {
	var total float64
	for _, x := range v.Float64s() {
		total += x
	}
	return total
}

// Equal reports whether both values have the same shape and elements.
func (v Value) Equal(other Value) bool {
	if v.shape != other.shape || v.IsNil() != other.IsNil() {
		return false
	}
	a, b := v.Float64s(), other.Float64s()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Same reports whether both values are handles to the same payload.
func (v Value) Same(other Value) bool {
	return v.dense == other.dense
}

func (v Value) String() string {
	if v.dense == nil {
		return "<nil>"
	}
	return fmt.Sprintf("array%s%v", v.shape, v.Float64s())
}

// Scale returns a new Value with every element of v multiplied by factor.
func Scale(v Value, factor float64) (Value, error) {
	if v.dense == nil {
		return Value{}, fmt.Errorf("cannot scale a nil value")
	}
	out, err := v.dense.MulScalar(factor, true)
	if err != nil {
		return Value{}, fmt.Errorf("scale: %w", err)
	}
	return Value{dense: out, shape: v.shape}, nil
}
