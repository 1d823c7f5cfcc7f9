package array

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRank is the highest number of dimensions a Shape can describe.
const MaxRank = 4

// Shape is the logical extent of a Value. Unused trailing dimensions are 1,
// so a (5, 3) shape is equal to (5, 3, 1, 1). Shapes are comparable with ==.
type Shape [MaxRank]int

// NewShape builds a Shape from up to MaxRank positive extents.
func NewShape(dims ...int) (Shape, error) {
	var s Shape
	if len(dims) == 0 {
		return s, fmt.Errorf("shape must have at least one dimension")
	}
	if len(dims) > MaxRank {
		return s, fmt.Errorf("shape rank %d exceeds maximum rank %d", len(dims), MaxRank)
	}
	for i := range s {
		s[i] = 1
	}
	for i, d := range dims {
		if d <= 0 {
			return Shape{}, fmt.Errorf("shape dimension %d must be positive, got %d", i, d)
		}
		s[i] = d
	}
	return s, nil
}

// MustShape is like NewShape but panics on invalid extents. It is meant for
// literals in code and tests.
func MustShape(dims ...int) Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// IsValid reports whether every extent is positive. The zero Shape is invalid.
func (s Shape) IsValid() bool {
	for _, d := range s {
		if d <= 0 {
			return false
		}
	}
	return true
}

// Rank returns the number of significant dimensions, ignoring trailing 1s.
func (s Shape) Rank() int {
	r := MaxRank
	for r > 1 && s[r-1] == 1 {
		r--
	}
	return r
}

// Dims returns the significant extents.
func (s Shape) Dims() []int {
	out := make([]int, s.Rank())
	copy(out, s[:])
	return out
}

// Size returns the number of elements.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

func (s Shape) String() string {
	parts := make([]string, 0, MaxRank)
	for _, d := range s.Dims() {
		parts = append(parts, strconv.Itoa(d))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
