// Package errs defines the error taxonomy of the wiring layer. Every failure
// is a wiring or component bug rather than a data problem, but each one is
// surfaced as a typed value so a driver can decide whether to halt the whole
// graph or isolate the failing component.
package errs

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridflow/internal/array"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	// ErrNotFound is returned when a port, staged value, component or
	// submodule name is absent.
	ErrNotFound = errors.New("not found")
	// ErrShapeMismatch is returned when two shapes that must agree do not.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrIncompleteResult is returned when a component did not stage a value
	// for every declared out-port.
	ErrIncompleteResult = errors.New("incomplete result")
)

// NotFoundError names the missing key and what kind of thing it was looked
// up as, e.g. "in port" or "component".
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError.
func NotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// ShapeMismatchError reports the shape a port requires and the one it was given.
type ShapeMismatchError struct {
	Expected array.Shape
	Actual   array.Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mismatched port shapes (expected: %s actual: %s)", e.Expected, e.Actual)
}

// Is matches ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// ShapeMismatch builds a ShapeMismatchError.
func ShapeMismatch(expected, actual array.Shape) error {
	return &ShapeMismatchError{Expected: expected, Actual: actual}
}

// IncompleteResultError names the out-port that had no staged value.
type IncompleteResultError struct {
	Port string
}

func (e *IncompleteResultError) Error() string {
	return fmt.Sprintf("no staged output for out port %q", e.Port)
}

// Is matches ErrIncompleteResult.
func (e *IncompleteResultError) Is(target error) bool {
	return target == ErrIncompleteResult
}

// IsNotFound reports whether err is, or wraps, a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsShapeMismatch reports whether err is, or wraps, a shape mismatch.
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsIncompleteResult reports whether err is, or wraps, an incomplete result.
func IsIncompleteResult(err error) bool {
	return errors.Is(err, ErrIncompleteResult)
}
