package module

import "sync"

// Handle guards one child of a module. Copies of the pointer share the lock.
type Handle[T any] struct {
	mu  sync.Mutex
	val T
}

// NewHandle wraps v.
func NewHandle[T any](v T) *Handle[T] {
	return &Handle[T]{val: v}
}

// Lock blocks until the handle is free and returns the guarded value. The
// value must not be used after Unlock.
func (h *Handle[T]) Lock() T {
	h.mu.Lock()
	return h.val
}

// Unlock releases the handle.
func (h *Handle[T]) Unlock() {
	h.mu.Unlock()
}

// TryLock acquires the handle only if it is free.
func (h *Handle[T]) TryLock() (T, bool) {
	if !h.mu.TryLock() {
		var zero T
		return zero, false
	}
	return h.val, true
}

// Do runs fn with the handle held.
func (h *Handle[T]) Do(fn func(T) error) error {
	v := h.Lock()
	defer h.Unlock()
	return fn(v)
}
