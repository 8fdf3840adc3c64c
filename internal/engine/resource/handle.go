// Package resource provides reference-counted handles for GPU-backed objects
// shared between entities.
package resource

import (
	"fmt"
	"sync/atomic"
)

// Handle is a shared reference to a value of type T. The value is released
// exactly once, when the last reference is dropped.
type Handle[T any] struct {
	value   T
	name    string
	refs    atomic.Int32
	release func(T)
}

// New wraps value with one reference owned by the caller. release may be nil.
func New[T any](name string, value T, release func(T)) *Handle[T] {
	h := &Handle[T]{value: value, name: name, release: release}
	h.refs.Store(1)
	return h
}

// Get returns the wrapped value.
func (h *Handle[T]) Get() T {
	return h.value
}

// Name returns the handle's name.
func (h *Handle[T]) Name() string {
	return h.name
}

// Refs returns the current reference count.
func (h *Handle[T]) Refs() int {
	return int(h.refs.Load())
}

// Acquire adds a reference and returns h for chaining.
// Acquiring a handle that has already been released panics.
func (h *Handle[T]) Acquire() *Handle[T] {
	for {
		n := h.refs.Load()
		if n <= 0 {
			panic(fmt.Sprintf("resource: acquire of released handle %q", h.name))
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return h
		}
	}
}

// Release drops one reference. It reports whether this call released the value.
// Extra calls after the final release are ignored.
func (h *Handle[T]) Release() bool {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return false
		}
		if !h.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			if h.release != nil {
				h.release(h.value)
			}
			return true
		}
		return false
	}
}

// Released reports whether the final reference has been dropped.
func (h *Handle[T]) Released() bool {
	return h.refs.Load() <= 0
}
