package reactive

import "sync"

// Ref holds a mutable value. Unlike a Signal, writing a Ref never triggers
// a re-render. Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value T
	mu    sync.RWMutex
}

// NewRef creates a new Ref with the given initial value.
// Inside a render function use UseRef for a stable instance.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial}
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

// Swap sets the ref's value and returns the previous one.
func (r *Ref[T]) Swap(value T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.value
	r.value = value
	return old
}
