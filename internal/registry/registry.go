package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotFound is returned when an identifier names no live object.
var ErrNotFound = errors.New("reference not found")

// ReferenceError reports a lookup of an unknown or already freed identifier.
type ReferenceError struct {
	ID ID
	Op string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID.Wire(), ErrNotFound)
}

func (e *ReferenceError) Unwrap() error { return ErrNotFound }

type entry[T any] struct {
	obj  T
	refs int
}

// Registry assigns identifiers to shared objects and keeps each one alive
// while at least one holder has not released it.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[ID]*entry[T]
}

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[ID]*entry[T])}
}

// Register stores obj and returns its identifier. The caller holds the
// first reference.
func (r *Registry[T]) Register(obj T) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := NewID()
	for r.entries[id] != nil {
		id = NewID()
	}
	r.entries[id] = &entry[T]{obj: obj, refs: 1}
	return id
}

// Resolve returns the object registered under id.
func (r *Registry[T]) Resolve(id ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, &ReferenceError{ID: id, Op: "resolve"}
	}
	return e.obj, nil
}

// Acquire adds a holder to id.
func (r *Registry[T]) Acquire(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return &ReferenceError{ID: id, Op: "acquire"}
	}
	e.refs++
	return nil
}

// Release drops one holder from id. When the last holder is gone the entry
// is removed and freed reports true along with the object, so the caller can
// release whatever that object itself held.
func (r *Registry[T]) Release(id ID) (obj T, freed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return obj, false, &ReferenceError{ID: id, Op: "release"}
	}
	e.refs--
	if e.refs > 0 {
		return e.obj, false, nil
	}
	delete(r.entries, id)
	return e.obj, true, nil
}

// Refs returns the holder count for id, zero when unknown.
func (r *Registry[T]) Refs(id ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		return e.refs
	}
	return 0
}

// IDs lists live identifiers in creation order.
func (r *Registry[T]) IDs() []ID {
	r.mu.Lock()
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	slices.SortFunc(ids, ID.Compare)
	return ids
}

// Len returns the number of live entries.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
