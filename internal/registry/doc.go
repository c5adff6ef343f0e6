// Package registry assigns and resolves stable identifiers for synchronized
// objects so that one object can point at another by identifier instead of
// embedding its state.
//
// # Identifiers
//
// An ID is a ULID. It is unique for the life of the process and is never
// handed out twice, so a stale ID can only fail to resolve; it can never
// resolve to a different object. On the wire an ID is written as
// "IPY_MODEL_<ulid>", which is the form renderers already understand for
// widget references.
//
// # Ownership
//
// Registration returns the first holder reference. Every additional holder
// calls Acquire and later Release. The entry is dropped only when the count
// reaches zero:
//
//	reg := registry.New[*Scale]()
//	id := reg.Register(scale)  // refs = 1 (creator)
//	_ = reg.Acquire(id)        // refs = 2 (a mark)
//	reg.Release(id)            // refs = 1
//	reg.Release(id)            // freed; Resolve now fails
//
// Release reports the freed object so the caller can cascade releases to
// references that object held. The registry itself never traverses object
// graphs.
//
// # Errors
//
// Lookups of unknown identifiers return *ReferenceError, which unwraps to
// ErrNotFound.
//
// # Thread Safety
//
// All methods take an internal mutex and may be called from any goroutine.
package registry
