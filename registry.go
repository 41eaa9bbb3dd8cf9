package keel

import "sync"

// registry is one layer of the binding registry chain. The root layer
// is frozen by Build and safe for lock-free concurrent reads; a
// scope-local layer stays mutable and guards itself with a lock.
//
// A layer's lookup falls through to its parent only when the layer has
// no record for the identifier, which lets scope-local bindings shadow
// parent bindings without mutating them.
type registry struct {
	parent *registry

	mu       sync.RWMutex
	bindings map[Ident][]*binding
	order    []Ident // first-registration order of identifiers

	// frozen is set once, before the owning engine is published.
	// Reads of a frozen layer skip the lock.
	frozen bool
}

func newLayer(parent *registry) *registry {
	return &registry{
		parent:   parent,
		bindings: make(map[Ident][]*binding),
	}
}

// add registers a binding under its identifier and every alias.
func (r *registry) add(b *binding) error {
	if r.frozen {
		return ErrRegistryFinalized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range b.idents() {
		if _, seen := r.bindings[id]; !seen {
			r.order = append(r.order, id)
		}

		r.bindings[id] = append(r.bindings[id], b)
	}

	return nil
}

// freeze seals the layer. It must be called before the layer is shared
// across goroutines; afterwards reads are lock-free.
func (r *registry) freeze() {
	r.frozen = true
}

// local returns the records this layer holds for an identifier, without
// consulting parents.
func (r *registry) local(id Ident) []*binding {
	if r.frozen {
		return r.bindings[id]
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.bindings[id]
}

// idents returns the layer's identifiers in first-registration order.
func (r *registry) idents() []Ident {
	if r.frozen {
		return r.order
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Ident, len(r.order))
	copy(out, r.order)

	return out
}
