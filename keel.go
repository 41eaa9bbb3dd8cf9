// Package keel is an in-process object-graph resolution engine: given
// a registry of bindings it builds and returns fully wired instances
// of requested identifiers, respecting declared lifetimes, detecting
// resolution cycles, and supporting nested scopes for request-local
// instances.
//
// The engine never inspects types. Bindings and lookups go through
// opaque, pre-computed identifiers; factory derivation from typed
// constructors is the caller's (or a code generator's) concern.
package keel

// Resolver resolves identifiers into instances. It is the interface a
// factory receives: the resolver passed into a factory is bound to the
// factory's resolution tree, so nested resolutions share the same
// cycle-detection stack and per-request cache.
type Resolver interface {
	// Resolve returns an instance for the identifier, or fails with
	// NOT_REGISTERED, CIRCULAR_DEPENDENCY or FACTORY_FAILED.
	Resolve(id Ident) (any, error)

	// ResolveAll returns one instance per binding registered for the
	// identifier, in registration order. Zero bindings yield an empty
	// slice, never an error.
	ResolveAll(id Ident) ([]any, error)

	// ResolveKeyed resolves the binding registered under the
	// identifier with the exact key.
	ResolveKeyed(id Ident, key string) (any, error)
}

// Container is a resolution engine built from a finalized registry.
type Container interface {
	Resolver

	// Has reports whether any binding for the identifier is reachable
	// through this engine's registry chain.
	Has(id Ident) bool

	// CreateChild returns a scope that inherits this engine's bindings
	// by reference, with its own singleton cache and context pool.
	CreateChild() Scope

	// Use adds middleware observing cold resolutions on this engine.
	Use(m Middleware)

	// Bindings returns information about every binding visible from
	// this engine, scope-local overrides shadowing parents.
	Bindings() []BindingInfo

	// Inspect returns information about the bindings reachable for an
	// identifier. The zero BindingInfo (with Ident set) is returned
	// for unknown identifiers.
	Inspect(id Ident) BindingInfo
}

// Scope is a child engine for request-scoped work. Bindings registered
// on the scope shadow the parent's for the scope and its descendants;
// everything else falls through to the parent, including singleton
// identity.
type Scope interface {
	Container

	// Bind registers a scope-local binding, shadowing any parent
	// binding for the same identifier.
	Bind(id Ident, factory Factory, opts ...BindOption) error

	// End discards the scope: cached scope-local singletons are
	// disposed (if they implement di.Disposable) and further
	// operations fail with SCOPE_ENDED. The parent is unaffected.
	End() error
}
