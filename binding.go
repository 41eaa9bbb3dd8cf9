package keel

// Lifetime governs how instances produced by a binding are shared.
type Lifetime uint8

const (
	// LifetimeSingleton creates one instance per owning engine (default).
	LifetimeSingleton Lifetime = iota

	// LifetimeTransient creates a new instance on every resolution.
	LifetimeTransient

	// LifetimePerRequest creates one instance per resolution tree.
	LifetimePerRequest
)

// String returns the string representation of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case LifetimeSingleton:
		return "singleton"
	case LifetimeTransient:
		return "transient"
	case LifetimePerRequest:
		return "per-request"
	default:
		return "unknown"
	}
}

// Factory produces a service instance. The resolver it receives is
// bound to the resolution tree of the call, so nested resolutions
// share cycle detection and the per-request cache.
type Factory func(r Resolver) (any, error)

// binding is an immutable description of how to produce an instance
// for an identifier. Owned by the registry; never mutated after the
// registry layer accepts it.
type binding struct {
	ident    Ident
	factory  Factory
	lifetime Lifetime

	// aliases are extra identifiers this binding is also reachable
	// under, e.g. a concrete type registered as an interface too.
	aliases []Ident

	// leaf marks a factory known at registration time to make no
	// nested resolution calls. Leaf transients skip the resolution
	// context entirely.
	leaf bool

	// declared dependencies, advisory only: validated at build time,
	// not consulted during resolution.
	deps []Ident
}

// newBinding validates and assembles a binding record from an
// identifier, a factory and the merged registration options.
func newBinding(id Ident, factory Factory, opts []BindOption) (*binding, error) {
	if id.IsZero() {
		return nil, ErrInvalidIdent
	}

	if factory == nil {
		return nil, ErrInvalidFactory
	}

	cfg := mergeBindOptions(opts)
	if cfg.key != "" {
		id = id.WithKey(cfg.key)
	}

	return &binding{
		ident:    id,
		factory:  factory,
		lifetime: cfg.lifetime,
		aliases:  cfg.aliases,
		leaf:     cfg.leaf,
		deps:     cfg.deps,
	}, nil
}

// idents returns the identifier and all aliases the binding is
// reachable under.
func (b *binding) idents() []Ident {
	if len(b.aliases) == 0 {
		return []Ident{b.ident}
	}

	ids := make([]Ident, 0, len(b.aliases)+1)
	ids = append(ids, b.ident)
	ids = append(ids, b.aliases...)

	return ids
}
