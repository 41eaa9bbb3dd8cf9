package keel

// Builder accumulates binding records and finalizes them into an
// immutable registry. Registration is append-only: multiple bindings
// for the same identifier coexist and are all returned by ResolveAll;
// single Resolve uses the most recently registered one.
type Builder struct {
	registry *registry
	graph    *depGraph
	built    bool
}

// NewBuilder creates an empty builder for a root engine.
func NewBuilder() *Builder {
	return &Builder{
		registry: newLayer(nil),
		graph:    newDepGraph(),
	}
}

// Bind registers a factory for an identifier. Lifetime defaults to
// singleton; see the BindOption constructors for keyed bindings,
// aliases, leaf factories and declared dependencies.
func (b *Builder) Bind(id Ident, factory Factory, opts ...BindOption) error {
	if b.built {
		return ErrRegistryFinalized
	}

	record, err := newBinding(id, factory, opts)
	if err != nil {
		return err
	}

	if err := b.registry.add(record); err != nil {
		return err
	}

	b.graph.addNode(record.ident, record.deps)

	return nil
}

// BindValue registers a pre-built instance as a singleton leaf.
func (b *Builder) BindValue(id Ident, value any, opts ...BindOption) error {
	factory := func(Resolver) (any, error) {
		return value, nil
	}

	merged := make([]BindOption, 0, len(opts)+2)
	merged = append(merged, Singleton(), Leaf())
	merged = append(merged, opts...)

	return b.Bind(id, factory, merged...)
}

// Build finalizes the registry and returns the root engine. The
// registry is immutable afterwards and safe to read concurrently;
// further Bind calls fail with ErrRegistryFinalized.
//
// Build rejects cycles in the declared dependency graph up front, so
// statically known cycles fail at wiring time rather than on first
// resolve.
func (b *Builder) Build() (Container, error) {
	if b.built {
		return nil, ErrRegistryFinalized
	}

	if err := b.graph.validate(); err != nil {
		return nil, err
	}

	b.built = true
	b.registry.freeze()

	return newEngine(b.registry, nil), nil
}

// MustBuild finalizes the registry and panics on error - use only
// during startup.
func (b *Builder) MustBuild() Container {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}

	return c
}

// TopoOrder returns the declared dependency order of all bound
// identifiers, independent nodes in registration order. Useful for
// bootstrap sequencing by callers that declare their graphs fully.
func (b *Builder) TopoOrder() ([]Ident, error) {
	return b.graph.topoOrder()
}
