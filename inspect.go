package keel

// BindingInfo contains diagnostic information about the bindings
// reachable for one identifier.
type BindingInfo struct {
	// Ident is the identifier the information describes.
	Ident Ident

	// Lifetime of the binding Resolve would use (the last registered).
	Lifetime Lifetime

	// Records is the number of binding records registered for the
	// identifier (the length of a ResolveAll result).
	Records int

	// Aliases of the Resolve-chosen binding.
	Aliases []Ident

	// Leaf reports whether the Resolve-chosen factory is declared
	// dependency-free.
	Leaf bool

	// DependsOn lists the declared dependencies of the Resolve-chosen
	// binding.
	DependsOn []Ident

	// Cached reports whether a singleton instance has already been
	// materialized for the Resolve-chosen binding.
	Cached bool

	// Local reports whether the binding lives on this engine's own
	// layer rather than an ancestor's.
	Local bool
}

// Inspect returns diagnostic information about an identifier. For
// unknown identifiers the zero BindingInfo is returned with Ident set.
func (c *engine) Inspect(id Ident) BindingInfo {
	bs, owner := c.findOwner(id)
	if len(bs) == 0 {
		return BindingInfo{Ident: id}
	}

	b := bs[len(bs)-1]
	_, cached := owner.cachedSingleton(b)

	return BindingInfo{
		Ident:     id,
		Lifetime:  b.lifetime,
		Records:   len(bs),
		Aliases:   b.aliases,
		Leaf:      b.leaf,
		DependsOn: b.deps,
		Cached:    b.lifetime == LifetimeSingleton && cached,
		Local:     owner == c,
	}
}

// Bindings returns information for every identifier visible from this
// engine, scope-local layers first and shadowed parent entries
// omitted. Within one layer, identifiers keep registration order.
func (c *engine) Bindings() []BindingInfo {
	seen := make(map[Ident]bool)

	var infos []BindingInfo

	for e := c; e != nil; e = e.parent {
		for _, id := range e.registry.idents() {
			if seen[id] {
				continue
			}

			seen[id] = true
			infos = append(infos, c.Inspect(id))
		}
	}

	return infos
}

// FindByLifetime returns information for all visible identifiers whose
// Resolve-chosen binding has the given lifetime.
func FindByLifetime(c Container, lifetime Lifetime) []BindingInfo {
	var results []BindingInfo

	for _, info := range c.Bindings() {
		if info.Lifetime == lifetime {
			results = append(results, info)
		}
	}

	return results
}
