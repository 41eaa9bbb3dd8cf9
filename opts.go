package keel

// BindOption configures a binding at registration time.
type BindOption func(*bindConfig)

type bindConfig struct {
	lifetime Lifetime
	key      string
	aliases  []Ident
	leaf     bool
	deps     []Ident
}

// Singleton makes the binding produce one instance per owning engine (default).
func Singleton() BindOption {
	return func(c *bindConfig) { c.lifetime = LifetimeSingleton }
}

// Transient makes the binding produce a new instance on each resolution.
func Transient() BindOption {
	return func(c *bindConfig) { c.lifetime = LifetimeTransient }
}

// PerRequest makes the binding produce one instance per resolution tree.
func PerRequest() BindOption {
	return func(c *bindConfig) { c.lifetime = LifetimePerRequest }
}

// WithKey registers the binding under a keyed identifier, resolvable
// via ResolveKeyed.
func WithKey(key string) BindOption {
	return func(c *bindConfig) { c.key = key }
}

// As makes the binding also reachable under the given identifiers,
// e.g. registering a concrete type as the interfaces it satisfies.
// Singleton identity is preserved across all identifiers.
func As(aliases ...Ident) BindOption {
	return func(c *bindConfig) { c.aliases = append(c.aliases, aliases...) }
}

// Leaf declares that the factory makes no nested resolution calls,
// letting transient resolutions skip the resolution context. This is
// an optimization only; behavior is identical either way.
func Leaf() BindOption {
	return func(c *bindConfig) { c.leaf = true }
}

// DependsOn declares the binding's dependencies for build-time graph
// validation and inspection. Declarations do not constrain what the
// factory may resolve at runtime.
func DependsOn(deps ...Ident) BindOption {
	return func(c *bindConfig) { c.deps = append(c.deps, deps...) }
}

// mergeBindOptions applies options over the defaults.
func mergeBindOptions(opts []BindOption) bindConfig {
	var cfg bindConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
