package keel

import (
	"sync"
	"sync/atomic"
)

// engine implements Container and Scope. The root engine owns the
// frozen registry layer produced by Build; child engines add a mutable
// scope-local layer and delegate everything else to the parent chain.
type engine struct {
	registry   *registry
	parent     *engine
	pool       *contextPool
	middleware *middlewareChain

	// singletons caches instances per binding record, on the engine
	// whose registry layer owns the record. Keying by record (not
	// identifier) keeps singleton identity across aliases and across
	// multiple records registered under one identifier.
	mu         sync.RWMutex
	singletons map[*binding]any

	ended atomic.Bool
}

func newEngine(reg *registry, parent *engine) *engine {
	return &engine{
		registry:   reg,
		parent:     parent,
		pool:       newContextPool(),
		middleware: newMiddlewareChain(),
		singletons: make(map[*binding]any),
	}
}

// Resolve returns an instance for the identifier.
//
// Tier 1: a populated singleton is returned straight from the owning
// engine's cache, no context involved. Tier 2: a leaf transient is
// invoked directly. Tier 3: everything else goes through a pooled
// resolution context with cycle detection and per-request caching.
func (c *engine) Resolve(id Ident) (any, error) {
	return c.resolve(id, nil)
}

// ResolveKeyed is Resolve against the identifier carrying the key.
func (c *engine) ResolveKeyed(id Ident, key string) (any, error) {
	return c.resolve(id.WithKey(key), nil)
}

// ResolveAll returns one instance per binding registered for the
// identifier, in registration order. Each element resolves through the
// tiered path with its own lifetime, within a single resolution tree
// for the whole call.
func (c *engine) ResolveAll(id Ident) ([]any, error) {
	return c.resolveAll(id, nil)
}

// Has reports whether a binding for the identifier is reachable.
func (c *engine) Has(id Ident) bool {
	bs, _ := c.findOwner(id)

	return len(bs) > 0
}

// Use adds middleware to this engine. Middleware observes cold
// resolutions started on this engine only; scopes carry their own
// chains.
func (c *engine) Use(m Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.middleware.add(m)
}

// CreateChild returns a scope whose registry layer is empty (falling
// through to this engine) and whose singleton cache and context pool
// are independent.
func (c *engine) CreateChild() Scope {
	return newEngine(newLayer(c.registry), c)
}

// resolve is the tiered resolution path shared by top-level calls
// (rc == nil) and factory-reentrant calls (rc bound to the tree).
func (c *engine) resolve(id Ident, rc *resolutionContext) (any, error) {
	if c.ended.Load() {
		return nil, ErrScopeEnded
	}

	bs, owner := c.findOwner(id)
	if len(bs) == 0 {
		return nil, ErrNotRegistered(id)
	}

	// Last registered record wins for single resolution.
	return c.resolveRecord(id, bs[len(bs)-1], owner, rc)
}

func (c *engine) resolveAll(id Ident, rc *resolutionContext) ([]any, error) {
	if c.ended.Load() {
		return nil, ErrScopeEnded
	}

	bs, owner := c.findOwner(id)
	if len(bs) == 0 {
		return []any{}, nil
	}

	// All elements of a top-level call resolve within one tree, so
	// per-request instances are shared across the returned slice.
	if rc == nil {
		rc = c.pool.acquire()
		defer c.pool.release(rc)
	}

	out := make([]any, 0, len(bs))

	for _, b := range bs {
		v, err := c.resolveRecord(id, b, owner, rc)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// resolveRecord resolves one binding record through the tiers.
func (c *engine) resolveRecord(id Ident, b *binding, owner *engine, rc *resolutionContext) (any, error) {
	// Tier 1: singleton fast path.
	if b.lifetime == LifetimeSingleton {
		if v, ok := owner.cachedSingleton(b); ok {
			return v, nil
		}
	}

	// Tier 2: dependency-free transient fast path. Falls through to
	// Tier 3 when middleware is attached so hooks still observe the
	// construction.
	if b.leaf && b.lifetime == LifetimeTransient && c.middleware.isEmpty() {
		return c.invoke(b, c, rc)
	}

	return c.resolveSlow(id, b, owner, rc)
}

// resolveSlow is the general path: acquire or reuse a resolution
// context, detect cycles, consult the per-request cache, invoke the
// factory with a resolver bound to the same tree, and apply the
// lifetime policy. The context is released to the pool only by the
// top-level call, on every exit path.
func (c *engine) resolveSlow(id Ident, b *binding, owner *engine, rc *resolutionContext) (any, error) {
	if rc == nil {
		rc = c.pool.acquire()
		defer c.pool.release(rc)
	}

	if err := rc.enter(id); err != nil {
		return nil, err
	}
	defer rc.exit(id)

	if b.lifetime == LifetimePerRequest {
		if v, ok := rc.cachedPerRequest(b); ok {
			return v, nil
		}
	}

	if err := c.middleware.beforeResolve(id); err != nil {
		return nil, err
	}

	v, err := c.invoke(b, &boundResolver{eng: c, rc: rc, gen: rc.gen.Load()}, rc)

	if mwErr := c.middleware.afterResolve(id, v, err); mwErr != nil {
		return nil, mwErr
	}

	if err != nil {
		return nil, err
	}

	switch b.lifetime {
	case LifetimeSingleton:
		// First writer wins: under a concurrent first resolution the
		// factory may run more than once, but every caller observes
		// the instance that reached the cache first.
		v = owner.storeSingleton(b, v)
	case LifetimePerRequest:
		rc.storePerRequest(b, v)
	}

	return v, nil
}

// invoke runs the factory, converting panics into FACTORY_FAILED
// errors so error paths release pooled resources normally.
func (c *engine) invoke(b *binding, r Resolver, rc *resolutionContext) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = NewFactoryPanicError(b.ident, rec, treeID(rc))
		}
	}()

	out, ferr := b.factory(r)
	if ferr != nil {
		return nil, NewFactoryError(b.ident, ferr, treeID(rc))
	}

	return out, nil
}

// findOwner walks the engine chain and returns the records for the
// identifier together with the engine whose layer holds them. A child
// layer with records shadows the parent entirely.
func (c *engine) findOwner(id Ident) ([]*binding, *engine) {
	for e := c; e != nil; e = e.parent {
		if bs := e.registry.local(id); len(bs) > 0 {
			return bs, e
		}
	}

	return nil, nil
}

func (c *engine) cachedSingleton(b *binding) (any, bool) {
	c.mu.RLock()
	v, ok := c.singletons[b]
	c.mu.RUnlock()

	return v, ok
}

// storeSingleton populates the cache unless a racing resolution got
// there first, in which case the racer's instance survives and the new
// one is discarded.
func (c *engine) storeSingleton(b *binding, v any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.singletons == nil {
		// Scope ended mid-resolution; nothing to retain.
		return v
	}

	if existing, ok := c.singletons[b]; ok {
		return existing
	}

	c.singletons[b] = v

	return v
}

// treeID returns the lazily assigned tree ID, or "" outside a context.
func treeID(rc *resolutionContext) string {
	if rc == nil {
		return ""
	}

	return rc.TreeID()
}

// boundResolver is the resolver handed to factories. It routes nested
// resolutions back through the engine with the caller's resolution
// context, so the whole tree shares cycle detection and the
// per-request cache.
type boundResolver struct {
	eng *engine
	rc  *resolutionContext
	gen uint64
}

// tree returns the resolution context while it still belongs to this
// resolver's tree. A resolver retained past its factory's return sees
// the recycled context's new generation and gets nil instead, so later
// calls through it start fresh trees rather than writing into a
// context another resolution may own.
func (r *boundResolver) tree() *resolutionContext {
	if r.rc.gen.Load() != r.gen {
		return nil
	}

	return r.rc
}

func (r *boundResolver) Resolve(id Ident) (any, error) {
	return r.eng.resolve(id, r.tree())
}

func (r *boundResolver) ResolveAll(id Ident) ([]any, error) {
	return r.eng.resolveAll(id, r.tree())
}

func (r *boundResolver) ResolveKeyed(id Ident, key string) (any, error) {
	return r.eng.resolve(id.WithKey(key), r.tree())
}
