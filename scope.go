package keel

import (
	"fmt"

	"github.com/xraph/go-utils/di"
)

// Bind registers a scope-local binding. The scope's layer shadows the
// parent's bindings for the identifier within this scope and its
// descendants without mutating the parent. On the root engine the
// registry is frozen by Build and Bind fails with REGISTRY_FINALIZED.
func (c *engine) Bind(id Ident, factory Factory, opts ...BindOption) error {
	if c.ended.Load() {
		return ErrScopeEnded
	}

	record, err := newBinding(id, factory, opts)
	if err != nil {
		return err
	}

	return c.registry.add(record)
}

// End discards the scope: scope-local singletons implementing
// di.Disposable are disposed, the cache is dropped, and any further
// operation on the scope fails with SCOPE_ENDED. The parent engine and
// its caches are unaffected.
func (c *engine) End() error {
	if !c.ended.CompareAndSwap(false, true) {
		return ErrScopeEnded
	}

	c.mu.Lock()
	instances := c.singletons
	c.singletons = nil
	c.mu.Unlock()

	var errList []error

	for b, instance := range instances {
		if disposable, ok := instance.(di.Disposable); ok {
			if err := disposable.Dispose(); err != nil {
				errList = append(errList, fmt.Errorf("failed to dispose %s: %w", b.ident, err))
			}
		}
	}

	if len(errList) > 0 {
		return fmt.Errorf("scope cleanup errors: %v", errList)
	}

	return nil
}
