package keel

import (
	"fmt"
	"sync"
)

// Lazy wraps a dependency that is resolved on first access. This is
// useful for breaking construction-order knots or deferring expensive
// instances until they are actually needed. Resolving through the
// resolver a factory received keeps the lazy resolution inside the
// same resolution tree only if Get is called during construction;
// after construction it starts a fresh tree.
type Lazy[T any] struct {
	resolver Resolver
	ident    Ident
	once     sync.Once
	value    T
	err      error
	resolved bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](r Resolver, id Ident) *Lazy[T] {
	return &Lazy[T]{
		resolver: r,
		ident:    id,
	}
}

// Get resolves the dependency and returns it. The resolution happens
// only once; subsequent calls return the cached value.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		instance, err := l.resolver.Resolve(l.ident)
		if err != nil {
			l.err = err

			return
		}

		typed, ok := instance.(T)
		if !ok {
			l.err = ErrTypeMismatch(l.ident, instance)

			return
		}

		l.value = typed
		l.resolved = true
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.ident, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Ident returns the identifier of the dependency.
func (l *Lazy[T]) Ident() Ident {
	return l.ident
}

// Provider wraps a dependency that creates instances on each access.
// This is useful for transient dependencies where a fresh instance is
// needed every time.
type Provider[T any] struct {
	resolver Resolver
	ident    Ident
}

// NewProvider creates a new provider for transient dependencies.
func NewProvider[T any](r Resolver, id Ident) *Provider[T] {
	return &Provider[T]{
		resolver: r,
		ident:    id,
	}
}

// Provide resolves and returns an instance of the dependency. Each
// call may return a different instance (if the binding is transient).
func (p *Provider[T]) Provide() (T, error) {
	instance, err := p.resolver.Resolve(p.ident)
	if err != nil {
		var zero T

		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		var zero T

		return zero, ErrTypeMismatch(p.ident, instance)
	}

	return typed, nil
}

// MustProvide resolves and returns an instance, panicking on error.
func (p *Provider[T]) MustProvide() T {
	value, err := p.Provide()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.ident, err))
	}

	return value
}

// Ident returns the identifier of the dependency.
func (p *Provider[T]) Ident() Ident {
	return p.ident
}
