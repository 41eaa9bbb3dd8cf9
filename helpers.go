package keel

import "fmt"

// Resolve with type safety.
func Resolve[T any](c Container, id Ident) (T, error) {
	var zero T

	instance, err := c.Resolve(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(id, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c Container, id Ident) T {
	instance, err := Resolve[T](c, id)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", id, err))
	}

	return instance
}

// ResolveAll resolves every binding for the identifier with type
// safety, in registration order.
func ResolveAll[T any](c Container, id Ident) ([]T, error) {
	instances, err := c.ResolveAll(id)
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(instances))

	for _, instance := range instances {
		v, ok := instance.(T)
		if !ok {
			return nil, ErrTypeMismatch(id, instance)
		}

		typed = append(typed, v)
	}

	return typed, nil
}

// ResolveKeyed resolves a keyed binding with type safety.
func ResolveKeyed[T any](c Container, id Ident, key string) (T, error) {
	var zero T

	instance, err := c.ResolveKeyed(id, key)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(id.WithKey(key), instance)
	}

	return typed, nil
}

// BindSingleton is a convenience wrapper for singleton bindings.
func BindSingleton[T any](b *Builder, id Ident, factory func(Resolver) (T, error), opts ...BindOption) error {
	return bindTyped(b, id, factory, Singleton(), opts)
}

// BindTransient is a convenience wrapper for transient bindings.
func BindTransient[T any](b *Builder, id Ident, factory func(Resolver) (T, error), opts ...BindOption) error {
	return bindTyped(b, id, factory, Transient(), opts)
}

// BindPerRequest is a convenience wrapper for per-request bindings.
func BindPerRequest[T any](b *Builder, id Ident, factory func(Resolver) (T, error), opts ...BindOption) error {
	return bindTyped(b, id, factory, PerRequest(), opts)
}

// BindValue registers a pre-built instance (always a singleton leaf).
func BindValue[T any](b *Builder, id Ident, value T, opts ...BindOption) error {
	return b.BindValue(id, value, opts...)
}

func bindTyped[T any](b *Builder, id Ident, factory func(Resolver) (T, error), lifetime BindOption, opts []BindOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	wrapped := func(r Resolver) (any, error) {
		return factory(r)
	}

	merged := make([]BindOption, 0, len(opts)+1)
	merged = append(merged, lifetime)
	merged = append(merged, opts...)

	return b.Bind(id, wrapped, merged...)
}
