package keel

// Tag provides compile-time-typed identifiers.
// Use NewTag to create typed tags for your bindings.
type Tag[T any] struct {
	ident Ident
}

// NewTag creates a typed tag for an identifier. The type parameter T
// ensures type safety when binding and resolving.
//
// Example:
//
//	var DatabaseTag = keel.NewTag[*Database]("database")
//	var LoggerTag = keel.NewTag[Logger]("logger")
func NewTag[T any](typeTag string) Tag[T] {
	return Tag[T]{ident: NewIdent(typeTag)}
}

// Ident returns the underlying identifier.
func (t Tag[T]) Ident() Ident {
	return t.ident
}

// Keyed returns a copy of the tag carrying a binding key.
func (t Tag[T]) Keyed(key string) Tag[T] {
	return Tag[T]{ident: t.ident.WithKey(key)}
}

// String renders the tag's identifier.
func (t Tag[T]) String() string {
	return t.ident.String()
}

// BindTag registers a factory under a typed tag.
//
// Example:
//
//	var DatabaseTag = keel.NewTag[*Database]("database")
//	keel.BindTag(b, DatabaseTag, func(r keel.Resolver) (*Database, error) {
//	    return &Database{}, nil
//	}, keel.Singleton())
func BindTag[T any](b *Builder, tag Tag[T], factory func(Resolver) (T, error), opts ...BindOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	wrapped := func(r Resolver) (any, error) {
		return factory(r)
	}

	return b.Bind(tag.ident, wrapped, opts...)
}

// ResolveTag resolves a binding through its typed tag.
//
// Example:
//
//	db, err := keel.ResolveTag(c, DatabaseTag)
func ResolveTag[T any](c Container, tag Tag[T]) (T, error) {
	return Resolve[T](c, tag.ident)
}

// MustTag resolves through a typed tag and panics on error.
func MustTag[T any](c Container, tag Tag[T]) T {
	return Must[T](c, tag.ident)
}

// HasTag checks whether a binding is reachable for a typed tag.
func HasTag[T any](c Container, tag Tag[T]) bool {
	return c.Has(tag.ident)
}

// InspectTag returns diagnostic information for a typed tag.
func InspectTag[T any](c Container, tag Tag[T]) BindingInfo {
	return c.Inspect(tag.ident)
}
