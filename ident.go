package keel

// Ident is an opaque, comparable handle naming a resolvable type,
// optionally paired with a key for keyed bindings. The engine never
// inspects types at resolution time; identifiers are pre-computed
// stable tags supplied by the registration surface.
type Ident struct {
	// Type is the stable tag of the declared type, e.g. "http.Server".
	Type string

	// Key distinguishes multiple bindings of the same type.
	// Empty for unkeyed bindings.
	Key string
}

// NewIdent creates an unkeyed identifier for a type tag.
func NewIdent(typeTag string) Ident {
	return Ident{Type: typeTag}
}

// KeyedIdent creates an identifier carrying a binding key.
func KeyedIdent(typeTag, key string) Ident {
	return Ident{Type: typeTag, Key: key}
}

// WithKey returns a copy of the identifier with the given key.
func (id Ident) WithKey(key string) Ident {
	id.Key = key
	return id
}

// Keyed reports whether the identifier carries a key.
func (id Ident) Keyed() bool {
	return id.Key != ""
}

// IsZero reports whether the identifier names nothing.
func (id Ident) IsZero() bool {
	return id.Type == ""
}

// String renders the identifier for diagnostics: "type" or "type[key]".
func (id Ident) String() string {
	if id.Key == "" {
		return id.Type
	}
	return id.Type + "[" + id.Key + "]"
}
