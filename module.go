package keel

// BindingDef holds configuration for one binding in a batch.
type BindingDef struct {
	Ident   Ident
	Factory Factory
	Options []BindOption
}

// Def creates a BindingDef for batch registration.
//
// Example:
//
//	keel.Install(b,
//	    keel.Def(keel.NewIdent("db"), newDatabase, keel.Singleton()),
//	    keel.Def(keel.NewIdent("cache"), newCache, keel.Singleton()),
//	)
func Def(id Ident, factory Factory, opts ...BindOption) BindingDef {
	return BindingDef{
		Ident:   id,
		Factory: factory,
		Options: opts,
	}
}

// Install registers multiple bindings in a single call.
// Returns the first registration error.
func Install(b *Builder, defs ...BindingDef) error {
	for _, def := range defs {
		if err := b.Bind(def.Ident, def.Factory, def.Options...); err != nil {
			return err
		}
	}

	return nil
}

// Module is a reusable bundle of registrations, typically one per
// subsystem.
//
// Example:
//
//	func StorageModule(b *keel.Builder) error {
//	    if err := b.Bind(dbIdent, newDatabase); err != nil {
//	        return err
//	    }
//	    return b.Bind(cacheIdent, newCache)
//	}
//
//	b := keel.NewBuilder()
//	err := b.Apply(StorageModule, HTTPModule)
type Module func(*Builder) error

// Apply runs modules against the builder in order.
// Returns the first module error.
func (b *Builder) Apply(mods ...Module) error {
	for _, mod := range mods {
		if err := mod(b); err != nil {
			return err
		}
	}

	return nil
}
