package inspect

import "fmt"

// ── Type table ────────────────────────────────────────────────────────────────
//
// Go has no "new instance of the class named X" primitive, so construction
// by type name goes through an explicit table: DefineType binds a name to a
// constructor function, and the container resolves the constructor's
// parameters like any other callable.

// DefineType binds name to a constructor. The constructor is any
// non-variadic func returning the instance (optionally with a trailing
// error). Redefining a name replaces the previous entry.
func (r *Registry) DefineType(name string, ctor any) error {
	if ctor == nil {
		return fmt.Errorf("inspect: nil constructor for type %q, use DefineAbstract", name)
	}
	if _, err := r.Describe(ctor); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = typeEntry{ctor: ctor}
	return nil
}

// DefineAbstract registers name as a known but non-instantiable type.
// Create against it fails, distinctly from a name nobody ever defined.
func (r *Registry) DefineAbstract(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = typeEntry{}
}

// Constructor returns the constructor bound to name. The second result is
// false when the name was never defined; a defined-but-abstract name returns
// (nil, true).
func (r *Registry) Constructor(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.types[name]
	return e.ctor, ok
}

// DefineType binds a constructor on the Default registry.
func DefineType(name string, ctor any) error { return Default.DefineType(name, ctor) }

// DefineAbstract marks a name non-instantiable on the Default registry.
func DefineAbstract(name string) { Default.DefineAbstract(name) }
