package inspect

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
)

// ── Parameter descriptors ─────────────────────────────────────────────────────

// Param describes one parameter of a callable: its name (if known), the
// package-qualified name of its declared type, and an optional default value.
//
// Go reflection exposes parameter types but not parameter names or defaults,
// so Name/Optional/Default are only populated when the callable has been
// annotated via Annotate. An un-annotated callable still resolves fine by
// type; it just cannot participate in name-keyed lookups.
type Param struct {
	Name     string
	Type     string // package-qualified type name, e.g. "github.com/km-arc/go-ioc/config.Config"
	Optional bool
	Default  any

	goType reflect.Type
}

// GoType returns the reflect.Type of the parameter as declared by the
// callable. Nil for hand-built descriptors that were never merged with a
// real function signature.
func (p Param) GoType() reflect.Type { return p.goType }

// Signature is the ordered parameter list of a callable plus a best-effort
// source location for diagnostics.
type Signature struct {
	Params   []Param
	Location string // "funcName (file:line)", or "<unknown>"

	fn reflect.Value
}

// Func returns the underlying callable as a reflect.Value, ready to Call.
func (s Signature) Func() reflect.Value { return s.fn }

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry holds the caller-supplied descriptor tables: per-function
// parameter annotations and the name→constructor table used to build
// instances from a type name alone.
//
// A Registry never instantiates or inspects a type beyond strings and the
// reflect.Types already in hand — looking up a type name that nobody defined
// is an ordinary miss, not an error.
type Registry struct {
	mu          sync.RWMutex
	annotations map[uintptr][]Param
	types       map[string]typeEntry
}

type typeEntry struct {
	ctor any // nil ⇒ abstract (defined but not instantiable)
}

// NewRegistry creates an empty descriptor registry.
func NewRegistry() *Registry {
	return &Registry{
		annotations: make(map[uintptr][]Param),
		types:       make(map[string]typeEntry),
	}
}

// Default is the package-level registry that container.New binds to.
// Libraries defining types or annotations at init time use it the same way
// handlers use http.DefaultServeMux.
var Default = NewRegistry()

// Annotate attaches parameter descriptors to fn, by position. Only the
// fields set in each Param are merged onto the reflected signature: Name
// gives the parameter a name for name-keyed resolution, Optional+Default
// give it a fallback value. Excess descriptors are rejected.
//
//	inspect.Annotate(NewServer,
//	    inspect.Param{Name: "addr"},
//	    inspect.Param{Name: "timeout", Optional: true, Default: 30},
//	)
//
// Annotations are keyed by the function's code pointer, so annotate named
// functions (or method values), not closures built in a loop.
func (r *Registry) Annotate(fn any, params ...Param) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Errorf("inspect: Annotate wants a func, got %T", fn)
	}
	if len(params) > v.Type().NumIn() {
		return fmt.Errorf("inspect: %d descriptors for a %d-parameter func", len(params), v.Type().NumIn())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations[v.Pointer()] = params
	return nil
}

// Annotate attaches descriptors on the Default registry.
func Annotate(fn any, params ...Param) error { return Default.Annotate(fn, params...) }

// Describe reflects over callable and returns its Signature: one Param per
// input, in declaration order, with any annotations merged in by position.
// Variadic callables are rejected — a variadic tail has no single resolvable
// slot.
func (r *Registry) Describe(callable any) (Signature, error) {
	v := reflect.ValueOf(callable)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("inspect: cannot describe %T, not a func", callable)
	}
	t := v.Type()
	if t.IsVariadic() {
		return Signature{}, fmt.Errorf("inspect: cannot describe variadic func %s", location(v))
	}

	r.mu.RLock()
	notes := r.annotations[v.Pointer()]
	r.mu.RUnlock()

	params := make([]Param, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		p := Param{Type: TypeName(in), goType: in}
		if i < len(notes) {
			p.Name = notes[i].Name
			p.Optional = notes[i].Optional
			p.Default = notes[i].Default
		}
		params[i] = p
	}
	return Signature{Params: params, Location: location(v), fn: v}, nil
}

// Describe reflects a callable against the Default registry.
func Describe(callable any) (Signature, error) { return Default.Describe(callable) }

// location formats a best-effort "funcName (file:line)" for diagnostics.
func location(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "<unknown>"
	}
	file, line := fn.FileLine(fn.Entry())
	return fmt.Sprintf("%s (%s:%d)", fn.Name(), file, line)
}

// ── Type keys ─────────────────────────────────────────────────────────────────

// TypeName returns the package-qualified name of t, dereferencing one level
// of pointer so *Foo and Foo share a key. Unnamed types (maps, slices,
// funcs) fall back to their Go syntax, which is still a stable string.
func TypeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// TypeKey returns the stable lookup key for a value's type, useful when
// registering a component so that type-directed resolution finds it.
//
//	key := inspect.TypeKey((*UserRepository)(nil)) // interface key
//	c.Set(key, repo)
func TypeKey(v any) string {
	return TypeName(reflect.TypeOf(v))
}
