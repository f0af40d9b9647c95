package container

import (
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/km-arc/go-ioc/inspect"
)

// Name is the short key the container registers itself under at New().
const Name = "container"

// ── Capability interfaces ─────────────────────────────────────────────────────

// Locator is the read side of the container: fetch and query components.
// The container self-registers under this interface's type key, so a factory
// parameter declared as Locator resolves to the container itself.
type Locator interface {
	Get(name string) (any, error)
	Has(name string) bool
	IsActive(name string) bool
}

// Injector is the invocation side: resolve and call arbitrary callables or
// constructors. Also a self-registered capability.
type Injector interface {
	Call(callable any, over Params) (any, error)
	Create(typeName string, over Params) (any, error)
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps component names to lazily constructed values, resolving
// factory and callable parameters by override, type, or name.
//
// Each Container is an independently owned unit; nothing here is process
// global. The record table is guarded by a mutex, but construction itself
// runs unlocked so factories can fetch their own dependencies — the overall
// model is single-threaded cooperative, as in the package doc.
type Container struct {
	mu      sync.RWMutex
	records map[string]*record
	insp    *inspect.Registry

	// names currently mid-construction, innermost last
	building []string
}

// New creates a container bound to the inspect.Default registry and
// bootstraps the self-registration: the container is pre-activated (and so
// immutable) under Name, its own type key, and the Locator and Injector
// capability keys.
func New() *Container { return NewWith(inspect.Default) }

// NewWith is New with an explicit descriptor registry.
func NewWith(insp *inspect.Registry) *Container {
	c := &Container{
		records: make(map[string]*record),
		insp:    insp,
	}
	for _, name := range []string{
		Name,
		inspect.TypeKey(c),
		inspect.TypeKey((*Locator)(nil)),
		inspect.TypeKey((*Injector)(nil)),
	} {
		c.records[name] = &record{state: active, value: c}
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register binds name to a source without constructing anything:
//
//   - a factory func: invoked on first Get with parameters resolved against
//     over and the container;
//   - a type name (string): first Get constructs that type via the inspect
//     type table instead (class-style indirection);
//   - nil: first Get constructs name itself as a type name.
//
// Fails with ErrLifecycle if name is already active, and clears any raw
// value a previous Set stored for it.
func (c *Container) Register(name string, source any, over Params) error {
	switch src := source.(type) {
	case nil, string:
	default:
		if reflect.ValueOf(src).Kind() != reflect.Func {
			return errors.Wrapf(ErrInvalidArgument,
				"register %q: source must be a factory func, a type name, or nil; got %T", name, source)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.putFactory(name, source, over)
}

// Set injects a precomputed value under name, activating it immediately.
// Fails with ErrLifecycle if name is already active.
func (c *Container) Set(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.putValue(name, value)
}

// Alias makes name a lazy reference to refName: the target is fetched on
// first Get(name), not at alias-definition time.
func (c *Container) Alias(name, refName string) error {
	return c.Register(name, func() (any, error) { return c.Get(refName) }, nil)
}

// ── Fetching ──────────────────────────────────────────────────────────────────

// Get returns the value bound to name, building it on first use.
//
// An active name returns its cached value with no re-resolution. A
// registered name has its factory parameters resolved, the factory invoked,
// the result stored, and its queued configuration entries applied in order;
// each entry sees the value left by the previous one, and a non-nil return
// replaces it. On any failure before the value is stored, the component
// stays registered.
func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	rec := c.records[name]
	if rec != nil && rec.state == active {
		v := rec.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	if rec == nil {
		return nil, errors.Wrapf(ErrNotFound, "get %q", name)
	}

	if err := c.pushBuilding(name); err != nil {
		return nil, err
	}
	value, err := c.build(name, rec)
	c.popBuilding()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if rec.state == active {
		// Someone activated it underneath us (reentrant Set, or an alias
		// chain landing back here). The stored value wins.
		v := rec.value
		c.mu.Unlock()
		return v, nil
	}
	rec.value = value
	rec.state = active
	pending := c.drainConfigurations(name)
	c.mu.Unlock()

	for _, entry := range pending {
		replacement, err := c.applyConfig(value, entry)
		if err != nil {
			return nil, err
		}
		if replacement != nil {
			value = replacement
			c.mu.Lock()
			rec.value = value
			c.mu.Unlock()
		}
	}
	return value, nil
}

// build produces the raw value for a registered record.
func (c *Container) build(name string, rec *record) (any, error) {
	switch src := rec.source.(type) {
	case nil:
		return c.construct(name, rec.params)
	case string:
		return c.construct(src, rec.params)
	default:
		sig, err := c.describe(src)
		if err != nil {
			return nil, errors.WithMessagef(err, "factory for %q", name)
		}
		args, err := c.resolve(sig, rec.params)
		if err != nil {
			return nil, err
		}
		return invoke(sig, args)
	}
}

// Has reports whether name holds a value or a registered factory.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records[name] != nil
}

// IsActive reports whether name holds a concrete value, however it got one.
func (c *Container) IsActive(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec := c.records[name]
	return rec != nil && rec.state == active
}

// ── Configuration ─────────────────────────────────────────────────────────────

// Configure attaches fn as a configuration entry for name. The entry's
// first parameter receives the component value; remaining parameters resolve
// against over and the container. A non-nil return value replaces the
// stored component value.
//
// While name is merely registered the entry is queued, to be applied once
// in order when Get activates the component. Against an active name it
// applies immediately. Fails with ErrNotFound if name was never registered
// or set.
func (c *Container) Configure(name string, fn any, over Params) error {
	c.mu.Lock()
	rec := c.records[name]
	if rec == nil {
		c.mu.Unlock()
		return errors.Wrapf(ErrNotFound, "configure %q", name)
	}
	if rec.state != active {
		err := c.queueConfiguration(name, fn, over)
		c.mu.Unlock()
		return err
	}
	value := rec.value
	c.mu.Unlock()

	replacement, err := c.applyConfig(value, configEntry{fn: fn, params: over})
	if err != nil {
		return err
	}
	if replacement != nil {
		c.mu.Lock()
		rec.value = replacement
		c.mu.Unlock()
	}
	return nil
}

// applyConfig runs one configuration entry against value and returns the
// replacement, or nil to keep the current value.
func (c *Container) applyConfig(value any, entry configEntry) (any, error) {
	sig, err := c.describe(entry.fn)
	if err != nil {
		return nil, err
	}
	if len(sig.Params) == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"configuration func %s takes no parameters, needs at least the component value", sig.Location)
	}
	first, err := argValue(value, sig.Params[0], 0, sig.Location)
	if err != nil {
		return nil, err
	}
	tail, err := c.resolveTail(sig, entry.params, 1)
	if err != nil {
		return nil, err
	}
	return invoke(sig, append([]reflect.Value{first}, tail...))
}

// ── Invocation ────────────────────────────────────────────────────────────────

// Call resolves callable's parameters against over and the container, then
// invokes it, returning its result. Plain funcs, bound method values, and
// objects with an Invoke method are all accepted.
func (c *Container) Call(callable any, over Params) (any, error) {
	sig, err := c.describe(callable)
	if err != nil {
		return nil, err
	}
	args, err := c.resolve(sig, over)
	if err != nil {
		return nil, err
	}
	return invoke(sig, args)
}

// Create constructs an instance of typeName by resolving its constructor's
// parameters. Fails with ErrInvalidArgument when the name was never defined
// in the inspect type table, or was defined abstract.
func (c *Container) Create(typeName string, over Params) (any, error) {
	return c.construct(typeName, over)
}

func (c *Container) construct(typeName string, over Params) (any, error) {
	ctor, known := c.insp.Constructor(typeName)
	if !known {
		return nil, errors.Wrapf(ErrInvalidArgument, "create %q: unknown type", typeName)
	}
	if ctor == nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "create %q: type is not instantiable", typeName)
	}
	sig, err := c.describe(ctor)
	if err != nil {
		return nil, err
	}
	args, err := c.resolve(sig, over)
	if err != nil {
		return nil, err
	}
	return invoke(sig, args)
}

// ── Cycle guard ───────────────────────────────────────────────────────────────

func (c *Container) pushBuilding(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.building {
		if n == name {
			return errors.Wrapf(ErrCycle, "%s",
				strings.Join(append(c.building, name), " -> "))
		}
	}
	c.building = append(c.building, name)
	return nil
}

func (c *Container) popBuilding() {
	c.mu.Lock()
	c.building = c.building[:len(c.building)-1]
	c.mu.Unlock()
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve fetches name and type-asserts the result.
//
//	cfg, err := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrInvalidArgument, "component %q is %T, want %T", name, v, zero)
	}
	return typed, nil
}

// MustResolve is Resolve for wiring code where a miss is a programming
// error; it panics instead of returning one.
func MustResolve[T any](c *Container, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return v
}
