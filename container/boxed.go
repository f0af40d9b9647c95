package container

// ── Boxed values ──────────────────────────────────────────────────────────────

// Boxed marks a value in a Params map as "defer expansion until consumed".
// The resolver unboxes it exactly once, at the moment the argument slot is
// filled — never when the map is built. That lets a map reference a
// component that is expensive, or not even registered yet.
type Boxed interface {
	Unbox(c *Container) (any, error)
}

// Ref is a boxed reference to "the value bound to name". Build one with
// Container.Ref.
type Ref struct {
	name string
}

// Unbox fetches the referenced component from the resolving container,
// constructing it if needed.
func (r *Ref) Unbox(c *Container) (any, error) { return c.Get(r.name) }

// Name returns the referenced component name.
func (r *Ref) Name() string { return r.name }

// Ref produces a boxed reference to name. Placing the result in a Params
// map does not touch the component; only resolving an argument against it
// triggers Get.
func (c *Container) Ref(name string) *Ref {
	return &Ref{name: name}
}

// Deferred boxes an arbitrary lazily-computed payload.
//
//	params := container.Params{"dsn": container.Deferred(loadDSN)}
type Deferred func() (any, error)

func (d Deferred) Unbox(*Container) (any, error) { return d() }
