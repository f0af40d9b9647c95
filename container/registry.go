package container

import "github.com/pkg/errors"

// ── Component records ─────────────────────────────────────────────────────────

// state is a component's lifecycle position. An absent record means
// unregistered; registered means a factory is stored but nothing has been
// built; active means a concrete value is stored and the record is frozen.
type state int

const (
	registered state = iota
	active
)

// record is the single per-name structure holding everything the container
// knows about a component. One struct instead of parallel tables keeps the
// lifecycle fields from drifting apart.
type record struct {
	state  state
	value  any // only meaningful when state == active
	source any // factory func, target type name (string), or nil (construct the component's own name)
	params Params

	// configs queued while the component was still registered, applied in
	// order at activation and then discarded.
	configs []configEntry
}

type configEntry struct {
	fn     any
	params Params
}

// ── Table operations (callers hold c.mu unless noted) ─────────────────────────

// lookup returns the record for name, or nil.
func (c *Container) lookup(name string) *record {
	return c.records[name]
}

// putValue stores a pre-built value under name and freezes it. Fails when
// the name is already active — active components are immutable.
func (c *Container) putValue(name string, value any) error {
	if rec := c.records[name]; rec != nil && rec.state == active {
		return errors.Wrapf(ErrLifecycle, "cannot set %q", name)
	}
	rec := c.records[name]
	if rec == nil {
		rec = &record{}
		c.records[name] = rec
	}
	// The factory, if any, stays in place but is superseded: value lookup
	// short-circuits it from now on.
	rec.value = value
	rec.state = active
	return nil
}

// putFactory stores a factory (or type-name indirection) under name,
// clearing any previously stored raw value. Fails when the name is active.
func (c *Container) putFactory(name string, source any, params Params) error {
	if rec := c.records[name]; rec != nil && rec.state == active {
		return errors.Wrapf(ErrLifecycle, "cannot register %q", name)
	}
	rec := c.records[name]
	if rec == nil {
		rec = &record{}
		c.records[name] = rec
	}
	rec.value = nil
	rec.state = registered
	rec.source = source
	rec.params = params
	return nil
}

// queueConfiguration appends a pending configuration entry for name.
// Fails when the name has neither a value nor a factory.
func (c *Container) queueConfiguration(name string, fn any, params Params) error {
	rec := c.records[name]
	if rec == nil {
		return errors.Wrapf(ErrNotFound, "cannot configure %q", name)
	}
	rec.configs = append(rec.configs, configEntry{fn: fn, params: params})
	return nil
}

// drainConfigurations returns and clears the pending entries for name.
func (c *Container) drainConfigurations(name string) []configEntry {
	rec := c.records[name]
	if rec == nil || len(rec.configs) == 0 {
		return nil
	}
	pending := rec.configs
	rec.configs = nil
	return pending
}
