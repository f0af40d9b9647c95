// Package container provides a name-keyed dependency-injection container:
// a registry mapping component names to lazily constructed values, with
// factory and callable parameters resolved automatically by override, type,
// or name.
//
// # Lifecycle
//
// A component name moves through three states: unregistered, registered
// (factory stored, nothing built), and active (value materialized). Active
// is terminal — once a component holds a value, Register and Set against it
// fail with ErrLifecycle and every Get returns the cached value.
//
//	c := container.New()
//
//	c.Register("db", func(cfg *config.Config) (*DB, error) {
//	    return Open(cfg.DB.DSN)
//	}, nil)
//
//	db, err := container.Resolve[*DB](c, "db") // built exactly once
//
// # Parameter resolution
//
// Per parameter of a factory (or anything handed to Call, Create, or
// Configure), first match wins:
//
//  1. named override in the Params map
//  2. positional override in the Params map
//  3. component registered under the parameter's declared type name
//  4. component registered under the parameter's name
//  5. the parameter's annotated default
//
// Type names and parameter names come from the inspect package: types are
// reflected, names and defaults are supplied with inspect.Annotate. An
// explicit nil override shadows a component a lookup would have found.
//
// # Boxed references
//
// Ref defers a dependency without constructing it:
//
//	c.Register("worker", NewWorker, container.Params{"store": c.Ref("store")})
//
// "store" is only built when the worker factory actually runs.
//
// # Configuration
//
// Configure queues a post-construction hook; hooks run once, in order, when
// the component activates, each seeing the previous hook's replacement:
//
//	c.Configure("db", func(db *DB) *DB { return db.WithRetries(3) }, nil)
//
// Configuring an already-active component applies the hook immediately.
//
// # Concurrency
//
// The container is a single-threaded cooperative structure: its tables are
// mutex-guarded, but construction runs unlocked so factories can Get their
// own dependencies. Hosts resolving from multiple goroutines should add
// their own synchronization around first use.
package container
