package container

import "github.com/pkg/errors"

// Error kinds. Every failure returned by the container wraps exactly one of
// these sentinels, so callers branch with errors.Is and still get full
// context (component name, parameter, declaring location) in the message.
var (
	// ErrNotFound: Get or Configure against a name with neither a stored
	// value nor a registered factory.
	ErrNotFound = errors.New("ioc: component not found")

	// ErrLifecycle: Register or Set against a name that is already active.
	ErrLifecycle = errors.New("ioc: component already active")

	// ErrResolution: a parameter could not be satisfied by override,
	// container lookup, or default.
	ErrResolution = errors.New("ioc: unresolvable parameter")

	// ErrInvalidArgument: Call/Create/Register handed something that is not
	// a usable callable, or a type name that is unknown or not instantiable.
	ErrInvalidArgument = errors.New("ioc: invalid argument")

	// ErrCycle: Get re-entered a component that is mid-construction.
	ErrCycle = errors.New("ioc: circular dependency")
)
