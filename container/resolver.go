package container

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/km-arc/go-ioc/inspect"
)

// Params is the mixed parameter-override map consulted before any container
// lookup. Keys are either parameter names (string) or zero-based positions
// (int); a name key beats a position key for the same slot.
//
//	container.Params{"addr": ":8080", 1: 30 * time.Second}
type Params map[any]any

// ── Resolution ────────────────────────────────────────────────────────────────

// resolve turns a callable's signature plus an override map into a complete
// positional argument list. Per parameter, first match wins:
//
//  1. named override        (over[param.Name])
//  2. positional override   (over[index])
//  3. type-directed lookup  (component registered under the declared type name)
//  4. name-directed lookup  (component registered under the parameter name)
//  5. declared default      (annotated optionals only)
//
// An explicitly supplied nil resolves to the zero value of the slot, silently
// shadowing any component a lookup would have found. Boxed values are
// unboxed exactly once, after selection. Lookups go through Get, so
// resolving one component may construct others.
func (c *Container) resolve(sig inspect.Signature, over Params) ([]reflect.Value, error) {
	return c.resolveTail(sig, over, 0)
}

// resolveTail resolves sig.Params[start:], keeping override indexes absolute.
// Configuration functions use start=1: their first slot is force-bound to the
// component value and never consulted against the map.
func (c *Container) resolveTail(sig inspect.Signature, over Params, start int) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(sig.Params)-start)
	for i := start; i < len(sig.Params); i++ {
		p := sig.Params[i]
		v, found, err := c.selectValue(p, i, over)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.Wrapf(ErrResolution,
				"parameter %s (type %s) of %s", paramLabel(p, i), p.Type, sig.Location)
		}
		if b, ok := v.(Boxed); ok {
			if v, err = b.Unbox(c); err != nil {
				return nil, err
			}
		}
		arg, err := argValue(v, p, i, sig.Location)
		if err != nil {
			return nil, err
		}
		args[i-start] = arg
	}
	return args, nil
}

// selectValue walks the precedence chain for one parameter.
func (c *Container) selectValue(p inspect.Param, index int, over Params) (any, bool, error) {
	if p.Name != "" {
		if v, ok := over[p.Name]; ok {
			return v, true, nil
		}
	}
	if v, ok := over[index]; ok {
		return v, true, nil
	}
	if p.Type != "" && c.Has(p.Type) {
		v, err := c.Get(p.Type)
		return v, true, err
	}
	if p.Name != "" && c.Has(p.Name) {
		v, err := c.Get(p.Name)
		return v, true, err
	}
	if p.Optional {
		return p.Default, true, nil
	}
	return nil, false, nil
}

// argValue coerces a selected value into the parameter's declared type.
// nil maps to the zero value; assignable values pass through; convertible
// values (untyped-constant style mismatches) are converted.
func argValue(v any, p inspect.Param, index int, loc string) (reflect.Value, error) {
	t := p.GoType()
	if t == nil {
		return reflect.ValueOf(v), nil
	}
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t), nil
	default:
		return reflect.Value{}, errors.Wrapf(ErrResolution,
			"parameter %s of %s: have %T, want %s", paramLabel(p, index), loc, v, p.Type)
	}
}

func paramLabel(p inspect.Param, index int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", index)
}

// ── Invocation ────────────────────────────────────────────────────────────────

var errType = reflect.TypeOf((*error)(nil)).Elem()

// invoke calls a described callable with resolved args and normalizes its
// results. A callable may return nothing, one value, or a value with a
// trailing error; a lone error return counts as the error, not the value.
func invoke(sig inspect.Signature, args []reflect.Value) (any, error) {
	t := sig.Func().Type()
	if t.NumOut() > 2 {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"%s returns %d values, want at most (value, error)", sig.Location, t.NumOut())
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(errType) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"%s returns two values so the second must be an error", sig.Location)
	}

	out := sig.Func().Call(args)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0).Implements(errType) {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface().(error)
}

// describe resolves callable into a Signature, accepting plain funcs, bound
// method values, and invokable objects (anything with an Invoke method).
func (c *Container) describe(callable any) (inspect.Signature, error) {
	v := reflect.ValueOf(callable)
	if !v.IsValid() {
		return inspect.Signature{}, errors.Wrap(ErrInvalidArgument, "nil callable")
	}
	if v.Kind() != reflect.Func {
		m := v.MethodByName("Invoke")
		if !m.IsValid() {
			return inspect.Signature{}, errors.Wrapf(ErrInvalidArgument,
				"%T is not a func and has no Invoke method", callable)
		}
		v = m
	}
	sig, err := c.insp.Describe(v.Interface())
	if err != nil {
		return inspect.Signature{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return sig, nil
}
