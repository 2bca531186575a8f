package kiln

import (
	"fmt"
	"reflect"
)

// Dependencies is the lookup mapping a Factory receives at construction
// time: one entry per declared dependency name, holding that dependency's
// already-resolved instance. Passing this map (rather than positional
// arguments) is the typed-target adaptation of the source's dynamic
// dependency injection (spec Design Note 9) — it avoids generating a
// wrapper type per component while still keeping downcasts at the
// component's own edge instead of inside the container.
type Dependencies map[string]any

// Get is a small generic helper for pulling a typed dependency out of a
// Dependencies map inside a Factory body.
func Get[T any](deps Dependencies, name string) (T, error) {
	var zero T
	v, ok := deps[name]
	if !ok {
		return zero, fmt.Errorf("dependency %q not present", name)
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("dependency %q is %T, not %T", name, v, zero)
	}
	return out, nil
}

// implKind tags the variant an Implementation holds, per spec Design
// Note 9 ("model as a tagged variant... chosen at register time via an
// explicit option").
type implKind int

const (
	implFactory implKind = iota
	implValue
)

// Implementation is the unit a component name is registered with: a
// Factory function or an opaque Value. The constructor-vs-factory
// distinction the source makes via prototype introspection has no
// equivalent in Go, so both collapse into Factory; Value covers the
// source's third case, an opaque non-callable value used as-is.
type Implementation struct {
	kind implKind
	fn   reflect.Value
	val  any
	deps []string
}

// Factory registers fn as the component's constructor. fn must be a
// function of the shape func(Dependencies) T, func(Dependencies) (T, error),
// func() T, or func() (T, error) — the zero-arity forms are invoked with
// no arguments even if deps is non-empty. deps is the component's
// declared dependencies, resolved and injected (via the Dependencies map)
// before fn runs, regardless of whether fn's signature consumes them.
func Factory(fn any, deps ...string) Implementation {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic("kiln: Factory requires a function")
	}
	if t.NumIn() > 1 {
		panic("kiln: Factory function must take zero or one Dependencies argument")
	}
	if t.NumIn() == 1 && t.In(0) != reflect.TypeOf(Dependencies(nil)) {
		panic("kiln: Factory function's single argument must be kiln.Dependencies")
	}
	if t.NumOut() == 0 || t.NumOut() > 2 {
		panic("kiln: Factory function must return (T) or (T, error)")
	}
	if t.NumOut() == 2 {
		errType := reflect.TypeOf((*error)(nil)).Elem()
		if !t.Out(1).Implements(errType) {
			panic("kiln: Factory function's second return value must implement error")
		}
	}
	return Implementation{kind: implFactory, fn: v, deps: deps}
}

// Value registers v as the component's instance directly, with no
// construction step. It never has declared dependencies.
func Value(v any) Implementation {
	return Implementation{kind: implValue, val: v}
}

func (impl Implementation) dependencies() []string {
	return impl.deps
}

func (impl Implementation) construct(deps Dependencies) (any, error) {
	switch impl.kind {
	case implValue:
		return impl.val, nil
	case implFactory:
		var args []reflect.Value
		if impl.fn.Type().NumIn() == 1 {
			args = []reflect.Value{reflect.ValueOf(deps)}
		}
		results := impl.fn.Call(args)
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		return results[0].Interface(), nil
	default:
		return nil, fmt.Errorf("kiln: unknown implementation kind")
	}
}

// Options configures a component at registration time.
type Options struct {
	Lifetime Lifetime
}

// Option mutates Options during Register.
type Option func(*Options)

// WithLifetime sets the component's Lifetime. The default is Singleton.
func WithLifetime(l Lifetime) Option {
	return func(o *Options) { o.Lifetime = l }
}
