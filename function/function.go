package function

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrNilFunc is returned when a Function without an underlying callable is invoked.
var ErrNilFunc = errors.New("function has no underlying callable")

// Func is the callable shape of every transformation. The piped value comes
// first; args and named hold curried arguments followed by call-site extras.
// Errors returned by a Func are caller errors and propagate unchanged.
type Func func(value any, args []any, named Named) (any, error)

// Named holds named arguments. Keys are unique by construction.
type Named map[string]any

// Function is a callable bound to a display name plus curried arguments.
// A Function is immutable: currying returns a new Function.
type Function struct {
	name  string
	fn    Func
	args  []any
	named Named
	// origin is the Go function fn was adapted from, if any. It stands in
	// for fn in equality, since every adapter shares one code pointer.
	origin any
}

// New wraps fn under the given display name with no curried arguments.
func New(name string, fn Func) *Function {
	return &Function{name: name, fn: fn}
}

// Unary adapts a one-argument function that ignores curried arguments.
func Unary(fn func(value any) (any, error)) Func {
	return func(value any, _ []any, _ Named) (any, error) {
		return fn(value)
	}
}

// Pure adapts a one-argument function that cannot fail.
func Pure(fn func(value any) any) Func {
	return func(value any, _ []any, _ Named) (any, error) {
		return fn(value), nil
	}
}

// Name returns the display name.
func (f *Function) Name() string {
	return f.name
}

// Args returns a copy of the curried positional arguments.
func (f *Function) Args() []any {
	return slices.Clone(f.args)
}

// NamedArgs returns a copy of the curried named arguments.
func (f *Function) NamedArgs() Named {
	return maps.Clone(f.named)
}

// Call invokes the function with the piped value and curried arguments only.
func (f *Function) Call(value any) (any, error) {
	return f.CallWith(value, nil, nil)
}

// CallWith invokes the function with extra arguments. Positional extras are
// appended after the curried ones; named extras overlay curried named args
// and win on key collision.
func (f *Function) CallWith(value any, extra []any, named Named) (any, error) {
	if f.fn == nil {
		return nil, fmt.Errorf("%s: %w", f.name, ErrNilFunc)
	}

	// fn gets its own copies so it cannot alter the curried arguments.
	var args []any
	if len(f.args)+len(extra) > 0 {
		args = make([]any, 0, len(f.args)+len(extra))
		args = append(append(args, f.args...), extra...)
	}

	var merged Named
	if len(f.named)+len(named) > 0 {
		merged = make(Named, len(f.named)+len(named))
		maps.Copy(merged, f.named)
		maps.Copy(merged, named)
	}

	return f.fn(value, args, merged)
}

// With returns a new Function with args as its curried positional arguments.
// Prior currying is replaced, not merged, and named arguments are cleared.
func (f *Function) With(args ...any) *Function {
	return f.WithNamed(args, nil)
}

// WithNamed returns a new Function whose curried positional and named
// arguments are exactly args and named.
func (f *Function) WithNamed(args []any, named Named) *Function {
	var curried []any
	if len(args) > 0 {
		curried = slices.Clone(args)
	}

	var kw Named
	if len(named) > 0 {
		kw = maps.Clone(named)
	}

	return &Function{name: f.name, fn: f.fn, args: curried, named: kw, origin: f.origin}
}

// Rename returns a copy of f under a new display name.
func (f *Function) Rename(name string) *Function {
	c := *f
	c.name = name

	return &c
}

// Underlying returns the wrapped callable without curried arguments.
func (f *Function) Underlying() Func {
	return f.fn
}

// callable is what equality compares: the adapted Go function when there
// is one, the Func otherwise.
func (f *Function) callable() any {
	if f.origin != nil {
		return f.origin
	}

	return f.fn
}

// Compose returns a chain applying f and then other.
func (f *Function) Compose(other Unit) *Chain {
	return NewChain(f, other)
}

// Func returns a plain callable with the curried arguments baked in.
func (f *Function) Func() Func {
	return func(value any, args []any, named Named) (any, error) {
		return f.CallWith(value, args, named)
	}
}

// AST returns [name, argsAST]; unit arguments are represented recursively.
func (f *Function) AST() AST {
	argsAST := make([]any, 0, len(f.args)+1)
	for _, arg := range f.args {
		argsAST = append(argsAST, argAST(arg))
	}

	if len(f.named) > 0 {
		namedAST := make(map[string]any, len(f.named))
		for k, v := range f.named {
			namedAST[k] = argAST(v)
		}

		argsAST = append(argsAST, namedAST)
	}

	return AST{f.name, argsAST}
}

// Equal reports whether other is a Function with the same name, underlying
// callable, curried arguments and named arguments.
func (f *Function) Equal(other Unit) bool {
	o, ok := other.(*Function)
	if !ok || f == nil || o == nil {
		return ok && f == o
	}

	return f.name == o.name &&
		sameFunc(f.callable(), o.callable()) &&
		argsEqual(f.args, o.args) &&
		namedEqual(f.named, o.named)
}

// String renders the function as name(args...).
func (f *Function) String() string {
	parts := make([]string, 0, len(f.args)+len(f.named))
	for _, arg := range f.args {
		parts = append(parts, formatArg(arg))
	}

	for _, k := range slices.Sorted(maps.Keys(f.named)) {
		parts = append(parts, k+": "+formatArg(f.named[k]))
	}

	return f.name + "(" + strings.Join(parts, ", ") + ")"
}
