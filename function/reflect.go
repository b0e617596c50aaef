package function

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
)

var (
	ErrNotAFunction       = errors.New("provided value is not a function")
	ErrNotATransformation = errors.New("provided function is not a recognizable transformation")
	ErrArgumentMismatch   = errors.New("argument does not fit the function signature")
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	namedType = reflect.TypeOf(Named(nil))
	callType  = reflect.TypeOf(func(any) (any, error) { return nil, nil })
)

// Reflect adapts an arbitrary Go function into a Func.
//
// Supports signatures:
//   - func(value T, args...) R
//   - func(value T, args...) (R, error)
//   - any of the above with a trailing Named parameter receiving named args
//   - variadic tails
//
// Units passed as arguments to function-typed parameters are adapted through
// their Call method when the parameter type allows it.
func Reflect(fn any) (Func, error) {
	if f, ok := fn.(Func); ok {
		return f, nil
	}

	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, ErrNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() == 0 {
		return nil, ErrNotATransformation
	}

	switch fnType.NumOut() {
	default:
		return nil, ErrNotATransformation
	case 1:
	case 2:
		if !fnType.Out(1).Implements(errorType) {
			return nil, ErrNotATransformation
		}
	}

	takesNamed := !fnType.IsVariadic() && fnType.NumIn() > 1 && fnType.In(fnType.NumIn()-1) == namedType

	return func(value any, args []any, named Named) (any, error) {
		in, err := buildInputs(fnType, takesNamed, value, args, named)
		if err != nil {
			return nil, err
		}

		out := fnVal.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}

		return out[0].Interface(), nil
	}, nil
}

// MustReflect is like Reflect but panics on error. Use it for init-time registration.
func MustReflect(fn any) Func {
	f, err := Reflect(fn)
	if err != nil {
		panic(fmt.Sprintf("function: %v", err))
	}

	return f
}

// Of wraps a Go function in a Function named after its package and identifier,
// e.g. "strconv.Atoi".
func Of(fn any) (*Function, error) {
	return Adapt(NameOf(fn), fn)
}

// Adapt wraps fn under name like New(name, MustReflect(fn)), but the result
// compares equal only to Functions adapted from the same Go function.
func Adapt(name string, fn any) (*Function, error) {
	f, err := Reflect(fn)
	if err != nil {
		return nil, err
	}

	adapted := New(name, f)
	if _, ok := fn.(Func); !ok {
		adapted.origin = fn
	}

	return adapted, nil
}

// NameOf returns the short "pkg.Name" form of a function's runtime name.
func NameOf(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	pc := runtime.FuncForPC(v.Pointer())
	if pc == nil {
		return ""
	}

	// "shapeshift/library.ToString" -> "library.ToString"
	_, name := path.Split(pc.Name())

	return name
}

func buildInputs(fnType reflect.Type, takesNamed bool, value any, args []any, named Named) ([]reflect.Value, error) {
	numIn := fnType.NumIn()
	fixed := numIn
	if takesNamed {
		fixed--
	}

	variadic := fnType.IsVariadic()
	if variadic {
		fixed--
	}

	// fixed counts the value parameter too.
	if len(args) < fixed-1 || (!variadic && len(args) > fixed-1) {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgumentMismatch, fixed-1, len(args))
	}

	in := make([]reflect.Value, 0, numIn+len(args))

	v, err := coerce(value, fnType.In(0), 0)
	if err != nil {
		return nil, err
	}

	in = append(in, v)

	for i := 1; i < fixed; i++ {
		v, err := coerce(args[i-1], fnType.In(i), i)
		if err != nil {
			return nil, err
		}

		in = append(in, v)
	}

	if variadic {
		elem := fnType.In(numIn - 1).Elem()
		for i := fixed - 1; i < len(args); i++ {
			v, err := coerce(args[i], elem, i+1)
			if err != nil {
				return nil, err
			}

			in = append(in, v)
		}
	}

	if takesNamed {
		in = append(in, reflect.ValueOf(named))
	}

	return in, nil
}

func coerce(arg any, want reflect.Type, pos int) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}

	if u, ok := arg.(Unit); ok && want.Kind() == reflect.Func && !reflect.TypeOf(arg).AssignableTo(want) {
		if callType.ConvertibleTo(want) {
			return reflect.ValueOf(u.Call).Convert(want), nil
		}
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(want):
		return v, nil
	case v.Type().ConvertibleTo(want) && want.Kind() != reflect.String:
		out := v.Convert(want)
		if isNumber(v.Kind()) && isNumber(want.Kind()) && !lossless(v, out) {
			return reflect.Value{}, fmt.Errorf("%w: argument %d: %v does not fit %s", ErrArgumentMismatch, pos, arg, want)
		}

		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: argument %d: cannot use %T as %s", ErrArgumentMismatch, pos, arg, want)
	}
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// lossless reports whether out holds exactly the number in v: converting
// back gives v again and the sign survived.
func lossless(v, out reflect.Value) bool {
	if out.Convert(v.Type()).Interface() != v.Interface() {
		return false
	}

	return negative(v) == negative(out)
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	default:
		return false
	}
}
