package library

import (
	"errors"
	"fmt"
	"maps"
	"reflect"

	"shapeshift/function"
	"shapeshift/primitive"
)

// Symbol is a symbolized hash key.
type Symbol = primitive.Symbol

// Hash is the map shape produced by every hash transformation.
type Hash = map[any]any

var (
	ErrNotAHash     = errors.New("value is not a hash")
	ErrNotAnArray   = errors.New("value is not an array")
	ErrNotAFunction = errors.New("argument is not a function")
	ErrMissingArg   = errors.New("missing argument")
)

// ToHash converts map-like values into a fresh Hash.
func ToHash(v any) (Hash, error) {
	switch m := v.(type) {
	case Hash:
		return maps.Clone(m), nil
	case map[string]any:
		out := make(Hash, len(m))
		for k, v := range m {
			out[k] = v
		}

		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: %T", ErrNotAHash, v)
	}

	out := make(Hash, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		out[iter.Key().Interface()] = iter.Value().Interface()
	}

	return out, nil
}

// ToArray converts slice-like values into a fresh []any.
func ToArray(v any) ([]any, error) {
	if a, ok := v.([]any); ok {
		return append([]any(nil), a...), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T", ErrNotAnArray, v)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

func isHash(v any) bool {
	return primitive.Of(v) == primitive.KindHash
}

func isArray(v any) bool {
	return primitive.Of(v) == primitive.KindArray
}

// AsUnit adapts a function argument into a Unit.
func AsUnit(arg any) (function.Unit, error) {
	switch fn := arg.(type) {
	case function.Unit:
		return fn, nil
	case function.Func:
		return function.New("func", fn), nil
	case func(any) any, func(any) (any, error):
		return function.Adapt("func", fn)
	}

	f, err := function.Adapt(function.NameOf(arg), arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunction, arg)
	}

	return f, nil
}

// composeArgs composes every argument into one unit.
func composeArgs(args []any) (function.Unit, error) {
	units := make([]function.Unit, 0, len(args))
	for _, arg := range args {
		u, err := AsUnit(arg)
		if err != nil {
			return nil, err
		}

		units = append(units, u)
	}

	return function.NewChain(units...), nil
}

func arg(args []any, i int, what string) (any, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%w: %s", ErrMissingArg, what)
	}

	return args[i], nil
}

// keyText returns the textual form of string and Symbol keys.
func keyText(k any) (string, bool) {
	switch k := k.(type) {
	case string:
		return k, true
	case Symbol:
		return string(k), true
	default:
		return "", false
	}
}

// keyIn returns the key of h matching k, either exactly or by text.
func keyIn(h Hash, k any) (any, bool) {
	if _, ok := h[k]; ok {
		return k, true
	}

	text, ok := keyText(k)
	if !ok {
		return k, false
	}

	for _, alt := range []any{text, Symbol(text)} {
		if _, ok := h[alt]; ok {
			return alt, true
		}
	}

	return k, false
}

// likeKey renders name with the same key kind as orig.
func likeKey(orig, name any) any {
	text, ok := keyText(name)
	if !ok {
		return name
	}

	if _, sym := orig.(Symbol); sym {
		return Symbol(text)
	}

	if _, str := orig.(string); str {
		return text
	}

	return name
}

// keyList flattens key arguments, so both keys... and a single []any work.
func keyList(args []any) []any {
	var out []any
	for _, a := range args {
		if list, err := ToArray(a); err == nil && !isText(a) {
			out = append(out, list...)
			continue
		}

		out = append(out, a)
	}

	return out
}

func isText(v any) bool {
	return primitive.Of(v).IsText()
}

// Plain converts transformation output into JSON and YAML friendly values:
// hashes become map[string]any keyed by key text and symbols become strings.
func Plain(v any) any {
	switch v := v.(type) {
	case Symbol:
		return string(v)
	case Hash:
		out := make(map[string]any, len(v))
		for k, val := range v {
			text, ok := keyText(k)
			if !ok {
				text = fmt.Sprint(k)
			}

			out[text] = Plain(val)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = Plain(val)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Plain(val)
		}

		return out
	default:
		return v
	}
}
