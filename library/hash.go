package library

import (
	"fmt"
	"maps"
	"slices"

	"shapeshift/function"
	"shapeshift/registry"
)

// Hashes holds hash transformations.
var Hashes = registry.New("hashes").
	MustRegister("symbolizeKeys", SymbolizeKeys).
	MustRegister("deepSymbolizeKeys", DeepSymbolizeKeys).
	MustRegister("stringifyKeys", StringifyKeys).
	MustRegister("mapKeys", MapKeys).
	MustRegister("mapValues", MapValues).
	MustRegister("mapValue", MapValue).
	MustRegister("renameKeys", RenameKeys).
	MustRegister("copyKeys", CopyKeys).
	MustRegister("acceptKeys", AcceptKeys).
	MustRegister("rejectKeys", RejectKeys).
	MustRegister("nest", Nest).
	MustRegister("unwrap", Unwrap)

// SymbolizeKeys turns the top-level keys into symbols.
func SymbolizeKeys(value any, _ []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	out := make(Hash, len(h))
	for k, v := range h {
		out[symbolize(k)] = v
	}

	return out, nil
}

// DeepSymbolizeKeys turns the keys of the hash and of every nested hash
// into symbols, descending into arrays as well.
func DeepSymbolizeKeys(value any, _ []any, _ function.Named) (any, error) {
	if _, err := ToHash(value); err != nil {
		return nil, err
	}

	return deepSymbolize(value), nil
}

func deepSymbolize(v any) any {
	switch {
	case isHash(v):
		h, _ := ToHash(v)

		out := make(Hash, len(h))
		for k, val := range h {
			out[symbolize(k)] = deepSymbolize(val)
		}

		return out
	case isArray(v):
		a, _ := ToArray(v)
		for i, val := range a {
			a[i] = deepSymbolize(val)
		}

		return a
	default:
		return v
	}
}

func symbolize(k any) any {
	if text, ok := keyText(k); ok {
		return Symbol(text)
	}

	return Symbol(fmt.Sprint(k))
}

// StringifyKeys turns the top-level keys into strings.
func StringifyKeys(value any, _ []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	out := make(Hash, len(h))
	for k, v := range h {
		text, ok := keyText(k)
		if !ok {
			text = fmt.Sprint(k)
		}

		out[text] = v
	}

	return out, nil
}

// MapKeys applies the composition of args to every key.
func MapKeys(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	out := make(Hash, len(h))
	for k, v := range h {
		nk, err := fn.Call(k)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", k, err)
		}

		out[nk] = v
	}

	return out, nil
}

// MapValues applies the composition of args to every value.
func MapValues(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	for k, v := range h {
		if h[k], err = fn.Call(v); err != nil {
			return nil, fmt.Errorf("value %v: %w", k, err)
		}
	}

	return h, nil
}

// MapValue applies the composition of args[1:] to the value at args[0].
// Hashes without the key are returned unchanged.
//
//	mapValue({age: "12"}, :age, toInteger) => {age: 12}
func MapValue(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	key, err := arg(args, 0, "key")
	if err != nil {
		return nil, err
	}

	k, ok := keyIn(h, key)
	if !ok {
		return h, nil
	}

	fn, err := composeArgs(args[1:])
	if err != nil {
		return nil, err
	}

	if h[k], err = fn.Call(h[k]); err != nil {
		return nil, fmt.Errorf("value %v: %w", k, err)
	}

	return h, nil
}

// mapping merges a positional hash argument and named args into old -> new pairs.
func mapping(args []any, named function.Named) (Hash, error) {
	out := make(Hash, len(named))
	for _, a := range args {
		h, err := ToHash(a)
		if err != nil {
			return nil, err
		}

		maps.Copy(out, h)
	}

	for k, v := range named {
		out[k] = v
	}

	return out, nil
}

// RenameKeys renames keys according to a mapping given as a hash argument
// or as named args. Renamed keys keep the kind (string or symbol) of the
// original key.
//
//	renameKeys({user_name: "x"}, user_name: "name") => {name: "x"}
func RenameKeys(value any, args []any, named function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	m, err := mapping(args, named)
	if err != nil {
		return nil, err
	}

	out := maps.Clone(h)
	for from := range m {
		if k, ok := keyIn(h, from); ok {
			delete(out, k)
		}
	}

	for from, to := range m {
		if k, ok := keyIn(h, from); ok {
			out[likeKey(k, to)] = h[k]
		}
	}

	return out, nil
}

// CopyKeys copies values to new keys and keeps the originals. A target may
// be a list of keys.
func CopyKeys(value any, args []any, named function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	m, err := mapping(args, named)
	if err != nil {
		return nil, err
	}

	out := maps.Clone(h)
	for from, to := range m {
		k, ok := keyIn(h, from)
		if !ok {
			continue
		}

		for _, target := range keyList([]any{to}) {
			out[likeKey(k, target)] = h[k]
		}
	}

	return out, nil
}

// AcceptKeys keeps only the listed keys.
func AcceptKeys(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	out := Hash{}
	for _, key := range keyList(args) {
		if k, ok := keyIn(h, key); ok {
			out[k] = h[k]
		}
	}

	return out, nil
}

// RejectKeys drops the listed keys.
func RejectKeys(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	for _, key := range keyList(args) {
		if k, ok := keyIn(h, key); ok {
			delete(h, k)
		}
	}

	return h, nil
}

// Nest moves the listed keys into a nested hash under args[0]. The nested
// hash is created even when none of the keys is present. A new root key
// takes the kind (string or symbol) of the keys moved under it.
//
//	nest({name: "a", street: "b"}, :address, [:street]) => {name: "a", address: {street: "b"}}
func Nest(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	root, err := arg(args, 0, "root key")
	if err != nil {
		return nil, err
	}

	rootKey, exists := keyIn(h, root)

	nested := Hash{}
	if exists {
		if existing, err := ToHash(h[rootKey]); err == nil {
			nested = existing
		}
	}

	for _, key := range keyList(args[1:]) {
		if k, ok := keyIn(h, key); ok {
			if !exists {
				rootKey = likeKey(k, root)
			}

			nested[k] = h[k]
			delete(h, k)
		}
	}

	h[rootKey] = nested

	return h, nil
}

// Unwrap lifts keys of the nested hash at args[0] into the outer hash. With
// no keys listed every nested key is lifted. The root key is removed once
// its hash is empty.
func Unwrap(value any, args []any, _ function.Named) (any, error) {
	h, err := ToHash(value)
	if err != nil {
		return nil, err
	}

	root, err := arg(args, 0, "root key")
	if err != nil {
		return nil, err
	}

	rk, ok := keyIn(h, root)
	if !ok {
		return h, nil
	}

	nested, err := ToHash(h[rk])
	if err != nil {
		return h, nil
	}

	keys := keyList(args[1:])
	if len(keys) == 0 {
		keys = slices.Collect(maps.Keys(nested))
	}

	for _, key := range keys {
		if k, ok := keyIn(nested, key); ok {
			h[k] = nested[k]
			delete(nested, k)
		}
	}

	if len(nested) == 0 {
		delete(h, rk)
	} else {
		h[rk] = nested
	}

	return h, nil
}
