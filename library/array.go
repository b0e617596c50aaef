package library

import (
	"fmt"
	"reflect"
	"slices"

	"shapeshift/function"
	"shapeshift/internal/common"
	"shapeshift/registry"
)

// Arrays holds array transformations.
var Arrays = registry.New("arrays").
	MustRegister("mapArray", MapArray).
	MustRegister("wrap", Wrap).
	MustRegister("group", Group).
	MustRegister("ungroup", Ungroup).
	MustRegister("extractKey", ExtractKey).
	MustRegister("insertKey", InsertKey).
	MustRegister("addKeys", AddKeys)

// MapArray applies the composition of args to every element.
//
//	mapArray([{"age": "12"}], symbolizeKeys) => [{:age: "12"}]
func MapArray(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	for i, v := range in {
		if in[i], err = fn.Call(v); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}

	return in, nil
}

// Wrap nests keys of every element under key, see Nest.
func Wrap(value any, args []any, named function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	for i, v := range in {
		if in[i], err = Nest(v, args, named); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// Group collapses rows sharing every key except keys into one row, and
// collects the keys of each collapsed row under key.
//
//	group([{name: "a", tag: 1}, {name: "a", tag: 2}], :tags, [:tag])
//	=> [{name: "a", tags: [{tag: 1}, {tag: 2}]}]
//
// Children whose values are all nil are dropped. Group order follows the
// first appearance of each group.
func Group(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	key, err := arg(args, 0, "group key")
	if err != nil {
		return nil, err
	}

	keys := keyList(args[1:])

	type group struct {
		root     Hash
		children []any
	}

	var groups []*group

	for _, row := range in {
		h, err := ToHash(row)
		if err != nil {
			return nil, err
		}

		root, child := split(h, keys)

		idx := slices.IndexFunc(groups, func(g *group) bool { return sameHash(g.root, root) })
		if idx < 0 {
			groups = append(groups, &group{root: root})
			idx = len(groups) - 1
		}

		if slices.ContainsFunc(valuesOf(child), func(v any) bool { return v != nil }) {
			groups[idx].children = append(groups[idx].children, child)
		}
	}

	out := make([]any, 0, len(groups))
	for _, g := range groups {
		children := g.children
		if children == nil {
			children = []any{}
		}

		g.root[key] = children
		out = append(out, g.root)
	}

	return out, nil
}

// Ungroup is the inverse of Group: every row is repeated once per child
// under key, merged with that child. Rows with no children keep the
// remaining keys only.
func Ungroup(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	key, err := arg(args, 0, "group key")
	if err != nil {
		return nil, err
	}

	var out []any

	for _, row := range in {
		h, err := ToHash(row)
		if err != nil {
			return nil, err
		}

		k, _ := keyIn(h, key)
		children, err := ToArray(h[k])
		if err != nil && h[k] != nil {
			return nil, err
		}

		delete(h, k)

		if common.IsEmpty(children) {
			out = append(out, h)
			continue
		}

		for _, c := range children {
			child, err := ToHash(c)
			if err != nil {
				return nil, err
			}

			merged := Hash{}
			for k, v := range h {
				merged[k] = v
			}

			for k, v := range child {
				merged[k] = v
			}

			out = append(out, merged)
		}
	}

	if out == nil {
		out = []any{}
	}

	return out, nil
}

// ExtractKey replaces every hash element with its value at key.
func ExtractKey(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	key, err := arg(args, 0, "key")
	if err != nil {
		return nil, err
	}

	for i, row := range in {
		h, err := ToHash(row)
		if err != nil {
			return nil, err
		}

		k, _ := keyIn(h, key)
		in[i] = h[k]
	}

	return in, nil
}

// InsertKey wraps every element into a single-key hash.
func InsertKey(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	key, err := arg(args, 0, "key")
	if err != nil {
		return nil, err
	}

	for i, v := range in {
		in[i] = Hash{key: v}
	}

	return in, nil
}

// AddKeys adds every missing key with a nil value to each hash element.
func AddKeys(value any, args []any, _ function.Named) (any, error) {
	in, err := ToArray(value)
	if err != nil {
		return nil, err
	}

	keys := keyList(args)

	for i, row := range in {
		h, err := ToHash(row)
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			if _, ok := keyIn(h, key); !ok {
				h[key] = nil
			}
		}

		in[i] = h
	}

	return in, nil
}

// split moves the given keys of h into a separate child hash.
func split(h Hash, keys []any) (root, child Hash) {
	root, child = Hash{}, Hash{}
	for k, v := range h {
		root[k] = v
	}

	for _, key := range keys {
		k, ok := keyIn(root, key)
		if !ok {
			child[key] = nil
			continue
		}

		child[k] = root[k]
		delete(root, k)
	}

	return root, child
}

func valuesOf(h Hash) []any {
	out := make([]any, 0, len(h))
	for _, v := range h {
		out = append(out, v)
	}

	return out
}

func sameHash(a, b Hash) bool {
	if len(a) != len(b) {
		return false
	}

	for k, va := range a {
		vb, ok := b[k]
		if !ok || !reflect.DeepEqual(va, vb) {
			return false
		}
	}

	return true
}
