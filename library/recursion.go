package library

import (
	"shapeshift/function"
	"shapeshift/registry"
)

// Recursion holds transformations applied at every nesting level.
var Recursion = registry.New("recursion").
	MustRegister("hashRecursion", HashRecursion).
	MustRegister("arrayRecursion", ArrayRecursion)

// HashRecursion applies the composed args to a hash and then to every hash
// nested in its values.
func HashRecursion(value any, args []any, _ function.Named) (any, error) {
	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	return recurseHash(value, fn)
}

func recurseHash(value any, fn function.Unit) (any, error) {
	res, err := fn.Call(value)
	if err != nil {
		return nil, err
	}

	if !isHash(res) {
		return res, nil
	}

	h, err := ToHash(res)
	if err != nil {
		return nil, err
	}

	for k, v := range h {
		if !isHash(v) {
			continue
		}

		if h[k], err = recurseHash(v, fn); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// ArrayRecursion applies the composed args to an array and then to every
// array nested in it.
func ArrayRecursion(value any, args []any, _ function.Named) (any, error) {
	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	return recurseArray(value, fn)
}

func recurseArray(value any, fn function.Unit) (any, error) {
	res, err := fn.Call(value)
	if err != nil {
		return nil, err
	}

	if !isArray(res) {
		return res, nil
	}

	a, err := ToArray(res)
	if err != nil {
		return nil, err
	}

	for i, v := range a {
		if !isArray(v) {
			continue
		}

		if a[i], err = recurseArray(v, fn); err != nil {
			return nil, err
		}
	}

	return a, nil
}
