package library

import (
	"fmt"

	"shapeshift/function"
	"shapeshift/primitive"
	"shapeshift/registry"
)

// Conditionals holds predicates and conditional application.
var Conditionals = registry.New("conditionals").
	MustRegister("isKind", IsKind).
	MustRegister("isString", kindPredicate("string")).
	MustRegister("isInteger", kindPredicate("integer")).
	MustRegister("isHash", kindPredicate("hash")).
	MustRegister("isArray", kindPredicate("array")).
	MustRegister("isNil", kindPredicate("nil")).
	MustRegister("not", Not).
	MustRegister("guard", Guard).
	MustRegister("is", Is)

// IsKind reports whether the value belongs to the kind group named by the
// first argument, e.g. "integer", "text" or "hash".
func IsKind(value any, args []any, _ function.Named) (any, error) {
	group, err := arg(args, 0, "kind")
	if err != nil {
		return nil, err
	}

	name, ok := keyText(group)
	if !ok {
		return nil, fmt.Errorf("kind name must be text, got %T", group)
	}

	return primitive.Matches(value, name)
}

func kindPredicate(group string) function.Func {
	return func(value any, _ []any, named function.Named) (any, error) {
		return IsKind(value, []any{group}, named)
	}
}

// Not negates the truthiness of the composed args applied to the value.
func Not(value any, args []any, _ function.Named) (any, error) {
	fn, err := composeArgs(args)
	if err != nil {
		return nil, err
	}

	res, err := fn.Call(value)
	if err != nil {
		return nil, err
	}

	return !function.Truthy(res), nil
}

// Guard applies args[1:] when the predicate args[0] holds for the value and
// returns the value unchanged otherwise.
func Guard(value any, args []any, _ function.Named) (any, error) {
	predArg, err := arg(args, 0, "predicate")
	if err != nil {
		return nil, err
	}

	pred, err := AsUnit(predArg)
	if err != nil {
		return nil, err
	}

	ok, err := pred.Call(value)
	if err != nil {
		return nil, err
	}

	if !function.Truthy(ok) {
		return value, nil
	}

	fn, err := composeArgs(args[1:])
	if err != nil {
		return nil, err
	}

	return fn.Call(value)
}

// Is applies args[1:] when the value belongs to the kind group args[0].
//
//	is("12", "text", toInteger) => 12
func Is(value any, args []any, named function.Named) (any, error) {
	ok, err := IsKind(value, args, named)
	if err != nil {
		return nil, err
	}

	if !function.Truthy(ok) {
		return value, nil
	}

	fn, err := composeArgs(args[1:])
	if err != nil {
		return nil, err
	}

	return fn.Call(value)
}
