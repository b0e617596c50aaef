package function

import (
	"fmt"
	"reflect"
)

// AST is a structural representation of a unit used for equality checks and
// debugging. A Function renders as [name, argsAST], a Chain as the list of
// its units' ASTs and a Guard as ["guard", [predicateAST, thenAST]].
type AST []any

// argAST represents unit arguments recursively and leaves the rest as-is.
func argAST(arg any) any {
	if u, ok := arg.(Unit); ok {
		return u.AST()
	}

	return arg
}

func formatArg(arg any) string {
	switch a := arg.(type) {
	case fmt.Stringer:
		return a.String()
	case string:
		return fmt.Sprintf("%q", a)
	default:
		if isFunc(arg) {
			return fmt.Sprintf("func@%#x", reflect.ValueOf(arg).Pointer())
		}

		return fmt.Sprintf("%#v", arg)
	}
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// sameFunc compares callables by code pointer. Closures created from the
// same literal compare equal regardless of what they capture.
func sameFunc(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.IsNil() || vb.IsNil() {
		return va.IsNil() && vb.IsNil()
	}

	return va.Pointer() == vb.Pointer()
}

func valueEqual(a, b any) bool {
	if ua, ok := a.(Unit); ok {
		ub, ok := b.(Unit)
		return ok && ua.Equal(ub)
	}

	if isFunc(a) || isFunc(b) {
		return isFunc(a) && isFunc(b) && sameFunc(a, b)
	}

	return reflect.DeepEqual(a, b)
}

func argsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}

func namedEqual(a, b Named) bool {
	if len(a) != len(b) {
		return false
	}

	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}

	return true
}
