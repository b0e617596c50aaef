package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnregisteredFunction = errors.New("function is not registered")
	ErrEmptyName            = errors.New("function name is empty")
	ErrNilFunc              = errors.New("function is nil")
	ErrNilRegistry          = errors.New("registry is nil")
)

// UnregisteredFunctionError reports a lookup of a name with no binding.
type UnregisteredFunctionError struct {
	Name     string
	Registry string
	// Suggestions are registered names similar to Name.
	Suggestions []string
}

func (e *UnregisteredFunctionError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %q in registry %q", ErrUnregisteredFunction, e.Name, e.Registry)

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return b.String()
}

// Is makes errors.Is(err, ErrUnregisteredFunction) match.
func (e *UnregisteredFunctionError) Is(target error) bool {
	return target == ErrUnregisteredFunction
}
