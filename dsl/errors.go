package dsl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFunctionName = errors.New("invalid function name")
	ErrNotAFunction        = errors.New("resolved unit is not a function")
	ErrEmptyInstruction    = errors.New("empty instruction")
)

// InvalidFunctionNameError reports a name that could not be resolved while
// compiling a block.
type InvalidFunctionNameError struct {
	Name string
	// Scope lists the enclosing scope names, outermost first.
	Scope []string
	// Err is the resolver's error, usually a *registry.UnregisteredFunctionError.
	Err error
}

func (e *InvalidFunctionNameError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %q", ErrInvalidFunctionName, e.Name)

	if len(e.Scope) > 0 {
		fmt.Fprintf(&b, " in %s", strings.Join(e.Scope, " > "))
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *InvalidFunctionNameError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidFunctionName) match.
func (e *InvalidFunctionNameError) Is(target error) bool {
	return target == ErrInvalidFunctionName
}
