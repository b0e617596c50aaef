package function

import (
	"errors"
	"fmt"
)

// ErrNilPredicate is returned when a guard without a predicate is called.
var ErrNilPredicate = errors.New("guard has no predicate")

// Guard applies then only when predicate holds for the piped value;
// otherwise the value passes through unchanged.
type Guard struct {
	predicate *Function
	then      Unit
}

// NewGuard returns a guard unit. A nil then guards the identity.
func NewGuard(predicate *Function, then Unit) *Guard {
	if then == nil {
		then = Identity()
	}

	return &Guard{predicate: predicate, then: then}
}

// Predicate returns the guard's predicate.
func (g *Guard) Predicate() *Function {
	return g.predicate
}

// Then returns the guarded unit.
func (g *Guard) Then() Unit {
	return g.then
}

// Call evaluates the predicate and applies the guarded unit on a truthy result.
func (g *Guard) Call(value any) (any, error) {
	if g.predicate == nil {
		return nil, ErrNilPredicate
	}

	ok, err := g.predicate.Call(value)
	if err != nil {
		return nil, err
	}

	if !Truthy(ok) {
		return value, nil
	}

	return g.then.Call(value)
}

// Compose returns a chain applying g and then other.
func (g *Guard) Compose(other Unit) *Chain {
	return NewChain(g, other)
}

// AST returns ["guard", [predicateAST, thenAST]].
func (g *Guard) AST() AST {
	var predicate any
	if g.predicate != nil {
		predicate = g.predicate.AST()
	}

	return AST{"guard", []any{predicate, g.then.AST()}}
}

// Equal reports whether other guards an equal unit with an equal predicate.
func (g *Guard) Equal(other Unit) bool {
	o, ok := other.(*Guard)
	if !ok {
		return false
	}

	return g.predicate.Equal(o.predicate) && g.then.Equal(o.then)
}

func (g *Guard) String() string {
	predicate := "nil"
	if g.predicate != nil {
		predicate = g.predicate.String()
	}

	return fmt.Sprintf("guard(%s, %s)", predicate, formatArg(g.then))
}

// Truthy reports whether a predicate result counts as a match: anything
// except nil and false.
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	default:
		return true
	}
}
