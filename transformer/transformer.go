package transformer

import (
	"slices"

	"shapeshift/function"
	"shapeshift/internal/match"
	"shapeshift/registry"
)

// Transformer is an instance of a Type. It is a function.Unit.
type Transformer struct {
	typ   *Type
	state any
	chain *function.Chain
}

// Type returns the type x was created from.
func (x *Transformer) Type() *Type {
	return x.typ
}

// State returns the state x was created with.
func (x *Transformer) State() any {
	return x.state
}

// Chain returns the compiled chain x runs.
func (x *Transformer) Chain() *function.Chain {
	return x.chain
}

// Call runs value through the chain.
func (x *Transformer) Call(value any) (any, error) {
	return x.chain.Call(value)
}

// Compose returns a chain applying x and then other.
func (x *Transformer) Compose(other function.Unit) *function.Chain {
	return function.NewChain(x, other)
}

// AST returns the AST of the chain.
func (x *Transformer) AST() function.AST {
	return x.chain.AST()
}

// Equal reports whether other is a transformer running an equal chain.
func (x *Transformer) Equal(other function.Unit) bool {
	o, ok := other.(*Transformer)
	if !ok {
		return false
	}

	return x.chain.Equal(o.chain)
}

func (x *Transformer) String() string {
	return x.typ.name + "(" + x.chain.String() + ")"
}

// instanceResolver resolves registry functions first and instance methods second.
type instanceResolver struct {
	x *Transformer
}

func (r *instanceResolver) ResolveNamed(name string, args []any, named function.Named) (*function.Function, error) {
	reg := r.x.typ.registry
	if reg.Contains(name) {
		return reg.ResolveNamed(name, args, named)
	}

	m, ok := r.x.typ.methods[name]
	if !ok {
		return nil, &registry.UnregisteredFunctionError{
			Name:        name,
			Registry:    reg.Name(),
			Suggestions: match.Suggest(name, slices.Concat(reg.Names(), r.x.typ.Methods())),
		}
	}

	x := r.x

	return function.New(name, func(value any, args []any, named function.Named) (any, error) {
		return m(x, value, args, named)
	}).WithNamed(args, named), nil
}
