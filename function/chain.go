package function

// Unit is anything that can take part in a composition chain.
type Unit interface {
	// Call applies the unit to value.
	Call(value any) (any, error)
	// Compose returns a chain applying the receiver and then other.
	Compose(other Unit) *Chain
	// AST returns a structural representation of the unit.
	AST() AST
	// Equal reports structural equality with other.
	Equal(other Unit) bool
}

// Chain is an ordered, immutable sequence of units invoked as one function.
// The zero value and an empty chain are the identity.
type Chain struct {
	units []Unit
}

// NewChain builds a chain from units. Chain operands are flattened into the
// result and nil units are skipped; operands are never mutated.
func NewChain(units ...Unit) *Chain {
	flat := make([]Unit, 0, len(units))
	for _, u := range units {
		switch v := u.(type) {
		case nil:
		case *Chain:
			if v != nil {
				flat = append(flat, v.units...)
			}
		default:
			flat = append(flat, u)
		}
	}

	return &Chain{units: flat}
}

// Identity returns the empty chain.
func Identity() *Chain {
	return &Chain{}
}

// Compose returns a chain of all units applied in order.
func Compose(units ...Unit) *Chain {
	return NewChain(units...)
}

// Call folds value through every unit left to right. The first error stops
// the fold and is returned unchanged.
func (c *Chain) Call(value any) (any, error) {
	if c == nil {
		return value, nil
	}

	acc := value
	for _, u := range c.units {
		out, err := u.Call(acc)
		if err != nil {
			return nil, err
		}

		acc = out
	}

	return acc, nil
}

// Compose returns a new chain of c's units followed by other.
func (c *Chain) Compose(other Unit) *Chain {
	return NewChain(c, other)
}

// Units returns a copy of the chain's units.
func (c *Chain) Units() []Unit {
	if c == nil {
		return nil
	}

	return append([]Unit(nil), c.units...)
}

// Len returns the number of units.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}

	return len(c.units)
}

// IsIdentity reports whether the chain has no units.
func (c *Chain) IsIdentity() bool {
	return c.Len() == 0
}

// AST returns the list of unit ASTs.
func (c *Chain) AST() AST {
	out := make(AST, 0, c.Len())
	for _, u := range c.Units() {
		out = append(out, u.AST())
	}

	return out
}

// Equal reports whether other is a chain with element-wise equal units.
func (c *Chain) Equal(other Unit) bool {
	o, ok := other.(*Chain)
	if !ok {
		return false
	}

	if c.Len() != o.Len() {
		return false
	}

	for i := range c.Len() {
		if !c.units[i].Equal(o.units[i]) {
			return false
		}
	}

	return true
}

// String renders the chain as units joined by " >> ".
func (c *Chain) String() string {
	if c.IsIdentity() {
		return "identity"
	}

	s := ""
	for i, u := range c.units {
		if i > 0 {
			s += " >> "
		}

		s += formatArg(u)
	}

	return s
}
