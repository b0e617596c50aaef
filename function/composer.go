package function

// Composer gathers units over several steps and builds one unit from them,
// falling back to a default when nothing was gathered.
//
//	fn := function.Gather(nil, func(c *function.Composer) {
//		c.Add(mapArray.With(symbolize))
//		if coerce {
//			c.Add(mapArray.With(toInteger))
//		}
//	})
type Composer struct {
	units    []Unit
	fallback Unit
}

// NewComposer returns an empty composer with the given fallback, which may be nil.
func NewComposer(fallback Unit) *Composer {
	return &Composer{fallback: fallback}
}

// Add appends units, skipping nil ones.
func (c *Composer) Add(units ...Unit) *Composer {
	for _, u := range units {
		if u != nil {
			c.units = append(c.units, u)
		}
	}

	return c
}

// Len returns the number of gathered units.
func (c *Composer) Len() int {
	return len(c.units)
}

// Unit returns the composition of all gathered units, or the fallback.
func (c *Composer) Unit() Unit {
	if len(c.units) == 0 {
		return c.fallback
	}

	return NewChain(c.units...)
}

// Gather runs build against a fresh composer and returns its unit.
func Gather(fallback Unit, build func(c *Composer)) Unit {
	c := NewComposer(fallback)
	build(c)

	return c.Unit()
}
