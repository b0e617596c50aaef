// Package function provides the composition algebra of shapeshift.
//
// A Function wraps a callable together with a display name and curried
// positional and named arguments. Functions compose into a Chain, an
// ordered, immutable sequence of units applied left to right where each
// unit receives the previous unit's output.
//
// # Key types
//
//   - Func: the callable shape every transformation implements
//   - Function: a named, curried Func
//   - Chain: a flat sequence of units that behaves as one unit
//   - Guard: a unit that applies another unit only when a predicate holds
//   - Composer: gathers units in steps and falls back to a default
//
// # Composition
//
//	inc := function.New("inc", add).With(1)
//	double := function.New("mul", mul).With(2)
//
//	chain := inc.Compose(double)  // [inc(1), mul(2)]
//	out, err := chain.Call(3)      // 8, nil
//
// Composition never mutates its operands and always flattens chains, so
// a.Compose(b).Compose(c) and a.Compose(b.Compose(c)) produce equal chains.
//
// # Arbitrary Go functions
//
// Reflect adapts ordinary Go functions such as strconv.Atoi into a Func.
// The first parameter receives the piped value, the remaining parameters
// receive curried positional arguments, and a trailing Named parameter
// receives the named arguments.
package function
