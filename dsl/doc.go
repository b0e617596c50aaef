// Package dsl records pipeline declarations and compiles them into chains.
//
// A declaration is plain data: a Block of instructions captured by a
// Builder without touching any registry. Names are only looked up when the
// block is compiled against a Resolver, so the same block can be compiled
// against different registries.
//
//	block := dsl.Define(func(b *dsl.Builder) {
//		b.Call("symbolizeKeys")
//		b.Scope("mapValue", func(b *dsl.Builder) {
//			b.Call("toInteger")
//		}, library.Symbol("age"))
//		b.GuardScope("isString", func(b *dsl.Builder) {
//			b.Call("toSymbol")
//		})
//	})
//
//	chain, err := dsl.Compile(block, reg)
//
// There are three instruction shapes. A Call resolves a name with its
// arguments. A Scope compiles its body into a nested chain first and passes
// that chain as the trailing argument of its own name. A Guard applies its
// Then instruction only when its predicate holds for the current value.
//
// Unknown names fail compilation with an *InvalidFunctionNameError naming
// the function and the scopes it was found in.
package dsl
