// Package library bundles ready-made transformations for hash and array
// shaped data, grouped into registries by concern.
//
// Hashes are map[any]any; inputs of type map[string]any are accepted as
// well. Arrays are []any, and any other slice is converted element-wise.
// Symbolized keys use Symbol so they can be told apart from string keys.
// Key arguments match a hash key of either kind with the same text, so
// "age" finds both "age" and Symbol("age").
//
// Function arguments (for example the per-element function of mapArray) may
// be any function.Unit, a function.Func or a plain func(any) any.
//
//	reg := library.All()
//	fn, _ := reg.Resolve("mapArray", function.New("symbolizeKeys", library.SymbolizeKeys))
//	out, _ := fn.Call([]any{map[string]any{"age": "12"}})
//	// out: []any{map[any]any{Symbol("age"): "12"}}
package library
