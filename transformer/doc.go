// Package transformer builds invocable transformer types on top of a
// registry and a declared pipeline.
//
// A Type is an immutable descriptor: every configuration method returns a
// derived Type and leaves the receiver untouched. Derived types inherit the
// registry, the declared block and the instance methods of their parent.
//
//	base := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) {
//		b.Call("symbolizeKeys")
//	})
//
//	users := base.Subclass(transformer.WithName("users")).Declare(func(b *dsl.Builder) {
//		b.Call("symbolizeKeys")
//		b.Call("renameKeys", library.Hash{"user_name": "name"})
//	})
//
//	t, err := users.New(nil)
//	out, err := t.Call(map[string]any{"user_name": "ann"})
//
// Rebinding a type to another registry drops the inherited declaration, so
// a type never runs a pipeline meant for a different set of functions.
//
// Methods registered with WithMethod are reachable from the pipeline by
// name, as if they were registered functions, and see the instance state.
// Registry functions take precedence over methods of the same name.
package transformer
