// Package registry provides named function stores.
//
// A Registry maps names to function.Func values. It is safe for concurrent
// use: lookups take a read lock and never block each other, writes
// (registration and import) are serialised and applied atomically.
//
//	var Strings = registry.New("strings").
//		MustRegisterFunc("upcase", strings.ToUpper).
//		MustRegisterFunc("trim", strings.TrimSpace)
//
//	mine := registry.New("mine").Import(Strings)
//	fn, err := mine.Resolve("upcase")
//
// Registering a name twice replaces the earlier binding. Import copies
// entries; later changes to the source registry are not seen by the
// importer. Importing several registries applies them in order, so the
// last one wins for names they share.
package registry
