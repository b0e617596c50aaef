package library

import "shapeshift/registry"

// Registries lists the bundled registries by name.
func Registries() map[string]*registry.Registry {
	return map[string]*registry.Registry{
		Arrays.Name():       Arrays,
		Hashes.Name():       Hashes,
		Coercions.Name():    Coercions,
		Conditionals.Name(): Conditionals,
		Recursion.Name():    Recursion,
	}
}

// All returns a fresh registry importing every bundled registry.
func All(opts ...registry.Option) *registry.Registry {
	return registry.New("all", opts...).Import(Arrays, Hashes, Coercions, Conditionals, Recursion)
}
