package definition

import (
	"fmt"
	"maps"
	"slices"

	"shapeshift/dsl"
	"shapeshift/internal/diagnostic"
	"shapeshift/internal/match"
	"shapeshift/library"
	"shapeshift/registry"
)

const supportedVersion = "1"

// Registry returns the registry transformers of f are compiled against:
// base (which may be nil) plus the imported library registries, or every
// library registry when f imports nothing. Unknown imports are skipped.
func Registry(f *File, base *registry.Registry) *registry.Registry {
	reg := registry.New("definition").Import(base)
	available := library.Registries()

	if len(f.Imports) == 0 {
		for _, name := range slices.Sorted(maps.Keys(available)) {
			reg.Import(available[name])
		}

		return reg
	}

	for _, name := range f.Imports {
		reg.Import(available[name])
	}

	return reg
}

// Validate checks the structure of f and resolves every function name
// against the registry built by Registry.
func Validate(f *File, base *registry.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("definition_is_nil", "definition file is nil", "", "")
		return res
	}

	if f.Version != supportedVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q, expected %q", f.Version, supportedVersion), "", "version")
	}

	available := slices.Sorted(maps.Keys(library.Registries()))
	for i, name := range f.Imports {
		if !slices.Contains(available, name) {
			res.AddError("unknown_import", fmt.Sprintf("unknown import %q", name), "", fmt.Sprintf("imports[%d]", i),
				match.Suggest(name, available)...)
		}
	}

	validateTransformers(res, f)

	known := Registry(f, base).Names()
	for i := range f.Transformers {
		t := &f.Transformers[i]
		validateSteps(res, t.Name, "steps", t.Steps, known)
	}

	return res
}

func validateTransformers(res *diagnostic.Diagnostics, f *File) {
	seen := map[string]struct{}{}
	names := f.Names()

	for i, t := range f.Transformers {
		if t.Name == "" {
			res.AddError("missing_name", "transformer must have a name", "", fmt.Sprintf("transformers[%d]", i))
			continue
		}

		if _, ok := seen[t.Name]; ok {
			res.AddError("duplicate_transformer", fmt.Sprintf("duplicate transformer %q", t.Name), t.Name, "")
			continue
		}

		seen[t.Name] = struct{}{}

		if t.Parent != "" && !slices.Contains(names, t.Parent) {
			res.AddError("unknown_parent", fmt.Sprintf("unknown parent %q", t.Parent), t.Name, "parent",
				match.Suggest(t.Parent, names)...)
		}
	}

	for _, t := range f.Transformers {
		if cycle := parentCycle(f, t.Name); cycle != nil {
			res.AddError("cyclic_parent", fmt.Sprintf("parent cycle %v", cycle), t.Name, "parent")
		}
	}
}

// parentCycle returns the parent chain from name back to itself, or nil.
func parentCycle(f *File, name string) []string {
	path := []string{name}

	for current := name; ; {
		t, ok := f.Transformer(current)
		if !ok || t.Parent == "" {
			return nil
		}

		path = append(path, t.Parent)
		if t.Parent == name {
			return path
		}

		if slices.Contains(path[:len(path)-1], t.Parent) {
			// a cycle not passing through name; reported for its members
			return nil
		}

		current = t.Parent
	}
}

func validateSteps(res *diagnostic.Diagnostics, transformer, path string, steps []Step, known []string) {
	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", path, i)

		switch {
		case s.Guard != nil && s.Call != "":
			res.AddError("ambiguous_step", "step sets both call and guard", transformer, at)
		case s.Guard != nil:
			if s.Guard.Call == "" {
				res.AddError("missing_predicate", "guard must name a predicate", transformer, at)
			}

			if len(s.Then) == 0 {
				res.AddError("missing_then", "guard must have then steps", transformer, at)
			}

			if len(s.Do) > 0 {
				res.AddWarning("ignored_do", "do is ignored on guard steps, use then", transformer, at)
			}

			validateSteps(res, transformer, at+".then", s.Then, known)
		case s.Call == "":
			res.AddError("missing_call", "step must set call or guard", transformer, at)
		default:
			if len(s.Then) > 0 {
				res.AddWarning("ignored_then", "then is ignored without guard", transformer, at)
			}

			validateSteps(res, transformer, at+".do", s.Do, known)
		}

		validateNames(res, transformer, at, s, known)
	}
}

// validateNames checks the function names a step references itself,
// leaving nested steps to their own pass.
func validateNames(res *diagnostic.Diagnostics, transformer, at string, s Step, known []string) {
	in := s.Instruction()

	var names []string

	switch in := in.(type) {
	case dsl.Guard:
		names = refNames(in.Predicate.Args, nil)
		names = append(names, in.Predicate.Name)
	case dsl.Scope:
		names = refNames(in.Args, in.Named)
		names = append(names, in.Name)
	case dsl.Call:
		names = refNames(in.Args, in.Named)
		names = append(names, in.Name)
	}

	for _, name := range names {
		if name == "" || slices.Contains(known, name) {
			continue
		}

		res.AddError("unknown_function", fmt.Sprintf("function %q is not registered", name), transformer, at,
			match.Suggest(name, known)...)
	}
}

func refNames(args []any, named map[string]any) []string {
	var names []string

	dsl.Walk(dsl.Block{dsl.Call{Args: args, Named: named}}, func(name string, _ []string) {
		if name != "" {
			names = append(names, name)
		}
	})

	return names
}
