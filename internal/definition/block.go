package definition

import (
	"shapeshift/dsl"
	"shapeshift/function"
)

// Block converts the transformer's steps into a dsl.Block.
func (t *Transformer) Block() dsl.Block {
	return stepsBlock(t.Steps)
}

func stepsBlock(steps []Step) dsl.Block {
	if len(steps) == 0 {
		return nil
	}

	block := make(dsl.Block, 0, len(steps))
	for _, s := range steps {
		block = append(block, s.Instruction())
	}

	return block
}

// Instruction converts a single step.
func (s Step) Instruction() dsl.Instruction {
	if s.Guard != nil {
		then := stepsBlock(s.Then)

		var in dsl.Instruction = then
		if s.Then.IsSingle() {
			in = then[0]
		}

		return dsl.Guard{
			Predicate: dsl.Call{Name: s.Guard.Call, Args: convertArgs(s.Guard.Args)},
			Then:      in,
		}
	}

	if len(s.Do) > 0 {
		return dsl.Scope{
			Name:  s.Call,
			Args:  convertArgs(s.Args),
			Named: convertNamed(s.Named),
			Body:  stepsBlock(s.Do),
		}
	}

	return dsl.Call{Name: s.Call, Args: convertArgs(s.Args), Named: convertNamed(s.Named)}
}

func convertArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}

	out := make([]any, len(args))
	for i, a := range args {
		out[i] = convertArg(a)
	}

	return out
}

func convertNamed(named map[string]any) function.Named {
	if len(named) == 0 {
		return nil
	}

	out := make(function.Named, len(named))
	for k, v := range named {
		out[k] = convertArg(v)
	}

	return out
}

// convertArg turns {fn: name, args: [...], named: {...}} into a dsl.Ref and
// recurses into lists and other mappings.
func convertArg(v any) any {
	switch v := v.(type) {
	case []any:
		if len(v) == 0 {
			return v
		}

		return convertArgs(v)
	case map[string]any:
		if ref, ok := asRef(v); ok {
			return ref
		}

		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = convertArg(val)
		}

		return out
	default:
		return v
	}
}

func asRef(m map[string]any) (dsl.Ref, bool) {
	name, ok := m["fn"].(string)
	if !ok {
		return dsl.Ref{}, false
	}

	for k := range m {
		if k != "fn" && k != "args" && k != "named" {
			return dsl.Ref{}, false
		}
	}

	ref := dsl.Ref{Name: name}

	if args, ok := m["args"].([]any); ok {
		ref.Args = convertArgs(args)
	}

	if named, ok := m["named"].(map[string]any); ok {
		ref.Named = convertNamed(named)
	}

	return ref, true
}
