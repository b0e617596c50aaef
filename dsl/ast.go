package dsl

import "shapeshift/function"

// Instruction is one recorded step of a Block.
type Instruction interface {
	instruction()
	write(w *writer)
}

// Call resolves Name with Args and Named and appends the result.
type Call struct {
	Name  string
	Args  []any
	Named function.Named
}

// Scope compiles Body into a chain, then resolves Name with Args followed
// by that chain.
type Scope struct {
	Name  string
	Args  []any
	Named function.Named
	Body  Block
}

// Guard appends a unit applying Then only when Predicate holds.
type Guard struct {
	Predicate Call
	Then      Instruction
}

// Block is an ordered list of instructions. A Block is itself an
// Instruction compiling to a nested chain.
type Block []Instruction

// Ref is a function reference used as an argument. It is resolved at compile
// time through the same resolver as the instruction it belongs to.
type Ref struct {
	Name  string
	Args  []any
	Named function.Named
}

func (Call) instruction()  {}
func (Scope) instruction() {}
func (Guard) instruction() {}
func (Block) instruction() {}

// Fn returns a Ref to name curried with args.
func Fn(name string, args ...any) Ref {
	return Ref{Name: name, Args: args}
}

// Walk visits every function name referenced by block, including guard
// predicates and Refs in arguments. scope is the path of enclosing Scope
// names and must not be retained.
func Walk(block Block, visit func(name string, scope []string)) {
	walkBlock(block, nil, visit)
}

func walkBlock(block Block, scope []string, visit func(string, []string)) {
	for _, in := range block {
		walkInstruction(in, scope, visit)
	}
}

func walkInstruction(in Instruction, scope []string, visit func(string, []string)) {
	switch in := in.(type) {
	case Call:
		walkArgs(in.Args, in.Named, scope, visit)
		visit(in.Name, scope)
	case Scope:
		walkArgs(in.Args, in.Named, scope, visit)
		walkBlock(in.Body, append(scope[:len(scope):len(scope)], in.Name), visit)
		visit(in.Name, scope)
	case Guard:
		walkInstruction(in.Predicate, scope, visit)
		walkInstruction(in.Then, scope, visit)
	case Block:
		walkBlock(in, scope, visit)
	}
}

func walkArgs(args []any, named function.Named, scope []string, visit func(string, []string)) {
	for _, arg := range args {
		walkArg(arg, scope, visit)
	}

	for _, arg := range named {
		walkArg(arg, scope, visit)
	}
}

func walkArg(arg any, scope []string, visit func(string, []string)) {
	switch arg := arg.(type) {
	case Ref:
		walkArgs(arg.Args, arg.Named, scope, visit)
		visit(arg.Name, scope)
	case []any:
		walkArgs(arg, nil, scope, visit)
	case map[string]any:
		walkArgs(nil, arg, scope, visit)
	case Block:
		walkBlock(arg, scope, visit)
	}
}
