package dsl

import "shapeshift/function"

// Builder records instructions into a Block. The zero value is ready to use.
type Builder struct {
	block Block
}

// Define runs build against a fresh Builder and returns the recorded block.
func Define(build func(b *Builder)) Block {
	var b Builder
	if build != nil {
		build(&b)
	}

	return b.Block()
}

// Block returns a copy of the instructions recorded so far.
func (b *Builder) Block() Block {
	return append(Block(nil), b.block...)
}

// Len returns the number of recorded instructions.
func (b *Builder) Len() int {
	return len(b.block)
}

// Call records a plain call.
func (b *Builder) Call(name string, args ...any) *Builder {
	return b.Add(Call{Name: name, Args: args})
}

// CallNamed records a plain call with named arguments.
func (b *Builder) CallNamed(name string, args []any, named function.Named) *Builder {
	return b.Add(Call{Name: name, Args: args, Named: named})
}

// Scope records a nested scope whose body is built by body.
func (b *Builder) Scope(name string, body func(b *Builder), args ...any) *Builder {
	return b.Add(Scope{Name: name, Args: args, Body: Define(body)})
}

// Guard records a guard around an arbitrary instruction.
func (b *Builder) Guard(predicate Call, then Instruction) *Builder {
	return b.Add(Guard{Predicate: predicate, Then: then})
}

// GuardScope records a guard whose then branch is the block built by body.
// A body of one instruction is stored as that instruction.
func (b *Builder) GuardScope(predicate string, body func(b *Builder), args ...any) *Builder {
	then := Define(body)

	var in Instruction = then
	if len(then) == 1 {
		in = then[0]
	}

	return b.Guard(Call{Name: predicate, Args: args}, in)
}

// Add records raw instructions.
func (b *Builder) Add(ins ...Instruction) *Builder {
	b.block = append(b.block, ins...)

	return b
}
