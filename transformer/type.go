package transformer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"shapeshift/dsl"
	"shapeshift/function"
	"shapeshift/registry"
)

// Method is instance behavior callable from a pipeline by name.
type Method func(t *Transformer, value any, args []any, named function.Named) (any, error)

var sharedCompiler = dsl.NewCompiler(dsl.WithCache(dsl.NewCache()))

// Type is a transformer descriptor.
type Type struct {
	name     string
	parent   *Type
	registry *registry.Registry
	block    dsl.Block
	methods  map[string]Method
	compiler *dsl.Compiler
	logger   *slog.Logger
	compiled *compiled
}

// compiled memoizes a type's chain per registry key. Types that inherit a
// declaration unchanged share it with their parent.
type compiled struct {
	mu    sync.Mutex
	key   string
	chain *function.Chain
}

// Option configures a derived Type.
type Option func(*Type)

// WithName sets the type name used in logs and String.
func WithName(name string) Option {
	return func(t *Type) {
		t.name = name
	}
}

// WithMethod adds an instance method reachable from the pipeline as name.
func WithMethod(name string, m Method) Option {
	return func(t *Type) {
		t.methods[name] = m
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Type) {
		t.logger = logger
	}
}

// WithCompiler replaces the shared, caching compiler.
func WithCompiler(c *dsl.Compiler) Option {
	return func(t *Type) {
		t.compiler = c
		t.compiled = &compiled{}
	}
}

// Bind returns a root type bound to r with nothing declared.
func Bind(r *registry.Registry, opts ...Option) *Type {
	t := &Type{
		name:     "transformer",
		registry: r,
		methods:  map[string]Method{},
		compiler: sharedCompiler,
		logger:   slog.New(slog.DiscardHandler),
		compiled: &compiled{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// derive copies t into a child type.
func (t *Type) derive() *Type {
	return &Type{
		name:     t.name,
		parent:   t,
		registry: t.registry,
		block:    t.block,
		methods:  maps.Clone(t.methods),
		compiler: t.compiler,
		logger:   t.logger,
		compiled: t.compiled,
	}
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// Parent returns the type t was derived from, or nil for a root type.
func (t *Type) Parent() *Type {
	return t.parent
}

// Registry returns the bound registry.
func (t *Type) Registry() *registry.Registry {
	return t.registry
}

// Block returns the declared block, nil when nothing is declared.
func (t *Type) Block() dsl.Block {
	return t.block
}

// Methods returns the sorted instance method names.
func (t *Type) Methods() []string {
	return slices.Sorted(maps.Keys(t.methods))
}

// Bind returns a derived type bound to r. Binding to the registry t already
// uses keeps the declaration; any other registry discards it.
func (t *Type) Bind(r *registry.Registry) *Type {
	d := t.derive()
	if r == t.registry {
		return d
	}

	d.registry = r
	d.block = nil
	d.compiled = &compiled{}

	return d
}

// Import returns a derived type bound to a fresh registry holding the
// functions of the current registry plus those of regs. The declaration is
// kept and compiled against the new registry.
func (t *Type) Import(regs ...*registry.Registry) *Type {
	d := t.derive()
	d.registry = registry.New(t.name, registry.WithLogger(t.logger)).Import(t.registry).Import(regs...)
	d.compiled = &compiled{}

	return d
}

// Declare returns a derived type declaring the block built by build.
func (t *Type) Declare(build func(b *dsl.Builder)) *Type {
	return t.DeclareBlock(dsl.Define(build))
}

// DeclareBlock returns a derived type declaring block.
func (t *Type) DeclareBlock(block dsl.Block) *Type {
	d := t.derive()
	d.block = block
	d.compiled = &compiled{}

	return d
}

// Subclass returns a derived type inheriting everything from t.
func (t *Type) Subclass(opts ...Option) *Type {
	d := t.derive()
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// T resolves name against the bound registry now. Use it to pass functions
// as ordinary arguments.
func (t *Type) T(name string, args ...any) (*function.Function, error) {
	return t.registry.Resolve(name, args...)
}

// Chain returns the compiled declaration, identity when nothing is
// declared. Compilation happens once per registry state.
func (t *Type) Chain() (*function.Chain, error) {
	return t.ChainContext(context.Background())
}

// ChainContext is Chain with a context for tracing.
func (t *Type) ChainContext(ctx context.Context) (*function.Chain, error) {
	if len(t.block) == 0 {
		return function.Identity(), nil
	}

	key := t.registry.Key()

	t.compiled.mu.Lock()
	defer t.compiled.mu.Unlock()

	if t.compiled.chain != nil && t.compiled.key == key {
		return t.compiled.chain, nil
	}

	chain, err := t.compiler.CompileContext(ctx, t.block, t.registry)
	if err != nil {
		return nil, fmt.Errorf("transformer %s: %w", t.name, err)
	}

	t.compiled.key, t.compiled.chain = key, chain
	t.logger.Debug("compiled transformer", "type", t.name, "units", chain.Len())

	return chain, nil
}

// New creates an instance holding state. The declaration is compiled here,
// so an unknown function name fails with *dsl.InvalidFunctionNameError.
func (t *Type) New(state any) (*Transformer, error) {
	return t.NewContext(context.Background(), state)
}

// NewContext is New with a context for tracing.
func (t *Type) NewContext(ctx context.Context, state any) (*Transformer, error) {
	x := &Transformer{typ: t, state: state}

	if len(t.methods) == 0 {
		chain, err := t.ChainContext(ctx)
		if err != nil {
			return nil, err
		}

		x.chain = chain

		return x, nil
	}

	chain, err := t.compiler.CompileContext(ctx, t.block, &instanceResolver{x: x})
	if err != nil {
		return nil, fmt.Errorf("transformer %s: %w", t.name, err)
	}

	x.chain = chain

	return x, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(state any) *Transformer {
	x, err := t.New(state)
	if err != nil {
		panic(err)
	}

	return x
}

// Call transforms value with a stateless instance.
func (t *Type) Call(value any) (any, error) {
	x, err := t.New(nil)
	if err != nil {
		return nil, err
	}

	return x.Call(value)
}

func (t *Type) String() string {
	if t.parent == nil {
		return fmt.Sprintf("%s[%s]", t.name, t.registry.Name())
	}

	return fmt.Sprintf("%s < %s", t.name, t.parent)
}
