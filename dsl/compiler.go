package dsl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"shapeshift/function"
	"shapeshift/registry"
)

// Resolver turns a name and its arguments into a Function.
// *registry.Registry implements it.
type Resolver interface {
	ResolveNamed(name string, args []any, named function.Named) (*function.Function, error)
}

// KeyedResolver is a Resolver whose answers are fully determined by Key.
// Compilers only cache chains compiled against keyed resolvers.
type KeyedResolver interface {
	Resolver
	Key() string
}

// Compiler turns blocks into chains.
type Compiler struct {
	cache  *Cache
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCache enables caching of compiled chains.
func WithCache(cache *Cache) Option {
	return func(c *Compiler) {
		c.cache = cache
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithTracer sets the tracer used for compile spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Compiler) {
		c.tracer = tracer
	}
}

// NewCompiler creates a compiler. Without options it does not cache, logs
// nothing and traces through the global otel provider.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer("shapeshift/dsl"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewCompiler()

// Compile compiles block against resolver with a default, uncached compiler.
func Compile(block Block, resolver Resolver) (*function.Chain, error) {
	return defaultCompiler.Compile(block, resolver)
}

// Compile compiles block against resolver.
func (c *Compiler) Compile(block Block, resolver Resolver) (*function.Chain, error) {
	return c.CompileContext(context.Background(), block, resolver)
}

// CompileContext compiles block against resolver. Each instruction appends
// exactly one unit to the returned chain; an empty block yields identity.
func (c *Compiler) CompileContext(ctx context.Context, block Block, resolver Resolver) (*function.Chain, error) {
	_, span := c.tracer.Start(ctx, "dsl.Compile", trace.WithAttributes(
		attribute.Int("dsl.instructions", len(block)),
	))
	defer span.End()

	key, cacheable := c.key(block, resolver)
	if cacheable {
		if chain, ok := c.cache.Get(key); ok {
			c.logger.Debug("compile cache hit", "block", block)
			span.SetAttributes(attribute.Bool("dsl.cache_hit", true))

			return chain, nil
		}
	}

	chain, err := compileBlock(block, resolver, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	c.logger.Debug("compiled block", "block", block, "units", chain.Len(), "cached", cacheable)

	if cacheable {
		c.cache.Set(key, chain)
	}

	return chain, nil
}

func (c *Compiler) key(block Block, resolver Resolver) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	keyed, ok := resolver.(KeyedResolver)
	if !ok {
		return "", false
	}

	fingerprint, stable := block.fingerprint()
	if !stable {
		return "", false
	}

	return cacheKey(keyed.Key(), fingerprint), true
}

func compileBlock(block Block, resolver Resolver, scope []string) (*function.Chain, error) {
	units := make([]function.Unit, 0, len(block))

	for _, in := range block {
		unit, err := compileInstruction(in, resolver, scope)
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return function.NewChain(units...), nil
}

func compileInstruction(in Instruction, resolver Resolver, scope []string) (function.Unit, error) {
	switch in := in.(type) {
	case Call:
		return resolve(resolver, scope, in.Name, in.Args, in.Named)
	case Scope:
		body, err := compileBlock(in.Body, resolver, append(scope[:len(scope):len(scope)], in.Name))
		if err != nil {
			return nil, err
		}

		args := append(append(make([]any, 0, len(in.Args)+1), in.Args...), body)

		return resolve(resolver, scope, in.Name, args, in.Named)
	case Guard:
		predicate, err := resolve(resolver, scope, in.Predicate.Name, in.Predicate.Args, in.Predicate.Named)
		if err != nil {
			return nil, err
		}

		if in.Then == nil {
			return nil, fmt.Errorf("guard %s: %w", in.Predicate.Name, ErrEmptyInstruction)
		}

		then, err := compileInstruction(in.Then, resolver, scope)
		if err != nil {
			return nil, err
		}

		return function.NewGuard(predicate, then), nil
	case Block:
		return compileBlock(in, resolver, scope)
	default:
		return nil, fmt.Errorf("%T: %w", in, ErrEmptyInstruction)
	}
}

func resolve(resolver Resolver, scope []string, name string, args []any, named function.Named) (*function.Function, error) {
	args, err := resolveArgs(resolver, scope, args)
	if err != nil {
		return nil, err
	}

	if len(named) > 0 {
		named = maps.Clone(named)
		for k, v := range named {
			if named[k], err = resolveArg(resolver, scope, v); err != nil {
				return nil, err
			}
		}
	}

	fn, err := resolver.ResolveNamed(name, args, named)
	if err != nil {
		var invalid *InvalidFunctionNameError
		if errors.As(err, &invalid) || !errors.Is(err, registry.ErrUnregisteredFunction) {
			return nil, err
		}

		return nil, &InvalidFunctionNameError{Name: name, Scope: scope, Err: err}
	}

	if fn == nil {
		return nil, &InvalidFunctionNameError{Name: name, Scope: scope, Err: ErrNotAFunction}
	}

	return fn, nil
}

func resolveArgs(resolver Resolver, scope []string, args []any) ([]any, error) {
	if !slices.ContainsFunc(args, needsResolve) {
		return args, nil
	}

	out := make([]any, len(args))

	for i, arg := range args {
		resolved, err := resolveArg(resolver, scope, arg)
		if err != nil {
			return nil, err
		}

		out[i] = resolved
	}

	return out, nil
}

func resolveArg(resolver Resolver, scope []string, arg any) (any, error) {
	switch arg := arg.(type) {
	case Ref:
		return resolve(resolver, scope, arg.Name, arg.Args, arg.Named)
	case Block:
		return compileBlock(arg, resolver, scope)
	case []any:
		return resolveArgs(resolver, scope, arg)
	case map[string]any:
		return resolveMap(resolver, scope, arg)
	default:
		return arg, nil
	}
}

// resolveMap resolves Refs held as map values. The map is copied only when
// something in it needs resolving.
func resolveMap(resolver Resolver, scope []string, m map[string]any) (any, error) {
	if !needsResolve(m) {
		return m, nil
	}

	out := make(map[string]any, len(m))

	for k, v := range m {
		resolved, err := resolveArg(resolver, scope, v)
		if err != nil {
			return nil, err
		}

		out[k] = resolved
	}

	return out, nil
}

func needsResolve(arg any) bool {
	switch arg := arg.(type) {
	case Ref, Block:
		return true
	case []any:
		return slices.ContainsFunc(arg, needsResolve)
	case map[string]any:
		for _, v := range arg {
			if needsResolve(v) {
				return true
			}
		}

		return false
	default:
		return false
	}
}
