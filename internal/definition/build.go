package definition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"shapeshift/internal/match"
	"shapeshift/registry"
	"shapeshift/transformer"
)

var ErrUnknownTransformer = errors.New("unknown transformer")

// Pipelines holds the transformer types built from a definition file.
type Pipelines struct {
	Registry *registry.Registry
	Types    map[string]*transformer.Type
	// Order lists type names parents first.
	Order []string
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	logger *slog.Logger
	ctx    context.Context
}

// WithLogger sets the logger passed to every built type.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// WithContext sets the context used for eager compilation.
func WithContext(ctx context.Context) BuildOption {
	return func(c *buildConfig) {
		c.ctx = ctx
	}
}

// Build validates f and builds one transformer type per declared
// transformer. Every chain is compiled before Build returns.
func Build(f *File, base *registry.Registry, opts ...BuildOption) (*Pipelines, error) {
	cfg := buildConfig{
		logger: slog.New(slog.DiscardHandler),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	diags := Validate(f, base)
	if err := diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	p := &Pipelines{
		Registry: Registry(f, base),
		Types:    make(map[string]*transformer.Type, len(f.Transformers)),
		Order:    parentOrder(f),
	}

	for _, name := range p.Order {
		def, _ := f.Transformer(name)

		var t *transformer.Type
		if def.Parent == "" {
			t = transformer.Bind(p.Registry, transformer.WithName(name), transformer.WithLogger(cfg.logger)).
				DeclareBlock(def.Block())
		} else {
			t = p.Types[def.Parent].Subclass(transformer.WithName(name))
			if len(def.Steps) > 0 {
				t = t.DeclareBlock(def.Block())
			}
		}

		if _, err := t.ChainContext(cfg.ctx); err != nil {
			return nil, fmt.Errorf("failed to compile transformer %q: %w", name, err)
		}

		p.Types[name] = t
		cfg.logger.Debug("built transformer", "name", name, "parent", def.Parent, "steps", len(def.Steps))
	}

	return p, nil
}

// Get returns the type with the given name.
func (p *Pipelines) Get(name string) (*transformer.Type, error) {
	if t, ok := p.Types[name]; ok {
		return t, nil
	}

	if s := match.Suggest(name, p.Order); len(s) > 0 {
		return nil, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownTransformer, name, strings.Join(s, ", "))
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownTransformer, name)
}

// parentOrder returns transformer names so that every parent precedes
// its children, keeping file order otherwise. f must be acyclic.
func parentOrder(f *File) []string {
	order := make([]string, 0, len(f.Transformers))

	var visit func(name string)
	visit = func(name string) {
		if slices.Contains(order, name) {
			return
		}

		t, _ := f.Transformer(name)
		if t.Parent != "" {
			visit(t.Parent)
		}

		order = append(order, name)
	}

	for _, t := range f.Transformers {
		visit(t.Name)
	}

	return order
}
