package registry

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"shapeshift/function"
	"shapeshift/internal/match"
)

// Registry is a mutable name -> function namespace.
type Registry struct {
	mu     sync.RWMutex
	name   string
	id     uuid.UUID
	gen    uint64
	fns    map[string]*function.Function
	logger *slog.Logger
}

// Entry is a single (name, function) binding in a Registry snapshot.
type Entry struct {
	Name string
	Func function.Func
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output on writes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry. The name is used in errors and logs only.
func New(name string, opts ...Option) *Registry {
	r := &Registry{
		name:   name,
		id:     uuid.New(),
		fns:    make(map[string]*function.Function),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Name returns the registry's display name.
func (r *Registry) Name() string {
	return r.name
}

// Key identifies the registry together with its current contents. It
// changes on every write, so anything compiled against one key stays valid
// for as long as the key does.
func (r *Registry) Key() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fmt.Sprintf("%s@%d", r.id, r.gen)
}

// Register binds name to fn, replacing any existing binding.
func (r *Registry) Register(name string, fn function.Func) error {
	if name == "" {
		return ErrEmptyName
	}

	if fn == nil {
		return fmt.Errorf("%q: %w", name, ErrNilFunc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bind(name, function.New(name, fn))

	return nil
}

// RegisterFunc adapts an arbitrary Go function with function.Adapt and
// registers it. Functions resolved from the binding compare equal only to
// ones adapted from the same Go function.
func (r *Registry) RegisterFunc(name string, fn any) error {
	if name == "" {
		return ErrEmptyName
	}

	f, err := function.Adapt(name, fn)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bind(name, f)

	return nil
}

// MustRegister is like Register but panics on error. Use it for init-time registration.
func (r *Registry) MustRegister(name string, fn function.Func) *Registry {
	if err := r.Register(name, fn); err != nil {
		panic(fmt.Sprintf("registry %s: %v", r.name, err))
	}

	return r
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func (r *Registry) MustRegisterFunc(name string, fn any) *Registry {
	if err := r.RegisterFunc(name, fn); err != nil {
		panic(fmt.Sprintf("registry %s: %v", r.name, err))
	}

	return r
}

// Fetch returns the function bound to name.
func (r *Registry) Fetch(name string) (function.Func, error) {
	proto, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return proto.Underlying(), nil
}

// Resolve returns a Function for name curried with args.
func (r *Registry) Resolve(name string, args ...any) (*function.Function, error) {
	return r.ResolveNamed(name, args, nil)
}

// ResolveNamed returns a Function for name curried with args and named args.
func (r *Registry) ResolveNamed(name string, args []any, named function.Named) (*function.Function, error) {
	proto, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return proto.WithNamed(args, named), nil
}

func (r *Registry) lookup(name string) (*function.Function, error) {
	r.mu.RLock()
	proto, ok := r.fns[name]
	r.mu.RUnlock()

	if !ok {
		return nil, r.unregistered(name)
	}

	return proto, nil
}

// Contains reports whether name is bound.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.fns[name]

	return ok
}

// Names returns all bound names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.fns))
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fns)
}

// Entries returns a snapshot of all bindings sorted by name.
func (r *Registry) Entries() []Entry {
	snap := r.snapshot()

	entries := make([]Entry, 0, len(snap))
	for _, name := range slices.Sorted(maps.Keys(snap)) {
		entries = append(entries, Entry{Name: name, Func: snap[name].Underlying()})
	}

	return entries
}

// Import copies every binding of others into r, in order, overriding
// same-named bindings. There is no live link to the sources.
func (r *Registry) Import(others ...*Registry) *Registry {
	for _, other := range others {
		if other == nil {
			continue
		}

		snap := other.snapshot()

		r.mu.Lock()
		for name, proto := range snap {
			r.bind(name, proto)
		}
		r.mu.Unlock()

		r.logger.Debug("registry import", "registry", r.name, "from", other.name, "count", len(snap))
	}

	return r
}

// ImportOnly copies the named bindings of other into r. If any name is
// missing from other nothing is imported.
func (r *Registry) ImportOnly(other *Registry, names ...string) error {
	if other == nil {
		return ErrNilRegistry
	}

	picked := make(map[string]*function.Function, len(names))
	for _, name := range names {
		proto, err := other.lookup(name)
		if err != nil {
			return err
		}

		picked[name] = proto
	}

	r.mu.Lock()
	for name, proto := range picked {
		r.bind(name, proto)
	}
	r.mu.Unlock()

	r.logger.Debug("registry import", "registry", r.name, "from", other.name, "names", names)

	return nil
}

// ImportAs copies other's binding for name into r under alias.
func (r *Registry) ImportAs(other *Registry, name, alias string) error {
	if other == nil {
		return ErrNilRegistry
	}

	if alias == "" {
		return ErrEmptyName
	}

	proto, err := other.lookup(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.bind(alias, proto.Rename(alias))
	r.mu.Unlock()

	r.logger.Debug("registry import", "registry", r.name, "from", other.name, "name", name, "alias", alias)

	return nil
}

func (r *Registry) snapshot() map[string]*function.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.fns)
}

// bind must be called with the write lock held.
func (r *Registry) bind(name string, proto *function.Function) {
	r.fns[name] = proto
	r.gen++
}

func (r *Registry) unregistered(name string) error {
	return &UnregisteredFunctionError{
		Name:        name,
		Registry:    r.name,
		Suggestions: match.Suggest(name, r.Names()),
	}
}
