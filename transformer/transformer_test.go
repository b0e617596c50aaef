package transformer_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/dsl"
	"shapeshift/function"
	"shapeshift/library"
	"shapeshift/registry"
	"shapeshift/transformer"
)

type Hash = library.Hash

func sym(s string) library.Symbol { return library.Symbol(s) }

// arbitrary applies its function argument to the value.
func arbitrary(value any, args []any, _ function.Named) (any, error) {
	fn, err := library.AsUnit(args[0])
	if err != nil {
		return nil, err
	}

	return fn.Call(value)
}

func arithmetic() *registry.Registry {
	return registry.New("arithmetic").MustRegister("arbitrary", arbitrary)
}

func Example() {
	users := transformer.Bind(library.All(), transformer.WithName("users")).Declare(func(b *dsl.Builder) {
		b.Scope("mapArray", func(b *dsl.Builder) {
			b.Call("symbolizeKeys")
			b.CallNamed("renameKeys", nil, function.Named{"user_name": "name"})
			b.Scope("mapValue", func(b *dsl.Builder) { b.Call("toInteger") }, "age")
		})
	})

	out, err := users.Call([]any{map[string]any{"user_name": "ann", "age": "31"}})
	if err != nil {
		panic(err)
	}

	fmt.Println(library.Plain(out))
	// Output: [map[age:31 name:ann]]
}

func TestType_Scenarios(t *testing.T) {
	t.Run("map every element through a named function", func(t *testing.T) {
		typ := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) {
			b.Call("mapArray", dsl.Fn("symbolizeKeys"))
		})

		out, err := typ.MustNew(nil).Call([]any{map[string]any{"age": "12"}})
		require.NoError(t, err)
		assert.Equal(t, []any{Hash{sym("age"): "12"}}, out)
	})

	t.Run("nested scope coerces a field of every element", func(t *testing.T) {
		typ := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) {
			b.Scope("mapArray", func(b *dsl.Builder) {
				b.Call("symbolizeKeys")
				b.Scope("mapValue", func(b *dsl.Builder) { b.Call("toInteger") }, "age")
			})
		})

		out, err := typ.MustNew(nil).Call([]any{map[string]any{"age": "12"}})
		require.NoError(t, err)
		assert.Equal(t, []any{Hash{sym("age"): 12}}, out)
	})

	t.Run("unknown name fails at construction", func(t *testing.T) {
		typ := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) {
			b.Call("doesNotExist")
		})

		_, err := typ.New(nil)
		require.Error(t, err)

		var invalid *dsl.InvalidFunctionNameError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "doesNotExist", invalid.Name)
		assert.Contains(t, err.Error(), "doesNotExist")
		assert.Panics(t, func() { typ.MustNew(nil) })
	})

	t.Run("subtype inherits and overrides without touching parent", func(t *testing.T) {
		parent := transformer.Bind(arithmetic()).Declare(func(b *dsl.Builder) {
			b.Call("arbitrary", func(v any) any { return v.(int) + 1 })
		})

		inheriting := parent.Subclass()
		overriding := parent.Subclass().Declare(func(b *dsl.Builder) {
			b.Call("arbitrary", func(v any) any { return v.(int) * 2 })
		})

		parentChain, err := parent.Chain()
		require.NoError(t, err)
		inheritedChain, err := inheriting.Chain()
		require.NoError(t, err)
		assert.Same(t, parentChain, inheritedChain, spew.Sdump(inheritedChain.AST()))

		got, err := parent.Call(2)
		require.NoError(t, err)
		assert.Equal(t, 3, got)

		got, err = inheriting.Call(2)
		require.NoError(t, err)
		assert.Equal(t, 3, got)

		got, err = overriding.Call(2)
		require.NoError(t, err)
		assert.Equal(t, 4, got)

		got, err = parent.Call(2)
		require.NoError(t, err)
		assert.Equal(t, 3, got, "parent chain must be unchanged")
	})
}

func TestType_Identity(t *testing.T) {
	typ := transformer.Bind(library.All())

	chain, err := typ.Chain()
	require.NoError(t, err)
	assert.True(t, chain.IsIdentity())

	out, err := typ.Call(Hash{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, Hash{"a": 1}, out)
}

func TestType_Bind(t *testing.T) {
	reg := library.All()
	typ := transformer.Bind(reg).Declare(func(b *dsl.Builder) {
		b.Call("mapValue", "attr", dsl.Fn("toSymbol"))
	})

	t.Run("same registry keeps the declaration", func(t *testing.T) {
		rebound := typ.Bind(reg)
		assert.Same(t, reg, rebound.Registry())

		want, err := typ.Chain()
		require.NoError(t, err)
		got, err := rebound.Chain()
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("other registry discards the declaration", func(t *testing.T) {
		other := registry.New("other")
		rebound := typ.Bind(other)

		assert.Same(t, other, rebound.Registry())
		assert.Nil(t, rebound.Block())

		chain, err := rebound.Chain()
		require.NoError(t, err)
		assert.True(t, chain.IsIdentity())
	})

	t.Run("rebinding leaves the original alone", func(t *testing.T) {
		_ = typ.Bind(registry.New("other"))

		assert.Same(t, reg, typ.Registry())
		assert.NotNil(t, typ.Block())
	})
}

func TestType_DeclareDoesNotAffectOriginal(t *testing.T) {
	base := transformer.Bind(library.All())
	_ = base.Declare(func(b *dsl.Builder) { b.Call("symbolizeKeys") })

	assert.Nil(t, base.Block())

	chain, err := base.Chain()
	require.NoError(t, err)
	assert.True(t, chain.IsIdentity())
}

func TestType_Import(t *testing.T) {
	typ := transformer.Bind(registry.New("empty")).
		Import(library.Arrays, library.Coercions).
		Declare(func(b *dsl.Builder) {
			b.Call("mapArray", dsl.Fn("toSymbol"))
		})

	out, err := typ.Call([]any{"foo", "bar"})
	require.NoError(t, err)
	assert.Equal(t, []any{sym("foo"), sym("bar")}, out)

	assert.False(t, library.Arrays.Contains("toSymbol"), "import must not write into the sources")
}

func TestType_T(t *testing.T) {
	typ := transformer.Bind(library.All())

	toSymbol, err := typ.T("toSymbol")
	require.NoError(t, err)

	declared := typ.Declare(func(b *dsl.Builder) {
		b.Call("mapValue", "attr", toSymbol)
	})

	out, err := declared.Call(Hash{"attr": "abc"})
	require.NoError(t, err)
	assert.Equal(t, Hash{"attr": sym("abc")}, out)

	_, err = typ.T("nope")
	require.ErrorIs(t, err, registry.ErrUnregisteredFunction)
}

func TestType_Methods(t *testing.T) {
	capitalize := func(_ *transformer.Transformer, value any, _ []any, _ function.Named) (any, error) {
		return strings.ToUpper(value.(string)), nil
	}

	typ := transformer.Bind(library.Arrays).
		Subclass(transformer.WithMethod("capitalize", capitalize)).
		Declare(func(b *dsl.Builder) {
			b.Call("mapArray", dsl.Fn("capitalize"))
		})

	t.Run("methods are reachable by name", func(t *testing.T) {
		out, err := typ.MustNew(nil).Call([]any{"foo", "bar"})
		require.NoError(t, err)
		assert.Equal(t, []any{"FOO", "BAR"}, out)
	})

	t.Run("methods see instance state", func(t *testing.T) {
		greet := transformer.Bind(registry.New("none")).
			Subclass(transformer.WithMethod("greet", func(x *transformer.Transformer, value any, _ []any, _ function.Named) (any, error) {
				return fmt.Sprintf("%s, %v", x.State(), value), nil
			})).
			Declare(func(b *dsl.Builder) { b.Call("greet") })

		hello, err := greet.MustNew("hello").Call("ann")
		require.NoError(t, err)
		assert.Equal(t, "hello, ann", hello)

		hi, err := greet.MustNew("hi").Call("bob")
		require.NoError(t, err)
		assert.Equal(t, "hi, bob", hi)
	})

	t.Run("methods are inherited", func(t *testing.T) {
		child := typ.Subclass(transformer.WithName("child"))
		assert.Equal(t, []string{"capitalize"}, child.Methods())

		out, err := child.Call([]any{"x"})
		require.NoError(t, err)
		assert.Equal(t, []any{"X"}, out)
	})

	t.Run("registry wins over methods", func(t *testing.T) {
		shadow := transformer.Bind(library.Coercions).
			Subclass(transformer.WithMethod("toString", func(*transformer.Transformer, any, []any, function.Named) (any, error) {
				return "method", nil
			})).
			Declare(func(b *dsl.Builder) { b.Call("toString") })

		out, err := shadow.Call(12)
		require.NoError(t, err)
		assert.Equal(t, "12", out)
	})

	t.Run("unknown names suggest methods", func(t *testing.T) {
		_, err := typ.Declare(func(b *dsl.Builder) { b.Call("capitalise") }).New(nil)
		require.ErrorIs(t, err, dsl.ErrInvalidFunctionName)
		assert.Contains(t, err.Error(), "did you mean capitalize")
	})
}

func TestTransformer_Unit(t *testing.T) {
	typ := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) { b.Call("symbolizeKeys") })

	a := typ.MustNew(nil)
	b := typ.Subclass().MustNew(nil)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(function.Identity()))

	toString, err := library.All().Resolve("stringifyKeys")
	require.NoError(t, err)

	out, err := a.Compose(toString).Call(map[string]any{"k": 1})
	require.NoError(t, err)
	assert.Equal(t, Hash{"k": 1}, out)
	assert.Equal(t, a.Chain().AST(), a.AST())
	assert.Same(t, typ, a.Type())
}

func TestType_RecompilesAfterRegistryWrite(t *testing.T) {
	reg := registry.New("mutable").MustRegisterFunc("f", strings.ToUpper)
	typ := transformer.Bind(reg).Declare(func(b *dsl.Builder) { b.Call("f") })

	out, err := typ.Call("a")
	require.NoError(t, err)
	assert.Equal(t, "A", out)

	x := typ.MustNew(nil)

	reg.MustRegisterFunc("f", func(s string) string { return s + s })

	out, err = typ.Call("a")
	require.NoError(t, err)
	assert.Equal(t, "aa", out)

	out, err = x.Call("a")
	require.NoError(t, err)
	assert.Equal(t, "A", out, "already compiled chains are not affected")
}

func TestType_SharedCompilerKeepsTypesApart(t *testing.T) {
	reg := library.All().Import(registry.New("keys").MustRegister("hit", func(_ any, args []any, _ function.Named) (any, error) {
		return Hash{args[0]: "hit"}, nil
	}))

	ints := transformer.Bind(reg).Declare(func(b *dsl.Builder) { b.Call("hit", 1) })
	floats := transformer.Bind(reg).Declare(func(b *dsl.Builder) { b.Call("hit", 1.0) })

	out, err := ints.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, Hash{1: "hit"}, out)

	out, err = floats.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, Hash{1.0: "hit"}, out)
}

func TestType_ConcurrentChain(t *testing.T) {
	typ := transformer.Bind(library.All()).Declare(func(b *dsl.Builder) { b.Call("symbolizeKeys") })

	var (
		wg     sync.WaitGroup
		chains = make([]*function.Chain, 16)
	)

	for i := range chains {
		wg.Add(1)

		go func() {
			defer wg.Done()

			chains[i], _ = typ.Chain()
		}()
	}

	wg.Wait()

	for _, c := range chains {
		assert.Same(t, chains[0], c)
	}
}
