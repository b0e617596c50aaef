package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/function"
	"shapeshift/library"
)

func TestConditionals(t *testing.T) {
	isString := resolve(t, "isString")
	toSymbol := resolve(t, "toSymbol")

	tests := []struct {
		name string
		fn   string
		in   any
		args []any
		want any
	}{
		{name: "isString", fn: "isString", in: "x", want: true},
		{name: "isString symbol", fn: "isString", in: sym("x"), want: false},
		{name: "isInteger", fn: "isInteger", in: int8(1), want: true},
		{name: "isHash", fn: "isHash", in: map[string]any{}, want: true},
		{name: "isArray", fn: "isArray", in: []any{}, want: true},
		{name: "isNil", fn: "isNil", in: nil, want: true},
		{name: "isKind text", fn: "isKind", in: sym("x"), args: []any{"text"}, want: true},
		{name: "not", fn: "not", in: 1, args: []any{isString}, want: true},
		{name: "guard match", fn: "guard", in: "a", args: []any{isString, toSymbol}, want: sym("a")},
		{name: "guard pass-through", fn: "guard", in: 1, args: []any{isString, toSymbol}, want: 1},
		{name: "is match", fn: "is", in: "a", args: []any{"string", toSymbol}, want: sym("a")},
		{name: "is pass-through", fn: "is", in: 1.5, args: []any{"string", toSymbol}, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(t, tt.fn, tt.args...).Call(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsKind_UnknownKind(t *testing.T) {
	_, err := library.IsKind(1, []any{"planet"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"planet"`)

	_, err = library.IsKind(1, nil, nil)
	require.ErrorIs(t, err, library.ErrMissingArg)
}

func TestRecursion(t *testing.T) {
	rejectSecret := function.New("rejectKeys", library.RejectKeys).With("secret")

	got, err := library.HashRecursion(Hash{
		"secret": 1,
		"child":  Hash{"secret": 2, "keep": Hash{"secret": 3, "x": 4}},
	}, []any{rejectSecret}, nil)
	require.NoError(t, err)
	assert.Equal(t, Hash{"child": Hash{"keep": Hash{"x": 4}}}, got)

	reverse := func(v any) any {
		a := v.([]any)
		out := make([]any, len(a))
		for i := range a {
			out[len(a)-1-i] = a[i]
		}

		return out
	}

	got, err = library.ArrayRecursion([]any{1, []any{2, 3}}, []any{reverse}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{3, 2}, 1}, got)
}
