package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/function"
	"shapeshift/library"
)

func TestHashFunctions(t *testing.T) {
	upcase := func(v any) any { return v.(string) + "!" }

	tests := []struct {
		name  string
		fn    function.Func
		in    any
		args  []any
		named function.Named
		want  any
	}{
		{
			name: "symbolizeKeys",
			fn:   library.SymbolizeKeys,
			in:   map[string]any{"a": 1, "b": map[string]any{"c": 2}},
			want: Hash{sym("a"): 1, sym("b"): map[string]any{"c": 2}},
		},
		{
			name: "deepSymbolizeKeys",
			fn:   library.DeepSymbolizeKeys,
			in:   map[string]any{"a": []any{map[string]any{"b": 1}}, "c": map[string]any{"d": 2}},
			want: Hash{sym("a"): []any{Hash{sym("b"): 1}}, sym("c"): Hash{sym("d"): 2}},
		},
		{
			name: "stringifyKeys",
			fn:   library.StringifyKeys,
			in:   Hash{sym("a"): 1, 2: "b"},
			want: Hash{"a": 1, "2": "b"},
		},
		{
			name: "mapKeys",
			fn:   library.MapKeys,
			in:   Hash{"a": 1},
			args: []any{upcase},
			want: Hash{"a!": 1},
		},
		{
			name: "mapValues",
			fn:   library.MapValues,
			in:   Hash{"a": "x", "b": "y"},
			args: []any{upcase},
			want: Hash{"a": "x!", "b": "y!"},
		},
		{
			name: "mapValue present",
			fn:   library.MapValue,
			in:   Hash{sym("name"): "x", "other": "y"},
			args: []any{"name", upcase},
			want: Hash{sym("name"): "x!", "other": "y"},
		},
		{
			name: "mapValue missing key",
			fn:   library.MapValue,
			in:   Hash{"other": "y"},
			args: []any{"name", upcase},
			want: Hash{"other": "y"},
		},
		{
			name:  "renameKeys named",
			fn:    library.RenameKeys,
			in:    Hash{sym("user_name"): "ann", sym("id"): 1},
			named: function.Named{"user_name": "name"},
			want:  Hash{sym("name"): "ann", sym("id"): 1},
		},
		{
			name: "renameKeys swap",
			fn:   library.RenameKeys,
			in:   Hash{"a": 1, "b": 2},
			args: []any{Hash{"a": "b", "b": "a"}},
			want: Hash{"a": 2, "b": 1},
		},
		{
			name: "copyKeys",
			fn:   library.CopyKeys,
			in:   Hash{"a": 1},
			args: []any{Hash{"a": []any{"b", "c"}}},
			want: Hash{"a": 1, "b": 1, "c": 1},
		},
		{
			name: "acceptKeys",
			fn:   library.AcceptKeys,
			in:   Hash{sym("a"): 1, sym("b"): 2, sym("c"): 3},
			args: []any{[]any{"a", "c"}},
			want: Hash{sym("a"): 1, sym("c"): 3},
		},
		{
			name: "rejectKeys",
			fn:   library.RejectKeys,
			in:   Hash{"a": 1, "b": 2},
			args: []any{"a"},
			want: Hash{"b": 2},
		},
		{
			name: "nest",
			fn:   library.Nest,
			in:   Hash{sym("name"): "a", sym("street"): "b", sym("city"): "c"},
			args: []any{"address", []any{"street", "city"}},
			want: Hash{sym("name"): "a", sym("address"): Hash{sym("street"): "b", sym("city"): "c"}},
		},
		{
			name: "nest with no matching keys",
			fn:   library.Nest,
			in:   Hash{"name": "a"},
			args: []any{"address", "street"},
			want: Hash{"name": "a", "address": Hash{}},
		},
		{
			name: "unwrap all",
			fn:   library.Unwrap,
			in:   Hash{"name": "a", "address": Hash{"street": "b"}},
			args: []any{"address"},
			want: Hash{"name": "a", "street": "b"},
		},
		{
			name: "unwrap some",
			fn:   library.Unwrap,
			in:   Hash{"address": Hash{"street": "b", "city": "c"}},
			args: []any{"address", "city"},
			want: Hash{"city": "c", "address": Hash{"street": "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in, tt.args, tt.named)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashFunctions_NotAHash(t *testing.T) {
	for _, name := range library.Hashes.Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := library.Hashes.Fetch(name)
			require.NoError(t, err)

			_, err = fn("text", []any{"k"}, nil)
			require.ErrorIs(t, err, library.ErrNotAHash)
		})
	}
}

func TestHashFunctions_DoNotMutateInput(t *testing.T) {
	in := Hash{"a": 1, "b": 2}

	_, err := library.RejectKeys(in, []any{"a"}, nil)
	require.NoError(t, err)

	_, err = library.Nest(in, []any{"n", "b"}, nil)
	require.NoError(t, err)

	assert.Equal(t, Hash{"a": 1, "b": 2}, in)
}

func TestMapValue_ErrorPropagates(t *testing.T) {
	_, err := library.MapValue(Hash{"age": "x"}, []any{"age", function.Func(library.ToInteger)}, nil)
	require.ErrorIs(t, err, library.ErrCoercion)
}
