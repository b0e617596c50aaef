package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/function"
	"shapeshift/library"
)

func TestArrayFunctions(t *testing.T) {
	double := func(v any) any { return v.(int) * 2 }

	tests := []struct {
		name string
		fn   function.Func
		in   any
		args []any
		want any
	}{
		{
			name: "mapArray composes every arg",
			fn:   library.MapArray,
			in:   []any{1, 2},
			args: []any{double, double},
			want: []any{4, 8},
		},
		{
			name: "mapArray typed slice",
			fn:   library.MapArray,
			in:   []int{1},
			args: []any{double},
			want: []any{2},
		},
		{
			name: "mapArray without functions is identity",
			fn:   library.MapArray,
			in:   []any{1},
			want: []any{1},
		},
		{
			name: "wrap",
			fn:   library.Wrap,
			in:   []any{Hash{"id": 1, "city": "x"}},
			args: []any{"address", "city"},
			want: []any{Hash{"id": 1, "address": Hash{"city": "x"}}},
		},
		{
			name: "group",
			fn:   library.Group,
			in: []any{
				Hash{"name": "a", "tag": 1},
				Hash{"name": "b", "tag": nil},
				Hash{"name": "a", "tag": 2},
			},
			args: []any{"tags", []any{"tag"}},
			want: []any{
				Hash{"name": "a", "tags": []any{Hash{"tag": 1}, Hash{"tag": 2}}},
				Hash{"name": "b", "tags": []any{}},
			},
		},
		{
			name: "ungroup",
			fn:   library.Ungroup,
			in: []any{
				Hash{"name": "a", "tags": []any{Hash{"tag": 1}, Hash{"tag": 2}}},
				Hash{"name": "b", "tags": []any{}},
			},
			args: []any{"tags"},
			want: []any{
				Hash{"name": "a", "tag": 1},
				Hash{"name": "a", "tag": 2},
				Hash{"name": "b"},
			},
		},
		{
			name: "extractKey",
			fn:   library.ExtractKey,
			in:   []any{Hash{library.Symbol("id"): 1}, Hash{"id": 2}, Hash{}},
			args: []any{"id"},
			want: []any{1, 2, nil},
		},
		{
			name: "insertKey",
			fn:   library.InsertKey,
			in:   []any{1, 2},
			args: []any{"id"},
			want: []any{Hash{"id": 1}, Hash{"id": 2}},
		},
		{
			name: "addKeys",
			fn:   library.AddKeys,
			in:   []any{Hash{"a": 1}},
			args: []any{"a", "b"},
			want: []any{Hash{"a": 1, "b": nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in, tt.args, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapArray_Errors(t *testing.T) {
	_, err := library.MapArray(map[string]any{}, nil, nil)
	require.ErrorIs(t, err, library.ErrNotAnArray)

	_, err = library.MapArray([]any{1}, []any{"nope"}, nil)
	require.ErrorIs(t, err, library.ErrNotAFunction)

	_, err = library.MapArray([]any{"1", "x"}, []any{function.Func(library.ToInteger)}, nil)
	require.ErrorIs(t, err, library.ErrCoercion)
	assert.Contains(t, err.Error(), "element 1")
}

func TestGroupUngroup_RoundTrip(t *testing.T) {
	rows := []any{
		Hash{"name": "a", "tag": 1},
		Hash{"name": "a", "tag": 2},
	}

	grouped, err := library.Group(rows, []any{"tags", "tag"}, nil)
	require.NoError(t, err)

	back, err := library.Ungroup(grouped, []any{"tags"}, nil)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}
