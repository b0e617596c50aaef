package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/function"
	"shapeshift/library"
)

func TestCoercions(t *testing.T) {
	tests := []struct {
		name    string
		fn      function.Func
		in      any
		args    []any
		named   function.Named
		want    any
		wantErr bool
	}{
		{name: "toString int", fn: library.ToString, in: 12, want: "12"},
		{name: "toString symbol", fn: library.ToString, in: sym("a"), want: "a"},
		{name: "toString nil", fn: library.ToString, in: nil, want: ""},
		{name: "toSymbol", fn: library.ToSymbol, in: "a", want: sym("a")},
		{name: "toInteger text", fn: library.ToInteger, in: " 12 ", want: 12},
		{name: "toInteger float text", fn: library.ToInteger, in: "12.7", want: 12},
		{name: "toInteger int64", fn: library.ToInteger, in: int64(7), want: 7},
		{name: "toInteger float", fn: library.ToInteger, in: 3.9, want: 3},
		{name: "toInteger garbage", fn: library.ToInteger, in: "abc", wantErr: true},
		{name: "toInteger hash", fn: library.ToInteger, in: Hash{}, wantErr: true},
		{name: "toFloat text", fn: library.ToFloat, in: "1.5", want: 1.5},
		{name: "toFloat int", fn: library.ToFloat, in: 2, want: 2.0},
		{name: "toFloat garbage", fn: library.ToFloat, in: "x", wantErr: true},
		{name: "toBoolean word", fn: library.ToBoolean, in: "Yes", want: true},
		{name: "toBoolean off", fn: library.ToBoolean, in: "off", want: false},
		{name: "toBoolean number", fn: library.ToBoolean, in: 0, want: false},
		{name: "toBoolean bool", fn: library.ToBoolean, in: true, want: true},
		{name: "toBoolean garbage", fn: library.ToBoolean, in: "maybe", wantErr: true},
		{
			name: "toTime rfc3339",
			fn:   library.ToTime,
			in:   "2024-03-01T10:00:00Z",
			want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "toTime layout",
			fn:    library.ToTime,
			in:    "2024-03-01",
			named: function.Named{"layout": time.DateOnly},
			want:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "toTime unix",
			fn:   library.ToTime,
			in:   0,
			want: time.Unix(0, 0).UTC(),
		},
		{name: "toTime garbage", fn: library.ToTime, in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in, tt.args, tt.named)
			if tt.wantErr {
				require.ErrorIs(t, err, library.ErrCoercion)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
