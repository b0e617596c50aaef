package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/primitive"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(primitive.Symbol(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(map[string]any{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf([]any{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindSymbol
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindHash
	// KindArray
	// KindEnum(0)
}

func TestOf(t *testing.T) {
	assert.Equal(t, primitive.KindNil, primitive.Of(nil))
	assert.Equal(t, primitive.KindFloat64, primitive.Of(1.5))
	assert.Equal(t, primitive.KindHash, primitive.Of(map[any]any{}))
	assert.Equal(t, primitive.KindFunc, primitive.Of(func() {}))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		value any
		group string
		want  bool
	}{
		{12, "integer", true},
		{uint8(1), "integer", true},
		{1.5, "integer", false},
		{1.5, "number", true},
		{"x", "string", true},
		{primitive.Symbol("x"), "string", false},
		{primitive.Symbol("x"), "Symbol", true},
		{primitive.Symbol("x"), "text", true},
		{nil, "nil", true},
		{[]int{1}, "array", true},
		{map[string]int{}, "hash", true},
		{true, "bool", true},
		{time.Second, "duration", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%s", tt.value, tt.group), func(t *testing.T) {
			got, err := primitive.Matches(tt.value, tt.group)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := primitive.Matches(1, "widget")
	assert.ErrorContains(t, err, `unknown kind "widget"`)
}

func TestSymbol_String(t *testing.T) {
	assert.Equal(t, ":age", primitive.Symbol("age").String())
}

func TestKindTotal(t *testing.T) {
	assert.Equal(t, "KindNil", primitive.KindEnum(primitive.KindTotal-1).String())
}
