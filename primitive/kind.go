package primitive

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// Symbol is an interned-name key, distinct from an ordinary string so that
// symbolized hash keys can be told apart from textual ones.
type Symbol string

func (s Symbol) String() string {
	return ":" + string(s)
}

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindSymbol
	KindTime
	KindDuration
	KindPrimitiveEnum // alias to any integer number, boolean or string
	KindHash
	KindArray
	KindFunc
	KindNil

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsText() bool {
	return k == KindString || k == KindSymbol
}

// FromReflectType classifies a reflect type. It returns 0 for types with no
// matching kind, such as structs.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return KindNil
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(false):
		return KindBool
	case reflect.TypeOf(""):
		return KindString
	case reflect.TypeOf(Symbol("")):
		return KindSymbol
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.String:
		return KindPrimitiveEnum
	case reflect.Map:
		return KindHash
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Func:
		return KindFunc
	}
}

// Of classifies a runtime value.
func Of(v any) KindEnum {
	if v == nil {
		return KindNil
	}

	return FromReflectType(reflect.TypeOf(v))
}

// kindGroups maps the names accepted by Matches to kind tests.
var kindGroups = map[string]func(KindEnum) bool{
	"nil":      func(k KindEnum) bool { return k == KindNil },
	"bool":     func(k KindEnum) bool { return k == KindBool },
	"string":   func(k KindEnum) bool { return k == KindString },
	"symbol":   func(k KindEnum) bool { return k == KindSymbol },
	"text":     KindEnum.IsText,
	"integer":  KindEnum.IsInteger,
	"float":    KindEnum.IsFloat,
	"number":   KindEnum.IsNumber,
	"time":     func(k KindEnum) bool { return k == KindTime },
	"duration": func(k KindEnum) bool { return k == KindDuration },
	"enum":     func(k KindEnum) bool { return k == KindPrimitiveEnum },
	"hash":     func(k KindEnum) bool { return k == KindHash },
	"array":    func(k KindEnum) bool { return k == KindArray },
	"func":     func(k KindEnum) bool { return k == KindFunc },
}

// Matches reports whether v belongs to the named kind group, e.g. "integer"
// or "hash". Unknown group names are an error.
func Matches(v any, group string) (bool, error) {
	test, ok := kindGroups[strings.ToLower(group)]
	if !ok {
		return false, fmt.Errorf("unknown kind %q", group)
	}

	return test(Of(v)), nil
}
