package library

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"shapeshift/function"
	"shapeshift/primitive"
	"shapeshift/registry"
)

// Coercions holds scalar conversions.
var Coercions = registry.New("coercions").
	MustRegister("toString", ToString).
	MustRegister("toSymbol", ToSymbol).
	MustRegister("toInteger", ToInteger).
	MustRegister("toFloat", ToFloat).
	MustRegister("toBoolean", ToBoolean).
	MustRegister("toTime", ToTime)

var ErrCoercion = errors.New("cannot coerce value")

var (
	truthyWords = []string{"1", "on", "t", "true", "y", "yes"}
	falsyWords  = []string{"0", "off", "f", "false", "n", "no"}
)

// ToString renders scalars as text. Symbols lose their prefix.
func ToString(value any, _ []any, _ function.Named) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case Symbol:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

// ToSymbol turns text into a Symbol.
func ToSymbol(value any, args []any, named function.Named) (any, error) {
	s, err := ToString(value, args, named)
	if err != nil {
		return nil, err
	}

	return Symbol(s.(string)), nil
}

// ToInteger converts numbers and numeric text to int. Floats are truncated.
func ToInteger(value any, _ []any, _ function.Named) (any, error) {
	k := primitive.Of(value)

	switch {
	case k.IsInteger():
		return int(reflect.ValueOf(value).Convert(reflect.TypeOf(0)).Int()), nil
	case k.IsFloat():
		f := reflect.ValueOf(value).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w %v to integer", ErrCoercion, value)
		}

		return int(f), nil
	case k.IsText():
		text := strings.TrimSpace(reflect.ValueOf(value).String())

		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}

		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return nil, fmt.Errorf("%w %q to integer: %w", ErrCoercion, text, err)
		}

		return int(f), nil
	default:
		return nil, fmt.Errorf("%w %T to integer", ErrCoercion, value)
	}
}

// ToFloat converts numbers and numeric text to float64.
func ToFloat(value any, _ []any, _ function.Named) (any, error) {
	k := primitive.Of(value)

	switch {
	case k.IsNumber():
		return reflect.ValueOf(value).Convert(reflect.TypeOf(0.0)).Float(), nil
	case k.IsText():
		text := strings.TrimSpace(reflect.ValueOf(value).String())

		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q to float: %w", ErrCoercion, text, err)
		}

		return f, nil
	default:
		return nil, fmt.Errorf("%w %T to float", ErrCoercion, value)
	}
}

// ToBoolean converts booleans, numbers and the usual yes/no words.
func ToBoolean(value any, _ []any, _ function.Named) (any, error) {
	k := primitive.Of(value)

	switch {
	case k == primitive.KindBool:
		return value, nil
	case k.IsNumber():
		return reflect.ValueOf(value).Convert(reflect.TypeOf(0.0)).Float() != 0, nil
	case k.IsText():
		word := strings.ToLower(strings.TrimSpace(reflect.ValueOf(value).String()))

		switch {
		case slices.Contains(truthyWords, word):
			return true, nil
		case slices.Contains(falsyWords, word):
			return false, nil
		}

		return nil, fmt.Errorf("%w %q to boolean", ErrCoercion, word)
	default:
		return nil, fmt.Errorf("%w %T to boolean", ErrCoercion, value)
	}
}

// ToTime parses text into a time.Time. The layout defaults to RFC 3339 and
// can be given as the first argument or as the "layout" named argument.
// Integers are read as Unix seconds.
func ToTime(value any, args []any, named function.Named) (any, error) {
	layout := time.RFC3339
	if l, ok := named["layout"].(string); ok {
		layout = l
	} else if len(args) > 0 {
		if l, ok := args[0].(string); ok {
			layout = l
		}
	}

	k := primitive.Of(value)

	switch {
	case k == primitive.KindTime:
		return value, nil
	case k.IsInteger():
		return time.Unix(reflect.ValueOf(value).Convert(reflect.TypeOf(int64(0))).Int(), 0).UTC(), nil
	case k.IsText():
		text := strings.TrimSpace(reflect.ValueOf(value).String())

		t, err := time.Parse(layout, text)
		if err != nil {
			return nil, fmt.Errorf("%w %q to time: %w", ErrCoercion, text, err)
		}

		return t, nil
	default:
		return nil, fmt.Errorf("%w %T to time", ErrCoercion, value)
	}
}
