package dsl

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"shapeshift/function"
)

// writer renders instructions into their canonical text. stable is cleared
// when an argument has no value-based rendering (functions, pointers,
// channels), in which case the text must not be used as a cache key.
type writer struct {
	strings.Builder
	stable bool
}

// String renders the block in canonical form, e.g.
//
//	mapArray { mapValue(:age) { toInteger() } }; guard isString() { toSymbol() }
func (b Block) String() string {
	text, _ := b.fingerprint()

	return text
}

func (b Block) fingerprint() (string, bool) {
	w := &writer{stable: true}
	b.write(w)

	return w.String(), w.stable
}

func (b Block) write(w *writer) {
	for i, in := range b {
		if i > 0 {
			w.WriteString("; ")
		}

		if in == nil {
			w.WriteString("<nil>")
			continue
		}

		in.write(w)
	}
}

func (c Call) write(w *writer) {
	w.call(c.Name, c.Args, c.Named)
}

func (s Scope) write(w *writer) {
	if len(s.Args) > 0 || len(s.Named) > 0 {
		w.call(s.Name, s.Args, s.Named)
	} else {
		w.WriteString(s.Name)
	}

	w.WriteString(" { ")
	s.Body.write(w)
	w.WriteString(" }")
}

func (g Guard) write(w *writer) {
	w.WriteString("guard ")
	g.Predicate.write(w)
	w.WriteString(" { ")

	if g.Then != nil {
		g.Then.write(w)
	}

	w.WriteString(" }")
}

func (r Ref) String() string {
	w := &writer{stable: true}
	w.call(r.Name, r.Args, r.Named)

	return "&" + w.String()
}

func (w *writer) call(name string, args []any, named function.Named) {
	w.WriteString(name)
	w.WriteByte('(')

	for i, arg := range args {
		if i > 0 {
			w.WriteString(", ")
		}

		w.value(arg)
	}

	for i, key := range slices.Sorted(maps.Keys(named)) {
		if i > 0 || len(args) > 0 {
			w.WriteString(", ")
		}

		w.WriteString(key)
		w.WriteString(": ")
		w.value(named[key])
	}

	w.WriteByte(')')
}

func (w *writer) value(v any) {
	switch v := v.(type) {
	case nil:
		w.WriteString("nil")
	case string:
		w.WriteString(strconv.Quote(v))
	case bool, int:
		fmt.Fprint(w, v)
	case float64:
		// Typed so that 1.0 and 1 never share a fingerprint.
		fmt.Fprintf(w, "float64(%v)", v)
	case Ref:
		w.WriteByte('&')
		w.call(v.Name, v.Args, v.Named)
	case Block:
		w.WriteString("{ ")
		v.write(w)
		w.WriteString(" }")
	case function.Unit:
		// Units compare by identity of their callables, not by text.
		w.stable = false
		fmt.Fprint(w, v)
	default:
		w.reflected(reflect.ValueOf(v))
	}
}

func (w *writer) reflected(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			w.WriteString(s.String())
			return
		}

		fmt.Fprintf(w, "%s(%q)", rv.Type(), rv.String())
	case reflect.Slice, reflect.Array:
		w.WriteByte('[')
		for i := range rv.Len() {
			if i > 0 {
				w.WriteString(", ")
			}

			w.value(rv.Index(i).Interface())
		}
		w.WriteByte(']')
	case reflect.Map:
		keys := rv.MapKeys()
		rendered := make([]string, 0, len(keys))
		for _, k := range keys {
			kw := &writer{stable: true}
			kw.value(k.Interface())
			kw.WriteString(": ")
			kw.value(rv.MapIndex(k).Interface())
			w.stable = w.stable && kw.stable
			rendered = append(rendered, kw.String())
		}

		slices.Sort(rendered)
		w.WriteByte('{')
		w.WriteString(strings.Join(rendered, ", "))
		w.WriteByte('}')
	case reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		w.stable = false
		fmt.Fprintf(w, "%T(%p)", rv.Interface(), rv.Interface())
	case reflect.Struct:
		if !plain(rv.Type()) {
			w.stable = false
		}

		fmt.Fprintf(w, "%s(%+v)", rv.Type(), rv.Interface())
	default:
		fmt.Fprintf(w, "%s(%v)", rv.Type(), rv.Interface())
	}
}

// plain reports whether values of t print in full, holding nothing that
// renders as an address.
func plain(t reflect.Type) bool {
	return plainType(t, map[reflect.Type]bool{})
}

func plainType(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return true
	}

	seen[t] = true

	switch t.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return false
	case reflect.Array, reflect.Slice:
		return plainType(t.Elem(), seen)
	case reflect.Map:
		return plainType(t.Key(), seen) && plainType(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			if !plainType(t.Field(i).Type, seen) {
				return false
			}
		}

		return true
	default:
		return true
	}
}
