package match

import (
	"strings"
	"unicode"
)

// Normalize folds a function name for comparison. Case is ignored and
// separators are dropped, so "symbolize_keys", ":symbolize-keys" and
// "symbolizeKeys" are the same name.
func Normalize(name string) string {
	var b strings.Builder

	b.Grow(len(name))

	for _, r := range name {
		if !isSeparator(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// Words splits a name into lowercase words at separators and case changes:
//
//	deepSymbolizeKeys -> deep symbolize keys
//	toJSONValue       -> to json value
//	rename_keys       -> rename keys
func Words(name string) []string {
	var (
		words []string
		word  []rune
	)

	flush := func() {
		if len(word) > 0 {
			words = append(words, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		word = append(word, r)
	}

	flush()

	return words
}

// startsWord reports whether runes[i] begins a new camel case word: an upper
// case letter after a lower case one or a digit, or the last capital of an
// acronym that is followed by a lower case letter.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// abbreviates reports whether every word of short is a prefix of the word at
// the same position of long, as "toInt" abbreviates "toInteger".
func abbreviates(short, long []string) bool {
	if len(short) == 0 || len(short) != len(long) {
		return false
	}

	for i, w := range short {
		if !strings.HasPrefix(long[i], w) {
			return false
		}
	}

	return true
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', ':':
		return true
	default:
		return false
	}
}
