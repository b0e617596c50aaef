// Package match ranks registered function names against a name that failed
// to resolve, to build "did you mean" suggestions.
//
// Names are compared after Normalize (case and separators ignored) by
// Similarity, an edit distance ratio. A name that abbreviates another word
// by word ("toInt", "toInteger") is always suggested.
package match
