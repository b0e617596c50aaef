package match

import (
	"slices"
	"strings"
)

// Candidate is a known name scored against a looked-up name.
type Candidate struct {
	Name string
	// Score is the Similarity of both normalized names.
	Score float64
	// Exact is true when both names normalize to the same identifier,
	// e.g. "symbolize_keys" and "symbolizeKeys".
	Exact bool
	// Abbrev is true when the looked-up name abbreviates this one word by
	// word, e.g. "toInt" for "toInteger".
	Abbrev bool
}

// CandidateList is a list of candidates, best first once ranked.
type CandidateList []Candidate

// Thresholds used by Suggest.
const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.5
	// DefaultLimit is the number of suggestions returned.
	DefaultLimit = 3
)

// RankNames scores every known name other than target itself. Exact
// matches come first, then abbreviations, then by score and name.
func RankNames(target string, known []string) CandidateList {
	norm := Normalize(target)
	words := Words(target)

	candidates := make(CandidateList, 0, len(known))
	for _, name := range known {
		if name == target {
			continue
		}

		other := Normalize(name)
		candidates = append(candidates, Candidate{
			Name:   name,
			Score:  Similarity(norm, other),
			Exact:  norm == other,
			Abbrev: abbreviates(words, Words(name)),
		})
	}

	slices.SortFunc(candidates, compare)

	return candidates
}

func compare(a, b Candidate) int {
	switch {
	case a.Exact != b.Exact:
		return rank(a.Exact)
	case a.Abbrev != b.Abbrev:
		return rank(a.Abbrev)
	case a.Score != b.Score:
		return rank(a.Score > b.Score)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func rank(first bool) int {
	if first {
		return -1
	}

	return 1
}

// Suggest returns up to DefaultLimit known names similar to target.
func Suggest(target string, known []string) []string {
	top := RankNames(target, known).AboveThreshold(DefaultMinScore).Top(DefaultLimit)

	names := make([]string, 0, len(top))
	for _, c := range top {
		names = append(names, c.Name)
	}

	return names
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the first candidate, or nil if there is none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold keeps exact matches, abbreviations and candidates scoring
// at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Exact || cand.Abbrev || cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
