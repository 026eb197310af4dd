// Package search implements the course ranking engine: text analysis,
// BM25F and fuzzy scoring, hybrid fusion, autocomplete, filtering and
// deterministic sort/limit over an in-memory course corpus snapshot.
package search

import "strings"

// Course is an immutable course record. ProgrammePrefix is denormalized
// from Code at construction time so the filter stage never re-derives it.
type Course struct {
	Code            string
	Title           string
	Description     string
	Credits         *int
	ProgrammePrefix string
}

// NewCourse builds a Course, deriving ProgrammePrefix from Code and
// uppercasing Code to its canonical form.
func NewCourse(code, title, description string, credits *int) Course {
	code = strings.ToUpper(strings.TrimSpace(code))
	return Course{
		Code:            code,
		Title:           title,
		Description:     description,
		Credits:         credits,
		ProgrammePrefix: programmePrefix(code),
	}
}

// programmePrefix returns the leading alphabetic run of an uppercased code.
func programmePrefix(code string) string {
	for i, r := range code {
		if r < 'A' || r > 'Z' {
			return code[:i]
		}
	}
	return code
}

// SearchOptions restricts the candidate set before scoring. A nil
// SearchOptions, or one with every field left at its zero value, is a
// no-op filter.
type SearchOptions struct {
	Programmes []string
	MinCredits *int
	MaxCredits *int
}

// IsEmpty reports whether the options impose no constraint.
func (o *SearchOptions) IsEmpty() bool {
	return o == nil || (len(o.Programmes) == 0 && o.MinCredits == nil && o.MaxCredits == nil)
}

// SearchHit is a ranked course result with its comparable-within-response score.
type SearchHit struct {
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Credits     *int    `json:"credits,omitempty"`
	Score       float64 `json:"score"`
}

// AutocompleteHit is a ranked prefix/contains suggestion.
type AutocompleteHit struct {
	Code  string  `json:"code"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Algorithm selects which scorer a caller wants. The zero value is AlgorithmHybrid.
type Algorithm int

const (
	AlgorithmHybrid Algorithm = iota
	AlgorithmBM25
	AlgorithmFuzzy
)

// ParseAlgorithm maps the HTTP-facing algorithm name to an Algorithm,
// defaulting to hybrid for anything unrecognized.
func ParseAlgorithm(s string) Algorithm {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bm25":
		return AlgorithmBM25
	case "fuzzy":
		return AlgorithmFuzzy
	default:
		return AlgorithmHybrid
	}
}
