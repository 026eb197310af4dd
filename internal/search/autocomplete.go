package search

import "strings"

// autocompleteCourseScore computes C6's best-of-conditions score for a
// single course against an uppercased query Q.
func autocompleteCourseScore(q string, c Course) float64 {
	codeUpper := strings.ToUpper(c.Code)
	titleUpper := strings.ToUpper(c.Title)

	var score float64

	switch {
	case codeUpper == q:
		score = 1.5
	case strings.HasPrefix(codeUpper, q):
		score = 1.0
	case strings.Contains(codeUpper, q):
		score = 0.7
	}

	if score < 1.0 {
		wordStarts := false
		for _, w := range strings.Fields(titleUpper) {
			if strings.HasPrefix(w, q) {
				wordStarts = true
				break
			}
		}
		switch {
		case strings.HasPrefix(titleUpper, q) || wordStarts:
			if 0.6 > score {
				score = 0.6
			}
		case strings.Contains(titleUpper, q):
			if 0.3 > score {
				score = 0.3
			}
		}
	}

	return score
}

// Autocomplete scores courses for prefix/contains suggestion on code and title.
func Autocomplete(corpus []Course, query string, limit int, opts *SearchOptions) []AutocompleteHit {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" || len(corpus) == 0 || limit <= 0 {
		return nil
	}

	candidates := applyFilter(corpus, opts)

	hits := make([]AutocompleteHit, 0, len(candidates))
	for _, c := range candidates {
		score := autocompleteCourseScore(q, c)
		if score > 0 {
			hits = append(hits, AutocompleteHit{Code: c.Code, Title: c.Title, Score: score})
		}
	}

	return sortAndLimitAutocomplete(hits, limit)
}
