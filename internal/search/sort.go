package search

import "sort"

// toHit projects a Course into a SearchHit carrying the given score.
func toHit(c Course, score float64) SearchHit {
	return SearchHit{
		Code:        c.Code,
		Title:       c.Title,
		Description: c.Description,
		Credits:     c.Credits,
		Score:       score,
	}
}

// sortAndLimit is C8: sort by score descending, code ascending as the
// deterministic tie-break, then truncate to limit.
func sortAndLimit(hits []SearchHit, limit int) []SearchHit {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Code < hits[j].Code
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits
}

// sortAndLimitAutocomplete mirrors sortAndLimit for AutocompleteHit.
func sortAndLimitAutocomplete(hits []AutocompleteHit, limit int) []AutocompleteHit {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Code < hits[j].Code
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits
}
