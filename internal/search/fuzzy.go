package search

import (
	"strings"
)

const (
	fuzzyCodeWeight  = 1.0
	fuzzyTitleWeight = 0.9
	fuzzyDescWeight  = 0.7
)

// adaptiveEditBudget returns the maximum Levenshtein distance for a query
// of the given length, used when the caller does not supply an explicit cap.
func adaptiveEditBudget(queryLen int) int {
	switch {
	case queryLen <= 3:
		return 1
	case queryLen <= 6:
		return 2
	default:
		return 3
	}
}

// fs is the fuzzy similarity primitive: a staged comparison from exact
// match down to edit-distance similarity, in [0, 1].
func fs(query, target string, dMax int) float64 {
	if query == "" && target == "" {
		return 0
	}
	if query == target {
		return 1.0
	}
	if strings.EqualFold(query, target) {
		return 0.98
	}

	qLen, tLen := len([]rune(query)), len([]rune(target))

	if strings.HasPrefix(target, query) {
		return 0.95
	}
	if strings.HasPrefix(query, target) && qLen > 2 {
		return 0.90
	}
	if strings.Contains(target, query) {
		return 0.85
	}
	if strings.Contains(query, target) && qLen > tLen {
		return 0.80
	}

	d := levenshtein(query, target)
	if d > dMax {
		return 0
	}

	denom := qLen
	if tLen > denom {
		denom = tLen
	}
	if denom == 0 {
		return 0
	}
	sim := 1 - float64(d)/float64(denom)

	if qLen >= 3 && tLen > qLen && d <= 2 {
		sim *= 1.1
	}
	if float64(tLen) > 1.5*float64(qLen) {
		sim *= 0.9
	}

	return clamp01(sim)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fuzzyCourseScore computes the best-of-fields fuzzy score for a single
// course against an already uppercase-trimmed query.
func fuzzyCourseScore(query string, c Course, dMax int) float64 {
	qLen := len([]rune(query))
	codeUpper := strings.ToUpper(c.Code)
	titleUpper := strings.ToUpper(c.Title)
	descUpper := strings.ToUpper(c.Description)

	best := fuzzyCodeWeight * fs(query, codeUpper, dMax)
	if best == 0 {
		best = fuzzyCodeWeight * bestPrefixScore(query, codeUpper, dMax, qLen)
	}

	titleBest := bestWordScore(query, titleUpper, dMax, 2)
	if v := fuzzyTitleWeight * titleBest; v > best {
		best = v
	}
	if titleBest < 0.7 && strings.Contains(titleUpper, query) {
		if v := fuzzyTitleWeight * 0.6; v > best {
			best = v
		}
	}

	if best < 0.5 {
		if v := fuzzyDescWeight * bestWordScore(query, descUpper, dMax, 3); v > best {
			best = v
		}
	}

	return best
}

// bestPrefixScore scans prefixes of codeUpper whose length lies in
// [max(1, |Q|-d), min(|code|, |Q|+d)] and returns the best 0.9*fs(Q, prefix).
func bestPrefixScore(query, codeUpper string, dMax, qLen int) float64 {
	runes := []rune(codeUpper)
	lo := qLen - dMax
	if lo < 1 {
		lo = 1
	}
	hi := qLen + dMax
	if hi > len(runes) {
		hi = len(runes)
	}

	best := 0.0
	for l := lo; l <= hi; l++ {
		if l <= 0 || l > len(runes) {
			continue
		}
		prefix := string(runes[:l])
		if v := 0.9 * fs(query, prefix, dMax); v > best {
			best = v
		}
	}
	return best
}

// bestWordScore splits text on whitespace, keeps words of length >= minLen,
// and streams the best fs(query, word), only accepting a candidate once it
// clears max(0.1, 0.7*best-so-far).
func bestWordScore(query, text string, dMax, minLen int) float64 {
	best := 0.0
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) < minLen {
			continue
		}
		threshold := 0.7 * best
		if threshold < 0.1 {
			threshold = 0.1
		}
		if v := fs(query, w, dMax); v > threshold && v > best {
			best = v
		}
	}
	return best
}

// SearchFuzzy scores courses by edit-distance similarity across code,
// title and description, with an adaptive distance budget.
func SearchFuzzy(corpus []Course, query string, limit int, maxDistance *int, opts *SearchOptions) []SearchHit {
	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" || len(corpus) == 0 || limit <= 0 {
		return nil
	}

	dMax := adaptiveEditBudget(len([]rune(query)))
	if maxDistance != nil {
		dMax = *maxDistance
	}

	candidates := applyFilter(corpus, opts)

	hits := make([]SearchHit, 0, len(candidates))
	for _, c := range candidates {
		score := fuzzyCourseScore(query, c, dMax)
		if score > 0 && isFinite(score) {
			hits = append(hits, toHit(c, score))
		}
	}

	return sortAndLimit(hits, limit)
}
