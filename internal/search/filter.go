package search

import "strings"

// applyFilter restricts the candidate set by programme prefix and credit
// range before scoring. A nil/empty SearchOptions is a no-op.
func applyFilter(corpus []Course, opts *SearchOptions) []Course {
	if opts.IsEmpty() {
		return corpus
	}

	programmes := make(map[string]struct{}, len(opts.Programmes))
	for _, p := range opts.Programmes {
		programmes[strings.ToUpper(strings.TrimSpace(p))] = struct{}{}
	}

	out := make([]Course, 0, len(corpus))
	for _, c := range corpus {
		if len(programmes) > 0 && !matchesAnyProgramme(c, programmes) {
			continue
		}
		if !matchesCredits(c, opts.MinCredits, opts.MaxCredits) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesAnyProgramme(c Course, programmes map[string]struct{}) bool {
	codeUpper := strings.ToUpper(c.Code)
	for p := range programmes {
		if strings.HasPrefix(codeUpper, p) {
			return true
		}
	}
	return false
}

func matchesCredits(c Course, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	if c.Credits == nil {
		return false
	}
	if min != nil && *c.Credits < *min {
		return false
	}
	if max != nil && *c.Credits > *max {
		return false
	}
	return true
}
