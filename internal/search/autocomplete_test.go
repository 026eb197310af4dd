package search

import "testing"

func TestAutocompleteCourseScore(t *testing.T) {
	c := NewCourse("MAT380", "Algebre lineaire avancee", "desc", intPtr(3))

	tests := []struct {
		name  string
		q     string
		want  float64
	}{
		{"exact code", "MAT380", 1.5},
		{"code prefix", "MAT38", 1.0},
		{"code contains", "T38", 0.7},
		{"title prefix", "ALGEBRE", 0.6},
		{"title word start", "LINEAIRE", 0.6},
		{"title contains", "GEBRE", 0.3},
		{"no match", "ZZZZZZ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := autocompleteCourseScore(tt.q, c); got != tt.want {
				t.Errorf("autocompleteCourseScore(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestAutocompleteCourseScore_CodeMatchNeverLosesToWeakerTitleMatch(t *testing.T) {
	c := NewCourse("MAT380", "Algebre lineaire (ex-MAT38)", "desc", intPtr(3))
	// Code prefix match (1.0) must not be overwritten by a weaker title-contains (0.3).
	if got := autocompleteCourseScore("MAT38", c); got != 1.0 {
		t.Errorf("expected code prefix score 1.0 to win, got %v", got)
	}
}

func TestAutocomplete_EmptyInputs(t *testing.T) {
	if hits := Autocomplete(nil, "MAT", 10, nil); hits != nil {
		t.Errorf("expected nil for empty corpus, got %v", hits)
	}
	if hits := Autocomplete(goldenCorpus(), "", 10, nil); hits != nil {
		t.Errorf("expected nil for empty query, got %v", hits)
	}
	if hits := Autocomplete(goldenCorpus(), "MAT", 0, nil); hits != nil {
		t.Errorf("expected nil for non-positive limit, got %v", hits)
	}
}

func TestAutocomplete_FindsPrefixMatch(t *testing.T) {
	hits := Autocomplete(goldenCorpus(), "MAT3", 10, nil)
	if len(hits) == 0 {
		t.Fatal("expected at least one suggestion for prefix MAT3")
	}
	for _, h := range hits {
		if h.Score <= 0 {
			t.Errorf("expected only positively-scored suggestions, got %v for %s", h.Score, h.Code)
		}
	}
}

func TestAutocomplete_RespectsFilter(t *testing.T) {
	opts := &SearchOptions{Programmes: []string{"INF"}}
	hits := Autocomplete(goldenCorpus(), "A", 50, opts)
	for _, h := range hits {
		if h.Code[:3] != "INF" {
			t.Errorf("expected only INF-prefixed codes under filter, got %s", h.Code)
		}
	}
}
