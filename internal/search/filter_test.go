package search

import "testing"

func TestApplyFilter_NilOptsIsNoOp(t *testing.T) {
	corpus := goldenCorpus()
	out := applyFilter(corpus, nil)
	if len(out) != len(corpus) {
		t.Errorf("expected nil options to pass every course through, got %d of %d", len(out), len(corpus))
	}
}

func TestApplyFilter_EmptyOptsIsNoOp(t *testing.T) {
	corpus := goldenCorpus()
	out := applyFilter(corpus, &SearchOptions{})
	if len(out) != len(corpus) {
		t.Errorf("expected empty options to pass every course through, got %d of %d", len(out), len(corpus))
	}
}

func TestApplyFilter_ByProgramme(t *testing.T) {
	corpus := []Course{
		NewCourse("MAT380", "a", "b", intPtr(3)),
		NewCourse("INF135", "c", "d", intPtr(3)),
	}
	out := applyFilter(corpus, &SearchOptions{Programmes: []string{"mat"}})
	if len(out) != 1 || out[0].Code != "MAT380" {
		t.Errorf("expected only MAT380 to survive a MAT programme filter, got %v", out)
	}
}

func TestApplyFilter_ByCreditRange(t *testing.T) {
	corpus := []Course{
		NewCourse("AAA100", "a", "b", intPtr(1)),
		NewCourse("BBB200", "c", "d", intPtr(3)),
		NewCourse("CCC300", "e", "f", intPtr(6)),
	}
	out := applyFilter(corpus, &SearchOptions{MinCredits: intPtr(2), MaxCredits: intPtr(4)})
	if len(out) != 1 || out[0].Code != "BBB200" {
		t.Errorf("expected only BBB200 (3 credits) to survive [2,4], got %v", out)
	}
}

func TestMatchesCredits_NilCreditsFailsWhenBoundsSet(t *testing.T) {
	c := NewCourse("AAA100", "a", "b", nil)
	if matchesCredits(c, intPtr(1), intPtr(5)) {
		t.Error("expected a course with nil Credits to fail any concrete credit bound")
	}
}

func TestMatchesCredits_NoBoundsAlwaysMatches(t *testing.T) {
	c := NewCourse("AAA100", "a", "b", nil)
	if !matchesCredits(c, nil, nil) {
		t.Error("expected no bounds to match regardless of Credits")
	}
}

func TestMatchesAnyProgramme(t *testing.T) {
	c := NewCourse("MAT380", "a", "b", intPtr(3))
	programmes := map[string]struct{}{"MAT": {}}
	if !matchesAnyProgramme(c, programmes) {
		t.Error("expected MAT380 to match MAT programme prefix")
	}
	if matchesAnyProgramme(c, map[string]struct{}{"INF": {}}) {
		t.Error("expected MAT380 to not match INF programme prefix")
	}
}
