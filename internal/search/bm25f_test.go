package search

import (
	"math"
	"testing"
)

func TestIsCodeShaped(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"MAT380", true},
		{"INF", true},
		{"LOG1", true},
		{"algebre", false},
		{"MAT38000", false}, // too many digits for the sigle pattern
		{"", false},
	}
	for _, tt := range tests {
		if got := isCodeShaped(tt.query); got != tt.want {
			t.Errorf("isCodeShaped(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIDF_UnseenTermIsNonNegative(t *testing.T) {
	v := idf("ghost", 0, 10)
	if v <= 0 || !isFinite(v) {
		t.Errorf("expected a small positive floor for an unseen term, got %v", v)
	}
}

func TestIDF_RareTermScoresHigherThanCommonTerm(t *testing.T) {
	rare := idf("rare", 1, 100)
	common := idf("common", 90, 100)
	if rare <= common {
		t.Errorf("expected rare term idf (%v) > common term idf (%v)", rare, common)
	}
}

func TestIDF_BigramMultiplier(t *testing.T) {
	unigram := idf("algebre", 5, 100)
	bigram := idf("algebre_lineaire", 5, 100)
	if bigram != unigram*bigramIDFMultiplier {
		t.Errorf("expected bigram idf = %v*%v = %v, got %v", unigram, bigramIDFMultiplier, unigram*bigramIDFMultiplier, bigram)
	}
}

func TestBM25FieldScore_ZeroTermFrequency(t *testing.T) {
	if got := bm25FieldScore(0, 10, 10, bTitle); got != 0 {
		t.Errorf("expected 0 for tf=0, got %v", got)
	}
}

func TestBM25FieldScore_IncreasesWithTermFrequencySaturating(t *testing.T) {
	s1 := bm25FieldScore(1, 10, 10, bTitle)
	s2 := bm25FieldScore(2, 10, 10, bTitle)
	s3 := bm25FieldScore(4, 10, 10, bTitle)
	if !(s1 < s2 && s2 < s3) {
		t.Errorf("expected strictly increasing scores with tf, got %v, %v, %v", s1, s2, s3)
	}
	// BM25's tf term saturates: doubling tf again adds less than the first doubling did.
	if (s2 - s1) <= (s3 - s2) {
		t.Errorf("expected diminishing returns: s2-s1 (%v) > s3-s2 (%v)", s2-s1, s3-s2)
	}
}

func TestBM25FieldScore_LongerFieldPenalized(t *testing.T) {
	short := bm25FieldScore(1, 5, 10, bTitle)
	long := bm25FieldScore(1, 50, 10, bTitle)
	if long >= short {
		t.Errorf("expected a field much longer than average to score lower: short=%v long=%v", short, long)
	}
}

func TestBM25LexicalBoosts(t *testing.T) {
	c := NewCourse("MAT380", "Algèbre linéaire", "Espaces vectoriels et applications", intPtr(3))

	exact := bm25LexicalBoosts("MAT380", "MAT380", true, c)
	if exact < 5.0 {
		t.Errorf("expected exact code match boost >= 5.0, got %v", exact)
	}

	prefix := bm25LexicalBoosts("MAT38", "MAT38", true, c)
	if prefix < 2.0 {
		t.Errorf("expected code-shaped prefix boost >= 2.0, got %v", prefix)
	}

	noBoost := bm25LexicalBoosts("ZZZZZZ", "ZZZZZZ", true, c)
	if noBoost != 0 {
		t.Errorf("expected no boost for an unrelated code-shaped query, got %v", noBoost)
	}
}

func TestIsFinite(t *testing.T) {
	if !isFinite(1.0) {
		t.Error("expected 1.0 to be finite")
	}
	if isFinite(math.NaN()) {
		t.Error("expected NaN to be non-finite")
	}
	if isFinite(math.Inf(1)) {
		t.Error("expected +Inf to be non-finite")
	}
}

func TestSearchBM25_ScoresDescendByRelevance(t *testing.T) {
	corpus := goldenCorpus()
	hits := SearchBM25(corpus, "programmation", 10, nil)
	if len(hits) < 2 {
		t.Fatalf("expected at least 2 hits, got %d", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i-1].Score < hits[i].Score {
			t.Errorf("expected non-increasing scores, got %v then %v", hits[i-1].Score, hits[i].Score)
		}
	}
}

func TestSearchBM25_EmptyInputs(t *testing.T) {
	if hits := SearchBM25(nil, "query", 10, nil); hits != nil {
		t.Errorf("expected nil for empty corpus, got %v", hits)
	}
	if hits := SearchBM25(goldenCorpus(), "", 10, nil); hits != nil {
		t.Errorf("expected nil for empty query, got %v", hits)
	}
	if hits := SearchBM25(goldenCorpus(), "query", 0, nil); hits != nil {
		t.Errorf("expected nil for non-positive limit, got %v", hits)
	}
}

func TestSearchBM25_DoubledCodeWeightForCodeShapedQuery(t *testing.T) {
	corpus := goldenCorpus()
	hits := SearchBM25(corpus, "MAT380", 10, nil)
	if len(hits) == 0 || hits[0].Code != "MAT380" {
		t.Fatalf("expected MAT380 to win a code-shaped query, got %v", hits)
	}
}
