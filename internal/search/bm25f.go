package search

import (
	"math"
	"regexp"
	"strings"
)

const (
	bm25K1 = 1.2

	weightCode  = 3.0
	weightTitle = 1.8
	weightDesc  = 0.8

	bCode  = 0.3
	bTitle = 0.5
	bDesc  = 0.75

	bigramIDFMultiplier = 1.5
	scoreEpsilon        = 1e-10
)

var sigleRe = regexp.MustCompile(`^[A-Z]{2,4}\d{0,4}$`)

// isCodeShaped reports whether a trimmed, uppercased query looks like a
// course code, e.g. "MAT380" or "LOG".
func isCodeShaped(queryUpper string) bool {
	return sigleRe.MatchString(queryUpper)
}

// idf computes the standard BM25 inverse document frequency, with a small
// non-zero floor for unseen terms and a 1.5x multiplier for bigram terms.
func idf(term string, n, docCount int) float64 {
	var v float64
	if n == 0 {
		v = math.Log(1+float64(docCount)/0.5) * 0.1
	} else {
		v = math.Log(1 + (float64(docCount)-float64(n)+0.5)/(float64(n)+0.5))
	}
	if isBigram(term) {
		v *= bigramIDFMultiplier
	}
	return v
}

// bm25FieldScore computes the per-field BM25 contribution for a term.
func bm25FieldScore(tf int, fieldLen int, avgLen float64, b float64) float64 {
	if tf == 0 {
		return 0
	}
	norm := 1 - b + b*(float64(fieldLen)/avgLen)
	return float64(tf) * (bm25K1 + 1) / (float64(tf) + bm25K1*norm)
}

// bm25DocumentScore computes C3's S for a single document against the
// query's analyzed term set.
func bm25DocumentScore(d docIndex, queryTerms []string, idx *corpusIndex, codeWeight float64) float64 {
	var s float64
	for _, t := range queryTerms {
		tIDF := idf(t, idx.df[t], idx.n)
		codeScore := bm25FieldScore(d.code.tf[t], d.code.length, idx.avgCodeLen, bCode)
		titleScore := bm25FieldScore(d.title.tf[t], d.title.length, idx.avgTitle, bTitle)
		descScore := bm25FieldScore(d.desc.tf[t], d.desc.length, idx.avgDesc, bDesc)
		s += tIDF * (codeWeight*codeScore + weightTitle*titleScore + weightDesc*descScore)
	}
	return s
}

// bm25LexicalBoosts adds the additive exact/prefix/substring/contains
// boosts described in spec §4.3, on top of the raw BM25 sum S.
func bm25LexicalBoosts(queryTrimmed, queryUpper string, codeShaped bool, c Course) float64 {
	var boost float64
	codeUpper := strings.ToUpper(c.Code)

	if codeUpper == queryUpper {
		boost += 5.0
	}
	if codeShaped && strings.HasPrefix(codeUpper, queryUpper) {
		boost += 2.0
	}
	if len([]rune(queryUpper)) >= 3 && strings.Contains(codeUpper, queryUpper) {
		boost += 1.5
	}

	words := strings.Fields(queryTrimmed)
	if !codeShaped && len(words) == 1 && len([]rune(queryTrimmed)) >= 3 {
		titleUpper := strings.ToUpper(c.Title)
		descUpper := strings.ToUpper(c.Description)
		if strings.Contains(titleUpper, queryUpper) {
			boost += 0.8
		}
		if strings.Contains(descUpper, queryUpper) {
			boost += 0.5
		}
	}

	return boost
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SearchBM25 scores courses with field-weighted BM25, augmented with
// sigle/exact/prefix/substring lexical boosts.
func SearchBM25(corpus []Course, query string, limit int, opts *SearchOptions) []SearchHit {
	queryTrimmed := strings.TrimSpace(query)
	if queryTrimmed == "" || len(corpus) == 0 || limit <= 0 {
		return nil
	}

	candidates := applyFilter(corpus, opts)
	if len(candidates) == 0 {
		return nil
	}

	idx := buildCorpusIndex(candidates)
	queryTerms := analyzeQuery(queryTrimmed)
	queryUpper := strings.ToUpper(queryTrimmed)
	codeShaped := isCodeShaped(queryUpper)

	codeWeight := weightCode
	if codeShaped {
		codeWeight = weightCode * 2
	}

	hits := make([]SearchHit, 0, len(idx.docs))
	for _, d := range idx.docs {
		s := bm25DocumentScore(d, queryTerms, idx, codeWeight)
		s += bm25LexicalBoosts(queryTrimmed, queryUpper, codeShaped, d.course)

		if isFinite(s) && s > scoreEpsilon {
			hits = append(hits, toHit(d.course, s))
		}
	}

	return sortAndLimit(hits, limit)
}
