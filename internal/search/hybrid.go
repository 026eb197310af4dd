package search

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	searcherrors "github.com/antoinebou12/horaire-search/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	hybridBM25Weight  = 0.6
	hybridFuzzyWeight = 0.4
	rankEpsilon       = 1e-12
)

// RouteAlgorithm implements the implicit routing heuristic used when the
// caller does not explicitly request hybrid search: short numeric-looking
// queries and single short words favor fuzzy matching, queries longer than
// 20 characters or of four or more words favor BM25, everything else goes
// through hybrid.
func RouteAlgorithm(query string) Algorithm {
	q := strings.TrimSpace(query)
	qLen := len([]rune(q))
	words := strings.Fields(q)

	if containsDigit(q) && qLen <= 6 {
		return AlgorithmFuzzy
	}
	if len(words) == 1 && qLen >= 3 && qLen <= 10 {
		return AlgorithmFuzzy
	}
	if qLen > 20 || len(words) >= 4 {
		return AlgorithmBM25
	}
	return AlgorithmHybrid
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// SearchHybrid is C5: it runs BM25 and fuzzy search concurrently over an
// enlarged candidate pool, then fuses the two ranked lists. Any fusion
// failure degrades gracefully to the BM25-only result.
func SearchHybrid(ctx context.Context, corpus []Course, query string, limit int, maxDistance *int, opts *SearchOptions) ([]SearchHit, error) {
	queryTrimmed := strings.TrimSpace(query)
	if queryTrimmed == "" || len(corpus) == 0 || limit <= 0 {
		return nil, nil
	}

	poolSize := limit * 2
	if poolSize < 1 {
		poolSize = 1
	}

	var bm25Hits, fuzzyHits []SearchHit

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		bm25Hits = SearchBM25(corpus, queryTrimmed, poolSize, opts)
		return nil
	})
	g.Go(func() error {
		fuzzyHits = SearchFuzzy(corpus, queryTrimmed, poolSize, maxDistance, opts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return SearchBM25(corpus, queryTrimmed, limit, opts), searcherrors.NewFusionError("concurrent search failed", err)
	}

	fused, ferr := fuseResults(bm25Hits, fuzzyHits)
	if ferr != nil {
		return SearchBM25(corpus, queryTrimmed, limit, opts), ferr
	}

	return sortAndLimit(fused, limit), nil
}

// fuseResults merges BM25 and fuzzy hit lists by course code, normalizing
// BM25 scores to [0,1] and combining with fuzzy scores under fixed weights.
func fuseResults(bm25Hits, fuzzyHits []SearchHit) ([]SearchHit, error) {
	if len(bm25Hits) == 0 && len(fuzzyHits) == 0 {
		return nil, nil
	}

	normBM25 := normalizeBM25(bm25Hits)

	fuzzyByCode := make(map[string]SearchHit, len(fuzzyHits))
	for _, h := range fuzzyHits {
		fuzzyByCode[h.Code] = h
	}

	merged := make(map[string]SearchHit, len(bm25Hits)+len(fuzzyHits))
	order := make([]string, 0, len(bm25Hits)+len(fuzzyHits))

	addHit := func(h SearchHit) {
		if _, ok := merged[h.Code]; !ok {
			order = append(order, h.Code)
		}
		merged[h.Code] = h
	}

	for _, h := range bm25Hits {
		b := normBM25[h.Code]
		f := 0.0
		if fh, ok := fuzzyByCode[h.Code]; ok {
			f = fh.Score
		}
		h.Score = combineScore(b, f)
		addHit(h)
	}
	for _, h := range fuzzyHits {
		if _, ok := merged[h.Code]; ok {
			continue
		}
		b := normBM25[h.Code]
		h.Score = combineScore(b, h.Score)
		addHit(h)
	}

	out := make([]SearchHit, 0, len(order))
	for _, code := range order {
		out = append(out, merged[code])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Code < out[j].Code
	})

	for i := range out {
		out[i].Score = clamp01(out[i].Score - float64(i)*rankEpsilon)
	}

	return out, nil
}

func combineScore(bm25Norm, fuzzy float64) float64 {
	v := hybridBM25Weight*bm25Norm + hybridFuzzyWeight*fuzzy
	if v > 1.0 {
		v = 1.0
	}
	return v
}

// normalizeBM25 min-max normalizes BM25 scores into [0,1]. When the score
// range is indistinguishable (all scores equal or near-equal), it falls
// back to synthetic rank-based scores spread across [0.9, 1.0]. A small
// but nonzero range is mildly re-spread via a log transform so close
// scores don't collapse together after normalization.
func normalizeBM25(hits []SearchHit) map[string]float64 {
	out := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return out
	}

	minS, maxS := hits[0].Score, hits[0].Score
	for _, h := range hits {
		if h.Score < minS {
			minS = h.Score
		}
		if h.Score > maxS {
			maxS = h.Score
		}
	}

	rangeS := maxS - minS
	indistinguishableThreshold := math.Max(scoreEpsilon, maxS*1e-6)

	if rangeS < indistinguishableThreshold {
		n := len(hits)
		for i, h := range hits {
			if n == 1 {
				out[h.Code] = 1.0
				continue
			}
			frac := 1.0 - float64(i)/float64(n-1)
			out[h.Code] = 0.9 + 0.1*frac
		}
		return out
	}

	smallRangeThreshold := 0.1 * maxS
	for _, h := range hits {
		norm := (h.Score - minS) / rangeS
		if rangeS < smallRangeThreshold {
			norm = math.Log(1+norm*9) / math.Log(10)
		}
		out[h.Code] = clamp01(norm)
	}
	return out
}
