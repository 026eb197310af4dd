package search

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	searcherrors "github.com/antoinebou12/horaire-search/internal/errors"
	"github.com/antoinebou12/horaire-search/internal/logger"
	"github.com/antoinebou12/horaire-search/internal/metrics"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	log := logger.New("error")
	m := metrics.New(prometheus.NewRegistry())
	return NewEngine(log, m)
}

func TestEngine_EmptyCorpusReturnsErrEmptyCorpus(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.SearchBM25(ctx, "programmation", 10, nil); err != searcherrors.ErrEmptyCorpus {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := e.SearchFuzzy(ctx, "programmation", 10, nil, nil); err != searcherrors.ErrEmptyCorpus {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := e.Autocomplete(ctx, "MAT", 10, nil); err != searcherrors.ErrEmptyCorpus {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestEngine_LoadCorpusAndSearch(t *testing.T) {
	e := newTestEngine(t)
	e.LoadCorpus(goldenCorpus())

	if e.Size() != len(goldenCorpus()) {
		t.Fatalf("expected size %d, got %d", len(goldenCorpus()), e.Size())
	}

	hits, err := e.SearchBM25(context.Background(), "MAT380", 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) == 0 || hits[0].Code != "MAT380" {
		t.Errorf("expected MAT380 as first hit, got %v", hits)
	}
}

func TestEngine_RefreshFromProvider(t *testing.T) {
	e := newTestEngine(t)
	provider := staticProvider{courses: goldenCorpus()}

	e.Refresh(provider)

	if e.Size() != len(goldenCorpus()) {
		t.Fatalf("expected size %d after refresh, got %d", len(goldenCorpus()), e.Size())
	}
}

func TestEngine_SearchDispatchesByAlgorithm(t *testing.T) {
	e := newTestEngine(t)
	e.LoadCorpus(goldenCorpus())
	ctx := context.Background()

	bm25Hits, err := e.Search(ctx, AlgorithmBM25, "MAT380", 10, nil, nil)
	if err != nil || len(bm25Hits) == 0 || bm25Hits[0].Code != "MAT380" {
		t.Errorf("expected bm25 dispatch to find MAT380, got %v err=%v", bm25Hits, err)
	}

	maxDist := 2
	fuzzyHits, err := e.Search(ctx, AlgorithmFuzzy, "MAAT380", 10, &maxDist, nil)
	if err != nil || len(fuzzyHits) == 0 || fuzzyHits[0].Code != "MAT380" {
		t.Errorf("expected fuzzy dispatch to find MAT380, got %v err=%v", fuzzyHits, err)
	}
}

func TestEngine_SearchAutoRoutesAndFindsResults(t *testing.T) {
	e := newTestEngine(t)
	e.LoadCorpus(goldenCorpus())

	hits, err := e.SearchAuto(context.Background(), "MAT380", 10, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) == 0 || hits[0].Code != "MAT380" {
		t.Errorf("expected MAT380 as first hit, got %v", hits)
	}
}

type staticProvider struct {
	courses []Course
}

func (p staticProvider) Snapshot() []Course {
	return p.courses
}
