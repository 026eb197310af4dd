package search

import (
	"context"
	"sync/atomic"
	"time"

	searcherrors "github.com/antoinebou12/horaire-search/internal/errors"
	"github.com/antoinebou12/horaire-search/internal/logger"
	"github.com/antoinebou12/horaire-search/internal/metrics"
)

// CorpusProvider supplies the current course snapshot to the engine. It is
// implemented by an in-memory static provider for tests and by a
// SQLite/R2-backed provider in production.
type CorpusProvider interface {
	Snapshot() []Course
}

// Engine ties the scoring primitives (C1-C8) to a live, atomically
// swappable corpus snapshot plus the ambient logging/metrics stack.
type Engine struct {
	corpus  atomic.Pointer[[]Course]
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewEngine builds an Engine with an empty corpus. Call LoadCorpus (or
// wire a CorpusProvider via Refresh) before serving searches.
func NewEngine(log *logger.Logger, m *metrics.Metrics) *Engine {
	e := &Engine{log: log, metrics: m}
	empty := []Course{}
	e.corpus.Store(&empty)
	return e
}

// LoadCorpus atomically replaces the in-memory course snapshot.
func (e *Engine) LoadCorpus(courses []Course) {
	snapshot := make([]Course, len(courses))
	copy(snapshot, courses)
	e.corpus.Store(&snapshot)
	if e.metrics != nil {
		e.metrics.SetCorpusSize(len(snapshot))
	}
}

// Refresh pulls the latest snapshot from provider and swaps it in,
// counting every reload as a success in metrics; an empty snapshot
// replaces the corpus like any other.
func (e *Engine) Refresh(provider CorpusProvider) {
	courses := provider.Snapshot()
	e.LoadCorpus(courses)
	if e.metrics != nil {
		e.metrics.RecordCorpusReload("success")
		e.metrics.SetCorpusReloadAge(0)
	}
}

// corpusSnapshot returns the currently loaded course slice.
func (e *Engine) corpusSnapshot() []Course {
	p := e.corpus.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Size reports the number of courses currently loaded.
func (e *Engine) Size() int {
	return len(e.corpusSnapshot())
}

// SearchBM25 ranks courses by field-weighted BM25 against query.
func (e *Engine) SearchBM25(_ context.Context, query string, limit int, opts *SearchOptions) ([]SearchHit, error) {
	corpus := e.corpusSnapshot()
	if len(corpus) == 0 {
		return nil, searcherrors.ErrEmptyCorpus
	}
	start := time.Now()
	hits := SearchBM25(corpus, query, limit, opts)
	e.observeSearch("bm25", start, hits)
	return hits, nil
}

// SearchFuzzy ranks courses by edit-distance similarity against query.
func (e *Engine) SearchFuzzy(_ context.Context, query string, limit int, maxDistance *int, opts *SearchOptions) ([]SearchHit, error) {
	corpus := e.corpusSnapshot()
	if len(corpus) == 0 {
		return nil, searcherrors.ErrEmptyCorpus
	}
	start := time.Now()
	hits := SearchFuzzy(corpus, query, limit, maxDistance, opts)
	e.observeSearch("fuzzy", start, hits)
	return hits, nil
}

// SearchHybrid runs BM25 and fuzzy search concurrently and fuses the results.
// On fusion failure it returns BM25-only results and records the fallback.
func (e *Engine) SearchHybrid(ctx context.Context, query string, limit int, maxDistance *int, opts *SearchOptions) ([]SearchHit, error) {
	corpus := e.corpusSnapshot()
	if len(corpus) == 0 {
		return nil, searcherrors.ErrEmptyCorpus
	}
	start := time.Now()
	hits, err := SearchHybrid(ctx, corpus, query, limit, maxDistance, opts)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordFusionFallback("fusion_error")
		}
		if e.log != nil {
			e.log.WithError(err).Warn("hybrid search fell back to bm25-only")
		}
	}
	e.observeSearch("hybrid", start, hits)
	return hits, nil
}

// Search dispatches to the scorer selected by algo; AlgorithmHybrid always
// runs hybrid search. The implicit routing heuristic is applied only by
// SearchAuto.
func (e *Engine) Search(ctx context.Context, algo Algorithm, query string, limit int, maxDistance *int, opts *SearchOptions) ([]SearchHit, error) {
	switch algo {
	case AlgorithmBM25:
		return e.SearchBM25(ctx, query, limit, opts)
	case AlgorithmFuzzy:
		return e.SearchFuzzy(ctx, query, limit, maxDistance, opts)
	default:
		return e.SearchHybrid(ctx, query, limit, maxDistance, opts)
	}
}

// SearchAuto applies the implicit routing heuristic to pick an algorithm
// for query, then dispatches through Search.
func (e *Engine) SearchAuto(ctx context.Context, query string, limit int, maxDistance *int, opts *SearchOptions) ([]SearchHit, error) {
	return e.Search(ctx, RouteAlgorithm(query), query, limit, maxDistance, opts)
}

// Autocomplete scores prefix/contains suggestions against the live corpus.
func (e *Engine) Autocomplete(_ context.Context, query string, limit int, opts *SearchOptions) ([]AutocompleteHit, error) {
	corpus := e.corpusSnapshot()
	if len(corpus) == 0 {
		return nil, searcherrors.ErrEmptyCorpus
	}
	start := time.Now()
	hits := Autocomplete(corpus, query, limit, opts)
	if e.metrics != nil {
		status := "success"
		if len(hits) == 0 {
			status = "no_results"
		}
		e.metrics.RecordAutocomplete(status, time.Since(start).Seconds())
	}
	return hits, nil
}

func (e *Engine) observeSearch(algorithm string, start time.Time, hits []SearchHit) {
	if e.metrics == nil {
		return
	}
	status := "success"
	if len(hits) == 0 {
		status = "no_results"
	}
	e.metrics.RecordSearch(algorithm, status, time.Since(start).Seconds(), len(hits))
}
