// Package corpus supplies course snapshots to the search engine, backed
// either by a fixed in-memory slice (tests, small deployments) or by the
// SQLite-backed store synced from R2 snapshots.
package corpus

import "github.com/antoinebou12/horaire-search/internal/search"

// Provider is re-exported from search so callers only need to import this
// package when wiring a concrete implementation.
type Provider = search.CorpusProvider

// StaticProvider serves a fixed course slice set at construction time.
// Used for tests and for deployments that load their catalog once at
// startup with no live refresh.
type StaticProvider struct {
	courses []search.Course
}

// NewStaticProvider builds a StaticProvider over courses.
func NewStaticProvider(courses []search.Course) *StaticProvider {
	snapshot := make([]search.Course, len(courses))
	copy(snapshot, courses)
	return &StaticProvider{courses: snapshot}
}

// Snapshot returns the fixed course slice.
func (p *StaticProvider) Snapshot() []search.Course {
	return p.courses
}
