// Package config provides centralized timeout and interval constants.
// Values are tuned for SQLite performance characteristics and the
// reference HTTP surface's request lifecycle.
package config

import "time"

// Sentry timeouts
const (
	// SentryFlushTimeout is the timeout for flushing buffered Sentry events on shutdown.
	SentryFlushTimeout = 5 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value for concurrent write contention.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	DatabaseConnMaxLifetime = time.Hour

	// HotSwapCloseGracePeriod is the delay before closing old SQLite connections
	// after a hot-swap, giving in-flight queries time to finish.
	HotSwapCloseGracePeriod = 5 * time.Second
)

// R2 timeouts
const (
	// R2RequestTimeout is the timeout for a single R2 request.
	R2RequestTimeout = 60 * time.Second

	// R2PollIntervalDefault is the default interval for polling R2 for a
	// newer corpus snapshot.
	R2PollIntervalDefault = 15 * time.Minute
)

// Corpus refresh
const (
	// CorpusRefreshIntervalDefault is the default interval for reloading the
	// corpus from its provider when no external change notification exists.
	CorpusRefreshIntervalDefault = 15 * time.Minute
)

// Readiness
const (
	// ReadinessCheckTimeout is the timeout for readiness probe checks,
	// including the underlying SQLite ping.
	ReadinessCheckTimeout = 3 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown, allowing
	// in-flight search requests to complete before forceful termination.
	GracefulShutdown = 15 * time.Second
)
