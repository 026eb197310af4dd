// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "HORAIRE_PORT"
	EnvLogLevel        = "HORAIRE_LOG_LEVEL"
	EnvShutdownTimeout = "HORAIRE_SHUTDOWN_TIMEOUT"
	EnvServerName      = "HORAIRE_SERVER_NAME"
	EnvInstanceID      = "HORAIRE_INSTANCE_ID"

	// Corpus
	EnvDataDir               = "HORAIRE_DATA_DIR"
	EnvCorpusRefreshInterval = "HORAIRE_CORPUS_REFRESH_INTERVAL"

	// Engine business limits (ranking constants stay compile-time, see DESIGN.md)
	EnvMaxResultsPerSearch       = "HORAIRE_MAX_RESULTS_PER_SEARCH"
	EnvMaxResultsPerAutocomplete = "HORAIRE_MAX_RESULTS_PER_AUTOCOMPLETE"

	// R2 Snapshot Feature
	EnvR2Enabled         = "HORAIRE_R2_ENABLED"
	EnvR2AccountID       = "HORAIRE_R2_ACCOUNT_ID"
	EnvR2AccessKeyID     = "HORAIRE_R2_ACCESS_KEY_ID"
	EnvR2SecretAccessKey = "HORAIRE_R2_SECRET_ACCESS_KEY"
	EnvR2BucketName      = "HORAIRE_R2_BUCKET_NAME"
	EnvR2SnapshotKey     = "HORAIRE_R2_SNAPSHOT_KEY"
	EnvR2LockKey         = "HORAIRE_R2_LOCK_KEY"
	EnvR2LockTTL         = "HORAIRE_R2_LOCK_TTL"
	EnvR2PollInterval    = "HORAIRE_R2_POLL_INTERVAL"

	// Sentry Feature
	EnvSentryEnabled     = "HORAIRE_SENTRY_ENABLED"
	EnvSentryToken       = "HORAIRE_SENTRY_TOKEN"
	EnvSentryHost        = "HORAIRE_SENTRY_HOST"
	EnvSentryEnvironment = "HORAIRE_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "HORAIRE_SENTRY_RELEASE"
	EnvSentrySampleRate  = "HORAIRE_SENTRY_SAMPLE_RATE"
	EnvSentryDebug       = "HORAIRE_SENTRY_DEBUG"

	// Better Stack Feature
	EnvBetterStackEnabled  = "HORAIRE_BETTERSTACK_ENABLED"
	EnvBetterStackToken    = "HORAIRE_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "HORAIRE_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "HORAIRE_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "HORAIRE_METRICS_USERNAME"
	EnvMetricsPassword    = "HORAIRE_METRICS_PASSWORD"
)
