// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, corpus loading, and optional infrastructure integrations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ========================================================================
	// Server Configuration
	// ========================================================================

	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServerName      string
	InstanceID      string

	// ========================================================================
	// Corpus Configuration
	// ========================================================================

	DataDir               string        // directory for the SQLite corpus store
	CorpusRefreshInterval time.Duration // how often the engine reloads from its provider

	// ========================================================================
	// Engine Configuration
	// ========================================================================

	Engine EngineConfig

	// ========================================================================
	// Optional Features
	// ========================================================================

	// 1. R2 Snapshot Sync (Distributed Corpus Replication)
	// Flag: HORAIRE_R2_ENABLED
	R2Enabled     bool
	R2AccountID   string // Cloudflare Account ID
	R2AccessKeyID string // R2 Access Key ID
	R2SecretKey   string // R2 Secret Access Key
	R2BucketName  string // R2 Bucket name
	R2SnapshotKey string // Object key for the compressed corpus snapshot
	R2LockKey     string // Object key for the distributed leader lock
	R2LockTTL     time.Duration
	R2PollInterval time.Duration

	// 2. Sentry Error Tracking
	// Flag: HORAIRE_SENTRY_ENABLED
	SentryEnabled     bool
	SentryToken       string // Better Stack Errors application token
	SentryHost        string // Better Stack Errors ingesting host
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64
	SentryDebug       bool

	// 3. Better Stack Logging
	// Flag: HORAIRE_BETTERSTACK_ENABLED
	BetterStackEnabled  bool
	BetterStackToken    string
	BetterStackEndpoint string

	// 4. Metrics Authentication
	// Flag: HORAIRE_METRICS_AUTH_ENABLED
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		ServerName:      getEnv(EnvServerName, ""),
		InstanceID:      getEnv(EnvInstanceID, ""),

		DataDir:               getEnv(EnvDataDir, getDefaultDataDir()),
		CorpusRefreshInterval: getDurationEnv(EnvCorpusRefreshInterval, CorpusRefreshIntervalDefault),

		Engine: EngineConfig{
			MaxResultsPerSearch:       getIntEnv(EnvMaxResultsPerSearch, 100),
			MaxResultsPerAutocomplete: getIntEnv(EnvMaxResultsPerAutocomplete, 50),
		},

		// 1. R2 Snapshot Sync
		R2Enabled:      getBoolEnv(EnvR2Enabled, false),
		R2AccountID:    getEnv(EnvR2AccountID, ""),
		R2AccessKeyID:  getEnv(EnvR2AccessKeyID, ""),
		R2SecretKey:    getEnv(EnvR2SecretAccessKey, ""),
		R2BucketName:   getEnv(EnvR2BucketName, ""),
		R2SnapshotKey:  getEnv(EnvR2SnapshotKey, "snapshots/courses.db.zst"),
		R2LockKey:      getEnv(EnvR2LockKey, "locks/leader.json"),
		R2LockTTL:      getDurationEnv(EnvR2LockTTL, time.Hour),
		R2PollInterval: getDurationEnv(EnvR2PollInterval, R2PollIntervalDefault),

		// 2. Sentry Error Tracking
		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, ""),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),
		SentryDebug:       getBoolEnv(EnvSentryDebug, false),

		// 3. Better Stack Logging
		BetterStackEnabled:  getBoolEnv(EnvBetterStackEnabled, false),
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		// 4. Metrics Authentication
		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set and
// internally consistent.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("HORAIRE_PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("HORAIRE_DATA_DIR is required"))
	}
	if c.CorpusRefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("HORAIRE_CORPUS_REFRESH_INTERVAL must be positive, got %v", c.CorpusRefreshInterval))
	}
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine config: %w", err))
	}

	// 1. R2 Validation (only if enabled)
	if c.IsR2Enabled() {
		if c.R2AccountID == "" {
			errs = append(errs, errors.New("HORAIRE_R2_ACCOUNT_ID is required when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2AccessKeyID == "" {
			errs = append(errs, errors.New("HORAIRE_R2_ACCESS_KEY_ID is required when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2SecretKey == "" {
			errs = append(errs, errors.New("HORAIRE_R2_SECRET_ACCESS_KEY is required when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2BucketName == "" {
			errs = append(errs, errors.New("HORAIRE_R2_BUCKET_NAME is required when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2SnapshotKey == "" {
			errs = append(errs, errors.New("HORAIRE_R2_SNAPSHOT_KEY must not be empty when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2LockKey == "" {
			errs = append(errs, errors.New("HORAIRE_R2_LOCK_KEY must not be empty when HORAIRE_R2_ENABLED=true"))
		}
		if c.R2LockTTL <= 0 {
			errs = append(errs, fmt.Errorf("HORAIRE_R2_LOCK_TTL must be positive, got %v", c.R2LockTTL))
		}
		if c.R2PollInterval <= 0 {
			errs = append(errs, fmt.Errorf("HORAIRE_R2_POLL_INTERVAL must be positive, got %v", c.R2PollInterval))
		}
	}

	// 2. Sentry Validation (only if enabled)
	if c.IsSentryEnabled() {
		if c.SentryToken == "" {
			errs = append(errs, errors.New("HORAIRE_SENTRY_TOKEN is required when HORAIRE_SENTRY_ENABLED=true"))
		}
		if c.SentryHost == "" {
			errs = append(errs, errors.New("HORAIRE_SENTRY_HOST is required when HORAIRE_SENTRY_ENABLED=true"))
		}
		if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
			errs = append(errs, fmt.Errorf("HORAIRE_SENTRY_SAMPLE_RATE must be between 0 and 1, got %v", c.SentrySampleRate))
		}
	}

	// 3. Better Stack Validation (only if enabled)
	if c.IsBetterStackEnabled() {
		if c.BetterStackToken == "" {
			errs = append(errs, errors.New("HORAIRE_BETTERSTACK_TOKEN is required when HORAIRE_BETTERSTACK_ENABLED=true"))
		}
	}

	// 4. Metrics Validation (only if enabled)
	if c.IsMetricsAuthEnabled() {
		if c.MetricsPassword == "" {
			errs = append(errs, errors.New("HORAIRE_METRICS_PASSWORD is required when HORAIRE_METRICS_AUTH_ENABLED=true"))
		}
		if strings.TrimSpace(c.MetricsUsername) == "" {
			errs = append(errs, errors.New("HORAIRE_METRICS_USERNAME is required when HORAIRE_METRICS_AUTH_ENABLED=true"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Feature Enablement Checks (Unified Pattern)
// ----------------------------------------------------------------------------

// IsR2Enabled returns true if R2 snapshot sync is enabled.
func (c *Config) IsR2Enabled() bool {
	return c.R2Enabled
}

// IsSentryEnabled returns true if Sentry error tracking is enabled.
func (c *Config) IsSentryEnabled() bool {
	return c.SentryEnabled
}

// IsBetterStackEnabled returns true if Better Stack logging is enabled.
func (c *Config) IsBetterStackEnabled() bool {
	return c.BetterStackEnabled
}

// IsMetricsAuthEnabled returns true if Basic Auth is enabled for the
// /metrics endpoint.
func (c *Config) IsMetricsAuthEnabled() bool {
	return c.MetricsAuthEnabled
}

// ----------------------------------------------------------------------------
// Helper Methods
// ----------------------------------------------------------------------------

// getEnv retrieves an environment variable with fallback to a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable with fallback to a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable with fallback to a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves a float64 environment variable with fallback to a default value.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable with fallback to a default value.
// Accepts "true", "1", "yes" (case-insensitive) as true values.
// Accepts "false", "0", "no" (case-insensitive) as false values.
// Returns defaultValue for empty or unrecognized values.
func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// getDefaultDataDir returns the platform-specific default data directory.
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite corpus database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "courses.db")
}

// R2Endpoint returns the R2 S3-compatible endpoint URL.
func (c *Config) R2Endpoint() string {
	if c.R2AccountID == "" {
		return ""
	}
	return "https://" + c.R2AccountID + ".r2.cloudflarestorage.com"
}
