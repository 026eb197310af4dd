package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 100, cfg.Engine.MaxResultsPerSearch)
	assert.Equal(t, 50, cfg.Engine.MaxResultsPerAutocomplete)
	assert.False(t, cfg.IsR2Enabled())
	assert.False(t, cfg.IsSentryEnabled())
	assert.False(t, cfg.IsBetterStackEnabled())
	assert.False(t, cfg.IsMetricsAuthEnabled())
}

func TestLoadOverridesFromEnv(t *testing.T) {
	_ = os.Setenv(EnvPort, "8080")
	_ = os.Setenv(EnvMaxResultsPerSearch, "25")
	defer func() {
		_ = os.Unsetenv(EnvPort)
		_ = os.Unsetenv(EnvMaxResultsPerSearch)
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 25, cfg.Engine.MaxResultsPerSearch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		wantErr     bool
		errContains string
	}{
		{
			name: "valid minimal config",
			cfg: &Config{
				Port:                  "10000",
				DataDir:               "/data",
				CorpusRefreshInterval: 15 * time.Minute,
				Engine:                EngineConfig{MaxResultsPerSearch: 100, MaxResultsPerAutocomplete: 50},
			},
			wantErr: false,
		},
		{
			name: "missing port",
			cfg: &Config{
				DataDir:               "/data",
				CorpusRefreshInterval: 15 * time.Minute,
				Engine:                EngineConfig{MaxResultsPerSearch: 100, MaxResultsPerAutocomplete: 50},
			},
			wantErr:     true,
			errContains: "HORAIRE_PORT",
		},
		{
			name: "invalid engine limits",
			cfg: &Config{
				Port:                  "10000",
				DataDir:               "/data",
				CorpusRefreshInterval: 15 * time.Minute,
				Engine:                EngineConfig{MaxResultsPerSearch: 0, MaxResultsPerAutocomplete: 50},
			},
			wantErr:     true,
			errContains: "engine config",
		},
		{
			name: "R2 enabled without credentials",
			cfg: &Config{
				Port:                  "10000",
				DataDir:               "/data",
				CorpusRefreshInterval: 15 * time.Minute,
				Engine:                EngineConfig{MaxResultsPerSearch: 100, MaxResultsPerAutocomplete: 50},
				R2Enabled:             true,
			},
			wantErr:     true,
			errContains: "HORAIRE_R2_ACCOUNT_ID",
		},
		{
			name: "sentry enabled without token",
			cfg: &Config{
				Port:                  "10000",
				DataDir:               "/data",
				CorpusRefreshInterval: 15 * time.Minute,
				Engine:                EngineConfig{MaxResultsPerSearch: 100, MaxResultsPerAutocomplete: 50},
				SentryEnabled:         true,
				SentryHost:            "errors.betterstack.com",
			},
			wantErr:     true,
			errContains: "HORAIRE_SENTRY_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	assert.Equal(t, "/data/courses.db", cfg.SQLitePath())
}

func TestR2Endpoint(t *testing.T) {
	cfg := &Config{R2AccountID: "abc123"}
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", cfg.R2Endpoint())

	empty := &Config{}
	assert.Empty(t, empty.R2Endpoint())
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue time.Duration
		want         time.Duration
	}{
		{"valid duration", "5s", time.Second, 5 * time.Second},
		{"invalid duration", "invalid", time.Second, time.Second},
		{"empty value", "", time.Second, time.Second},
	}

	const key = "TEST_DURATION_CONFIG"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				_ = os.Setenv(key, tt.value)
				defer func() { _ = os.Unsetenv(key) }()
			}
			assert.Equal(t, tt.want, getDurationEnv(key, tt.defaultValue))
		})
	}
}

func TestGetBoolEnv(t *testing.T) {
	const key = "TEST_BOOL_CONFIG"
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		_ = os.Setenv(key, tt.value)
		assert.Equal(t, tt.want, getBoolEnv(key, false))
	}
	_ = os.Unsetenv(key)
	assert.True(t, getBoolEnv(key, true))
}
