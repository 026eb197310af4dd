package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseTimeouts(t *testing.T) {
	assert.Equal(t, 30*time.Second, DatabaseBusyTimeout)
	assert.Equal(t, time.Hour, DatabaseConnMaxLifetime)
	assert.Equal(t, 5*time.Second, HotSwapCloseGracePeriod)
}

func TestR2Timeouts(t *testing.T) {
	assert.Equal(t, 60*time.Second, R2RequestTimeout)
	assert.Equal(t, 15*time.Minute, R2PollIntervalDefault)
}

func TestCorpusRefreshIntervalDefault(t *testing.T) {
	assert.Equal(t, 15*time.Minute, CorpusRefreshIntervalDefault)
}

func TestReadinessCheckTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, ReadinessCheckTimeout)
}

func TestGracefulShutdown(t *testing.T) {
	assert.Equal(t, 15*time.Second, GracefulShutdown)
}
