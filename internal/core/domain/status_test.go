package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tasker/internal/core/domain"
)

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusRunning.IsTerminal())
	assert.True(t, domain.StatusSucceeded.IsTerminal())
	assert.True(t, domain.StatusFailed.IsTerminal())
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, domain.StatusRunning, domain.NormalizeStatus("Running"))
	assert.Equal(t, domain.StatusSucceeded, domain.NormalizeStatus("succeeded"))
	assert.Equal(t, domain.StatusFailed, domain.NormalizeStatus("FAILED"))
	assert.Equal(t, domain.StatusPending, domain.NormalizeStatus("whatever"))
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
}

func TestRunRecord_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3*time.Second, domain.RunRecord{StartedAt: start, FinishedAt: start.Add(3 * time.Second)}.Duration())
	assert.Zero(t, domain.RunRecord{StartedAt: start, FinishedAt: start.Add(-time.Second)}.Duration())
}
