package logger_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasker/internal/adapters/logger"
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	os.Stderr = originalStderr
	return output
}

func TestLogger_Info(t *testing.T) {
	output := captureStderr(t, func() {
		lg := logger.New()
		lg.Info("some message")
	})

	assert.Contains(t, output, "some message")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Warn(t *testing.T) {
	output := captureStderr(t, func() {
		lg := logger.New()
		lg.Warn("some warning")
	})

	assert.Contains(t, output, "some warning")
	assert.Contains(t, output, "WARN")
}

func TestLogger_Error(t *testing.T) {
	output := captureStderr(t, func() {
		lg := logger.New()
		lg.Error(os.ErrPermission)
	})

	assert.Contains(t, output, "permission denied")
	assert.Contains(t, output, "ERROR")
}

func TestLogger_Error_Metadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	err := zerr.With(domain.NewSyntaxError("duplicate task name", 7), "task", "build")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "duplicate task name")
	assert.Contains(t, out, "line=7")
	assert.Contains(t, out, "task=build")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)
	lg.Info("one")

	lg.SetOutput(&second)
	lg.Info("two")

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
}

func TestLogger_Tee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasker.log")

	output := captureStderr(t, func() {
		lg := logger.New()
		require.NoError(t, lg.Tee(path))
		lg.Info("mirrored line")
		require.NoError(t, lg.Close())
		lg.Info("after close")
	})

	assert.Contains(t, output, "mirrored line")

	//nolint:gosec // test file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "mirrored line"))
	assert.NotContains(t, string(data), "after close")
	assert.Contains(t, output, "after close")
}

func TestLogger_Close_WithoutTee(t *testing.T) {
	lg := logger.NewWithWriter(io.Discard)
	require.NoError(t, lg.Close())
	require.NoError(t, lg.Close())
}

func TestLogger_Tee_Reopen(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	captureStderr(t, func() {
		lg := logger.New()
		require.NoError(t, lg.Tee(first))
		lg.Info("one")
		require.NoError(t, lg.Tee(second))
		lg.Info("two")
		require.NoError(t, lg.Close())
	})

	//nolint:gosec // test file
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "one")
	assert.NotContains(t, string(data), "two")

	//nolint:gosec // test file
	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "two")
}
