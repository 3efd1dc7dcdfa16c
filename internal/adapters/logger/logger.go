// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	file   *os.File
	mu     sync.RWMutex
}

// New creates a Logger writing human-readable lines to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{logger: newSlog(w)}
}

func newSlog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = newSlog(w)
}

// Tee mirrors every subsequent line into the file at path, in addition to
// stderr. The file is created if needed and appended to otherwise. It stays
// open until Close.
func (l *Logger) Tee(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create log directory"), "path", path)
	}
	//nolint:gosec // path is provided by user settings
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open log file"), "path", path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.file
	l.file = f
	l.logger = newSlog(io.MultiWriter(os.Stderr, f))
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Close syncs and closes the log file opened by Tee, if any. Later lines go
// to stderr only.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	l.logger = newSlog(os.Stderr)

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to sync log file"), "path", f.Name())
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close log file"), "path", f.Name())
	}
	return nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its zerr metadata as attributes.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	zerr.Log(context.Background(), l.logger, err)
}
