// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running a single task command.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs one command to completion.
	//
	// Output a headless command produced on standard output is forwarded to
	// stdout once the command succeeded. Commands launched in a terminal
	// window write to that window instead.
	//
	// It returns a domain.ErrCommand error on a non-zero exit code and a
	// domain.ErrInternal error if the process could not be started.
	Execute(ctx context.Context, command string, stdout io.Writer) error
}
