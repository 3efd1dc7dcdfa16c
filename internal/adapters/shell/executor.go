// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
//
// Commands starting with a relative path prefix ("./" or ".\") are launched in
// a new terminal window; everything else runs headless through the platform
// command interpreter with output captured.
type Executor struct {
	logger   ports.Logger
	goos     string
	shell    []string
	terminal []string
	lookPath func(string) (string, error)
}

// Option configures an Executor.
type Option func(*Executor)

// WithShell overrides the interpreter used for headless commands,
// e.g. []string{"bash", "-c"}. The command is appended as the last argument.
func WithShell(argv []string) Option {
	return func(e *Executor) {
		if len(argv) > 0 {
			e.shell = slices.Clone(argv)
		}
	}
}

// WithTerminal overrides the terminal emulator prefix used for terminal
// launches, e.g. []string{"xterm", "-e"}.
func WithTerminal(argv []string) Option {
	return func(e *Executor) {
		if len(argv) > 0 {
			e.terminal = slices.Clone(argv)
		}
	}
}

// WithGOOS selects the platform strategy. It defaults to runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(e *Executor) {
		e.goos = goos
	}
}

// WithLookPath replaces the executable lookup used to find a terminal emulator.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(e *Executor) {
		e.lookPath = fn
	}
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsTerminalLaunch reports whether command must run in a new terminal window.
func IsTerminalLaunch(command string) bool {
	return strings.HasPrefix(command, "./") || strings.HasPrefix(command, `.\`)
}

// Execute runs command to completion.
func (e *Executor) Execute(ctx context.Context, command string, stdout io.Writer) error {
	if IsTerminalLaunch(command) {
		return e.launchTerminal(ctx, command)
	}
	return e.runHeadless(ctx, command, stdout)
}

// Interpreter returns the argv prefix used for headless commands.
func (e *Executor) Interpreter() []string {
	if len(e.shell) > 0 {
		return e.shell
	}
	if e.goos == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"/bin/sh", "-c"}
}

func (e *Executor) runHeadless(ctx context.Context, command string, stdout io.Writer) error {
	argv := append(slices.Clone(e.Interpreter()), command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // commands come from the task file
	setCommandLine(cmd, argv)

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return startError(command, err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return startError(command, err)
	}
	if err := cmd.Start(); err != nil {
		return startError(command, err)
	}

	// Both pipes must be drained before Wait closes them.
	var outBuf, errBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&outBuf, outPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, errPipe)
		return err
	})
	copyErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return commandError(command, exitErr.ExitCode(), errBuf.String())
		}
		return startError(command, err)
	}
	if copyErr != nil {
		return zerr.With(domain.NewInternalError("failed to read command output", copyErr), "command", command)
	}

	if errBuf.Len() > 0 {
		e.logger.Warn(strings.TrimRight(errBuf.String(), "\n"))
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			_, _ = vertex.Stderr().Write(errBuf.Bytes())
		}
	}
	if stdout != nil && outBuf.Len() > 0 {
		if _, err := stdout.Write(outBuf.Bytes()); err != nil {
			return zerr.With(domain.NewInternalError("failed to forward command output", err), "command", command)
		}
	}
	return nil
}

func (e *Executor) launchTerminal(ctx context.Context, command string) error {
	launch, err := e.prepareTerminal(command)
	if err != nil {
		return err
	}
	defer launch.cleanup()

	cmd := exec.CommandContext(ctx, launch.argv[0], launch.argv[1:]...) //nolint:gosec // commands come from the task file
	setCommandLine(cmd, launch.argv)

	e.logger.Info("launching terminal: " + command)
	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return startError(command, runErr)
	}

	if launch.statusFile == "" {
		if exitErr == nil || isWindowClosedByUser(e.goos, exitErr.ExitCode()) {
			return nil
		}
		return commandError(command, exitErr.ExitCode(), "")
	}

	code, ok, err := launch.exitCode()
	if err != nil {
		return zerr.With(domain.NewInternalError("failed to read exit status", err), "command", command)
	}
	switch {
	case ok && code != 0:
		return commandError(command, code, "")
	case ok:
		return nil
	case exitErr != nil:
		return commandError(command, exitErr.ExitCode(), "")
	default:
		return zerr.With(domain.NewInternalError("terminal closed before the command finished", nil), "command", command)
	}
}

func commandError(command string, exitCode int, stderr string) error {
	err := zerr.Wrap(domain.ErrCommand, "command exited with non-zero status")
	err = zerr.With(err, "command", command)
	err = zerr.With(err, "exit_code", exitCode)
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		err = zerr.With(err, "stderr", stderr)
	}
	return err
}

func startError(command string, cause error) error {
	return zerr.With(domain.NewInternalError("failed to start command", cause), "command", command)
}
