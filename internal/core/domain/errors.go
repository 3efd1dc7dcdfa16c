package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error kinds. Every error produced by the pipeline wraps exactly one of them,
// so callers classify with errors.Is.
var (
	// ErrToken is returned for malformed or empty input at the lexical stage.
	ErrToken = zerr.New("token error")

	// ErrSyntax is returned for malformed declarations, reserved names, empty lists,
	// duplicate names and dependency cycles. It usually carries a line.
	ErrSyntax = zerr.New("syntax error")

	// ErrUserInput is returned when a requested task or referenced name does not exist.
	ErrUserInput = zerr.New("user input error")

	// ErrCommand is returned when a spawned process exits with a non-zero code.
	ErrCommand = zerr.New("command error")

	// ErrInternal is returned when a process cannot be spawned or an invariant breaks.
	ErrInternal = zerr.New("internal error")
)

// MetaLine is the metadata key holding the 1-based source line of an error.
const MetaLine = "line"

// NewTokenError creates a lexical error.
func NewTokenError(msg string) error {
	return zerr.Wrap(ErrToken, msg)
}

// NewSyntaxError creates a syntax error at the given source line.
func NewSyntaxError(msg string, line int) error {
	return zerr.With(zerr.Wrap(ErrSyntax, msg), MetaLine, line)
}

// NewUserInputError creates an error for an unknown name supplied by the user.
func NewUserInputError(msg string) error {
	return zerr.Wrap(ErrUserInput, msg)
}

// NewInternalError creates an internal error, optionally wrapping a cause.
func NewInternalError(msg string, cause error) error {
	err := zerr.Wrap(ErrInternal, msg)
	if cause != nil {
		err = zerr.With(err, "cause", cause.Error())
	}
	return err
}

// LineOf returns the source line attached anywhere in the error chain.
func LineOf(err error) (int, bool) {
	for err != nil {
		var zErr *zerr.Error
		if !errors.As(err, &zErr) {
			return 0, false
		}
		if line, ok := zErr.Metadata()[MetaLine].(int); ok {
			return line, true
		}
		err = zErr.Unwrap()
	}
	return 0, false
}

// KindOf returns the short name of the error kind, or "error" if none matches.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrToken):
		return "TokenError"
	case errors.Is(err, ErrSyntax):
		return "SyntaxError"
	case errors.Is(err, ErrUserInput):
		return "UserInputError"
	case errors.Is(err, ErrCommand):
		return "CommandError"
	case errors.Is(err, ErrInternal):
		return "InternalError"
	default:
		return "error"
	}
}
