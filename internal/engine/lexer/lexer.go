// Package lexer turns preprocessed task-definition text into a flat sequence
// of line-numbered tokens.
//
// The format is line oriented and indentation significant:
//
//	set NAME = value
//	task name: dep1, dep2
//	    command line
//
// Comments are expected to be stripped before tokenizing. Quote awareness
// only tracks double quotes; single quotes are ordinary characters.
//
// A blank line emits a newline token only outside a task block. Inside one it
// is skipped, so a task's commands may be separated by blank lines (including
// the blank lines left behind by stripped comments) without ending the task.
package lexer

import (
	"regexp"
	"strings"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	setPrefix  = "set "
	taskPrefix = "task "
)

var setPattern = regexp.MustCompile(`^set\s+([A-Za-z_][A-Za-z0-9_]*)\s*=(.*)$`)

type lexer struct {
	tokens []domain.Token

	// inTask is true from a task header until the next non-indented line.
	inTask bool
	// openCommands is true while a run of command lines awaits its closing newline.
	openCommands    bool
	lastCommandLine int
}

// Tokenize converts text into tokens. It fails with a token error on empty
// input and with a syntax error on malformed `set` lines or task headers.
func Tokenize(text string) ([]domain.Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewTokenError("unexpected end of input")
	}

	l := &lexer{}
	for i, line := range strings.Split(text, "\n") {
		if err := l.lexLine(strings.TrimRight(line, "\r"), i+1); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) emit(typ domain.TokenType, value string, line int) {
	l.tokens = append(l.tokens, domain.NewToken(typ, value, line))
}

func (l *lexer) lexLine(line string, n int) error {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		// Blank lines inside a task block do not end it.
		if !l.inTask {
			l.emit(domain.TokenNewline, "", n)
		}
		return nil
	case strings.HasPrefix(trimmed, "#"):
		return nil
	case line[0] == ' ' || line[0] == '\t':
		l.emit(domain.TokenCommand, trimmed, n)
		l.openCommands = true
		l.lastCommandLine = n
		return nil
	}

	if l.openCommands {
		l.emit(domain.TokenNewline, "", l.lastCommandLine)
		l.openCommands = false
	}
	l.inTask = false

	if strings.HasPrefix(trimmed, setPrefix) {
		return l.lexVariable(trimmed, n)
	}
	if idx := topLevelColon(trimmed); idx >= 0 {
		l.inTask = true
		return l.lexTaskHeader(trimmed[:idx], trimmed[idx+1:], n)
	}

	l.emit(domain.TokenIdentifier, trimmed, n)
	l.emit(domain.TokenNewline, "", n)
	return nil
}

func (l *lexer) lexVariable(line string, n int) error {
	m := setPattern.FindStringSubmatch(line)
	if m == nil {
		return zerr.With(domain.NewSyntaxError("invalid variable declaration, expected: set NAME = value", n), "source", line)
	}

	l.emit(domain.TokenSet, "set", n)
	l.emit(domain.TokenIdentifier, m[1], n)
	l.emit(domain.TokenEquals, "=", n)
	l.emit(domain.TokenString, unquote(strings.TrimSpace(m[2])), n)
	l.emit(domain.TokenNewline, "", n)
	return nil
}

func (l *lexer) lexTaskHeader(left, right string, n int) error {
	name := strings.TrimSpace(left)
	if strings.HasPrefix(name, taskPrefix) {
		name = strings.TrimSpace(name[len(taskPrefix):])
	}
	name = unquote(name)

	switch name {
	case "":
		return domain.NewSyntaxError("task name cannot be empty", n)
	case domain.NullDependency:
		return zerr.With(domain.NewSyntaxError("task name 'null' is reserved", n), "task", name)
	}

	right = strings.TrimSpace(right)
	if right == "" {
		return zerr.With(
			domain.NewSyntaxError("dependencies cannot be empty, use 'null' for a task without dependencies", n),
			"task", name,
		)
	}

	l.emit(domain.TokenTask, "task", n)
	l.emit(domain.TokenIdentifier, name, n)
	l.emit(domain.TokenColon, ":", n)

	first := true
	for _, dep := range splitDependencies(right) {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}
		if !first {
			l.emit(domain.TokenComma, ",", n)
		}
		l.emit(domain.TokenDependency, unquote(dep), n)
		first = false
	}

	l.emit(domain.TokenNewline, "", n)
	return nil
}

// topLevelColon returns the index of the first ':' outside double quotes, or -1.
func topLevelColon(s string) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ':':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

// splitDependencies splits on commas outside double quotes.
func splitDependencies(s string) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// unquote strips one matching pair of surrounding double quotes. No escapes are processed.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
