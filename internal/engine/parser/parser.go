// Package parser builds a domain.Document from the token sequence produced by
// the lexer. Tokens are partitioned into groups, each opened by a keyword, and
// every group becomes one variable or one task.
package parser

import (
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

// Group is a contiguous run of tokens starting at a keyword token and ending
// just before the next one.
type Group struct {
	Type   domain.TokenType
	Tokens []domain.Token
}

// Line returns the source line of the group's first token.
func (g Group) Line() int {
	return g.Tokens[0].Line
}

// Parse builds a Document from tokens. The first error wins; no partial
// document is returned.
func Parse(tokens []domain.Token) (*domain.Document, error) {
	if len(tokens) == 0 {
		return nil, domain.NewTokenError("unexpected end of input")
	}

	groups := Groups(tokens)
	if len(groups) == 0 {
		return nil, domain.NewTokenError("unexpected end of input")
	}

	doc := domain.NewDocument()
	for _, g := range groups {
		switch g.Type {
		case domain.TokenSet:
			v, err := parseVariable(g)
			if err != nil {
				return nil, err
			}
			doc.AddVariable(v)
		case domain.TokenTask:
			t, err := parseTask(g)
			if err != nil {
				return nil, err
			}
			doc.AddTask(t)
		default:
			return nil, unexpectedToken(g.Tokens[0])
		}
	}
	return doc, nil
}

// Groups partitions tokens at every keyword-category token. Tokens preceding
// the first keyword form a leading group typed after its first non-newline
// token; a leading run of bare newlines is dropped.
func Groups(tokens []domain.Token) []Group {
	var starts []int
	for i, tok := range tokens {
		if tok.IsKeyword() {
			starts = append(starts, i)
		}
	}

	var groups []Group
	firstKeyword := len(tokens)
	if len(starts) > 0 {
		firstKeyword = starts[0]
	}
	for _, tok := range tokens[:firstKeyword] {
		if tok.Type != domain.TokenNewline {
			groups = append(groups, Group{Type: tok.Type, Tokens: tokens[:firstKeyword]})
			break
		}
	}

	for i, start := range starts {
		end := len(tokens)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		groups = append(groups, Group{Type: tokens[start].Type, Tokens: tokens[start:end]})
	}
	return groups
}

func parseVariable(g Group) (*domain.Variable, error) {
	if len(g.Tokens) < 4 {
		return nil, domain.NewSyntaxError("incomplete variable declaration", g.Line())
	}
	if err := expectOnlyNewlines(g.Tokens[4:]); err != nil {
		return nil, err
	}
	return &domain.Variable{
		Name:  g.Tokens[1].Value,
		Value: g.Tokens[3].Value,
		Line:  g.Line(),
	}, nil
}

func parseTask(g Group) (*domain.Task, error) {
	if len(g.Tokens) < 3 {
		return nil, domain.NewSyntaxError("incomplete task declaration", g.Line())
	}
	task := &domain.Task{
		Name: g.Tokens[1].Value,
		Line: g.Line(),
	}

	var newlines []int
	for i, tok := range g.Tokens {
		if tok.Type == domain.TokenNewline {
			newlines = append(newlines, i)
		}
	}
	if len(newlines) == 0 {
		return nil, zerr.With(domain.NewSyntaxError("unterminated task header", g.Line()), "task", task.Name)
	}

	deps, err := parseDependencies(task.Name, g.Tokens[3:newlines[0]], g.Line())
	if err != nil {
		return nil, err
	}
	task.Dependencies = deps

	end := len(g.Tokens)
	if len(newlines) > 1 {
		end = newlines[1]
	}
	cmds, err := parseCommands(task.Name, g.Tokens[newlines[0]+1:end], g.Line())
	if err != nil {
		return nil, err
	}
	task.Commands = cmds

	if end < len(g.Tokens) {
		if err := expectOnlyNewlines(g.Tokens[end:]); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func parseDependencies(task string, span []domain.Token, line int) ([]string, error) {
	var deps []string
	for _, tok := range span {
		if tok.Type == domain.TokenComma {
			continue
		}
		if tok.Type != domain.TokenDependency {
			return nil, unexpectedToken(tok)
		}
		if tok.Value == "" {
			return nil, zerr.With(emptyDependencies(tok.Line), "task", task)
		}
		deps = append(deps, tok.Value)
	}
	if len(deps) == 0 {
		return nil, zerr.With(emptyDependencies(line), "task", task)
	}
	if len(deps) == 1 && deps[0] == domain.NullDependency {
		return nil, nil
	}
	return deps, nil
}

func parseCommands(task string, span []domain.Token, line int) ([]string, error) {
	if len(span) == 0 {
		return nil, zerr.With(domain.NewSyntaxError("commands cannot be empty", line), "task", task)
	}
	cmds := make([]string, 0, len(span))
	for _, tok := range span {
		if tok.Type != domain.TokenCommand {
			return nil, unexpectedToken(tok)
		}
		if tok.Value == "" {
			return nil, zerr.With(domain.NewSyntaxError("commands cannot be empty", tok.Line), "task", task)
		}
		cmds = append(cmds, tok.Value)
	}
	return cmds, nil
}

func expectOnlyNewlines(tokens []domain.Token) error {
	for _, tok := range tokens {
		if tok.Type != domain.TokenNewline {
			return unexpectedToken(tok)
		}
	}
	return nil
}

func emptyDependencies(line int) error {
	return domain.NewSyntaxError("dependencies cannot be empty, use 'null' for a task without dependencies", line)
}

func unexpectedToken(tok domain.Token) error {
	return zerr.With(
		zerr.With(domain.NewSyntaxError("unexpected token", tok.Line), "token", tok.Type.String()),
		"value", tok.Value,
	)
}
