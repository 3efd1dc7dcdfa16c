package domain

import "fmt"

// TokenType is the concrete kind of a lexical token.
type TokenType int

const (
	// TokenUnknown is the zero value and never produced by the lexer on purpose.
	TokenUnknown TokenType = iota
	// TokenSet is the `set` keyword opening a variable declaration.
	TokenSet
	// TokenTask is the keyword opening a task header.
	TokenTask
	// TokenIdentifier is a variable or task name.
	TokenIdentifier
	// TokenEquals is the `=` of a variable declaration.
	TokenEquals
	// TokenString is the value of a variable declaration.
	TokenString
	// TokenDependency is one entry of a task's dependency list.
	TokenDependency
	// TokenCommand is one indented command line of a task.
	TokenCommand
	// TokenNewline terminates a header, a declaration or a command block.
	TokenNewline
	// TokenColon separates a task name from its dependencies.
	TokenColon
	// TokenComma separates two dependencies.
	TokenComma
)

var tokenNames = [...]string{
	TokenUnknown:    "UNKNOWN",
	TokenSet:        "SET",
	TokenTask:       "TASK",
	TokenIdentifier: "IDENTIFIER",
	TokenEquals:     "EQUALS",
	TokenString:     "STRING",
	TokenDependency: "DEPENDENCY",
	TokenCommand:    "COMMAND",
	TokenNewline:    "NEWLINE",
	TokenColon:      "COLON",
	TokenComma:      "COMMA",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Category groups token types independently of their concrete kind.
// Only keywords carry a category other than CategoryNone.
type Category int

const (
	// CategoryNone is the category of every non-keyword token.
	CategoryNone Category = iota
	// CategoryKeyword marks tokens that open a token group.
	CategoryKeyword
)

func (c Category) String() string {
	if c == CategoryKeyword {
		return "KEYWORD"
	}
	return "NONE"
}

// Token is an immutable lexical unit with its 1-based source line.
type Token struct {
	Type     TokenType
	Category Category
	Value    string
	Line     int
}

// NewToken creates a token, tagging keyword types with CategoryKeyword.
func NewToken(typ TokenType, value string, line int) Token {
	tok := Token{Type: typ, Value: value, Line: line}
	if typ == TokenSet || typ == TokenTask {
		tok.Category = CategoryKeyword
	}
	return tok
}

// IsKeyword reports whether the token opens a token group.
func (t Token) IsKeyword() bool {
	return t.Category == CategoryKeyword
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Value, t.Line)
}
