// Package config provides the task-definition file loader for tasker.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/tasker/internal/engine/lexer"
	"go.trai.ch/tasker/internal/engine/parser"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader for task-definition files.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the file at path and returns the parsed document.
func (l *FileConfigLoader) Load(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.NewUserInputError("task file not found"), "path", path)
		}
		return nil, zerr.With(domain.NewInternalError("failed to read task file", err), "path", path)
	}

	doc, err := Parse(string(data))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if len(doc.Tasks) == 0 {
		l.logger.Warn("task file declares no tasks: " + path)
	}
	return doc, nil
}

// Parse runs text through comment preprocessing, the lexer and the parser.
func Parse(text string) (*domain.Document, error) {
	tokens, err := lexer.Tokenize(Preprocess(text))
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}
