package ports

import "go.trai.ch/tasker/internal/core/domain"

// ConfigLoader defines the interface for loading a task-definition file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads, preprocesses, tokenizes and parses the file at path.
	Load(path string) (*domain.Document, error)
}
