package ports

import "go.trai.ch/tasker/internal/core/domain"

// Journal defines the interface for recording task runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type Journal interface {
	// Get retrieves the latest record for a task name.
	// Returns nil, nil if the task never ran.
	Get(taskName string) (*domain.RunRecord, error)

	// Put stores a record, replacing the previous one for the same task.
	Put(record domain.RunRecord) error

	// List returns the latest record of every task, ordered by task name.
	List() ([]domain.RunRecord, error)
}
