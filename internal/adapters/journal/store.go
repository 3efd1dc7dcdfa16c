// Package journal records the outcome of every executed task in a JSON file.
package journal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Journal = (*Store)(nil)

// Store implements ports.Journal using a flat JSON file keyed by task name.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.RunRecord
}

// NewStore creates a Journal backed by the file at the given path.
// A missing file is an empty journal.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.RunRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read journal"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal journal"), "path", s.path)
	}
	for name, rec := range s.cache {
		rec.TaskName = name
		rec.Status = domain.NormalizeStatus(string(rec.Status))
		s.cache[name] = rec
	}
	return nil
}

// save must be called with s.mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal journal")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for journal"), "path", s.path)
	}

	// Readers only ever see a complete file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write journal"), "path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace journal"), "path", s.path)
	}
	return nil
}

// Get retrieves the latest record for a task name.
func (s *Store) Get(taskName string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[taskName]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the record and flushes the journal to disk.
// Only finished runs are recorded.
func (s *Store) Put(record domain.RunRecord) error {
	if record.TaskName == "" {
		return domain.NewInternalError("run record without task name", nil)
	}
	if !record.Status.IsTerminal() {
		return zerr.With(
			zerr.With(domain.NewInternalError("run record for an unfinished task", nil), "task", record.TaskName),
			"status", string(record.Status),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[record.TaskName] = record
	return s.save()
}

// List returns the latest record of every task, ordered by task name.
func (s *Store) List() ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.RunRecord, 0, len(s.cache))
	for _, rec := range s.cache {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b domain.RunRecord) int {
		return strings.Compare(a.TaskName, b.TaskName)
	})
	return records, nil
}
