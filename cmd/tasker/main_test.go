package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		taskfile     string
		args         []string
		expectedExit int
	}{
		{
			name:         "Success with valid taskfile",
			taskfile:     "test: null\n    echo hello\n",
			args:         []string{"run", "test"},
			expectedExit: 0,
		},
		{
			name:         "Dry run does not execute",
			taskfile:     "test: null\n    exit 9\n",
			args:         []string{"run", "--dry-run", "test"},
			expectedExit: 0,
		},
		{
			name:         "Unknown task",
			taskfile:     "test: null\n    echo hello\n",
			args:         []string{"run", "missing"},
			expectedExit: 1,
		},
		{
			name:         "Syntax error",
			taskfile:     "test:\n    echo hello\n",
			args:         []string{"check"},
			expectedExit: 1,
		},
		{
			name:         "Missing taskfile",
			args:         []string{"-f", "nonexistent", "list"},
			expectedExit: 1,
		},
		{
			name:         "Version",
			args:         []string{"version"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graft.ResetDefaultCache()
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			t.Setenv("TASKER_CONFIG", filepath.Join(tmpDir, ".tasker.yaml"))

			if tt.taskfile != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Taskfile"), []byte(tt.taskfile), 0o600))
			}

			assert.Equal(t, tt.expectedExit, run(tt.args))
		})
	}
}

func TestRun_WritesJournal(t *testing.T) {
	graft.ResetDefaultCache()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("TASKER_CONFIG", filepath.Join(tmpDir, ".tasker.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".tasker.yaml"),
		[]byte("taskfile: tasks.txt\njournal: state/journal.json\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "tasks.txt"),
		[]byte("set MSG = hi\ngreet: null\n    echo ${MSG}\n"), 0o600))

	assert.Equal(t, 0, run([]string{"run", "greet"}))

	_, err := os.Stat(filepath.Join(tmpDir, "state", "journal.json"))
	assert.NoError(t, err)
}

func TestRun_LogFile(t *testing.T) {
	graft.ResetDefaultCache()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("TASKER_CONFIG", filepath.Join(tmpDir, ".tasker.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".tasker.yaml"),
		[]byte("log_file: logs/tasker.log\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Taskfile"),
		[]byte("greet: null\n    echo hi\n"), 0o600))

	assert.Equal(t, 0, run([]string{"run", "greet"}))

	//nolint:gosec // test file
	data, err := os.ReadFile(filepath.Join(tmpDir, "logs", "tasker.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "running task: greet")
}

func TestRun_InvalidSettings(t *testing.T) {
	graft.ResetDefaultCache()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	path := filepath.Join(tmpDir, ".tasker.yaml")
	t.Setenv("TASKER_CONFIG", path)

	require.NoError(t, os.WriteFile(path, []byte("unknown_key: true\n"), 0o600))

	assert.Equal(t, 1, run([]string{"list"}))
}
