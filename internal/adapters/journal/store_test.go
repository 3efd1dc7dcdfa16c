package journal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasker/internal/adapters/journal"
	"go.trai.ch/tasker/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := domain.RunRecord{
		TaskName:    "build",
		Status:      domain.StatusSucceeded,
		Fingerprint: "9a3f1c2be4d07781",
		Commands:    1,
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
	}
	require.NoError(t, store.Put(rec))

	got, err := store.Get("build")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
	assert.Equal(t, 2*time.Second, got.Duration())
}

func TestStore_Get_Missing(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	got, err := store.Get("nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.json")

	store1, err := journal.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Put(domain.RunRecord{TaskName: "lint", Status: domain.StatusFailed, Error: "boom"}))

	store2, err := journal.NewStore(path)
	require.NoError(t, err)

	got, err := store2.Get("lint")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Equal(t, "boom", got.Error)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Put_ReplacesPrevious(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.RunRecord{TaskName: "test", Status: domain.StatusFailed}))
	require.NoError(t, store.Put(domain.RunRecord{TaskName: "test", Status: domain.StatusSucceeded}))

	got, err := store.Get("test")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, got.Status)
}

func TestStore_Put_RequiresTaskName(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	err = store.Put(domain.RunRecord{Status: domain.StatusSucceeded})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestStore_Put_RequiresFinishedStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	store, err := journal.NewStore(path)
	require.NoError(t, err)

	for _, status := range []domain.Status{domain.StatusPending, domain.StatusRunning} {
		err := store.Put(domain.RunRecord{TaskName: "build", Status: status})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInternal)
	}

	got, err := store.Get("build")
	require.NoError(t, err)
	assert.Nil(t, got)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewStore_NormalizesLoadedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	content := `{
  "build": {"status": "Succeeded"},
  "test": {"task_name": "test", "status": "FAILED"},
  "lint": {"task_name": "lint", "status": "exploded"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := journal.NewStore(path)
	require.NoError(t, err)

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.RunRecord{TaskName: "build", Status: domain.StatusSucceeded}, records[0])
	assert.Equal(t, domain.RunRecord{TaskName: "lint", Status: domain.StatusPending}, records[1])
	assert.Equal(t, domain.RunRecord{TaskName: "test", Status: domain.StatusFailed}, records[2])
}

func TestStore_List_SortedByName(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	for _, name := range []string{"test", "build", "lint"} {
		require.NoError(t, store.Put(domain.RunRecord{TaskName: name, Status: domain.StatusSucceeded}))
	}

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "build", records[0].TaskName)
	assert.Equal(t, "lint", records[1].TaskName)
	assert.Equal(t, "test", records[2].TaskName)
}

func TestNewStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := journal.NewStore(path)
	require.Error(t, err)
}

func TestNewStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := journal.NewStore(path)
	require.NoError(t, err)

	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}
