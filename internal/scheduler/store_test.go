package scheduler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "schedules.json"))
}

func TestStoreEmptyList(t *testing.T) {
	store := testStore(t)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreAddAndGet(t *testing.T) {
	store := testStore(t)

	entry := &Entry{
		Name:     "nightly",
		Ref:      "acme/whisper:v1",
		Schedule: "0 3 * * *",
		Input:    map[string]any{"prompt": "summarize"},
		Enabled:  true,
	}
	require.NoError(t, store.Add(entry))

	got, err := store.Get("nightly")
	require.NoError(t, err)
	assert.Equal(t, "acme/whisper:v1", got.Ref)
	assert.Equal(t, "0 3 * * *", got.Schedule)
	assert.True(t, got.Enabled)

	_, err = store.Get("missing")
	assert.Error(t, err)
}

func TestStoreAddDuplicate(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Add(&Entry{Name: "nightly"}))
	err := store.Add(&Entry{Name: "nightly"})
	assert.ErrorContains(t, err, "already exists")
}

func TestStoreRemove(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Add(&Entry{Name: "one"}))
	require.NoError(t, store.Add(&Entry{Name: "two"}))

	require.NoError(t, store.Remove("one"))
	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "two", entries[0].Name)

	assert.Error(t, store.Remove("one"))
}

func TestStoreSetEnabled(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Add(&Entry{Name: "nightly", Enabled: true}))
	require.NoError(t, store.SetEnabled("nightly", false))

	got, err := store.Get("nightly")
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	assert.Error(t, store.SetEnabled("missing", true))
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")

	require.NoError(t, NewStore(path).Add(&Entry{Name: "nightly", Ref: "acme/whisper"}))

	entries, err := NewStore(path).List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "nightly", entries[0].Name)
}

func TestStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedules.json")
	require.NoError(t, NewStore(path).Add(&Entry{Name: "nightly"}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
