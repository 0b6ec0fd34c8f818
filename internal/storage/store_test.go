package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("k", "v"))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, s.Delete("k"))
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete("k"))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s := NewFileStore(path)
	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("other", "xyz"))
	require.NoError(t, s.Delete("other"))

	reopened := NewFileStore(path)
	got, err := reopened.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	_, err = reopened.Get("other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	_, err := s.Get("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{{"), 0o644))

	s := NewFileStore(path)
	_, err := s.Get("anything")
	assert.ErrorIs(t, err, ErrNotFound)

	// The store must recover by rewriting the file on the next Set.
	require.NoError(t, s.Set("k", "v"))
	reopened := NewFileStore(path)
	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFileStoreNoPartialFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	s := NewFileStore(path)
	require.NoError(t, s.Set("k", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.json", entries[0].Name())
}
