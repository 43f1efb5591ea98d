package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cristianoliveira/leadnexus/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.Get("notes", "lead-1")
	require.ErrorIs(t, err, ErrNotFound)

	value := []byte("first")
	require.NoError(t, m.Put("notes", "lead-1", value))
	value[0] = 'X'
	got, err := m.Get("notes", "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got), "stored value must not alias the caller's slice")

	require.NoError(t, m.Put("notes", "lead-0", []byte("zero")))
	require.NoError(t, m.Put("alerts", "a", []byte("alert")))
	entries, err := m.List("notes")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "lead-0", entries[0].Key)

	require.NoError(t, m.Delete("notes", "lead-0"))
	require.ErrorIs(t, m.Delete("notes", "lead-0"), ErrNotFound)
	require.ErrorIs(t, m.Put("", "k", nil), ErrInvalidKey)
	require.NoError(t, m.Close())
}

func TestMemoryStoreConcurrent(t *testing.T) {
	m := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%02d", i)
			assert.NoError(t, m.Put("ns", key, []byte(key)))
			_, err := m.Get("ns", key)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := m.List("ns")
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestNewForBackend(t *testing.T) {
	dir := t.TempDir()

	store, err := NewForBackend("memory", dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewForBackend("SQLite", dir)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, store)
	require.NoError(t, store.Close())

	store, err = NewForBackend("postgres", dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewForBackend("sqlite", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestNewForBackendFallsBackWhenSQLiteFails(t *testing.T) {
	orig := openSQLite
	t.Cleanup(func() { openSQLite = orig })
	openSQLite = func(string) (Store, error) { return nil, errors.New("disk full") }

	store, err := NewForBackend("sqlite", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
