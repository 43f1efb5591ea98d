package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "leadnexus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("notes", "lead-1", []byte(`{"text":"call back"}`)))
	got, err := s.Get("notes", "lead-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"call back"}`, string(got))

	require.NoError(t, s.Put("notes", "lead-1", []byte(`{"text":"sent intro"}`)))
	got, err = s.Get("notes", "lead-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"sent intro"}`, string(got))
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("notes", "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("alerts", "a1", []byte("{}")))

	require.NoError(t, s.Delete("alerts", "a1"))
	_, err := s.Get("alerts", "a1")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete("alerts", "a1"), ErrNotFound)
}

func TestListByNamespace(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Put("saved_searches", "b", []byte("2")))
	require.NoError(t, s.Put("saved_searches", "a", []byte("1")))
	require.NoError(t, s.Put("notes", "x", []byte("3")))

	entries, err := s.List("saved_searches")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, fixed, entries[0].UpdatedAt)

	empty, err := s.List("templates")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestInvalidKeys(t *testing.T) {
	s := newTestStore(t)

	require.ErrorIs(t, s.Put("", "k", nil), ErrInvalidKey)
	require.ErrorIs(t, s.Put("ns", " ", nil), ErrInvalidKey)
	_, err := s.List("")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leadnexus.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("templates", "intro", []byte("Hi {{name}}")))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get("templates", "intro")
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}", string(got))
}
