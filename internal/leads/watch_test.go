package leads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("unrelated file must not trigger a change")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(`[{"full_name":"Sam"}]`), 0o644))
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	require.NoError(t, w.Close())
}

func TestWatcherStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "leads.csv")
	w, err := NewWatcher(path, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	require.NoError(t, w.Close())
}
