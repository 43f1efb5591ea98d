package hooks

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, point, name, body string, mode os.FileMode) {
	t.Helper()
	pointDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pointDir, name), []byte("#!/bin/sh\n"+body+"\n"), mode))
}

func TestScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, PointAlertMatched, "20-second.sh", "exit 0", 0o755)
	writeScript(t, dir, PointAlertMatched, "10-first.sh", "exit 0", 0o755)
	writeScript(t, dir, PointAlertMatched, "README", "not a hook", 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, PointAlertMatched, "nested"), 0o755))

	r := New(Options{Dir: dir})
	scripts, err := r.Scripts(PointAlertMatched)
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "10-first.sh", filepath.Base(scripts[0]))
	assert.Equal(t, "20-second.sh", filepath.Base(scripts[1]))

	scripts, err = r.Scripts(PointLeadsImported)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestScriptsWithoutDir(t *testing.T) {
	scripts, err := New(Options{}).Scripts(PointAlertMatched)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestRunPassesEnvironmentInOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.txt")
	writeScript(t, dir, PointAlertMatched, "a.sh", `echo "a $HOOK_POINT $LEADNEXUS_ALERT_NAME" >> "$OUT_FILE"`, 0o755)
	writeScript(t, dir, PointAlertMatched, "b.sh", `echo "b $LEADNEXUS_MATCHED" >> "$OUT_FILE"`, 0o755)

	r := New(Options{Dir: dir})
	err := r.Run(context.Background(), PointAlertMatched, map[string]string{
		"OUT_FILE":             out,
		"LEADNEXUS_ALERT_NAME": "berlin",
		"LEADNEXUS_MATCHED":    "3",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a alert-matched berlin\nb 3\n", string(data))
}

func TestRunFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    FailureMode
		wantErr bool
		ranNext bool
	}{
		{name: "abort stops", mode: FailureAbort, wantErr: true, ranNext: false},
		{name: "warn continues", mode: FailureWarn, wantErr: false, ranNext: true},
		{name: "ignore continues", mode: FailureIgnore, wantErr: false, ranNext: true},
		{name: "unknown mode warns", mode: "explode", wantErr: false, ranNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			marker := filepath.Join(t.TempDir(), "ran")
			writeScript(t, dir, PointLeadsImported, "1-fail.sh", "echo boom; exit 3", 0o755)
			writeScript(t, dir, PointLeadsImported, "2-next.sh", `touch "$MARKER"`, 0o755)

			var output bytes.Buffer
			r := New(Options{Dir: dir, FailureMode: tt.mode, Output: &output})
			err := r.Run(context.Background(), PointLeadsImported, map[string]string{"MARKER": marker})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "hook 1-fail.sh failed")
			} else {
				require.NoError(t, err)
			}
			_, statErr := os.Stat(marker)
			assert.Equal(t, tt.ranNext, statErr == nil)
			assert.Contains(t, output.String(), "boom")
		})
	}
}

func TestRunAsync(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	for _, name := range []string{"a.sh", "b.sh", "c.sh"} {
		writeScript(t, dir, PointAlertMatched, name, `touch "$OUT_DIR/$(basename "$0")"`, 0o755)
	}

	r := New(Options{Dir: dir, Async: true, MaxAsync: 2, AsyncTimeout: 5 * time.Second})
	require.NoError(t, r.Run(context.Background(), PointAlertMatched, map[string]string{"OUT_DIR": outDir}))
	r.Wait()

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	// The third script may be skipped while two are pending.
	assert.GreaterOrEqual(t, len(entries), 2)
	assert.LessOrEqual(t, len(entries), 3)
}

func TestRunAsyncTimeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, PointAlertMatched, "slow.sh", "exec sleep 5", 0o755)

	var output bytes.Buffer
	r := New(Options{Dir: dir, Async: true, AsyncTimeout: 50 * time.Millisecond, FailureMode: FailureIgnore, Output: &output})
	start := time.Now()
	require.NoError(t, r.Run(context.Background(), PointAlertMatched, nil))
	r.Wait()
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestNewDefaults(t *testing.T) {
	r := New(Options{})
	assert.Equal(t, FailureWarn, r.opts.FailureMode)
	assert.Equal(t, defaultAsyncTimeout, r.opts.AsyncTimeout)
	assert.Equal(t, defaultMaxAsync, r.opts.MaxAsync)
	assert.NotNil(t, r.opts.Logger)
}

type warnings struct{ msgs []string }

func (w *warnings) Error(string)       {}
func (w *warnings) Warning(msg string) { w.msgs = append(w.msgs, msg) }
func (w *warnings) Info(string)        {}
func (w *warnings) Success(string)     {}

func TestWarnModeReportsFailure(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, PointAlertMatched, "notify.sh", "exit 1", 0o755)

	w := &warnings{}
	r := New(Options{Dir: dir, FailureMode: FailureWarn, Output: io.Discard, Warnings: w})
	require.NoError(t, r.Run(context.Background(), PointAlertMatched, nil))

	require.Len(t, w.msgs, 1)
	assert.Contains(t, w.msgs[0], "hook notify.sh failed")
}
