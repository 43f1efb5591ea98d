package errors

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOutput is a Printer that records calls.
type recordingOutput struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingOutput) add(kind string, msgs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := ""
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	r.calls = append(r.calls, kind+":"+msg)
}

func (r *recordingOutput) Error(msgs ...string)   { r.add("error", msgs) }
func (r *recordingOutput) Warning(msgs ...string) { r.add("warning", msgs) }
func (r *recordingOutput) Info(msgs ...string)    { r.add("info", msgs) }
func (r *recordingOutput) Success(msgs ...string) { r.add("success", msgs) }

type handlerAdapter struct{ out *recordingOutput }

func (h handlerAdapter) Error(msg string)   { h.out.Error(msg) }
func (h handlerAdapter) Warning(msg string) { h.out.Warning(msg) }
func (h handlerAdapter) Info(msg string)    { h.out.Info(msg) }
func (h handlerAdapter) Success(msg string) { h.out.Success(msg) }

func newQueue(t *testing.T) *notification.Queue {
	t.Helper()
	q := notification.NewQueue(notification.Options{DefaultLifetime: time.Hour})
	t.Cleanup(q.Close)
	return q
}

func TestCLIHandler(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("boom")
	h.Warning("slow")
	h.Info("3 leads")
	h.Success("saved")

	assert.Equal(t, []string{"error:boom", "warning:slow", "info:3 leads", "success:saved"}, out.calls)
}

func TestNewDefaultCLIHandler(t *testing.T) {
	require.NotNil(t, NewDefaultCLIHandler())
}

func TestCLIHandlerWithPrefix(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.WithPrefix(" import ").Warning("2 rows skipped")
	h.Info("done")

	assert.Equal(t, []string{"warning:import: 2 rows skipped", "info:done"}, out.calls)
}

func TestCLIHandlerConcurrent(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Info("tick")
		}()
	}
	wg.Wait()
	assert.Len(t, out.calls, 50)
}

func TestQueueHandlerEnqueuesByKind(t *testing.T) {
	q := newQueue(t)
	h := NewQueueHandler(q, "")

	h.Error("Search failed")
	h.Warning("Slow backend")
	h.Info("")
	h.Success("Saved")

	list := q.List()
	require.Len(t, list, 3)
	assert.Equal(t, notification.KindError, list[0].Kind)
	assert.Equal(t, "Search failed", list[0].Title)
	assert.Equal(t, notification.KindWarning, list[1].Kind)
	assert.Equal(t, notification.KindSuccess, list[2].Kind)
}

func TestQueueHandlerWithTitle(t *testing.T) {
	q := newQueue(t)
	NewQueueHandler(q, "Import").Warning("2 rows skipped")

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Import", list[0].Title)
	assert.Equal(t, "2 rows skipped", list[0].Message)
}

func TestReport(t *testing.T) {
	out := &recordingOutput{}
	h := handlerAdapter{out}

	Report(h, notification.Error("Search failed", errors.New("timeout")))
	Report(h, notification.Info("Alert", ""))

	assert.Equal(t, []string{"error:Search failed: timeout", "info:Alert"}, out.calls)
}

func TestDrain(t *testing.T) {
	q := newQueue(t)
	_, err := q.Enqueue(notification.Success("Saved search", "berlin ceos"))
	require.NoError(t, err)
	_, err = q.Enqueue(notification.Warning("Slow", ""))
	require.NoError(t, err)

	out := &recordingOutput{}
	n := Drain(q, handlerAdapter{out})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"success:Saved search: berlin ceos", "warning:Slow"}, out.calls)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, Drain(q, handlerAdapter{out}))
}
