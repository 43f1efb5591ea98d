package state

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/leadnexus/internal/domain"
)

const toastTickInterval = 250 * time.Millisecond

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// leadsLoadedMsg carries the result of a source load.
type leadsLoadedMsg struct {
	records []domain.Record
	err     error
	reload  bool
}

// sourceChangedMsg is sent when the watched lead file changes on disk.
type sourceChangedMsg struct{}

// toastTickMsg refreshes the visible notifications.
type toastTickMsg time.Time

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err error
}

func (m *Model) loadCmd(reload bool) tea.Cmd {
	search := m.search
	ctx := m.ctx
	return func() tea.Msg {
		records, err := search.Load(ctx)
		return leadsLoadedMsg{records: records, err: err, reload: reload}
	}
}

func (m *Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return sourceChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

// contextOrBackground returns ctx, or context.Background when ctx is nil.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
