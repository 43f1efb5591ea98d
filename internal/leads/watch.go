package leads

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes from editors and exporters.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports when a lead file changes on disk.
// The parent directory is watched so atomic rename-over saves are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changes  chan struct{}

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path. Call Start to begin receiving events.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("leads: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("leads: watch %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes receives one value per debounced burst of changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("leads: watch %s: %w", w.path, err)
	}
	w.running = true
	go w.run(ctx)
	logging.Debug("watching leads file", "path", w.path)
	return nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("leads watcher error", "error", err.Error())
		case <-timerC:
			timerC = nil
			if !pending {
				continue
			}
			pending = false
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
