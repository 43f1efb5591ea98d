package notification

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultLifetime is the lifetime given to notifications that do not set one.
const DefaultLifetime = 5 * time.Second

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d and returns a handle to cancel it. f must run
// asynchronously, never inside the Scheduler call.
type Scheduler func(d time.Duration, f func()) Timer

// Logger is the subset of the structured logger the queue writes to.
type Logger interface {
	Debug(msg string, args ...any)
}

// Options configures a Queue.
type Options struct {
	// DefaultLifetime applies to notifications enqueued without a lifetime.
	DefaultLifetime time.Duration
	// NewID generates notification ids. Defaults to ULIDs.
	NewID func() string
	// Schedule arms expiry timers. Defaults to time.AfterFunc.
	Schedule Scheduler
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// OnChange is called after every change to the queue, outside the lock.
	OnChange func()
	Logger   Logger
}

type entry struct {
	notification Notification
	timer        Timer
}

// Queue is an ordered collection of notifications with per-item expiry.
// It is safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*entry
	opts    Options
}

// NewQueue creates an empty queue.
func NewQueue(opts Options) *Queue {
	if opts.DefaultLifetime <= 0 {
		opts.DefaultLifetime = DefaultLifetime
	}
	if opts.NewID == nil {
		opts.NewID = ulidGenerator()
	}
	if opts.Schedule == nil {
		opts.Schedule = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	return &Queue{
		entries: make(map[string]*entry),
		opts:    opts,
	}
}

// ulidGenerator returns a generator of monotonically increasing ULIDs.
func ulidGenerator() func() string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}
}

// Enqueue appends a notification and returns its assigned id. An empty kind
// defaults to info. Non-sticky notifications expire after their lifetime,
// or the queue default when none is set.
func (q *Queue) Enqueue(n Notification) (string, error) {
	if n.Kind == "" {
		n.Kind = KindInfo
	}
	if err := n.Validate(); err != nil {
		return "", err
	}
	if n.Sticky {
		n.Lifetime = 0
	} else if n.Lifetime == 0 {
		n.Lifetime = q.opts.DefaultLifetime
	}

	q.mu.Lock()
	id := q.opts.NewID()
	if _, exists := q.entries[id]; exists {
		q.mu.Unlock()
		return "", ErrDuplicateID
	}
	n.ID = id
	n.CreatedAt = q.opts.Now()
	e := &entry{notification: n}
	q.entries[id] = e
	q.order = append(q.order, id)
	if !n.Persistent() {
		e.timer = q.opts.Schedule(n.Lifetime, func() { q.expire(id) })
	}
	q.mu.Unlock()

	q.opts.Logger.Debug("notification enqueued", "id", id, "kind", n.Kind.String(), "lifetime", n.Lifetime.String())
	q.changed()
	return id, nil
}

// Remove removes the notification with the given id and cancels its timer.
// Unknown or already removed ids are a no-op and return false.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.opts.Logger.Debug("notification removed", "id", id)
		q.changed()
	}
	return removed
}

// ClearAll empties the queue, cancelling every pending expiry, and returns
// the number of notifications removed.
func (q *Queue) ClearAll() int {
	q.mu.Lock()
	count := len(q.order)
	for _, id := range q.order {
		if e := q.entries[id]; e.timer != nil {
			e.timer.Stop()
		}
	}
	q.order = nil
	q.entries = make(map[string]*entry)
	q.mu.Unlock()

	if count > 0 {
		q.opts.Logger.Debug("notifications cleared", "count", count)
		q.changed()
	}
	return count
}

// List returns a snapshot of the current notifications in insertion order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.entries[id].notification)
	}
	return out
}

// Get returns the notification with the given id if it is still queued.
func (q *Queue) Get(id string) (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[id]
	if !ok {
		return Notification{}, false
	}
	return e.notification, true
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Invoke removes the notification and runs its action callback, if any.
// Returns false when the id is not queued.
func (q *Queue) Invoke(id string) bool {
	q.mu.Lock()
	e, ok := q.entries[id]
	var action *Action
	if ok {
		action = e.notification.Action
		q.removeLocked(id)
	}
	q.mu.Unlock()

	if !ok {
		return false
	}
	q.changed()
	if action != nil && action.Callback != nil {
		action.Callback()
	}
	return true
}

// Close clears the queue, stopping all timers.
func (q *Queue) Close() {
	q.ClearAll()
}

// expire is the timer callback. The id may already be gone.
func (q *Queue) expire(id string) {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.opts.Logger.Debug("notification expired", "id", id)
		q.changed()
	}
}

func (q *Queue) removeLocked(id string) bool {
	e, ok := q.entries[id]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(q.entries, id)
	for i, queued := range q.order {
		if queued == id {
			q.order = append(q.order[:i:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

func (q *Queue) changed() {
	if q.opts.OnChange != nil {
		q.opts.OnChange()
	}
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
