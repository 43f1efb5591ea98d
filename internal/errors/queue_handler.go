package errors

import (
	"github.com/cristianoliveira/leadnexus/internal/notification"
)

// QueueHandler turns messages into transient notifications.
type QueueHandler struct {
	queue *notification.Queue
	title string
}

var _ ErrorHandler = (*QueueHandler)(nil)

// NewQueueHandler enqueues into q. Messages become the notification title
// unless title is set, in which case they become the message body.
func NewQueueHandler(q *notification.Queue, title string) *QueueHandler {
	return &QueueHandler{queue: q, title: title}
}

func (h *QueueHandler) Error(msg string)   { h.push(notification.KindError, msg) }
func (h *QueueHandler) Warning(msg string) { h.push(notification.KindWarning, msg) }
func (h *QueueHandler) Info(msg string)    { h.push(notification.KindInfo, msg) }
func (h *QueueHandler) Success(msg string) { h.push(notification.KindSuccess, msg) }

func (h *QueueHandler) push(kind notification.Kind, msg string) {
	n := notification.Notification{Kind: kind, Title: msg}
	if h.title != "" {
		n.Title, n.Message = h.title, msg
	}
	if n.Title == "" {
		return
	}
	_, _ = h.queue.Enqueue(n)
}

// Report sends one notification to h using its kind.
func Report(h ErrorHandler, n notification.Notification) {
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	switch n.Kind {
	case notification.KindError:
		h.Error(text)
	case notification.KindWarning:
		h.Warning(text)
	case notification.KindSuccess:
		h.Success(text)
	default:
		h.Info(text)
	}
}

// Drain reports every queued notification in order, then clears the queue.
// It returns how many were reported.
func Drain(q *notification.Queue, h ErrorHandler) int {
	pending := q.List()
	for _, n := range pending {
		Report(h, n)
		q.Remove(n.ID)
	}
	return len(pending)
}
