// Package notification provides the in-process queue of transient status
// messages shown to the user, with per-message auto-expiry.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidKind is returned when a notification kind is unknown.
	ErrInvalidKind = errors.New("invalid notification kind")

	// ErrEmptyTitle is returned when a notification has no title.
	ErrEmptyTitle = errors.New("notification title cannot be empty")

	// ErrDuplicateID is returned when the id generator yields an id already in the queue.
	ErrDuplicateID = errors.New("duplicate notification ID")
)

// Kind represents the kind of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// IsValid checks if the notification kind is valid.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a string into a Kind.
func ParseKind(kind string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	return k, nil
}

// Action is an optional button attached to a notification.
type Action struct {
	Label    string
	Callback func()
}

// Notification is a transient user-facing status message.
type Notification struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	// Lifetime is how long the notification stays visible. Zero on enqueue
	// selects the queue default.
	Lifetime time.Duration
	// Sticky notifications never expire and must be removed explicitly.
	Sticky    bool
	Action    *Action
	CreatedAt time.Time
}

// Persistent reports whether the notification stays until removed.
func (n Notification) Persistent() bool {
	return n.Sticky || n.Lifetime <= 0
}

// ExpiresAt returns the expiry time, or the zero time for persistent notifications.
func (n Notification) ExpiresAt() time.Time {
	if n.Persistent() {
		return time.Time{}
	}
	return n.CreatedAt.Add(n.Lifetime)
}

// Validate validates the notification and returns an error if invalid.
func (n Notification) Validate() error {
	if !n.Kind.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidKind, n.Kind)
	}
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if n.Lifetime < 0 {
		return fmt.Errorf("invalid notification lifetime: %s", n.Lifetime)
	}
	return nil
}

// Error builds an error-kind notification from a failed operation.
func Error(title string, err error) Notification {
	n := Notification{Kind: KindError, Title: title}
	if err != nil {
		n.Message = err.Error()
	}
	return n
}

// Success builds a success-kind notification.
func Success(title, message string) Notification {
	return Notification{Kind: KindSuccess, Title: title, Message: message}
}

// Info builds an info-kind notification.
func Info(title, message string) Notification {
	return Notification{Kind: KindInfo, Title: title, Message: message}
}

// Warning builds a warning-kind notification.
func Warning(title, message string) Notification {
	return Notification{Kind: KindWarning, Title: title, Message: message}
}
