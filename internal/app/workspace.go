// Package app holds the use cases behind the CLI and TUI: searching leads,
// previewing emails, and the saved searches, notes, templates and alerts
// kept in the local workspace.
package app

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/cristianoliveira/leadnexus/internal/storage"
	"github.com/oklog/ulid/v2"
)

// Storage namespaces used by the workspace.
const (
	NamespaceSavedSearches = "saved_searches"
	NamespaceNotes         = "notes"
	NamespaceTemplates     = "templates"
	NamespaceAlerts        = "alerts"
)

var (
	// ErrNotFound indicates the requested workspace item does not exist.
	ErrNotFound = storage.ErrNotFound
	// ErrEmptyName indicates a saved search, template or alert without a name.
	ErrEmptyName = errors.New("name cannot be empty")
	// ErrInvalidFrequency indicates an alert frequency other than daily or weekly.
	ErrInvalidFrequency = errors.New("invalid alert frequency")
)

// SavedSearch is a named set of search criteria.
type SavedSearch struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Criteria  domain.FilterCriteria `json:"criteria"`
	CreatedAt time.Time             `json:"created_at"`
}

// Note is free text attached to a lead.
type Note struct {
	LeadID    string    `json:"lead_id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Frequency is how often an alert is evaluated.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid checks if the frequency is known.
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// String returns the string representation of the frequency.
func (f Frequency) String() string {
	return string(f)
}

// Interval returns the time between two runs.
func (f Frequency) Interval() time.Duration {
	if f == FrequencyWeekly {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	return f, nil
}

// Alert notifies when leads matching its criteria are present.
type Alert struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Criteria  domain.FilterCriteria `json:"criteria"`
	Frequency Frequency             `json:"frequency"`
	Enabled   bool                  `json:"enabled"`
	CreatedAt time.Time             `json:"created_at"`
	LastRunAt time.Time             `json:"last_run_at,omitempty"`
}

// Due reports whether the alert should run at now.
func (a Alert) Due(now time.Time) bool {
	return a.Enabled && (a.LastRunAt.IsZero() || !now.Before(a.LastRunAt.Add(a.Frequency.Interval())))
}

// Workspace stores user data as JSON values in a storage.Store.
type Workspace struct {
	store storage.Store
	now   func() time.Time
	newID func() string
}

// NewWorkspace creates a workspace over store.
func NewWorkspace(store storage.Store) *Workspace {
	if store == nil {
		panic("NewWorkspace: store dependency cannot be nil")
	}
	return &Workspace{store: store, now: time.Now, newID: newULID()}
}

func newULID() func() string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}
}

// SaveSearch stores criteria under name. Saving an existing name replaces it.
func (w *Workspace) SaveSearch(name string, criteria domain.FilterCriteria) (SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedSearch{}, ErrEmptyName
	}
	s := SavedSearch{ID: w.newID(), Name: name, Criteria: criteria, CreatedAt: w.now().UTC()}
	if existing, err := w.SavedSearch(name); err == nil {
		s.ID = existing.ID
	}
	if err := putJSON(w.store, NamespaceSavedSearches, s.ID, s); err != nil {
		return SavedSearch{}, err
	}
	return s, nil
}

// SavedSearches lists saved searches oldest first.
func (w *Workspace) SavedSearches() ([]SavedSearch, error) {
	items, err := listJSON[SavedSearch](w.store, NamespaceSavedSearches)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

// SavedSearch finds a saved search by ID or, failing that, by name.
func (w *Workspace) SavedSearch(idOrName string) (SavedSearch, error) {
	if s, err := getJSON[SavedSearch](w.store, NamespaceSavedSearches, idOrName); err == nil {
		return s, nil
	} else if !errors.Is(err, ErrNotFound) {
		return SavedSearch{}, err
	}
	all, err := w.SavedSearches()
	if err != nil {
		return SavedSearch{}, err
	}
	for _, s := range all {
		if strings.EqualFold(s.Name, idOrName) {
			return s, nil
		}
	}
	return SavedSearch{}, fmt.Errorf("saved search %q: %w", idOrName, ErrNotFound)
}

// DeleteSavedSearch removes a saved search by ID or name.
func (w *Workspace) DeleteSavedSearch(idOrName string) error {
	s, err := w.SavedSearch(idOrName)
	if err != nil {
		return err
	}
	return w.store.Delete(NamespaceSavedSearches, s.ID)
}

// SetNote stores text for a lead. Blank text deletes the note.
func (w *Workspace) SetNote(leadID, text string) (Note, error) {
	leadID = strings.TrimSpace(leadID)
	if leadID == "" {
		return Note{}, fmt.Errorf("lead id cannot be empty")
	}
	if strings.TrimSpace(text) == "" {
		err := w.store.Delete(NamespaceNotes, leadID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Note{}, err
		}
		return Note{LeadID: leadID}, nil
	}
	n := Note{LeadID: leadID, Text: text, UpdatedAt: w.now().UTC()}
	if err := putJSON(w.store, NamespaceNotes, leadID, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Note returns the note for a lead.
func (w *Workspace) Note(leadID string) (Note, error) {
	return getJSON[Note](w.store, NamespaceNotes, leadID)
}

// Notes lists all notes by lead id.
func (w *Workspace) Notes() ([]Note, error) {
	return listJSON[Note](w.store, NamespaceNotes)
}

// SaveTemplate stores a user email template.
func (w *Workspace) SaveTemplate(p formatter.Preset) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("template %q: body cannot be empty", p.Name)
	}
	return putJSON(w.store, NamespaceTemplates, p.Name, p)
}

// Templates lists user templates by name.
func (w *Workspace) Templates() ([]formatter.Preset, error) {
	return listJSON[formatter.Preset](w.store, NamespaceTemplates)
}

// DeleteTemplate removes a user template.
func (w *Workspace) DeleteTemplate(name string) error {
	return w.store.Delete(NamespaceTemplates, strings.TrimSpace(name))
}

// RegisterTemplates adds every user template to registry, overriding
// built-ins with the same name, and returns how many were registered.
func (w *Workspace) RegisterTemplates(registry formatter.PresetRegistry) (int, error) {
	templates, err := w.Templates()
	if err != nil {
		return 0, err
	}
	for i, t := range templates {
		if err := registry.Register(t); err != nil {
			return i, fmt.Errorf("template %q: %w", t.Name, err)
		}
	}
	return len(templates), nil
}

// SaveAlert creates an enabled alert.
func (w *Workspace) SaveAlert(name string, criteria domain.FilterCriteria, frequency Frequency) (Alert, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Alert{}, ErrEmptyName
	}
	if !frequency.IsValid() {
		return Alert{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, frequency)
	}
	a := Alert{
		ID:        w.newID(),
		Name:      name,
		Criteria:  criteria,
		Frequency: frequency,
		Enabled:   true,
		CreatedAt: w.now().UTC(),
	}
	if err := putJSON(w.store, NamespaceAlerts, a.ID, a); err != nil {
		return Alert{}, err
	}
	return a, nil
}

// UpdateAlert overwrites a stored alert.
func (w *Workspace) UpdateAlert(a Alert) error {
	if _, err := w.Alert(a.ID); err != nil {
		return err
	}
	return putJSON(w.store, NamespaceAlerts, a.ID, a)
}

// Alert returns an alert by ID.
func (w *Workspace) Alert(id string) (Alert, error) {
	return getJSON[Alert](w.store, NamespaceAlerts, id)
}

// Alerts lists alerts oldest first.
func (w *Workspace) Alerts() ([]Alert, error) {
	items, err := listJSON[Alert](w.store, NamespaceAlerts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

// SetAlertEnabled toggles an alert.
func (w *Workspace) SetAlertEnabled(id string, enabled bool) (Alert, error) {
	a, err := w.Alert(id)
	if err != nil {
		return Alert{}, err
	}
	a.Enabled = enabled
	return a, putJSON(w.store, NamespaceAlerts, a.ID, a)
}

// DeleteAlert removes an alert.
func (w *Workspace) DeleteAlert(id string) error {
	return w.store.Delete(NamespaceAlerts, id)
}

func putJSON(store storage.Store, namespace, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("workspace: encode %s/%s: %w", namespace, key, err)
	}
	return store.Put(namespace, key, data)
}

func getJSON[T any](store storage.Store, namespace, key string) (T, error) {
	var v T
	data, err := store.Get(namespace, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("workspace: decode %s/%s: %w", namespace, key, err)
	}
	return v, nil
}

func listJSON[T any](store storage.Store, namespace string) ([]T, error) {
	entries, err := store.List(namespace)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, fmt.Errorf("workspace: decode %s/%s: %w", namespace, e.Key, err)
		}
		items = append(items, v)
	}
	return items, nil
}
