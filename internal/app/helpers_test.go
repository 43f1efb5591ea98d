package app

import (
	"context"
	"testing"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/cristianoliveira/leadnexus/internal/storage"
)

type fakeSource struct {
	records []domain.Record
	err     error
	calls   int
}

func (f *fakeSource) Load(ctx context.Context) ([]domain.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func score(v float64) *float64 { return &v }

func sampleLeads() []domain.Record {
	return []domain.Record{
		domain.Lead{ID: "1", FullName: "Sam Carter", Email: "sam@acme.io", JobTitle: "CEO", CompanyName: "Acme", Location: "Berlin", LeadScore: score(72)}.ToRecord(),
		domain.Lead{ID: "2", FullName: "Ana Souza", Email: "ana@globex.com", JobTitle: "Head of Sales", CompanyName: "Globex", Location: "Lisbon", LeadScore: score(90.5)}.ToRecord(),
		domain.Lead{ID: "3", FullName: "Li Wei", Email: "li@acme.io", JobTitle: "CTO", CompanyName: "Acme"}.ToRecord(),
		domain.Lead{ID: "4", FullName: "Maria Rossi", Email: "maria@initech.com", JobTitle: "Sales Manager", CompanyName: "Initech", Location: "Berlin"}.ToRecord(),
	}
}

func newTestQueue(t *testing.T) *notification.Queue {
	t.Helper()
	q := notification.NewQueue(notification.Options{DefaultLifetime: time.Hour})
	t.Cleanup(q.Close)
	return q
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w := NewWorkspace(storage.NewMemoryStore())
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return w
}
