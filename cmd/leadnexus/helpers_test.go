package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/cristianoliveira/leadnexus/internal/hooks"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/cristianoliveira/leadnexus/internal/storage"
	"github.com/spf13/cobra"
)

type fakeClient struct {
	records  []domain.Record
	loadErr  error
	ws       *app.Workspace
	queue    *notification.Queue
	engine   formatter.TemplateEngine
	registry formatter.PresetRegistry
	hooksDir string

	locations []string
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	queue := notification.NewQueue(notification.Options{DefaultLifetime: time.Hour})
	t.Cleanup(queue.Close)
	return &fakeClient{
		records:  sampleLeads(),
		ws:       app.NewWorkspace(storage.NewMemoryStore()),
		queue:    queue,
		engine:   formatter.NewTemplateEngine(),
		registry: formatter.NewPresetRegistry(),
	}
}

func (f *fakeClient) LoadLeads(ctx context.Context, location string) ([]domain.Record, error) {
	f.locations = append(f.locations, location)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.records, nil
}

func (f *fakeClient) Workspace() (*app.Workspace, error) { return f.ws, nil }

func (f *fakeClient) Templates() (formatter.TemplateEngine, formatter.PresetRegistry, error) {
	return f.engine, f.registry, nil
}

func (f *fakeClient) Queue() (*notification.Queue, error) { return f.queue, nil }

func (f *fakeClient) Hooks() *hooks.Runner {
	return hooks.New(hooks.Options{Dir: f.hooksDir, FailureMode: hooks.FailureAbort})
}

func (f *fakeClient) Source(location string) (leads.Source, error) {
	f.locations = append(f.locations, location)
	return &staticSource{records: f.records}, nil
}

type staticSource struct {
	records []domain.Record
}

func (s *staticSource) Load(ctx context.Context) ([]domain.Record, error) {
	return s.records, nil
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

// runCommand executes c with args and returns what it wrote to stdout.
func runCommand(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

// captureConsole redirects colored console messages for the test.
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	colors.SetOutput(&buf, &buf)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &buf
}

func assertPanicsWithNilClient(t *testing.T, build func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic, got nil")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected panic message as string, got %T", r)
		}
		if !bytes.Contains([]byte(msg), []byte("client dependency cannot be nil")) {
			t.Fatalf("expected panic message to mention nil dependency, got %q", msg)
		}
	}()
	build()
}
