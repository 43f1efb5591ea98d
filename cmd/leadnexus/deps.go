package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/errors"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/cristianoliveira/leadnexus/internal/hooks"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/cristianoliveira/leadnexus/internal/storage"
)

type leadLoader interface {
	LoadLeads(ctx context.Context, location string) ([]domain.Record, error)
}

type workspaceProvider interface {
	Workspace() (*app.Workspace, error)
}

type templateProvider interface {
	Templates() (formatter.TemplateEngine, formatter.PresetRegistry, error)
}

type queueProvider interface {
	Queue() (*notification.Queue, error)
}

type hooksProvider interface {
	Hooks() *hooks.Runner
}

// runtime holds the services shared by all commands. They are built on first
// use, after the root command has loaded the configuration.
type runtime struct {
	mu       sync.Mutex
	opened   bool
	err      error
	queue    *notification.Queue
	store    storage.Store
	ws       *app.Workspace
	engine   formatter.TemplateEngine
	registry formatter.PresetRegistry
	handler  errors.ErrorHandler

	hooksOnce sync.Once
	hooks     *hooks.Runner
}

var leadClient = &runtime{}

// openStore is replaced in tests.
var openStore = storage.NewFromConfig

func (r *runtime) open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opened {
		return r.err
	}
	r.opened = true

	r.handler = errors.NewDefaultCLIHandler()
	r.queue = notification.NewQueue(notification.Options{
		DefaultLifetime: time.Duration(config.GetInt("notification_lifetime_ms", 5000)) * time.Millisecond,
		Logger:          logging.GetGlobal(),
	})

	store, err := openStore()
	if err != nil {
		r.err = fmt.Errorf("open storage: %w", err)
		return r.err
	}
	r.store = store
	r.ws = app.NewWorkspace(store)

	r.engine = formatter.NewTemplateEngine()
	r.registry = formatter.NewPresetRegistry()
	if n, err := r.ws.RegisterTemplates(r.registry); err != nil {
		logging.Warn("loading saved templates failed", "error", err.Error())
	} else if n > 0 {
		logging.Debug("saved templates loaded", "count", n)
	}
	return nil
}

// Queue returns the notification queue drained to the console on exit.
func (r *runtime) Queue() (*notification.Queue, error) {
	if err := r.open(); err != nil && r.queue == nil {
		return nil, err
	}
	return r.queue, nil
}

// Workspace returns the persisted user workspace.
func (r *runtime) Workspace() (*app.Workspace, error) {
	if err := r.open(); err != nil {
		return nil, err
	}
	return r.ws, nil
}

// Templates returns the template engine and the registry holding built-in
// and saved templates.
func (r *runtime) Templates() (formatter.TemplateEngine, formatter.PresetRegistry, error) {
	if err := r.open(); err != nil {
		return nil, nil, err
	}
	return r.engine, r.registry, nil
}

// Hooks returns the runner for user hook scripts.
func (r *runtime) Hooks() *hooks.Runner {
	r.hooksOnce.Do(func() {
		r.hooks = hooks.New(hooks.OptionsFromConfig())
	})
	return r.hooks
}

// Source resolves a lead source location.
func (r *runtime) Source(location string) (leads.Source, error) {
	return leads.Open(location)
}

// LoadLeads fetches every lead from location, or the configured source.
func (r *runtime) LoadLeads(ctx context.Context, location string) ([]domain.Record, error) {
	source, err := r.Source(location)
	if err != nil {
		return nil, err
	}
	queue, err := r.Queue()
	if err != nil {
		return nil, err
	}
	return app.NewSearchUseCase(source, queue).Load(ctx)
}

// Close waits for async hooks, reports pending notifications to the console
// and closes storage.
func (r *runtime) Close() error {
	if r.hooks != nil {
		r.hooks.Wait()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.opened {
		return nil
	}
	if r.queue != nil {
		errors.Drain(r.queue, r.handler)
		r.queue.Close()
	}
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
