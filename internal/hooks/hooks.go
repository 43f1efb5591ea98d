// Package hooks runs user scripts at fixed points, such as when an alert
// finds matching leads. Scripts live in <hooks_dir>/<point>/ and run in name
// order; non-executable files are skipped.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/errors"
	"github.com/cristianoliveira/leadnexus/internal/logging"
)

// Hook points.
const (
	PointAlertMatched  = "alert-matched"
	PointLeadsImported = "leads-imported"
)

// FailureMode decides what a failing script does to the run.
type FailureMode string

const (
	// FailureAbort stops at the first failing script and returns its error.
	FailureAbort FailureMode = "abort"
	// FailureWarn prints a warning and continues.
	FailureWarn FailureMode = "warn"
	// FailureIgnore continues silently.
	FailureIgnore FailureMode = "ignore"
)

const (
	defaultAsyncTimeout = 30 * time.Second
	defaultMaxAsync     = 10
)

// Options configures a Runner.
type Options struct {
	Dir          string
	FailureMode  FailureMode
	Async        bool
	AsyncTimeout time.Duration
	MaxAsync     int
	// Output receives script output. Defaults to os.Stderr.
	Output io.Writer
	Logger logging.Logger
	// Warnings receives failures in FailureWarn mode.
	Warnings errors.ErrorHandler
}

// OptionsFromConfig reads the hooks_* configuration keys.
func OptionsFromConfig() Options {
	return Options{
		Dir:          config.Get("hooks_dir", ""),
		FailureMode:  FailureMode(config.Get("hooks_failure_mode", string(FailureWarn))),
		Async:        config.GetBool("hooks_async", false),
		AsyncTimeout: time.Duration(config.GetInt("hooks_async_timeout_seconds", 30)) * time.Second,
		MaxAsync:     config.GetInt("hooks_max_async", defaultMaxAsync),
		Logger:       logging.GetGlobal(),
	}
}

// Runner executes hook scripts.
type Runner struct {
	opts Options

	outMu   sync.Mutex
	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// New creates a Runner. Zero options get defaults.
func New(opts Options) *Runner {
	switch opts.FailureMode {
	case FailureAbort, FailureWarn, FailureIgnore:
	default:
		opts.FailureMode = FailureWarn
	}
	if opts.AsyncTimeout <= 0 {
		opts.AsyncTimeout = defaultAsyncTimeout
	}
	if opts.MaxAsync <= 0 {
		opts.MaxAsync = defaultMaxAsync
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	if opts.Warnings == nil {
		opts.Warnings = errors.NewDefaultCLIHandler().WithPrefix("hooks")
	}
	return &Runner{opts: opts}
}

// Scripts lists the executable scripts for point in name order.
// A missing directory means no hooks.
func (r *Runner) Scripts(point string) ([]string, error) {
	if r.opts.Dir == "" {
		return nil, nil
	}
	dir := filepath.Join(r.opts.Dir, point)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hooks: read %s: %w", dir, err)
	}

	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Run executes every script for point with env added to the process
// environment. Only FailureAbort makes Run return a script error.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts, err := r.Scripts(point)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}
	r.opts.Logger.Debug("running hooks", "point", point, "scripts", len(scripts), "async", r.opts.Async)

	environ := r.environ(point, env)
	for _, script := range scripts {
		if r.opts.Async {
			r.startAsync(script, environ)
			continue
		}
		if err := r.runScript(ctx, script, environ); err != nil && r.opts.FailureMode == FailureAbort {
			return err
		}
	}
	return nil
}

// Wait blocks until every async script has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) environ(point string, env map[string]string) []string {
	environ := append(os.Environ(),
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+time.Now().UTC().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, "LEADNEXUS_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

func (r *Runner) runScript(ctx context.Context, script string, environ []string) error {
	name := filepath.Base(script)
	start := time.Now()

	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	r.writeOutput(output)

	duration := time.Since(start)
	if err == nil {
		r.opts.Logger.Debug("hook completed", "script", name, "duration", duration.String())
		return nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("timed out after %s: %w", duration.Round(time.Millisecond), err)
	}
	err = fmt.Errorf("hook %s failed: %w", name, err)
	r.opts.Logger.Warn("hook failed", "script", name, "error", err.Error())
	if r.opts.FailureMode == FailureWarn {
		r.opts.Warnings.Warning(err.Error())
	}
	return err
}

func (r *Runner) startAsync(script string, environ []string) {
	r.mu.Lock()
	if r.pending >= r.opts.MaxAsync {
		r.mu.Unlock()
		r.opts.Logger.Warn("too many pending hooks, skipping", "script", filepath.Base(script), "max", r.opts.MaxAsync)
		return
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
			r.wg.Done()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.AsyncTimeout)
		defer cancel()
		_ = r.runScript(ctx, script, environ)
	}()
}

func (r *Runner) writeOutput(output []byte) {
	if len(bytes.TrimSpace(output)) == 0 {
		return
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	_, _ = r.opts.Output.Write(output)
}
