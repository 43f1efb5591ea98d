// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red     = "\033[0;31m"
	Green   = "\033[0;32m"
	Yellow  = "\033[1;33m"
	Blue    = "\033[0;34m"
	Magenta = "\033[0;35m"
	Cyan    = "\033[0;36m"
	Reset   = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled = false
	quiet        = false
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("LEADNEXUS_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Success and Info output.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the defaults.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout, stderr = out, errOut
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
}

type sink struct {
	logger Logger
	out    io.Writer
	errOut io.Writer
	debug  bool
	quiet  bool
}

func current() sink {
	mu.RLock()
	defer mu.RUnlock()
	return sink{logger: logger, out: stdout, errOut: stderr, debug: debugEnabled, quiet: quiet}
}

// write prints a line and falls back to raw stderr if that fails.
func write(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Error(msg)
	}
	write(s.errOut, "%sError:%s %s\n", Red, Reset, msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Warn(msg)
	}
	write(s.errOut, "%sWarning:%s %s\n", Yellow, Reset, msg)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Info(msg, "type", "success")
	}
	if s.quiet {
		return
	}
	write(s.out, "%s%s%s %s\n", Green, checkmark, Reset, msg)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	s := current()
	if s.logger != nil {
		s.logger.Info(msg)
	}
	if s.quiet {
		return
	}
	write(s.out, "%s%s%s\n", Blue, msg, Reset)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	s := current()
	if !s.debug {
		return
	}
	msg := strings.Join(msgs, " ")
	if s.logger != nil {
		s.logger.Debug(msg)
	}
	write(s.errOut, "%sDebug:%s %s\n", Cyan, Reset, msg)
}
