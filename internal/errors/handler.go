// Package errors routes user-facing messages to the console or the
// notification queue.
package errors

import (
	"strings"
	"sync"

	"github.com/cristianoliveira/leadnexus/internal/colors"
)

// ErrorHandler receives user-facing messages by severity.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Printer is the console sink a CLIHandler writes through.
type Printer interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

type colorsPrinter struct{}

func (colorsPrinter) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsPrinter) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsPrinter) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsPrinter) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler prints messages to the terminal, one at a time.
type CLIHandler struct {
	out    Printer
	prefix string
	mu     *sync.Mutex
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler returns a handler printing through out.
func NewCLIHandler(out Printer) *CLIHandler {
	return &CLIHandler{out: out, mu: &sync.Mutex{}}
}

// NewDefaultCLIHandler prints through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsPrinter{})
}

// WithPrefix returns a handler sharing h's printer that prepends
// "prefix: " to every message.
func (h *CLIHandler) WithPrefix(prefix string) *CLIHandler {
	return &CLIHandler{out: h.out, prefix: strings.TrimSpace(prefix), mu: h.mu}
}

func (h *CLIHandler) Error(msg string)   { h.print(h.out.Error, msg) }
func (h *CLIHandler) Warning(msg string) { h.print(h.out.Warning, msg) }
func (h *CLIHandler) Info(msg string)    { h.print(h.out.Info, msg) }
func (h *CLIHandler) Success(msg string) { h.print(h.out.Success, msg) }

func (h *CLIHandler) print(fn func(...string), msg string) {
	if h.prefix != "" {
		msg = h.prefix + ": " + msg
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(msg)
}
