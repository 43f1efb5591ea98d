package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/leadnexus/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds the key-value pairs to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file. Further writes are dropped.
	Shutdown() error
}

// logFile is shared by a logger and every child made with With.
type logFile struct {
	path      string
	mu        sync.Mutex
	file      *os.File
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func (f *logFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return len(p), nil
	}
	return f.file.Write(p)
}

func (f *logFile) Close() error {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.closed = true
		f.closeErr = f.file.Close()
	})
	return f.closeErr
}

// fileLogger writes JSON lines through charmbracelet/log.
type fileLogger struct {
	clogger  *clog.Logger
	redactor *redactor
	out      *logFile // nil when writing to a caller-supplied writer
}

// Init opens a new log file for cfg. Disabled configs get a discarding
// logger. Old files beyond cfg.MaxFiles are removed first.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return discardLogger{}, nil
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := LogDir()
		if err != nil {
			return nil, fmt.Errorf("logging: resolve log dir: %w", err)
		}
		dir = d
	} else if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", dir, err)
	}

	if err := rotate(dir, cfg.MaxFiles-1); err != nil {
		colors.Debug(fmt.Sprintf("log rotation failed: %v", err))
	}

	path := filepath.Join(dir, fileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileMode)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	out := &logFile{path: path, file: f}
	l := newFileLogger(out, cfg)
	l.out = out
	return l, nil
}

// fileName is leadnexus_<time>_PID<pid>_<command>.log.
func fileName(cfg Config, now time.Time) string {
	return fmt.Sprintf("%s%s_PID%d_%s.log",
		filePrefix, now.Format("20060102_150405"), cfg.PID, strings.ReplaceAll(cfg.Command, " ", "_"))
}

func newFileLogger(w io.Writer, cfg Config) *fileLogger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	return &fileLogger{
		clogger:  clogger.With("pid", cfg.PID, "command", cfg.Command),
		redactor: newRedactor(cfg.RedactPII),
	}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	l.clogger.Log(level, l.redactor.redactText(msg), l.redactor.redact(args)...)
}

func (l *fileLogger) With(args ...any) Logger {
	return &fileLogger{
		clogger:  l.clogger.With(l.redactor.redact(args)...),
		redactor: l.redactor,
		out:      l.out,
	}
}

func (l *fileLogger) Shutdown() error {
	if l.out == nil {
		return nil
	}
	return l.out.Close()
}

func (l *fileLogger) filePath() string {
	if l.out == nil {
		return ""
	}
	return l.out.path
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}
func (d discardLogger) With(...any) Logger { return d }
func (discardLogger) Shutdown() error      { return nil }

// Noop returns a logger that discards everything.
func Noop() Logger { return discardLogger{} }

var (
	globalMu     sync.RWMutex
	globalLogger Logger
	globalOnce   sync.Once
)

// InitGlobal opens the process logger from the loaded configuration and
// mirrors console messages into it. Only the first call has an effect.
func InitGlobal() error {
	var err error
	globalOnce.Do(func() {
		var l Logger
		if l, err = Init(FromGlobalConfig()); err != nil {
			return
		}
		globalMu.Lock()
		globalLogger = l
		globalMu.Unlock()
		colors.SetLogger(l)
		if path := CurrentLogFile(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	})
	return err
}

// GetGlobal returns the process logger, or a discarding one before InitGlobal.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return discardLogger{}
	}
	return globalLogger
}

func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetGlobal().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetGlobal().Warn(msg, args...) }
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a child of the process logger.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes the process log file.
func ShutdownGlobal() error {
	return GetGlobal().Shutdown()
}

// CurrentLogFile returns the process log file path, or "" when file logging is off.
func CurrentLogFile() string {
	if l, ok := GetGlobal().(*fileLogger); ok {
		return l.filePath()
	}
	return ""
}
