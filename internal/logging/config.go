// Package logging writes structured JSON logs to a per-process file.
// Secrets are always redacted; lead emails and names are masked unless
// logging_redact_pii is turned off.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/leadnexus/internal/config"
)

const (
	dirMode  = 0o700
	fileMode = 0o600
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// RedactPII masks lead emails and names in log entries.
	RedactPII bool
	// Command and PID are stamped on every entry and in the file name.
	Command string
	PID     int
	// Dir overrides LogDir when set.
	Dir string
}

// DefaultConfig returns a disabled Config with PII redaction on.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		MaxFiles:  10,
		RedactPII: true,
		Command:   filepath.Base(os.Args[0]),
		PID:       os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys. debug forces the debug level;
// quiet raises it to error unless debug is also set.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	cfg.RedactPII = config.GetBool("logging_redact_pii", true)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	} else if config.GetBool("quiet", false) {
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns {state_dir}/logs when it is writable, otherwise a
// leadnexus/logs directory under the system temp dir.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if os.MkdirAll(dir, dirMode) == nil && writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), "leadnexus", "logs")
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", err
	}
	return dir, nil
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
