package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/storage/sqlite"
)

const (
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendMemory selects in-process storage that is lost on exit.
	BackendMemory = "memory"

	dbFileName = "leadnexus.db"
)

var openSQLite = func(path string) (Store, error) {
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromConfig creates a storage backend from storage_backend and state_dir.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendSQLite), config.Get("state_dir", ""))
}

// NewForBackend creates a storage backend for the provided backend name.
// SQLite failures fall back to memory with a warning.
func NewForBackend(backend, stateDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendSQLite:
		if strings.TrimSpace(stateDir) == "" {
			colors.Warning("state_dir is not configured, falling back to memory storage")
			return NewMemoryStore(), nil
		}
		store, err := openSQLite(DBPath(stateDir))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to memory: %v", err))
			return NewMemoryStore(), nil
		}
		return store, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to memory", backend))
		return NewMemoryStore(), nil
	}
}

// DBPath returns the SQLite database location inside stateDir.
func DBPath(stateDir string) string {
	return filepath.Join(stateDir, dbFileName)
}
