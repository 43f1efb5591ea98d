// Package storage provides namespaced key-value persistence and backend selection.
package storage

import (
	"os"

	"github.com/cristianoliveira/leadnexus/internal/storage/sqlite"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

var (
	// ErrNotFound indicates that no value is stored under the key.
	ErrNotFound = sqlite.ErrNotFound
	// ErrInvalidKey indicates an empty namespace or key.
	ErrInvalidKey = sqlite.ErrInvalidKey
)

// Entry is one stored value.
type Entry = sqlite.Entry

// Store persists opaque values grouped by namespace.
type Store interface {
	Get(namespace, key string) ([]byte, error)
	Put(namespace, key string, value []byte) error
	Delete(namespace, key string) error
	List(namespace string) ([]Entry, error)
	Close() error
}

var _ Store = (*sqlite.Store)(nil)
var _ Store = (*MemoryStore)(nil)
