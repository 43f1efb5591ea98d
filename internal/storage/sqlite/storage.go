// Package sqlite provides a SQLite-backed key-value store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound indicates that no value is stored under the key.
	ErrNotFound = errors.New("not found")
	// ErrInvalidKey indicates an empty namespace or key.
	ErrInvalidKey = errors.New("invalid key")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (namespace, key)
);
CREATE INDEX IF NOT EXISTS idx_kv_namespace_updated ON kv(namespace, updated_at);
`

// Entry is one stored value.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Store persists namespaced values in a single SQLite table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a store at dbPath.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value under namespace/key or ErrNotFound.
func (s *Store) Get(namespace, key string) ([]byte, error) {
	if err := validateKey(namespace, key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE namespace = ? AND key = ?`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite storage: get %s/%s: %w", namespace, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: get %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Put inserts or replaces the value under namespace/key.
func (s *Store) Put(namespace, key string, value []byte) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(`
INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value, formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("sqlite storage: put %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes namespace/key. Missing keys return ErrNotFound.
func (s *Store) Delete(namespace, key string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete %s/%s: %w", namespace, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: delete %s/%s: %w", namespace, key, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite storage: delete %s/%s: %w", namespace, key, ErrNotFound)
	}
	return nil
}

// List returns every entry in namespace ordered by key.
func (s *Store) List(namespace string) ([]Entry, error) {
	if strings.TrimSpace(namespace) == "" {
		return nil, fmt.Errorf("sqlite storage: list: %w", ErrInvalidKey)
	}
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM kv WHERE namespace = ? ORDER BY key`, namespace)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list %s: %w", namespace, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			updatedAt string
		)
		if err := rows.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan %s: %w", namespace, err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list %s: %w", namespace, err)
	}
	return entries, nil
}

func validateKey(namespace, key string) error {
	if strings.TrimSpace(namespace) == "" || strings.TrimSpace(key) == "" {
		return fmt.Errorf("sqlite storage: %w: namespace=%q key=%q", ErrInvalidKey, namespace, key)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
