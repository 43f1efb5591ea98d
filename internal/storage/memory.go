package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Values are copied on the way in and out.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]Entry
	now  func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Entry), now: time.Now}
}

// Get returns the value under namespace/key or ErrNotFound.
func (m *MemoryStore) Get(namespace, key string) ([]byte, error) {
	if err := checkKey(namespace, key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[namespace][key]
	if !ok {
		return nil, fmt.Errorf("memory storage: get %s/%s: %w", namespace, key, ErrNotFound)
	}
	return cloneBytes(e.Value), nil
}

// Put inserts or replaces the value under namespace/key.
func (m *MemoryStore) Put(namespace, key string, value []byte) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]Entry)
		m.data[namespace] = ns
	}
	ns[key] = Entry{Key: key, Value: cloneBytes(value), UpdatedAt: m.now().UTC()}
	return nil
}

// Delete removes namespace/key. Missing keys return ErrNotFound.
func (m *MemoryStore) Delete(namespace, key string) error {
	if err := checkKey(namespace, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[namespace][key]; !ok {
		return fmt.Errorf("memory storage: delete %s/%s: %w", namespace, key, ErrNotFound)
	}
	delete(m.data[namespace], key)
	return nil
}

// List returns every entry in namespace ordered by key.
func (m *MemoryStore) List(namespace string) ([]Entry, error) {
	if strings.TrimSpace(namespace) == "" {
		return nil, fmt.Errorf("memory storage: list: %w", ErrInvalidKey)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.data[namespace]))
	for _, e := range m.data[namespace] {
		e.Value = cloneBytes(e.Value)
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func checkKey(namespace, key string) error {
	if strings.TrimSpace(namespace) == "" || strings.TrimSpace(key) == "" {
		return fmt.Errorf("memory storage: %w: namespace=%q key=%q", ErrInvalidKey, namespace, key)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
