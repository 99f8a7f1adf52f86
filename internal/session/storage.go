// Package session owns the persisted client credential: a single opaque
// bearer token, plus a one-time migration from the legacy structured record
// an earlier client generation wrote.
package session

import (
	"sync"

	"github.com/go-faster/errors"
)

// ErrNoValue is returned by Storage implementations when a key is absent.
var ErrNoValue = errors.New("no value")

// Storage is a flat string key/value store, the terminal-client counterpart
// of browser local storage.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemStorage is an in-memory Storage used in tests and ephemeral sessions.
type MemStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStorage creates an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (m *MemStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNoValue
	}
	return v, nil
}

func (m *MemStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
