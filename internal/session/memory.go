package session

import (
	"context"
	"sync"
)

// MemoryStorage keeps items in process memory. State is lost on restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]map[string]string)}
}

func (m *MemoryStorage) GetItem(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[namespace][key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.items[namespace]
	if !ok {
		ns = make(map[string]string)
		m.items[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.items[namespace]
	if !ok {
		return nil
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(m.items, namespace)
	}
	return nil
}
