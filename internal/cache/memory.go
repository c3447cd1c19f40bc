package cache

import (
	"sync"

	"adapter-generator/adapter"
)

// Memory is the in-process cache of loaded adapter types.
type Memory struct {
	mu    sync.RWMutex
	types map[string]*adapter.Type
}

// NewMemory creates an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{types: make(map[string]*adapter.Type)}
}

// Get returns the type stored under key.
func (m *Memory) Get(key string) (*adapter.Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	typ, ok := m.types[key]

	return typ, ok
}

// Put stores typ under key unless a type is already present, and returns
// the stored one.
func (m *Memory) Put(key string, typ *adapter.Type) *adapter.Type {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.types[key]; ok {
		return existing
	}

	m.types[key] = typ

	return typ
}

// Len returns the number of cached types.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.types)
}
