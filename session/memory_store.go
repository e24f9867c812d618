// File: session/memory_store.go
package session

import "sync"

// MemoryStore keeps the flag in memory. Sharing one MemoryStore between two gates
// simulates a process restart.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]bool
	Reads  int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]bool)}
}

// LoadFlag implements FlagStore.
func (m *MemoryStore) LoadFlag() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	return m.values[FlagKey], nil
}

// SaveFlag implements FlagStore.
func (m *MemoryStore) SaveFlag(loggedIn bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[FlagKey] = loggedIn
	return nil
}

// ClearFlag implements FlagStore.
func (m *MemoryStore) ClearFlag() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, FlagKey)
	return nil
}
