package storage

import "sync"

// MemoryKV keeps values in process memory. Nothing survives a restart.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Load returns a copy of the value of key.
func (m *MemoryKV) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save stores a copy of value under key.
func (m *MemoryKV) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryKV) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
