package cache

import (
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned by Memory.Get when a key is absent or expired
var ErrNotFound = fmt.Errorf("key not found")

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process cache with the same Get/Set shape as the Redis
// wrapper. It backs the score cache when Redis is disabled and stands in
// for it in tests. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get retrieves a value, honoring expiry
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores a value with TTL; a zero TTL means no expiry. Racing
// writers overwrite each other, which is fine for deterministic values.
func (m *Memory) Set(key string, value interface{}, ttl time.Duration) error {
	entry := memoryEntry{value: fmt.Sprintf("%v", value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a key
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of live entries, expired ones included until
// their next Get
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
