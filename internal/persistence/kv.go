package persistence

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// KV is the durable string-keyed partition store. Values are JSON
// documents; a missing key reads as absent, not as an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ChangeHandler receives the name of a key another writer mutated.
type ChangeHandler func(key string)

// ChangeFeed delivers advisory notifications about key mutations made
// by other processes. Delivery is best-effort; consumers reconcile by
// reloading, so a missed signal is corrected by the next one.
type ChangeFeed interface {
	SubscribeChanges(ctx context.Context, handler ChangeHandler)
}

// MemoryKV is an in-process KV used by tests and as a fallback when no
// Redis address is configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the stored value and whether the key exists.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

// Set stores the value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes the key if present.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists all keys with the given prefix in sorted order.
func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
