package internal

import (
	"sort"
	"sync"
)

// Table is a keyed store guarded by a single reader-writer lock.
// Reads and writes are both synchronized, so registration may overlap
// with concurrent lookups without corrupting the map.
type Table[K comparable, V any] struct {
	entries map[K]V
	mu      sync.RWMutex
}

// NewTable creates an empty table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves the entry stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key has an entry.
func (t *Table[K, V]) Has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.entries[key]
	return ok
}

// Set stores v under key, replacing any previous entry.
func (t *Table[K, V]) Set(key K, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[key] = v
}

// SetIfAbsent stores v only if key has no entry yet (first-come-wins).
// Returns false when an entry already existed.
func (t *Table[K, V]) SetIfAbsent(key K, v V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[key]; exists {
		return false
	}
	t.entries[key] = v
	return true
}

// Update replaces the entry for key with fn(current, exists) atomically.
func (t *Table[K, V]) Update(key K, fn func(current V, exists bool) V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, exists := t.entries[key]
	t.entries[key] = fn(current, exists)
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// Names returns name(key) for every entry in sorted order.
func (t *Table[K, V]) Names(name func(K) string) []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.entries))
	for k := range t.entries {
		names = append(names, name(k))
	}
	t.mu.RUnlock()

	sort.Strings(names)
	return names
}
