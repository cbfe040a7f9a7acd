package varpath

import (
	"strings"
)

// Mapping is a string-keyed collection of Values that remembers insertion
// order. Whether that order is meaningful is declared by the producer:
// adapters over hash-like native containers build unordered mappings and
// callers must not depend on their enumeration order.
//
// A Mapping is not safe for concurrent mutation. Scopes are mutated only by
// the render that owns them.
type Mapping struct {
	keys    []string
	entries map[string]Value
	ordered bool
}

// NewMapping creates an empty mapping whose iteration order is its insertion order.
func NewMapping() *Mapping {
	return &Mapping{
		entries: make(map[string]Value),
		ordered: true,
	}
}

// NewUnorderedMapping creates an empty mapping with no iteration order guarantee.
func NewUnorderedMapping() *Mapping {
	return &Mapping{
		entries: make(map[string]Value),
	}
}

// MappingOf builds an unordered mapping from a Go map, converting each value
// with ValueOf.
func MappingOf(data map[string]any) *Mapping {
	m := NewUnorderedMapping()
	for k, v := range data {
		m.Set(k, ValueOf(v))
	}
	return m
}

// Set binds key to v. A new key is appended to the iteration order; an
// existing key keeps its position.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
	return m
}

// Get returns the value bound to key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Invalid(), false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Has reports whether key is bound.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Ordered reports whether iteration order is deterministic.
func (m *Mapping) Ordered() bool {
	return m != nil && m.ordered
}

// Keys returns the keys in iteration order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the values in iteration order.
func (m *Mapping) Values() []Value {
	if m == nil {
		return []Value{}
	}
	values := make([]Value, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.entries[k])
	}
	return values
}

// Items returns one two-element Sequence [key, value] per entry in iteration order.
func (m *Mapping) Items() []Value {
	if m == nil {
		return []Value{}
	}
	items := make([]Value, 0, len(m.keys))
	for _, k := range m.keys {
		items = append(items, Sequence(Text(k), m.entries[k]))
	}
	return items
}

// Range calls fn for each entry in iteration order until fn returns false.
func (m *Mapping) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

// equal compares entries regardless of order.
func (m *Mapping) equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(k string, v Value) bool {
		ov, ok := other.Get(k)
		equal = ok && v.Equal(ov)
		return equal
	})
	return equal
}

// String returns a debugging representation.
func (m *Mapping) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.Range(func(k string, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
