package collection

import "sync"

// SyncMap is a typed wrapper around sync.Map.
type SyncMap[K comparable, V any] struct {
	data sync.Map
}

// NewSyncMap creates an empty SyncMap.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{}
}

// Get returns the value stored under key and whether it was present.
func (m *SyncMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.data.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return value.(V), true
}

// Put stores value under key, replacing any previous value.
func (m *SyncMap[K, V]) Put(key K, value V) {
	m.data.Store(key, value)
}

// Delete removes key; deleting an absent key is a no-op.
func (m *SyncMap[K, V]) Delete(key K) {
	m.data.Delete(key)
}

// Range calls fn for each entry until fn returns false.
func (m *SyncMap[K, V]) Range(fn func(key K, value V) bool) {
	m.data.Range(func(key, value any) bool {
		return fn(key.(K), value.(V))
	})
}
