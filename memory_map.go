package session

import (
	"context"

	"github.com/dhaase/session/internal/collection"
)

// MemoryMap is an in-process Map backed by a concurrent map. It is the
// default backing of a MapRepository.
type MemoryMap struct {
	entries *collection.SyncMap[string, *Session]
}

// NewMemoryMap creates an empty MemoryMap.
func NewMemoryMap() *MemoryMap {
	return &MemoryMap{entries: collection.NewSyncMap[string, *Session]()}
}

// Get implements Map.
func (m *MemoryMap) Get(_ context.Context, id string) (*Session, error) {
	session, ok := m.entries.Get(id)
	if !ok {
		return nil, nil
	}
	return session, nil
}

// Put implements Map.
func (m *MemoryMap) Put(_ context.Context, id string, session *Session) error {
	m.entries.Put(id, session)
	return nil
}

// Remove implements Map.
func (m *MemoryMap) Remove(_ context.Context, id string) error {
	m.entries.Delete(id)
	return nil
}

// Range implements Map.
func (m *MemoryMap) Range(_ context.Context, fn func(id string, session *Session) bool) error {
	m.entries.Range(fn)
	return nil
}
