package session

import "context"

// Map is the backing key/value capability a MapRepository stores sessions in.
// Implementations must support concurrent Get, Put, Remove and Range calls;
// Remove of an absent id must be a no-op. A Map may retire entries natively,
// for instance through a distributed cache TTL, independently of any purge
// sweep layered on top.
type Map interface {
	// Get returns the session stored under id, or nil when absent.
	Get(ctx context.Context, id string) (*Session, error)
	// Put stores session under id, replacing any previous entry.
	Put(ctx context.Context, id string, session *Session) error
	// Remove deletes the entry stored under id.
	Remove(ctx context.Context, id string) error
	// Range calls fn for each stored entry until fn returns false. Entries
	// inserted while the iteration runs may or may not be visited.
	Range(ctx context.Context, fn func(id string, session *Session) bool) error
}
