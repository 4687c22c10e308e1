package session

import "context"

// EventKind enumerates the lifecycle notifications a repository publishes.
type EventKind int

const (
	// EventCreated is published after a session has been created.
	EventCreated EventKind = iota
	// EventDeleted is published before an entry is removed from the store.
	EventDeleted
	// EventExpired is published when a read finds an entry past its
	// max-inactive interval, before the entry is cleaned up.
	EventExpired
)

// String returns the lowercase name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event describes a session lifecycle notification. Session may be nil on a
// Deleted event when no entry was stored under the removed id.
type Event struct {
	Kind    EventKind
	Session *Session
}

// EventPublisher is the notification sink for lifecycle events. Publishing is
// fire-and-forget: implementations must not block the calling repository, and
// their failures are their own concern.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event Event)
}

// PublisherFunc adapts a function to the EventPublisher interface.
type PublisherFunc func(ctx context.Context, event Event)

// PublishEvent implements EventPublisher.
func (f PublisherFunc) PublishEvent(ctx context.Context, event Event) {
	f(ctx, event)
}
