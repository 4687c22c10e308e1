package session

import (
	"context"
	"errors"
)

var (
	// ErrNilBackingMap indicates a MapRepository was constructed without a
	// backing map.
	ErrNilBackingMap = errors.New("backing map cannot be nil")
	// ErrNilDelegate indicates a decorating repository was constructed
	// without a delegate.
	ErrNilDelegate = errors.New("delegate repository cannot be nil")
	// ErrNilSession indicates a nil session was passed to Save.
	ErrNilSession = errors.New("session cannot be nil")
	// ErrNoScope indicates the context passed to CurrentSession carries no
	// session scope.
	ErrNoScope = errors.New("context carries no session scope")
)

// Repository is the storage contract sessions move through. Absence is not an
// error: FindByID returns a nil session for an unknown id.
type Repository interface {
	// CreateSession returns a fresh session that is not persisted until Save.
	CreateSession(ctx context.Context) (*Session, error)
	// FindByID returns the session stored under id, or nil when no live
	// entry exists.
	FindByID(ctx context.Context, id string) (*Session, error)
	// Save persists a snapshot of session under its current id.
	Save(ctx context.Context, session *Session) error
	// DeleteByID removes the entry stored under id; removing an absent id
	// is a no-op.
	DeleteByID(ctx context.Context, id string) error
}

// Purger is the optional capability of repositories that can enumerate their
// entries and sweep out the expired ones. Backends with native expiry need
// not implement it.
type Purger interface {
	// Purge removes every expired entry from the store.
	Purge(ctx context.Context) error
}

// CurrentSessionRepository exposes a context-local active session on top of
// plain storage.
type CurrentSessionRepository interface {
	// CurrentSession returns the session bound to the calling execution
	// context, creating and saving one if the context has none.
	CurrentSession(ctx context.Context) (*Session, error)
}
