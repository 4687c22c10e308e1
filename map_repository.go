package session

import (
	"context"
	"errors"
	"time"
)

// MapRepository is a Repository storing independent copies of sessions in an
// injected backing Map. It performs no expiry checks on read and publishes no
// events; pair it with a LifecycleRepository for both. It implements Purger
// as a sweep on top of whatever native expiry the backing map provides.
type MapRepository struct {
	sessions  Map
	generator IDGenerator
}

// NewMapRepository creates a repository over the supplied backing map.
func NewMapRepository(backing Map, options ...Option) (*MapRepository, error) {
	if backing == nil {
		return nil, ErrNilBackingMap
	}
	opts := newOptions(options)
	return &MapRepository{sessions: backing, generator: opts.Generator}, nil
}

// CreateSession implements Repository. The session is not persisted until
// Save.
func (r *MapRepository) CreateSession(_ context.Context) (*Session, error) {
	return NewSession(r.generator), nil
}

// FindByID implements Repository. It returns the save-time snapshot without
// any expiry check.
func (r *MapRepository) FindByID(ctx context.Context, id string) (*Session, error) {
	return r.sessions.Get(ctx, id)
}

// Save implements Repository. The entry stored under the session's current id
// is an independent copy; the caller's instance is never retained, and a
// stored instance is never mutated afterwards, only replaced.
func (r *MapRepository) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrNilSession
	}
	return r.sessions.Put(ctx, session.ID(), CopySession(session))
}

// DeleteByID implements Repository.
func (r *MapRepository) DeleteByID(ctx context.Context, id string) error {
	return r.sessions.Remove(ctx, id)
}

// Purge implements Purger. Expired ids are collected first and removed after,
// so the scan never mutates the map it iterates; entries inserted mid-scan
// are left for the next sweep. Removal failures do not stop the sweep.
func (r *MapRepository) Purge(ctx context.Context) error {
	now := time.Now()
	var expired []string
	if err := r.sessions.Range(ctx, func(id string, session *Session) bool {
		if session.IsExpired(now) {
			expired = append(expired, id)
		}
		return true
	}); err != nil {
		return err
	}
	var result error
	for _, id := range expired {
		if err := r.sessions.Remove(ctx, id); err != nil {
			result = errors.Join(result, err)
		}
	}
	return result
}
