package session

import (
	"context"
	"sync"
	"time"

	"github.com/dhaase/session/internal/pointer"
)

// LifecycleRepository decorates a Repository with the lifecycle rules every
// backend shares: event notification, application of a configurable default
// max-inactive interval at creation, lazy expiry enforcement on read, and
// reconciliation of identifier rotation on save. Keeping these here leaves
// delegates free to be plain storage.
type LifecycleRepository struct {
	delegate Repository
	logger   Logger

	mu                 sync.RWMutex
	publisher          EventPublisher
	defaultMaxInactive *int
}

// NewLifecycleRepository decorates delegate.
func NewLifecycleRepository(delegate Repository, options ...Option) (*LifecycleRepository, error) {
	if delegate == nil {
		return nil, ErrNilDelegate
	}
	opts := newOptions(options)
	return &LifecycleRepository{
		delegate:  delegate,
		logger:    opts.Logger,
		publisher: opts.Publisher,
	}, nil
}

// SetEventPublisher installs or replaces the notification sink. A nil
// publisher silences all notifications.
func (r *LifecycleRepository) SetEventPublisher(publisher EventPublisher) {
	r.mu.Lock()
	r.publisher = publisher
	r.mu.Unlock()
}

// SetDefaultMaxInactiveInterval configures, in whole seconds, the expiry
// interval applied to sessions created from now on. Sessions created earlier
// keep the interval they were created with.
func (r *LifecycleRepository) SetDefaultMaxInactiveInterval(seconds int) {
	r.mu.Lock()
	r.defaultMaxInactive = pointer.Ref(seconds)
	r.mu.Unlock()
}

// CreateSession implements Repository: the delegate creates the session, the
// configured default interval applies, and a Created event is published. The
// session is not persisted until Save.
func (r *LifecycleRepository) CreateSession(ctx context.Context) (*Session, error) {
	created, err := r.delegate.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defaultMaxInactive := r.defaultMaxInactive
	r.mu.RUnlock()
	if defaultMaxInactive != nil {
		created.SetMaxInactiveInterval(time.Duration(*defaultMaxInactive) * time.Second)
	}
	r.publish(ctx, Event{Kind: EventCreated, Session: created})
	return created, nil
}

// FindByID implements Repository. An expired entry is never handed out: it is
// reported as expired, removed through the regular delete path, and the read
// yields absent. A live entry is returned as an independent copy whose
// original id is the stored id.
func (r *LifecycleRepository) FindByID(ctx context.Context, id string) (*Session, error) {
	saved, err := r.delegate.FindByID(ctx, id)
	if err != nil || saved == nil {
		return nil, err
	}
	if saved.IsExpired(time.Now()) {
		r.publish(ctx, Event{Kind: EventExpired, Session: saved})
		if err := r.DeleteByID(ctx, saved.ID()); err != nil {
			// the entry is unusable either way; the next purge retries removal
			r.logger.Errorf("failed to delete expired session %v: %v", saved.ID(), err)
		}
		return nil, nil
	}
	return CopySession(saved), nil
}

// Save implements Repository. A rotation, detected as the current id
// differing from the tracked original, retires the original entry first:
// Deleted is published for the stored original and the original id is removed
// from the delegate. The delegate then stores an independent copy keyed by the
// current id.
func (r *LifecycleRepository) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrNilSession
	}
	originalID := session.OriginalID()
	if originalID == "" {
		originalID = session.ID()
	}
	if session.ID() != originalID {
		if err := r.publishDeleted(ctx, originalID); err != nil {
			return err
		}
		if err := r.delegate.DeleteByID(ctx, originalID); err != nil {
			return err
		}
	}
	return r.delegate.Save(ctx, CopySession(session))
}

// DeleteByID implements Repository. The Deleted event carries the session
// stored under id at the time of the call, or nil when none is.
func (r *LifecycleRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.publishDeleted(ctx, id); err != nil {
		return err
	}
	return r.delegate.DeleteByID(ctx, id)
}

func (r *LifecycleRepository) eventPublisher() EventPublisher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.publisher
}

func (r *LifecycleRepository) publish(ctx context.Context, event Event) {
	if publisher := r.eventPublisher(); publisher != nil {
		publisher.PublishEvent(ctx, event)
	}
}

// publishDeleted publishes a Deleted event carrying the session currently
// stored under id. Without a publisher the delegate lookup is skipped
// entirely to avoid needless store traffic.
func (r *LifecycleRepository) publishDeleted(ctx context.Context, id string) error {
	publisher := r.eventPublisher()
	if publisher == nil {
		return nil
	}
	saved, err := r.delegate.FindByID(ctx, id)
	if err != nil {
		return err
	}
	publisher.PublishEvent(ctx, Event{Kind: EventDeleted, Session: saved})
	return nil
}
