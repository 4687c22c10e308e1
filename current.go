package session

import (
	"context"
	"weak"
)

// defaultPurgeEvery is how many current-session cache hits elapse between
// amortized purge sweeps.
const defaultPurgeEvery = 1000

// scopeKey is the context key carrying a *Scope.
type scopeKey struct{}

// DefaultRepository is the top-level repository: lifecycle decoration over a
// storage delegate plus a per-execution-context current-session cache whose
// hits amortize purge sweeps.
type DefaultRepository struct {
	*LifecycleRepository
	// purger is the delegate's optional purge capability, resolved once at
	// construction. Purging bypasses lifecycle events.
	purger     Purger
	purgeEvery int
}

// New creates a DefaultRepository over an in-memory map-backed store, the
// all-defaults composition.
func New(options ...Option) *DefaultRepository {
	inner, _ := NewMapRepository(NewMemoryMap(), options...)
	repository, _ := NewDefaultRepository(inner, options...)
	return repository
}

// NewDefaultRepository decorates delegate with lifecycle handling and
// current-session caching.
func NewDefaultRepository(delegate Repository, options ...Option) (*DefaultRepository, error) {
	lifecycle, err := NewLifecycleRepository(delegate, options...)
	if err != nil {
		return nil, err
	}
	opts := newOptions(options)
	repository := &DefaultRepository{
		LifecycleRepository: lifecycle,
		purgeEvery:          opts.PurgeEvery,
	}
	if purger, ok := delegate.(Purger); ok {
		repository.purger = purger
	}
	return repository, nil
}

// NewScope creates an empty Scope bound to the repository; its session is
// created lazily on first Current call.
func (r *DefaultRepository) NewScope() *Scope {
	return &Scope{repository: r}
}

// CurrentSession implements CurrentSessionRepository using the Scope carried
// by ctx. It returns ErrNoScope when ctx has none: context boundaries are the
// caller's to draw, the repository cannot guess them.
func (r *DefaultRepository) CurrentSession(ctx context.Context) (*Session, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrNoScope
	}
	return scope.Current(ctx)
}

// maybePurge advances the scope's access counter and, every purgeEvery hits,
// sweeps the delegate store. Without a purge-capable delegate the trigger is
// a no-op and the counter never advances.
func (r *DefaultRepository) maybePurge(ctx context.Context, scope *Scope) {
	if r.purger == nil {
		return
	}
	scope.counter++
	if scope.counter%r.purgeEvery != 0 {
		return
	}
	if err := r.purger.Purge(ctx); err != nil {
		r.logger.Errorf("failed to purge expired sessions: %v", err)
	}
}

// Scope is one execution context's slot for its current session. Create one
// Scope per logical context, for instance per request-handling goroutine; a
// Scope must not be shared between concurrently running contexts. The slot
// holds its session weakly, so the cache is never what keeps a session alive.
type Scope struct {
	repository *DefaultRepository
	ref        weak.Pointer[Session]
	counter    int
}

// Current returns the scope's session. When the slot is empty, on first use
// or once the previously issued session has been collected, a new session is
// created, saved and installed. On a cache hit the repository's purge trigger
// runs before the session is returned.
func (s *Scope) Current(ctx context.Context) (*Session, error) {
	// liveness first: the weak reference may be gone already
	if session := s.ref.Value(); session != nil {
		s.repository.maybePurge(ctx, s)
		return session, nil
	}
	created, err := s.repository.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repository.Save(ctx, created); err != nil {
		return nil, err
	}
	s.ref = weak.Make(created)
	return created, nil
}

// NewContext returns a context carrying scope, for handing one execution
// context's scope down its call chain.
func NewContext(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext extracts the scope installed by NewContext.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok
}
