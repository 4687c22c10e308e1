// Package session implements a server-side session store with pluggable
// backing maps, lifecycle events, lazy expiry and a per-context
// current-session cache.
package session

import (
	"encoding/json"
	"time"
)

// DefaultMaxInactiveInterval is the expiry interval assigned to newly
// created sessions.
const DefaultMaxInactiveInterval = 30 * time.Minute

// Session is a server-side record of per-client state keyed by an opaque
// identifier. A Session carries no synchronization: it is owned by a single
// execution context, and every store boundary crossing copies it (see
// CopySession) so caller and store never share a mutable instance.
type Session struct {
	id           string
	originalID   string
	creationTime time.Time
	lastAccessed time.Time
	maxInactive  time.Duration
	attributes   map[string]interface{}
	generator    IDGenerator
}

// NewSession creates a session with a generated identifier, creation and
// last-accessed time of now, no attributes and the default max-inactive
// interval. A nil generator defaults to UUIDGenerator.
func NewSession(generator IDGenerator) *Session {
	if generator == nil {
		generator = UUIDGenerator
	}
	now := time.Now()
	id := generator()
	return &Session{
		id:           id,
		originalID:   id,
		creationTime: now,
		lastAccessed: now,
		maxInactive:  DefaultMaxInactiveInterval,
		attributes:   map[string]interface{}{},
		generator:    generator,
	}
}

// CopySession creates an independent copy of src: same identifier (recorded
// as both current and original id), same timestamps and interval, and a fresh
// attribute container holding the same value references. Copying a nil
// session yields nil.
func CopySession(src *Session) *Session {
	if src == nil {
		return nil
	}
	attributes := make(map[string]interface{}, len(src.attributes))
	for name, value := range src.attributes {
		if value != nil {
			attributes[name] = value
		}
	}
	generator := src.generator
	if generator == nil {
		generator = UUIDGenerator
	}
	return &Session{
		id:           src.id,
		originalID:   src.id,
		creationTime: src.creationTime,
		lastAccessed: src.lastAccessed,
		maxInactive:  src.maxInactive,
		attributes:   attributes,
		generator:    generator,
	}
}

// ID returns the current session identifier.
func (s *Session) ID() string {
	return s.id
}

// OriginalID returns the identifier the session carried when it was created
// or copied. It never changes afterwards and is what Save uses to detect an
// identifier rotation.
func (s *Session) OriginalID() string {
	return s.originalID
}

// ChangeID reassigns the session identifier using the session's generator and
// returns the new id. Attributes, timestamps and the original id are left
// untouched.
func (s *Session) ChangeID() string {
	s.id = s.generator()
	return s.id
}

// CreationTime returns the moment the session was instantiated.
func (s *Session) CreationTime() time.Time {
	return s.creationTime
}

// LastAccessedTime returns the moment of the most recent attribute access.
func (s *Session) LastAccessedTime() time.Time {
	return s.lastAccessed
}

// SetLastAccessedTime overrides the last-accessed timestamp.
func (s *Session) SetLastAccessedTime(t time.Time) {
	s.lastAccessed = t
}

// MaxInactiveInterval returns the duration after which an untouched session
// expires. A negative interval means the session never expires.
func (s *Session) MaxInactiveInterval() time.Duration {
	return s.maxInactive
}

// SetMaxInactiveInterval sets the expiry interval. Negative disables expiry.
func (s *Session) SetMaxInactiveInterval(interval time.Duration) {
	s.maxInactive = interval
}

// Attribute returns the value stored under name, or nil when absent. Reading
// an attribute counts as session activity.
func (s *Session) Attribute(name string) interface{} {
	s.lastAccessed = time.Now()
	return s.attributes[name]
}

// SetAttribute stores value under name. Storing nil removes the attribute, so
// an absent attribute and a nil one are indistinguishable.
func (s *Session) SetAttribute(name string, value interface{}) {
	s.lastAccessed = time.Now()
	if value == nil {
		delete(s.attributes, name)
		return
	}
	s.attributes[name] = value
}

// RemoveAttribute removes the attribute stored under name.
func (s *Session) RemoveAttribute(name string) {
	s.lastAccessed = time.Now()
	delete(s.attributes, name)
}

// AttributeNames returns the names of all present attributes in no particular
// order.
func (s *Session) AttributeNames() []string {
	s.lastAccessed = time.Now()
	names := make([]string, 0, len(s.attributes))
	for name := range s.attributes {
		names = append(names, name)
	}
	return names
}

// IsExpired reports whether the session has outlived its max-inactive
// interval at the reference time; a zero reference means now. Exactly at the
// interval boundary the session already counts as expired. The check never
// mutates the session.
func (s *Session) IsExpired(reference time.Time) bool {
	if s.maxInactive < 0 {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.Sub(s.lastAccessed) >= s.maxInactive
}

// Equal reports whether both sessions carry the same current identifier,
// which is the only equality criterion stores rely on.
func (s *Session) Equal(other *Session) bool {
	return other != nil && s.id == other.id
}

// sessionEnvelope is the wire form distributed maps store. Times travel as
// epoch milliseconds and the interval as whole milliseconds.
type sessionEnvelope struct {
	ID           string                 `json:"id"`
	OriginalID   string                 `json:"originalId"`
	CreationTime int64                  `json:"creationTime"`
	LastAccessed int64                  `json:"lastAccessedTime"`
	MaxInactive  int64                  `json:"maxInactiveInterval"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *Session) MarshalJSON() ([]byte, error) {
	maxInactive := s.maxInactive.Milliseconds()
	if s.maxInactive < 0 && maxInactive == 0 {
		// sub-millisecond negatives must stay negative on the wire
		maxInactive = -1
	}
	return json.Marshal(sessionEnvelope{
		ID:           s.id,
		OriginalID:   s.originalID,
		CreationTime: s.creationTime.UnixMilli(),
		LastAccessed: s.lastAccessed.UnixMilli(),
		MaxInactive:  maxInactive,
		Attributes:   s.attributes,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(data []byte) error {
	var envelope sessionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	s.id = envelope.ID
	s.originalID = envelope.OriginalID
	s.creationTime = time.UnixMilli(envelope.CreationTime)
	s.lastAccessed = time.UnixMilli(envelope.LastAccessed)
	s.maxInactive = time.Duration(envelope.MaxInactive) * time.Millisecond
	s.attributes = envelope.Attributes
	if s.attributes == nil {
		s.attributes = map[string]interface{}{}
	}
	if s.generator == nil {
		s.generator = UUIDGenerator
	}
	return nil
}
