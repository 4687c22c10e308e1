package session

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisMap is a Map backed by Redis, suitable as the externally supplied
// distributed backing of a MapRepository. Each session is stored as a JSON
// value under prefix+id with a TTL derived from its remaining validity, so
// Redis itself retires idle entries; a set of ids makes Range possible.
type RedisMap struct {
	rdb    *redis.Client
	prefix string
}

// RedisMapOption mutates a RedisMap during construction.
type RedisMapOption func(*RedisMap)

// WithRedisPrefix overrides the default "session:" key prefix.
func WithRedisPrefix(prefix string) RedisMapOption {
	return func(m *RedisMap) { m.prefix = prefix }
}

// NewRedisMap creates a RedisMap on top of an existing client.
func NewRedisMap(rdb *redis.Client, options ...RedisMapOption) *RedisMap {
	m := &RedisMap{rdb: rdb, prefix: "session:"}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *RedisMap) key(id string) string { return m.prefix + id }
func (m *RedisMap) keyIndex() string     { return m.prefix + "index" }

// Get implements Map.
func (m *RedisMap) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := m.rdb.Get(ctx, m.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Put implements Map.
func (m *RedisMap) Put(ctx context.Context, id string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	pipe := m.rdb.TxPipeline()
	pipe.Set(ctx, m.key(id), data, ttlFor(session, time.Now()))
	pipe.SAdd(ctx, m.keyIndex(), id)
	_, err = pipe.Exec(ctx)
	return err
}

// Remove implements Map.
func (m *RedisMap) Remove(ctx context.Context, id string) error {
	pipe := m.rdb.TxPipeline()
	pipe.Del(ctx, m.key(id))
	pipe.SRem(ctx, m.keyIndex(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// Range implements Map. Index members whose value key Redis already retired
// are pruned from the index as they are encountered.
func (m *RedisMap) Range(ctx context.Context, fn func(id string, session *Session) bool) error {
	ids, err := m.rdb.SMembers(ctx, m.keyIndex()).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, id := range ids {
		session, err := m.Get(ctx, id)
		if err != nil {
			return err
		}
		if session == nil {
			if err := m.rdb.SRem(ctx, m.keyIndex(), id).Err(); err != nil {
				return err
			}
			continue
		}
		if !fn(id, session) {
			return nil
		}
	}
	return nil
}

// ttlFor derives the native TTL of a stored session: the remaining validity
// with a one second floor for entries already past due, or no TTL at all for
// sessions that never expire.
func ttlFor(session *Session, now time.Time) time.Duration {
	maxInactive := session.MaxInactiveInterval()
	if maxInactive < 0 {
		return 0 // no TTL
	}
	until := session.LastAccessedTime().Add(maxInactive)
	if !until.After(now) {
		return time.Second
	}
	return until.Sub(now)
}
