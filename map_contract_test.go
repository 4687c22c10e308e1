package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMapContract exercises the behaviors every Map implementation must honor.
// Backends serializing through JSON may replace attribute value types, so the
// contract sticks to string values.
func runMapContract(t *testing.T, newMap func(t *testing.T) Map) {
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		m := newMap(t)
		s := NewSession(nil)
		s.SetAttribute("user", "u-1")
		require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))

		got, err := m.Get(ctx, s.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, s.ID(), got.ID())
		assert.Equal(t, "u-1", got.Attribute("user"))
		assert.Equal(t, s.MaxInactiveInterval(), got.MaxInactiveInterval())
	})

	t.Run("absent get", func(t *testing.T) {
		m := newMap(t)
		got, err := m.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		m := newMap(t)
		s := NewSession(nil)
		s.SetAttribute("state", "first")
		require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))
		s.SetAttribute("state", "second")
		require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))

		got, err := m.Get(ctx, s.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "second", got.Attribute("state"))
	})

	t.Run("remove", func(t *testing.T) {
		m := newMap(t)
		s := NewSession(nil)
		require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))
		require.NoError(t, m.Remove(ctx, s.ID()))

		got, err := m.Get(ctx, s.ID())
		require.NoError(t, err)
		assert.Nil(t, got)

		// removing an absent id is a no-op
		require.NoError(t, m.Remove(ctx, s.ID()))
	})

	t.Run("range", func(t *testing.T) {
		m := newMap(t)
		want := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			s := NewSession(nil)
			want = append(want, s.ID())
			require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))
		}

		visited := make([]string, 0, 3)
		require.NoError(t, m.Range(ctx, func(id string, session *Session) bool {
			assert.Equal(t, id, session.ID())
			visited = append(visited, id)
			return true
		}))
		assert.ElementsMatch(t, want, visited)

		// fn returning false stops the iteration
		visits := 0
		require.NoError(t, m.Range(ctx, func(string, *Session) bool {
			visits++
			return false
		}))
		assert.Equal(t, 1, visits)
	})
}
