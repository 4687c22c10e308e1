package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAFSMap(t *testing.T) *AFSMap {
	return NewAFSMap(fmt.Sprintf("mem://localhost/sessions/%v", uuid.New().String()))
}

func TestAFSMap_Contract(t *testing.T) {
	runMapContract(t, func(t *testing.T) Map {
		return newTestAFSMap(t)
	})
}

func TestAFSMap_EmptyStore(t *testing.T) {
	ctx := context.Background()
	m := newTestAFSMap(t)

	got, err := m.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, m.Remove(ctx, "unknown"))

	// ranging over a location that was never written to is not an error
	visits := 0
	require.NoError(t, m.Range(ctx, func(string, *Session) bool {
		visits++
		return true
	}))
	assert.Equal(t, 0, visits)
}

func TestAFSMap_StoresOneDocumentPerSession(t *testing.T) {
	ctx := context.Background()
	m := newTestAFSMap(t)

	s := NewSession(func() string { return "doc-session" })
	require.NoError(t, m.Put(ctx, s.ID(), CopySession(s)))

	exists, err := m.fs.Exists(ctx, m.assetURL("doc-session"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, m.Remove(ctx, s.ID()))
	exists, err = m.fs.Exists(ctx, m.assetURL("doc-session"))
	require.NoError(t, err)
	assert.False(t, exists)
}
