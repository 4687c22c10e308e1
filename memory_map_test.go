package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryMap_Contract(t *testing.T) {
	runMapContract(t, func(t *testing.T) Map {
		return NewMemoryMap()
	})
}

func TestMemoryMap_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMap()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("s-%v-%v", worker, i)
				s := NewSession(func() string { return id })
				if err := m.Put(ctx, id, s); err != nil {
					t.Error(err)
					return
				}
				if _, err := m.Get(ctx, id); err != nil {
					t.Error(err)
					return
				}
				if err := m.Range(ctx, func(string, *Session) bool { return false }); err != nil {
					t.Error(err)
					return
				}
				if err := m.Remove(ctx, id); err != nil {
					t.Error(err)
					return
				}
			}
		}(worker)
	}
	wg.Wait()

	count := 0
	require.NoError(t, m.Range(ctx, func(string, *Session) bool {
		count++
		return true
	}))
	require.Equal(t, 0, count)
}
