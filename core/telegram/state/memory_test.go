package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/cryptobot/core/telegram/state"
)

func TestMemoryLifecycle(t *testing.T) {
	t.Parallel()

	m := state.NewMemory[string]()
	_, ok := m.Load(1)
	require.False(t, ok)

	m.Store(1, "awaiting")
	m.Store(2, "other")
	got, ok := m.Load(1)
	require.True(t, ok)
	assert.Equal(t, "awaiting", got)
	assert.Equal(t, 2, m.Len())

	m.Delete(1)
	_, ok = m.Load(1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := state.NewMemory[int]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Store(id, int(id))
			m.Load(id)
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, 32, m.Len())
}
