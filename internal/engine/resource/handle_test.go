package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct{ id int }

func TestHandleReleaseOnce(t *testing.T) {
	calls := 0
	h := New("cube", &payload{id: 7}, func(p *payload) {
		calls++
		assert.Equal(t, 7, p.id)
	})
	require.Equal(t, 1, h.Refs())

	h.Acquire()
	h.Acquire()
	assert.Equal(t, 3, h.Refs())

	assert.False(t, h.Release())
	assert.False(t, h.Release())
	assert.Equal(t, 0, calls)
	assert.True(t, h.Release())
	assert.Equal(t, 1, calls)
	assert.True(t, h.Released())

	assert.False(t, h.Release(), "release past zero is a no-op")
	assert.Equal(t, 1, calls)
}

func TestHandleAcquireAfterReleasePanics(t *testing.T) {
	h := New("sphere", 1, nil)
	h.Release()
	assert.Panics(t, func() { h.Acquire() })
}

func TestHandleAccessors(t *testing.T) {
	h := New("plane", "value", nil)
	assert.Equal(t, "plane", h.Name())
	assert.Equal(t, "value", h.Get())
	assert.Same(t, h, h.Acquire())
}

func TestHandleConcurrent(t *testing.T) {
	var released int
	var mu sync.Mutex
	h := New("shared", 0, func(int) {
		mu.Lock()
		released++
		mu.Unlock()
	})

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		h.Acquire()
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, h.Refs())
	assert.Equal(t, 0, released)

	h.Release()
	assert.Equal(t, 1, released)
}
