package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEdges(t *testing.T) {
	s := New()

	s.BeginFrame()
	s.SetKey(KeyW, true)
	assert.True(t, s.KeyDown(KeyW))
	assert.True(t, s.KeyPressed(KeyW))

	s.BeginFrame()
	assert.True(t, s.KeyDown(KeyW), "held key stays down")
	assert.False(t, s.KeyPressed(KeyW), "pressed only on the first frame")

	s.SetKey(KeyW, false)
	assert.False(t, s.KeyDown(KeyW))
}

func TestMouseDeltaAccumulatesAndResets(t *testing.T) {
	s := New()
	s.MoveMouse(10, 10, 3, -1)
	s.MoveMouse(12, 8, 2, -2)

	dx, dy := s.MouseDelta()
	assert.Equal(t, float32(5), dx)
	assert.Equal(t, float32(-3), dy)

	x, y := s.MousePosition()
	assert.Equal(t, float32(12), x)
	assert.Equal(t, float32(8), y)

	s.BeginFrame()
	dx, dy = s.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestCaptureHidesInput(t *testing.T) {
	s := New()
	s.SetKey(KeyA, true)
	s.SetMouseButton(MouseLeft, true)
	s.MoveMouse(0, 0, 4, 4)
	s.Scroll(1)

	s.SetCapture(true, true)
	assert.False(t, s.KeyDown(KeyA))
	assert.False(t, s.MouseButtonDown(MouseLeft))
	dx, dy := s.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, s.Wheel())

	s.SetCapture(false, false)
	assert.True(t, s.KeyDown(KeyA))
	assert.True(t, s.MouseButtonDown(MouseLeft))
}

func TestOutOfRangeIgnored(t *testing.T) {
	s := New()
	s.SetKey(Key(99), true)
	s.SetMouseButton(MouseButton(-1), true)
	assert.False(t, s.KeyDown(Key(99)))
	assert.False(t, s.MouseButtonDown(MouseButton(-1)))
	assert.Equal(t, "invalid", Key(99).String())
	assert.Equal(t, "Space", KeySpace.String())
}

func TestResizeAndQuit(t *testing.T) {
	s := New()
	_, _, ok := s.TakeResize()
	assert.False(t, ok)

	s.Resize(800, 600)
	w, h, ok := s.TakeResize()
	assert.True(t, ok)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	_, _, ok = s.TakeResize()
	assert.False(t, ok, "resize is consumed once")

	assert.False(t, s.QuitRequested())
	s.RequestQuit()
	assert.True(t, s.QuitRequested())
}
