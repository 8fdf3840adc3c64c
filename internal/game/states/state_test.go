package states

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/gpu/gputest"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/game/scene"
)

type fakeState struct {
	name    string
	initErr error
	downErr error
	calls   *[]string
	size    [2]int
}

func (s *fakeState) record(op string) { *s.calls = append(*s.calls, s.name+"."+op) }

func (s *fakeState) Init() error {
	s.record("init")
	return s.initErr
}

func (s *fakeState) Update(float32, scene.Input) error {
	s.record("update")
	return nil
}

func (s *fakeState) Draw(gpu.Context) error {
	s.record("draw")
	return nil
}

func (s *fakeState) OnResize(w, h int) error {
	s.size = [2]int{w, h}
	return nil
}

func (s *fakeState) Shutdown() error {
	s.record("shutdown")
	return s.downErr
}

func TestManagerSwitch(t *testing.T) {
	var calls []string
	a := &fakeState{name: "a", calls: &calls}
	b := &fakeState{name: "b", calls: &calls}
	m := NewManager()
	in := input.New()

	require.NoError(t, m.Update(0.1, in))
	require.NoError(t, m.Draw(gputest.NewDevice()))
	assert.Nil(t, m.Current())

	require.NoError(t, m.Resize(640, 480))
	m.Change(a)
	assert.True(t, m.Pending())
	require.NoError(t, m.Update(0.1, in))
	assert.False(t, m.Pending())
	assert.Same(t, a, m.Current())
	assert.Equal(t, [2]int{640, 480}, a.size)

	m.Change(b)
	require.NoError(t, m.Update(0.1, in))
	require.NoError(t, m.Draw(gputest.NewDevice()))

	assert.Equal(t, []string{
		"a.init", "a.update",
		"b.init", "a.shutdown", "b.update", "b.draw",
	}, calls)

	require.NoError(t, m.Resize(100, 50))
	assert.Equal(t, [2]int{100, 50}, b.size)
}

func TestManagerKeepsCurrentWhenInitFails(t *testing.T) {
	var calls []string
	a := &fakeState{name: "a", calls: &calls}
	bad := &fakeState{name: "bad", calls: &calls, initErr: errors.New("boom")}
	m := NewManager()
	in := input.New()

	m.Change(a)
	require.NoError(t, m.Update(0.1, in))
	m.Change(bad)
	err := m.Update(0.1, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Same(t, a, m.Current())
	assert.Equal(t, []string{"a.init", "a.update", "bad.init", "bad.shutdown"}, calls)
}

func TestManagerSwitchesWhenPreviousShutdownFails(t *testing.T) {
	var calls []string
	a := &fakeState{name: "a", calls: &calls, downErr: errors.New("stuck")}
	b := &fakeState{name: "b", calls: &calls}
	m := NewManager()
	in := input.New()

	m.Change(a)
	require.NoError(t, m.Update(0.1, in))
	m.Change(b)
	require.NoError(t, m.Update(0.1, in))
	assert.Same(t, b, m.Current())
	assert.Equal(t, []string{"a.init", "a.update", "b.init", "a.shutdown", "b.update"}, calls)
}

func TestManagerReplacesPendingChange(t *testing.T) {
	var calls []string
	a := &fakeState{name: "a", calls: &calls}
	b := &fakeState{name: "b", calls: &calls}
	m := NewManager()

	m.Change(a)
	m.Change(b)
	require.NoError(t, m.Shutdown())
	assert.Equal(t, []string{"a.shutdown", "b.shutdown"}, calls)
	assert.Nil(t, m.Current())
}

func TestManagerWithScene(t *testing.T) {
	s := scene.New("empty")
	m := NewManager()
	m.Change(s)

	err := m.Update(0.1, input.New())
	assert.ErrorIs(t, err, scene.ErrNoCamera)
	assert.Equal(t, scene.PhaseShutdown, s.Phase())
}
