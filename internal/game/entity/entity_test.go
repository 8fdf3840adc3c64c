package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu/gputest"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/resource"
	"github.com/Faultbox/prism/pkg/math"
)

type fixture struct {
	dev       *gputest.Device
	vs, ps    *gputest.Shader
	cam       *camera.Camera
	mesh      MeshHandle
	material  MaterialHandle
	meshFreed int
	matFreed  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dev: gputest.NewDevice()}
	f.vs = gputest.NewShader(f.dev.Log, "vs", gputest.VertexParams...)
	f.ps = gputest.NewShader(f.dev.Log, "ps", gputest.PixelParams...)

	m, err := mesh.Cube(f.dev, "cube", 1)
	require.NoError(t, err)
	f.mesh = resource.New("cube", m, func(m *mesh.Mesh) {
		f.meshFreed++
		m.Release()
	})
	f.material = resource.New("mat", material.New("mat", f.vs, f.ps), func(*material.Material) {
		f.matFreed++
	})

	f.cam, err = camera.New("main", math.Vec3{Z: -5}, 1)
	require.NoError(t, err)
	f.dev.Log.Reset()
	return f
}

func TestNewRequiresMeshAndMaterial(t *testing.T) {
	f := newFixture(t)

	_, err := New("e", nil, f.material)
	assert.ErrorIs(t, err, ErrMissingMesh)
	_, err = New("e", f.mesh, nil)
	assert.ErrorIs(t, err, ErrMissingMaterial)

	e, err := New("e", f.mesh, f.material)
	require.NoError(t, err)
	assert.Equal(t, "e", e.Name)
	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.Equal(t, math.Vec3{}, e.Transform().Position())
	assert.Same(t, f.mesh.Get(), e.Mesh())
	assert.Same(t, f.material.Get(), e.Material())
}

func TestDrawBindsMaterialBeforeDrawCall(t *testing.T) {
	f := newFixture(t)
	e, err := New("e", f.mesh, f.material)
	require.NoError(t, err)
	e.Transform().SetPosition(math.Vec3{X: 2})

	e.Draw(f.dev, f.cam)

	ops := f.dev.Log.Ops()
	require.Equal(t, "DrawIndexed", ops[len(ops)-1])
	assert.Equal(t, "vs.Activate", ops[0])
	assert.Contains(t, ops, "ps.CopyAllBufferData")
	assert.Equal(t, e.Transform().WorldMatrix(), f.vs.Uploaded["world"])
	assert.Equal(t, f.cam.ViewMatrix(), f.vs.Uploaded["view"])

	draw, ok := f.dev.Log.Last("DrawIndexed", "")
	require.True(t, ok)
	assert.Equal(t, [3]int{36, 0, 0}, draw.Value)
}

func TestTwoEntitiesShareMaterialState(t *testing.T) {
	f := newFixture(t)
	a, err := New("a", f.mesh, f.material)
	require.NoError(t, err)
	b, err := a.Clone("b")
	require.NoError(t, err)
	b.Transform().MoveAbsolute(math.Vec3{X: 4})

	f.material.Get().SetUVOffset(math.Vec2{X: 0.5})

	a.Draw(f.dev, f.cam)
	assert.Equal(t, math.Vec2{X: 0.5}, f.ps.Uploaded["uvOffset"])
	assert.Equal(t, a.Transform().WorldMatrix(), f.vs.Uploaded["world"])

	b.Draw(f.dev, f.cam)
	assert.Equal(t, math.Vec2{X: 0.5}, f.ps.Uploaded["uvOffset"])
	assert.Equal(t, b.Transform().WorldMatrix(), f.vs.Uploaded["world"])
	assert.NotEqual(t, a.Transform().WorldMatrix(), b.Transform().WorldMatrix())
}

func TestCloneIsIndependent(t *testing.T) {
	f := newFixture(t)
	a, err := New("a", f.mesh, f.material)
	require.NoError(t, err)
	a.Transform().SetScale(math.Vec3{X: 2, Y: 2, Z: 2})
	a.Spin = math.Vec3{Y: 1}

	b, err := a.Clone("b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, a.Transform().Scale(), b.Transform().Scale())
	assert.Equal(t, a.Spin, b.Spin)
	assert.Equal(t, 2, f.mesh.Refs())
	assert.Equal(t, 2, f.material.Refs())

	b.Transform().SetPosition(math.Vec3{Y: 9})
	assert.Equal(t, math.Vec3{}, a.Transform().Position())
}

func TestReleaseFreesSharedResourcesOnce(t *testing.T) {
	f := newFixture(t)
	a, err := New("a", f.mesh, f.material)
	require.NoError(t, err)
	b, err := a.Clone("b")
	require.NoError(t, err)
	c, err := b.Clone("c")
	require.NoError(t, err)

	a.Release()
	a.Release()
	b.Release()
	assert.Zero(t, f.meshFreed)
	assert.Zero(t, f.matFreed)

	c.Release()
	assert.Equal(t, 1, f.meshFreed)
	assert.Equal(t, 1, f.matFreed)
}

func TestSetMaterial(t *testing.T) {
	f := newFixture(t)
	e, err := New("e", f.mesh, f.material)
	require.NoError(t, err)

	assert.ErrorIs(t, e.SetMaterial(nil), ErrMissingMaterial)

	other := resource.New("other", material.New("other", f.vs, f.ps), nil)
	require.NoError(t, e.SetMaterial(other))
	assert.Equal(t, 1, f.matFreed)
	assert.Same(t, other, e.MaterialHandle())
	assert.Same(t, f.mesh, e.MeshHandle())
}

func TestUpdateSpins(t *testing.T) {
	f := newFixture(t)
	e, err := New("e", f.mesh, f.material)
	require.NoError(t, err)

	e.Update(1)
	assert.Equal(t, math.Vec3{}, e.Transform().Rotation())

	e.Spin = math.Vec3{Y: 2}
	e.Update(0.5)
	assert.InDelta(t, 1, e.Transform().Rotation().Y, 1e-6)
}

func TestReleasedEntityKeepsSharedMaterial(t *testing.T) {
	f := newFixture(t)
	a, err := New("a", f.mesh, f.material)
	require.NoError(t, err)
	b, err := a.Clone("b")
	require.NoError(t, err)

	a.Release()
	assert.True(t, a.Released())

	other := resource.New("other", material.New("other", f.vs, f.ps), nil)
	assert.ErrorIs(t, a.SetMaterial(other), ErrReleased)
	assert.Zero(t, f.matFreed)
	assert.Equal(t, 1, f.material.Refs())
	assert.Equal(t, 1, other.Refs())

	_, err = a.Clone("c")
	assert.ErrorIs(t, err, ErrReleased)
	assert.Equal(t, 1, f.mesh.Refs())

	b.Draw(f.dev, f.cam)
	assert.Len(t, f.dev.Log.Find("DrawIndexed"), 1)
}

func TestStableID(t *testing.T) {
	assert.Equal(t, StableID("demo", "crate"), StableID("demo", "crate"))
	assert.NotEqual(t, StableID("demo", "crate"), StableID("demo", "barrel"))
	assert.NotEqual(t, StableID("demo", "crate"), StableID("other", "crate"))
	assert.Equal(t, 5, int(StableID("demo", "crate").Version()))
}
