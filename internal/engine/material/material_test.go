package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu/gputest"
	"github.com/Faultbox/prism/internal/engine/transform"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

type fixture struct {
	log *gputest.Log
	vs  *gputest.Shader
	ps  *gputest.Shader
	cam *camera.Camera
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := &gputest.Log{}
	cam, err := camera.New("main", math.Vec3{X: 1, Y: 2, Z: -6}, 1.5)
	require.NoError(t, err)
	return &fixture{
		log: log,
		vs:  gputest.NewShader(log, "vs", gputest.VertexParams...),
		ps:  gputest.NewShader(log, "ps", gputest.PixelParams...),
		cam: cam,
	}
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestDefaults(t *testing.T) {
	f := newFixture(t)
	m := New("plain", f.vs, f.ps)
	assert.Equal(t, "plain", m.Name())
	assert.Equal(t, math.Vec4{1, 1, 1, 1}, m.Tint())
	assert.Equal(t, float32(0), m.Roughness())
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, m.UVScale())
	assert.Equal(t, math.Vec2{}, m.UVOffset())
	assert.Same(t, f.vs, m.VertexShader())
	assert.Same(t, f.ps, m.PixelShader())
}

func TestPrepareUploadsEverything(t *testing.T) {
	f := newFixture(t)
	m := New("brick", f.vs, f.ps,
		WithTint(math.Vec4{0.5, 0.25, 1, 0.1}),
		WithRoughness(0.7),
		WithUVTransform(math.Vec2{X: 2, Y: 3}, math.Vec2{X: 0.5, Y: 0}),
	)
	tex := &gputest.Texture{Width: 4, Height: 4}
	smp := &gputest.Sampler{}
	m.AddTexture("SurfaceTexture", tex)
	m.AddSampler("BasicSampler", smp)

	tr := transform.New()
	tr.SetPosition(math.Vec3{X: 3})
	tr.SetRotation(math.Vec3{Y: 0.4})
	m.Prepare(tr, f.cam)

	assert.Equal(t, tr.WorldMatrix(), f.vs.Uploaded["world"])
	assert.Equal(t, tr.WorldInverseTransposeMatrix(), f.vs.Uploaded["worldInvTranspose"])
	assert.Equal(t, f.cam.ViewMatrix(), f.vs.Uploaded["view"])
	assert.Equal(t, f.cam.ProjectionMatrix(), f.vs.Uploaded["projection"])

	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.25, Z: 1}, f.ps.Uploaded["colorTint"], "alpha dropped")
	assert.Equal(t, f.cam.Position(), f.ps.Uploaded["cameraPosition"])
	assert.Equal(t, float32(0.7), f.ps.Uploaded["roughness"])
	assert.Equal(t, math.Vec2{X: 2, Y: 3}, f.ps.Uploaded["uvScale"])
	assert.Equal(t, math.Vec2{X: 0.5}, f.ps.Uploaded["uvOffset"])

	assert.Same(t, tex, f.ps.Textures["SurfaceTexture"])
	assert.Same(t, smp, f.ps.Samplers["BasicSampler"])
}

func TestPrepareOrder(t *testing.T) {
	f := newFixture(t)
	m := New("brick", f.vs, f.ps)
	m.AddTexture("SurfaceTexture", &gputest.Texture{})
	m.Prepare(transform.New(), f.cam)

	ops := f.log.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, []string{"vs.Activate", "ps.Activate"}, ops[:2])

	idx := func(op string) int {
		for i, o := range ops {
			if o == op {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("vs.Set"), idx("vs.CopyAllBufferData"))
	assert.Less(t, idx("vs.CopyAllBufferData"), idx("ps.Set"))
	assert.Less(t, idx("ps.CopyAllBufferData"), idx("ps.SetTexture"))
	assert.Equal(t, "ps.SetTexture", ops[len(ops)-1])
}

func TestMissingNamesWarnOnce(t *testing.T) {
	logs := observe(t)
	log := &gputest.Log{}
	vs := gputest.NewShader(log, "vs", "world", "view", "projection")
	ps := gputest.NewShader(log, "ps", "colorTint")
	cam, err := camera.New("c", math.Vec3{}, 1)
	require.NoError(t, err)

	m := New("sparse", vs, ps)
	m.AddTexture("Normals", &gputest.Texture{})
	for range 3 {
		m.Prepare(transform.New(), cam)
	}

	assert.Equal(t, 3, len(log.Find("ps.CopyAllBufferData")), "frame not aborted")
	assert.Contains(t, vs.Uploaded, "world")
	assert.NotContains(t, vs.Uploaded, "worldInvTranspose")

	warned := map[string]int{}
	for _, e := range logs.FilterMessage("shader does not declare parameter").All() {
		assert.Equal(t, "sparse", e.ContextMap()["material"])
		warned[e.ContextMap()["name"].(string)]++
	}
	assert.Equal(t, map[string]int{
		"worldInvTranspose": 1,
		"cameraPosition":    1,
		"roughness":         1,
		"uvScale":           1,
		"uvOffset":          1,
		"Normals":           1,
	}, warned)
}

func TestSharedMaterialVisibleToAllUsers(t *testing.T) {
	f := newFixture(t)
	m := New("shared", f.vs, f.ps)

	a, b := transform.New(), transform.New()
	b.SetPosition(math.Vec3{X: 5})

	m.SetUVOffset(math.Vec2{X: 0.25, Y: 0.5})
	m.Prepare(a, f.cam)
	assert.Equal(t, math.Vec2{X: 0.25, Y: 0.5}, f.ps.Uploaded["uvOffset"])
	m.Prepare(b, f.cam)
	assert.Equal(t, math.Vec2{X: 0.25, Y: 0.5}, f.ps.Uploaded["uvOffset"])
	assert.Equal(t, b.WorldMatrix(), f.vs.Uploaded["world"])
}

func TestBindings(t *testing.T) {
	f := newFixture(t)
	m := New("b", f.vs, f.ps)
	t1, t2 := &gputest.Texture{Width: 1}, &gputest.Texture{Width: 2}

	m.AddTexture("SurfaceTexture", t1)
	m.AddTexture("SurfaceTexture", t2)
	m.AddTexture("Albedo", t1)
	got, ok := m.Texture("SurfaceTexture")
	require.True(t, ok)
	assert.Same(t, t2, got)
	assert.Equal(t, []string{"Albedo", "SurfaceTexture"}, m.TextureNames())

	m.RemoveTexture("Albedo")
	_, ok = m.Texture("Albedo")
	assert.False(t, ok)

	m.AddSampler("BasicSampler", &gputest.Sampler{})
	m.RemoveSampler("BasicSampler")
	f.log.Reset()
	m.Prepare(transform.New(), f.cam)
	assert.Empty(t, f.log.Find("ps.SetSampler"))
}

func TestSetters(t *testing.T) {
	f := newFixture(t)
	m := New("s", f.vs, f.ps)
	m.SetTint(math.Vec4{0, 1, 0, 1})
	m.SetRoughness(0.3)
	m.SetUVScale(math.Vec2{X: 4, Y: 4})

	other := gputest.NewShader(f.log, "ps2", gputest.PixelParams...)
	m.SetPixelShader(other)
	m.Prepare(transform.New(), f.cam)

	assert.Equal(t, math.Vec3{Y: 1}, other.Uploaded["colorTint"])
	assert.Equal(t, float32(0.3), other.Uploaded["roughness"])
	assert.Equal(t, math.Vec2{X: 4, Y: 4}, other.Uploaded["uvScale"])
	assert.Empty(t, f.ps.Uploaded)
}
