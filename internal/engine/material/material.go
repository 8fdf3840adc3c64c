// Package material binds shaders, surface parameters and textures for a draw.
package material

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/transform"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// Viewer supplies the camera half of the per-draw parameters.
type Viewer interface {
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4
	Position() math.Vec3
}

// Material is a shader pair plus the surface parameters uploaded with it.
// One material is usually shared by many entities.
type Material struct {
	name      string
	vs, ps    gpu.Shader
	tint      math.Vec4
	roughness float32
	uvScale   math.Vec2
	uvOffset  math.Vec2

	textures map[string]gpu.Texture
	samplers map[string]gpu.Sampler

	warned map[string]bool
}

// Option configures a material at construction.
type Option func(*Material)

// WithTint sets the RGBA colour tint.
func WithTint(c math.Vec4) Option {
	return func(m *Material) { m.tint = c }
}

// WithRoughness sets the surface roughness in [0, 1].
func WithRoughness(r float32) Option {
	return func(m *Material) { m.roughness = r }
}

// WithUVTransform sets UV scale and offset.
func WithUVTransform(scale, offset math.Vec2) Option {
	return func(m *Material) { m.uvScale, m.uvOffset = scale, offset }
}

// New creates a material for a vertex and pixel shader pair.
// Defaults are a white tint, zero roughness and an identity UV transform.
func New(name string, vs, ps gpu.Shader, opts ...Option) *Material {
	m := &Material{
		name:     name,
		vs:       vs,
		ps:       ps,
		tint:     math.Vec4{1, 1, 1, 1},
		uvScale:  math.Vec2{X: 1, Y: 1},
		textures: map[string]gpu.Texture{},
		samplers: map[string]gpu.Sampler{},
		warned:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Prepare activates both shaders, uploads the per-object and material
// parameters and binds every texture and sampler. Names the shaders do not
// declare are skipped and logged once.
func (m *Material) Prepare(t *transform.Transform, cam Viewer) {
	m.vs.Activate()
	m.ps.Activate()

	m.check(m.vs.SetMatrix4x4("world", t.WorldMatrix()), "world")
	m.check(m.vs.SetMatrix4x4("worldInvTranspose", t.WorldInverseTransposeMatrix()), "worldInvTranspose")
	m.check(m.vs.SetMatrix4x4("view", cam.ViewMatrix()), "view")
	m.check(m.vs.SetMatrix4x4("projection", cam.ProjectionMatrix()), "projection")
	m.vs.CopyAllBufferData()

	m.check(m.ps.SetFloat3("colorTint", m.tint.XYZ()), "colorTint")
	m.check(m.ps.SetFloat3("cameraPosition", cam.Position()), "cameraPosition")
	m.check(m.ps.SetFloat("roughness", m.roughness), "roughness")
	m.check(m.ps.SetFloat2("uvScale", m.uvScale), "uvScale")
	m.check(m.ps.SetFloat2("uvOffset", m.uvOffset), "uvOffset")
	m.ps.CopyAllBufferData()

	for _, name := range slices.Sorted(maps.Keys(m.textures)) {
		m.check(m.ps.SetTexture(name, m.textures[name]), name)
	}
	for _, name := range slices.Sorted(maps.Keys(m.samplers)) {
		m.check(m.ps.SetSampler(name, m.samplers[name]), name)
	}
}

func (m *Material) check(ok bool, name string) {
	if ok || m.warned[name] {
		return
	}
	m.warned[name] = true
	logger.For("material").Warn("shader does not declare parameter",
		zap.String("material", m.name),
		zap.String("name", name))
}

// AddTexture binds t to the shader resource called name, replacing any previous binding.
func (m *Material) AddTexture(name string, t gpu.Texture) {
	m.textures[name] = t
}

// AddSampler binds s to the sampler called name.
func (m *Material) AddSampler(name string, s gpu.Sampler) {
	m.samplers[name] = s
}

// RemoveTexture drops a texture binding.
func (m *Material) RemoveTexture(name string) {
	delete(m.textures, name)
}

// RemoveSampler drops a sampler binding.
func (m *Material) RemoveSampler(name string) {
	delete(m.samplers, name)
}

// Texture returns the texture bound to name.
func (m *Material) Texture(name string) (gpu.Texture, bool) {
	t, ok := m.textures[name]
	return t, ok
}

// TextureNames returns the bound texture names in sorted order.
func (m *Material) TextureNames() []string {
	return slices.Sorted(maps.Keys(m.textures))
}

func (m *Material) Name() string { return m.name }
func (m *Material) Tint() math.Vec4 { return m.tint }
func (m *Material) Roughness() float32 { return m.roughness }
func (m *Material) UVScale() math.Vec2 { return m.uvScale }
func (m *Material) UVOffset() math.Vec2 { return m.uvOffset }
func (m *Material) VertexShader() gpu.Shader { return m.vs }
func (m *Material) PixelShader() gpu.Shader { return m.ps }

func (m *Material) SetTint(c math.Vec4) { m.tint = c }
func (m *Material) SetRoughness(r float32) { m.roughness = r }
func (m *Material) SetUVScale(s math.Vec2) { m.uvScale = s }
func (m *Material) SetUVOffset(o math.Vec2) { m.uvOffset = o }
func (m *Material) SetVertexShader(s gpu.Shader) { m.vs = s }
func (m *Material) SetPixelShader(s gpu.Shader) { m.ps = s }
