// Package sky draws a cubemap around the camera behind all other geometry.
package sky

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/resource"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// Raster and depth states used while drawing the sky. The camera sits inside
// the mesh, so front faces are culled, and the shader pins depth to the far
// plane, so the test must pass at exactly 1.0.
var (
	Raster = gpu.RasterDesc{Cull: gpu.CullFront, Fill: gpu.FillSolid, DepthClip: true}
	Depth  = gpu.DepthDesc{Test: true, Write: true, Func: gpu.CompareLessEqual}
)

// Viewer supplies the camera matrices.
type Viewer interface {
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4
}

// Sky is a cubemap drawn on a mesh surrounding the camera.
type Sky struct {
	mesh    *resource.Handle[*mesh.Mesh]
	cubemap gpu.Texture
	vs, ps  gpu.Shader
	sampler gpu.Sampler

	raster gpu.RasterState
	depth  gpu.DepthState

	warned map[string]bool
}

// New creates the sky render states. The sky takes ownership of the mesh
// reference and the cubemap; the shaders and sampler stay with the caller.
func New(device gpu.Device, m *resource.Handle[*mesh.Mesh], cubemap gpu.Texture,
	vs, ps gpu.Shader, sampler gpu.Sampler) (*Sky, error) {
	raster, err := device.CreateRasterState(Raster)
	if err != nil {
		return nil, fmt.Errorf("sky raster state: %w", err)
	}
	depth, err := device.CreateDepthState(Depth)
	if err != nil {
		raster.Release()
		return nil, fmt.Errorf("sky depth state: %w", err)
	}
	return &Sky{
		mesh:    m,
		cubemap: cubemap,
		vs:      vs,
		ps:      ps,
		sampler: sampler,
		raster:  raster,
		depth:   depth,
		warned:  map[string]bool{},
	}, nil
}

// Draw renders the sky with its own states and restores the defaults afterwards.
func (s *Sky) Draw(ctx gpu.Context, cam Viewer) {
	ctx.SetRasterState(s.raster)
	ctx.SetDepthState(s.depth)

	s.vs.Activate()
	s.ps.Activate()

	s.check(s.vs.SetMatrix4x4("view", cam.ViewMatrix()), "view")
	s.check(s.vs.SetMatrix4x4("projection", cam.ProjectionMatrix()), "projection")
	s.vs.CopyAllBufferData()

	s.check(s.ps.SetTexture("SkyTexture", s.cubemap), "SkyTexture")
	s.check(s.ps.SetSampler("BasicSampler", s.sampler), "BasicSampler")

	s.mesh.Get().Draw(ctx)

	ctx.SetRasterState(nil)
	ctx.SetDepthState(nil)
}

func (s *Sky) check(ok bool, name string) {
	if ok || s.warned[name] {
		return
	}
	s.warned[name] = true
	logger.For("sky").Warn("sky shader does not declare parameter", zap.String("name", name))
}

// Cubemap returns the current sky texture.
func (s *Sky) Cubemap() gpu.Texture {
	return s.cubemap
}

// SetCubemap replaces the sky texture, releasing the previous one.
func (s *Sky) SetCubemap(t gpu.Texture) {
	if s.cubemap != nil && s.cubemap != t {
		s.cubemap.Release()
	}
	s.cubemap = t
}

// Release frees the render states and the cubemap and drops the mesh reference.
func (s *Sky) Release() {
	if s.raster == nil {
		return
	}
	s.raster.Release()
	s.depth.Release()
	s.raster, s.depth = nil, nil
	if s.cubemap != nil {
		s.cubemap.Release()
		s.cubemap = nil
	}
	s.mesh.Release()
}
