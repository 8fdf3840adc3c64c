// Package renderer implements the gpu device and context contracts on OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	MSAA   int
}

// Renderer is the OpenGL gpu.Device and gpu.Context.
type Renderer struct {
	config Config

	raster gpu.RasterDesc
	depth  gpu.DepthDesc

	drawCalls int
	triangles int
}

// New initializes OpenGL and sets the default pipeline state.
// It must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{config: cfg}

	// Front faces wind clockwise in the left-handed scene space.
	gl.FrontFace(gl.CW)
	if cfg.MSAA > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	r.applyRaster(gpu.DefaultRaster)
	r.applyDepth(gpu.DefaultDepth)
	r.Viewport(0, 0, cfg.Width, cfg.Height)
	return r, nil
}

// Close releases renderer state.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	gl.BindVertexArray(0)
}

// Resize updates the viewport for a new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.Viewport(0, 0, width, height)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.drawCalls = 0
	r.triangles = 0
}

// End finishes the current frame and unbinds per-draw state.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// Stats returns the draw calls and triangles submitted since Begin.
func (r *Renderer) Stats() (drawCalls, triangles int) {
	return r.drawCalls, r.triangles
}

func (r *Renderer) SetVertexBuffer(b gpu.Buffer, stride int) {
	vb, ok := b.(*vertexBuffer)
	if !ok {
		return
	}
	gl.BindVertexArray(vb.vao)
}

func (r *Renderer) SetIndexBuffer(b gpu.Buffer) {
	ib, ok := b.(*indexBuffer)
	if !ok {
		return
	}
	// The element binding is part of the bound vertex array.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
}

func (r *Renderer) DrawIndexed(indexCount, startIndex, baseVertex int) {
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT,
		gl.PtrOffset(startIndex*4), int32(baseVertex))
	r.drawCalls++
	r.triangles += indexCount / 3
}

func (r *Renderer) SetRasterState(s gpu.RasterState) {
	if s == nil {
		r.applyRaster(gpu.DefaultRaster)
		return
	}
	r.applyRaster(s.Desc())
}

func (r *Renderer) SetDepthState(s gpu.DepthState) {
	if s == nil {
		r.applyDepth(gpu.DefaultDepth)
		return
	}
	r.applyDepth(s.Desc())
}

func (r *Renderer) applyRaster(d gpu.RasterDesc) {
	r.raster = d
	if face, ok := cullFace(d.Cull); ok {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(face)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(d.Fill))
	if d.DepthClip {
		gl.Disable(gl.DEPTH_CLAMP)
	} else {
		gl.Enable(gl.DEPTH_CLAMP)
	}
}

func (r *Renderer) applyDepth(d gpu.DepthDesc) {
	r.depth = d
	if d.Test {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(d.Write)
	gl.DepthFunc(compareFunc(d.Func))
}

// Restore re-applies the renderer's pipeline state after another OpenGL
// user, such as the UI backend, changed it.
func (r *Renderer) Restore() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.FrontFace(gl.CW)
	r.applyRaster(r.raster)
	r.applyDepth(r.depth)
}

// Clear clears the bound target. Depth writes are forced on for the clear.
func (r *Renderer) Clear(color math.Vec4, depth float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepth(float64(depth))
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.DepthMask(r.depth.Write)
}

func (r *Renderer) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// CurrentRaster returns the rasterizer state in effect.
func (r *Renderer) CurrentRaster() gpu.RasterDesc { return r.raster }

// CurrentDepth returns the depth state in effect.
func (r *Renderer) CurrentDepth() gpu.DepthDesc { return r.depth }

var (
	_ gpu.Device  = (*Renderer)(nil)
	_ gpu.Context = (*Renderer)(nil)
)
