// Package gpu defines the graphics device contracts the scene code draws through.
//
// The OpenGL implementation lives in the renderer and shader packages; gputest
// provides a recording fake.
package gpu

import (
	"image"

	"github.com/Faultbox/prism/pkg/math"
)

// Releaser is implemented by every GPU-owned object.
type Releaser interface {
	Release()
}

// Buffer is an immutable vertex or index buffer.
type Buffer interface {
	Releaser
	// Len is the number of elements (vertices or indices) in the buffer.
	Len() int
}

// TextureKind distinguishes 2D textures from cubemaps.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
)

// Texture is a sampled image resource.
type Texture interface {
	Releaser
	Kind() TextureKind
	Size() (width, height int)
}

// Sampler holds filtering and addressing state.
type Sampler interface {
	Releaser
}

// RasterState is an immutable rasterizer configuration.
type RasterState interface {
	Releaser
	Desc() RasterDesc
}

// DepthState is an immutable depth test configuration.
type DepthState interface {
	Releaser
	Desc() DepthDesc
}

// Device creates GPU resources.
type Device interface {
	CreateVertexBuffer(vertices []Vertex) (Buffer, error)
	CreateIndexBuffer(indices []uint32) (Buffer, error)
	CreateTexture2D(img image.Image) (Texture, error)
	// CreateCubemap builds a cubemap from faces ordered +X, -X, +Y, -Y, +Z, -Z.
	CreateCubemap(faces [6]image.Image) (Texture, error)
	CreateSampler(desc SamplerDesc) (Sampler, error)
	CreateRasterState(desc RasterDesc) (RasterState, error)
	CreateDepthState(desc DepthDesc) (DepthState, error)
}

// Context records draw state and issues draws.
type Context interface {
	SetVertexBuffer(b Buffer, stride int)
	SetIndexBuffer(b Buffer)
	DrawIndexed(indexCount, startIndex, baseVertex int)
	// SetRasterState and SetDepthState restore the defaults when given nil.
	SetRasterState(s RasterState)
	SetDepthState(s DepthState)
	Clear(color math.Vec4, depth float32)
	Viewport(x, y, width, height int)
}

// Shader is one programmable stage with name-addressed parameters.
//
// Setters stage values; CopyAllBufferData uploads the staged values. Each setter
// reports whether the stage declares the name, and an undeclared name is a no-op.
type Shader interface {
	Activate()
	SetMatrix4x4(name string, m math.Mat4) bool
	SetFloat(name string, v float32) bool
	SetFloat2(name string, v math.Vec2) bool
	SetFloat3(name string, v math.Vec3) bool
	SetFloat4(name string, v math.Vec4) bool
	SetInt(name string, v int32) bool
	// SetData stages a raw block, such as a packed light array.
	SetData(name string, data []byte) bool
	SetTexture(name string, t Texture) bool
	SetSampler(name string, s Sampler) bool
	CopyAllBufferData()
}
