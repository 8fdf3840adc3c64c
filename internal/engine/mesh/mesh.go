// Package mesh holds immutable indexed triangle geometry uploaded to the GPU.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

var (
	// ErrEmptyGeometry is returned for a mesh without vertices or indices.
	ErrEmptyGeometry = errors.New("mesh has no geometry")
	// ErrIndexOutOfRange is returned when an index refers past the vertex array.
	ErrIndexOutOfRange = errors.New("mesh index out of range")
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

func computeBounds(vertices []gpu.Vertex) Bounds {
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for _, v := range vertices {
		p := v.Position
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// Mesh is a vertex buffer and a 32-bit index buffer drawn as a triangle list.
type Mesh struct {
	name        string
	vb, ib      gpu.Buffer
	vertexCount int
	indexCount  int
	bounds      Bounds
}

// New uploads vertices and indices once. The slices are not retained.
func New(device gpu.Device, name string, vertices []gpu.Vertex, indices []uint32) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh %q: %w", name, ErrEmptyGeometry)
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("mesh %q: index %d at %d with %d vertices: %w",
				name, idx, i, len(vertices), ErrIndexOutOfRange)
		}
	}

	vb, err := device.CreateVertexBuffer(vertices)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: create vertex buffer: %w", name, err)
	}
	ib, err := device.CreateIndexBuffer(indices)
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("mesh %q: create index buffer: %w", name, err)
	}

	return &Mesh{
		name:        name,
		vb:          vb,
		ib:          ib,
		vertexCount: len(vertices),
		indexCount:  len(indices),
		bounds:      computeBounds(vertices),
	}, nil
}

// Draw binds both buffers and issues one indexed draw of every index.
func (m *Mesh) Draw(ctx gpu.Context) {
	ctx.SetVertexBuffer(m.vb, gpu.VertexStride)
	ctx.SetIndexBuffer(m.ib)
	ctx.DrawIndexed(m.indexCount, 0, 0)
}

// Release frees the GPU buffers.
func (m *Mesh) Release() {
	if m.vb != nil {
		m.vb.Release()
		m.vb = nil
	}
	if m.ib != nil {
		m.ib.Release()
		m.ib = nil
	}
}

func (m *Mesh) Name() string { return m.name }
func (m *Mesh) VertexCount() int { return m.vertexCount }
func (m *Mesh) IndexCount() int { return m.indexCount }
func (m *Mesh) Bounds() Bounds { return m.bounds }
func (m *Mesh) VertexBuffer() gpu.Buffer { return m.vb }
func (m *Mesh) IndexBuffer() gpu.Buffer { return m.ib }
