package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

var errEmptyBuffer = errors.New("empty buffer")

// Attribute locations shared with the GLSL vertex inputs.
const (
	locPosition = 0
	locNormal   = 1
	locTangent  = 2
	locUV       = 3
)

// vertexBuffer owns a VBO and the vertex array describing gpu.Vertex.
type vertexBuffer struct {
	vao, vbo uint32
	count    int
}

func (b *vertexBuffer) Len() int { return b.count }

func (b *vertexBuffer) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}

type indexBuffer struct {
	id    uint32
	count int
}

func (b *indexBuffer) Len() int { return b.count }

func (b *indexBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

func (r *Renderer) CreateVertexBuffer(vertices []gpu.Vertex) (gpu.Buffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("vertex buffer: %w", errEmptyBuffer)
	}
	b := &vertexBuffer{count: len(vertices)}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*gpu.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(gpu.VertexStride)
	attribs := []struct {
		loc    uint32
		size   int32
		offset int
	}{
		{locPosition, 3, gpu.OffsetPosition},
		{locNormal, 3, gpu.OffsetNormal},
		{locTangent, 3, gpu.OffsetTangent},
		{locUV, 2, gpu.OffsetUV},
	}
	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, stride, uintptr(a.offset))
		gl.EnableVertexAttribArray(a.loc)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

func (r *Renderer) CreateIndexBuffer(indices []uint32) (gpu.Buffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer: %w", errEmptyBuffer)
	}
	b := &indexBuffer{count: len(indices)}

	// Bind with no vertex array so no VAO captures this buffer.
	gl.BindVertexArray(0)
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return b, nil
}
