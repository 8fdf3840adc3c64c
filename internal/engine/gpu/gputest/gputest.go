// Package gputest provides recording fakes of the gpu contracts for tests.
package gputest

import (
	"errors"
	"image"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// Call is one recorded operation.
type Call struct {
	Op    string
	Name  string
	Value any
}

// Log is an ordered list of calls shared by a Device, its Context and its Shaders.
type Log struct {
	Calls []Call
}

func (l *Log) add(op, name string, v any) {
	l.Calls = append(l.Calls, Call{Op: op, Name: name, Value: v})
}

// Ops returns the operation names in order.
func (l *Log) Ops() []string {
	ops := make([]string, len(l.Calls))
	for i, c := range l.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the recorded calls with the given op.
func (l *Log) Find(op string) []Call {
	var out []Call
	for _, c := range l.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent call with op and name, if any.
func (l *Log) Last(op, name string) (Call, bool) {
	for i := len(l.Calls) - 1; i >= 0; i-- {
		if c := l.Calls[i]; c.Op == op && c.Name == name {
			return c, true
		}
	}
	return Call{}, false
}

// Reset clears the log.
func (l *Log) Reset() {
	l.Calls = l.Calls[:0]
}

// ErrInjected is returned by a Device whose Fail field is set.
var ErrInjected = errors.New("injected device failure")

// Buffer is a fake vertex or index buffer.
type Buffer struct {
	Vertices []gpu.Vertex
	Indices  []uint32
	Released bool
}

func (b *Buffer) Len() int {
	if b.Vertices != nil {
		return len(b.Vertices)
	}
	return len(b.Indices)
}

func (b *Buffer) Release() { b.Released = true }

// Texture is a fake texture.
type Texture struct {
	TextureKind   gpu.TextureKind
	Width, Height int
	Released      bool
}

func (t *Texture) Kind() gpu.TextureKind { return t.TextureKind }
func (t *Texture) Size() (int, int) { return t.Width, t.Height }
func (t *Texture) Release() { t.Released = true }

// Sampler is a fake sampler.
type Sampler struct {
	gpu.SamplerDesc
	Released bool
}

func (s *Sampler) Release() { s.Released = true }

// RasterState is a fake rasterizer state.
type RasterState struct {
	D        gpu.RasterDesc
	Released bool
}

func (r *RasterState) Desc() gpu.RasterDesc { return r.D }
func (r *RasterState) Release() { r.Released = true }

// DepthState is a fake depth state.
type DepthState struct {
	D        gpu.DepthDesc
	Released bool
}

func (d *DepthState) Desc() gpu.DepthDesc { return d.D }
func (d *DepthState) Release() { d.Released = true }

// Device is a fake gpu.Device and gpu.Context recording into Log.
type Device struct {
	Log  *Log
	Fail bool // every Create call returns ErrInjected

	Raster gpu.RasterDesc // current rasterizer state
	Depth  gpu.DepthDesc  // current depth state
}

// NewDevice returns a fake device with default states and an empty log.
func NewDevice() *Device {
	return &Device{Log: &Log{}, Raster: gpu.DefaultRaster, Depth: gpu.DefaultDepth}
}

func (d *Device) CreateVertexBuffer(vertices []gpu.Vertex) (gpu.Buffer, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	d.Log.add("CreateVertexBuffer", "", len(vertices))
	return &Buffer{Vertices: append([]gpu.Vertex(nil), vertices...)}, nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (gpu.Buffer, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	d.Log.add("CreateIndexBuffer", "", len(indices))
	return &Buffer{Indices: append([]uint32(nil), indices...)}, nil
}

func (d *Device) CreateTexture2D(img image.Image) (gpu.Texture, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	b := img.Bounds()
	d.Log.add("CreateTexture2D", "", b.Size())
	return &Texture{TextureKind: gpu.Texture2D, Width: b.Dx(), Height: b.Dy()}, nil
}

func (d *Device) CreateCubemap(faces [6]image.Image) (gpu.Texture, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	b := faces[0].Bounds()
	d.Log.add("CreateCubemap", "", b.Size())
	return &Texture{TextureKind: gpu.TextureCube, Width: b.Dx(), Height: b.Dy()}, nil
}

func (d *Device) CreateSampler(desc gpu.SamplerDesc) (gpu.Sampler, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	d.Log.add("CreateSampler", "", desc)
	return &Sampler{SamplerDesc: desc}, nil
}

func (d *Device) CreateRasterState(desc gpu.RasterDesc) (gpu.RasterState, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	d.Log.add("CreateRasterState", "", desc)
	return &RasterState{D: desc}, nil
}

func (d *Device) CreateDepthState(desc gpu.DepthDesc) (gpu.DepthState, error) {
	if d.Fail {
		return nil, ErrInjected
	}
	d.Log.add("CreateDepthState", "", desc)
	return &DepthState{D: desc}, nil
}

func (d *Device) SetVertexBuffer(b gpu.Buffer, stride int) {
	d.Log.add("SetVertexBuffer", "", stride)
}

func (d *Device) SetIndexBuffer(b gpu.Buffer) {
	d.Log.add("SetIndexBuffer", "", b.Len())
}

func (d *Device) DrawIndexed(indexCount, startIndex, baseVertex int) {
	d.Log.add("DrawIndexed", "", [3]int{indexCount, startIndex, baseVertex})
}

func (d *Device) SetRasterState(s gpu.RasterState) {
	d.Raster = gpu.DefaultRaster
	if s != nil {
		d.Raster = s.Desc()
	}
	d.Log.add("SetRasterState", "", d.Raster)
}

func (d *Device) SetDepthState(s gpu.DepthState) {
	d.Depth = gpu.DefaultDepth
	if s != nil {
		d.Depth = s.Desc()
	}
	d.Log.add("SetDepthState", "", d.Depth)
}

func (d *Device) Clear(color math.Vec4, depth float32) {
	d.Log.add("Clear", "", [2]any{color, depth})
}

func (d *Device) Viewport(x, y, width, height int) {
	d.Log.add("Viewport", "", [4]int{x, y, width, height})
}

var (
	_ gpu.Device  = (*Device)(nil)
	_ gpu.Context = (*Device)(nil)
)
