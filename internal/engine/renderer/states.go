package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

// maxAnisotropy is GL_TEXTURE_MAX_ANISOTROPY, core in 4.6 and available
// through EXT_texture_filter_anisotropic on 4.1 drivers.
const maxAnisotropy = 0x84FE

func cullFace(m gpu.CullMode) (face uint32, enabled bool) {
	switch m {
	case gpu.CullBack:
		return gl.BACK, true
	case gpu.CullFront:
		return gl.FRONT, true
	}
	return 0, false
}

func polygonMode(m gpu.FillMode) uint32 {
	if m == gpu.FillWireframe {
		return gl.LINE
	}
	return gl.FILL
}

func compareFunc(f gpu.CompareFunc) uint32 {
	switch f {
	case gpu.CompareLessEqual:
		return gl.LEQUAL
	case gpu.CompareEqual:
		return gl.EQUAL
	case gpu.CompareAlways:
		return gl.ALWAYS
	}
	return gl.LESS
}

// filterParams returns the min and mag filters and the anisotropy level.
func filterParams(d gpu.SamplerDesc) (minFilter, magFilter int32, aniso float32) {
	switch d.Filter {
	case gpu.FilterNearest:
		return gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST, 1
	case gpu.FilterAnisotropic:
		aniso = float32(d.MaxAnisotropy)
		if aniso < 1 {
			aniso = 16
		}
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR, aniso
	}
	return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR, 1
}

func wrapMode(a gpu.AddressMode) int32 {
	switch a {
	case gpu.AddressClamp:
		return gl.CLAMP_TO_EDGE
	case gpu.AddressMirror:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

type rasterState struct{ desc gpu.RasterDesc }

func (s *rasterState) Desc() gpu.RasterDesc { return s.desc }
func (s *rasterState) Release() {}

type depthState struct{ desc gpu.DepthDesc }

func (s *depthState) Desc() gpu.DepthDesc { return s.desc }
func (s *depthState) Release() {}

// CreateRasterState records a rasterizer configuration applied by SetRasterState.
func (r *Renderer) CreateRasterState(desc gpu.RasterDesc) (gpu.RasterState, error) {
	return &rasterState{desc: desc}, nil
}

// CreateDepthState records a depth configuration applied by SetDepthState.
func (r *Renderer) CreateDepthState(desc gpu.DepthDesc) (gpu.DepthState, error) {
	return &depthState{desc: desc}, nil
}

type sampler struct{ id uint32 }

func (s *sampler) GLName() uint32 { return s.id }

func (s *sampler) Release() {
	if s.id != 0 {
		gl.DeleteSamplers(1, &s.id)
		s.id = 0
	}
}

func (r *Renderer) CreateSampler(desc gpu.SamplerDesc) (gpu.Sampler, error) {
	s := &sampler{}
	gl.GenSamplers(1, &s.id)
	minFilter, magFilter, aniso := filterParams(desc)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, magFilter)
	wrap := wrapMode(desc.Address)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_R, wrap)
	if aniso > 1 {
		gl.SamplerParameterf(s.id, maxAnisotropy, aniso)
	}
	return s, nil
}
