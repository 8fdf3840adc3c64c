package gpu

// CullMode selects which triangle faces are discarded.
type CullMode int

const (
	CullBack CullMode = iota
	CullFront
	CullNone
)

// FillMode selects solid or wireframe rasterization.
type FillMode int

const (
	FillSolid FillMode = iota
	FillWireframe
)

// RasterDesc describes a rasterizer state.
type RasterDesc struct {
	Cull      CullMode
	Fill      FillMode
	DepthClip bool
}

// DefaultRaster is the state a context starts with.
var DefaultRaster = RasterDesc{Cull: CullBack, Fill: FillSolid, DepthClip: true}

// CompareFunc is a depth comparison.
type CompareFunc int

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareEqual
	CompareAlways
)

// DepthDesc describes a depth test state.
type DepthDesc struct {
	Test  bool
	Write bool
	Func  CompareFunc
}

// DefaultDepth is the state a context starts with.
var DefaultDepth = DepthDesc{Test: true, Write: true, Func: CompareLess}

// Filter selects texture filtering.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	FilterAnisotropic
)

// AddressMode selects how UVs outside [0, 1] resolve.
type AddressMode int

const (
	AddressWrap AddressMode = iota
	AddressClamp
	AddressMirror
)

// SamplerDesc describes a sampler.
type SamplerDesc struct {
	Filter        Filter
	Address       AddressMode
	MaxAnisotropy int
}
