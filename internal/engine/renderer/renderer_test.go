package renderer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

func TestCullFace(t *testing.T) {
	tests := []struct {
		mode    gpu.CullMode
		face    uint32
		enabled bool
	}{
		{gpu.CullBack, gl.BACK, true},
		{gpu.CullFront, gl.FRONT, true},
		{gpu.CullNone, 0, false},
	}
	for _, tt := range tests {
		face, enabled := cullFace(tt.mode)
		if face != tt.face || enabled != tt.enabled {
			t.Errorf("cullFace(%d) = %#x, %v; want %#x, %v", tt.mode, face, enabled, tt.face, tt.enabled)
		}
	}
}

func TestCompareFunc(t *testing.T) {
	tests := []struct {
		in   gpu.CompareFunc
		want uint32
	}{
		{gpu.CompareLess, gl.LESS},
		{gpu.CompareLessEqual, gl.LEQUAL},
		{gpu.CompareEqual, gl.EQUAL},
		{gpu.CompareAlways, gl.ALWAYS},
	}
	for _, tt := range tests {
		if got := compareFunc(tt.in); got != tt.want {
			t.Errorf("compareFunc(%d) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestPolygonMode(t *testing.T) {
	if polygonMode(gpu.FillSolid) != gl.FILL {
		t.Error("solid fill should map to GL_FILL")
	}
	if polygonMode(gpu.FillWireframe) != gl.LINE {
		t.Error("wireframe should map to GL_LINE")
	}
}

func TestFilterParams(t *testing.T) {
	minF, magF, aniso := filterParams(gpu.SamplerDesc{Filter: gpu.FilterNearest})
	if minF != gl.NEAREST_MIPMAP_NEAREST || magF != gl.NEAREST || aniso != 1 {
		t.Errorf("nearest: got %#x %#x %v", minF, magF, aniso)
	}

	_, magF, aniso = filterParams(gpu.SamplerDesc{Filter: gpu.FilterAnisotropic, MaxAnisotropy: 8})
	if magF != gl.LINEAR || aniso != 8 {
		t.Errorf("anisotropic: got %#x %v", magF, aniso)
	}

	_, _, aniso = filterParams(gpu.SamplerDesc{Filter: gpu.FilterAnisotropic})
	if aniso != 16 {
		t.Errorf("anisotropic default level: got %v, want 16", aniso)
	}
}

func TestWrapMode(t *testing.T) {
	if wrapMode(gpu.AddressWrap) != gl.REPEAT ||
		wrapMode(gpu.AddressClamp) != gl.CLAMP_TO_EDGE ||
		wrapMode(gpu.AddressMirror) != gl.MIRRORED_REPEAT {
		t.Error("unexpected wrap mode mapping")
	}
}

func TestStateObjectsKeepDesc(t *testing.T) {
	r := &Renderer{}
	rs, err := r.CreateRasterState(gpu.RasterDesc{Cull: gpu.CullFront, Fill: gpu.FillWireframe})
	if err != nil {
		t.Fatal(err)
	}
	if rs.Desc().Cull != gpu.CullFront || rs.Desc().Fill != gpu.FillWireframe {
		t.Errorf("raster desc not kept: %+v", rs.Desc())
	}
	ds, err := r.CreateDepthState(gpu.DepthDesc{Test: true, Func: gpu.CompareLessEqual})
	if err != nil {
		t.Fatal(err)
	}
	if ds.Desc().Func != gpu.CompareLessEqual || ds.Desc().Write {
		t.Errorf("depth desc not kept: %+v", ds.Desc())
	}
}
