package gpu

import "testing"

func TestVertexLayout(t *testing.T) {
	if VertexStride != 44 {
		t.Errorf("VertexStride: got %d, want 44", VertexStride)
	}
	offsets := []struct {
		name string
		got  int
		want int
	}{
		{"position", OffsetPosition, 0},
		{"normal", OffsetNormal, 12},
		{"tangent", OffsetTangent, 24},
		{"uv", OffsetUV, 36},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("%s offset: got %d, want %d", o.name, o.got, o.want)
		}
	}
}
