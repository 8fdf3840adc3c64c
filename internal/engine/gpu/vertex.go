package gpu

import (
	"unsafe"

	"github.com/Faultbox/prism/pkg/math"
)

// Vertex is the single vertex layout shared by every mesh and shader.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3 // aligned with +U
	UV       math.Vec2
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = int(unsafe.Sizeof(Vertex{}))

// Attribute offsets within Vertex, in bytes.
const (
	OffsetPosition = int(unsafe.Offsetof(Vertex{}.Position))
	OffsetNormal   = int(unsafe.Offsetof(Vertex{}.Normal))
	OffsetTangent  = int(unsafe.Offsetof(Vertex{}.Tangent))
	OffsetUV       = int(unsafe.Offsetof(Vertex{}.UV))
)
