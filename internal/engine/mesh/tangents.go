package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// faceNormal returns the area-weighted outward normal of a clockwise triangle.
func faceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// computeTangents derives per-vertex tangents along +U from triangle UV edges,
// then orthogonalizes each against its normal (Gram-Schmidt).
func computeTangents(vertices []gpu.Vertex, indices []uint32) {
	acc := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1, dv1 := v1.UV.X-v0.UV.X, v1.UV.Y-v0.UV.Y
		du2, dv2 := v2.UV.X-v0.UV.X, v2.UV.Y-v0.UV.Y

		det := du1*dv2 - du2*dv1
		if math32.Abs(det) < 1e-12 {
			continue
		}
		t := e1.Scale(dv2).Sub(e2.Scale(dv1)).Scale(1 / det)
		acc[i0] = acc[i0].Add(t)
		acc[i1] = acc[i1].Add(t)
		acc[i2] = acc[i2].Add(t)
	}

	for i := range vertices {
		vertices[i].Tangent = orthogonalize(acc[i], vertices[i].Normal)
	}
}

func orthogonalize(t, n math.Vec3) math.Vec3 {
	t = t.Sub(n.Scale(n.Dot(t)))
	if t.Length() > 1e-6 {
		return t.Normalize()
	}
	// No usable UV gradient: any unit vector perpendicular to n.
	axis := math.Vec3Right
	if math32.Abs(n.X) > 0.9 {
		axis = math.Vec3Up
	}
	t = axis.Sub(n.Scale(n.Dot(axis)))
	if t.Length() < 1e-6 {
		return axis
	}
	return t.Normalize()
}
