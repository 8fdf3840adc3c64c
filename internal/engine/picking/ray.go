// Package picking casts rays from viewport coordinates into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/pkg/math"
)

// Ray is a world-space half line. Direction is unit length.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects a pixel through view and projection.
// Pixel coordinates grow right and down from the top-left corner.
func ScreenToRay(x, y, width, height float32, view, proj math.Mat4) Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	inv := proj.Mul(view).Inverse()
	near := unproject(inv, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, math.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		return math.Vec3{X: w[0] / w[3], Y: w[1] / w[3], Z: w[2] / w[3]}
	}
	return w.XYZ()
}

// IntersectPlaneY returns the hit point on the horizontal plane at height y.
func (r Ray) IntersectPlaneY(y float32) (math.Vec3, bool) {
	if math32.Abs(r.Direction.Y) < 1e-3 {
		return math.Vec3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectBounds runs the slab test against b. When the origin is inside
// the box the exit distance is returned.
func (r Ray) IntersectBounds(b mesh.Bounds) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// WorldBounds transforms the eight corners of local by world and returns
// the axis-aligned box around them.
func WorldBounds(local mesh.Bounds, world math.Mat4) mesh.Bounds {
	out := mesh.Bounds{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
	for i := range 8 {
		c := local.Min
		if i&1 != 0 {
			c.X = local.Max.X
		}
		if i&2 != 0 {
			c.Y = local.Max.Y
		}
		if i&4 != 0 {
			c.Z = local.Max.Z
		}
		p := world.TransformPoint(c)
		out.Min = math.Vec3{X: min(out.Min.X, p.X), Y: min(out.Min.Y, p.Y), Z: min(out.Min.Z, p.Z)}
		out.Max = math.Vec3{X: max(out.Max.X, p.X), Y: max(out.Max.Y, p.Y), Z: max(out.Max.Z, p.Z)}
	}
	return out
}

// Nearest returns the index of the closest box hit by r, or -1.
func Nearest(r Ray, boxes []mesh.Bounds) (int, float32) {
	best, bestT := -1, float32(math32.MaxFloat32)
	for i, b := range boxes {
		if t, ok := r.IntersectBounds(b); ok && t < bestT {
			best, bestT = i, t
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestT
}
