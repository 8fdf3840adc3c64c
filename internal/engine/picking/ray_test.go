package picking

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/pkg/math"
)

const eps = 1e-3

func unitBox() mesh.Bounds {
	return mesh.Bounds{Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
}

func lookAlongZ() (math.Mat4, math.Mat4) {
	view := math.LookToLH(math.Vec3{Z: -5}, math.Vec3{Z: 1}, math.Vec3{Y: 1})
	proj := math.PerspectiveFovLH(math32.Pi/3, 1, 0.1, 100)
	return view, proj
}

func TestScreenToRayCenter(t *testing.T) {
	view, proj := lookAlongZ()
	r := ScreenToRay(50, 50, 100, 100, view, proj)

	assert.InDelta(t, 0, r.Direction.X, eps)
	assert.InDelta(t, 0, r.Direction.Y, eps)
	assert.InDelta(t, 1, r.Direction.Z, eps)
	assert.InDelta(t, -4.9, r.Origin.Z, eps)
}

func TestScreenToRayTopLeftPointsUpLeft(t *testing.T) {
	view, proj := lookAlongZ()
	r := ScreenToRay(0, 0, 100, 100, view, proj)

	assert.Less(t, r.Direction.X, float32(0))
	assert.Greater(t, r.Direction.Y, float32(0))
	assert.InDelta(t, 1, r.Direction.Length(), eps)
}

func TestIntersectBounds(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}, true, 4.5},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 0.5},
		{"miss", Ray{Origin: math.Vec3{X: 2, Z: -5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"parallel outside", Ray{Origin: math.Vec3{Y: 1}, Direction: math.Vec3{X: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.ray.IntersectBounds(unitBox())
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.dist, d, eps)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 4}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()}
	p, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.InDelta(t, 4, p.X, eps)
	assert.InDelta(t, 0, p.Y, eps)

	_, ok = Ray{Origin: math.Vec3{Y: 4}, Direction: math.Vec3{X: 1}}.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestWorldBounds(t *testing.T) {
	world := math.Translate(math.Vec3{X: 10}).Mul(math.Scale(math.Vec3{X: 2, Y: 1, Z: 1}))
	b := WorldBounds(unitBox(), world)

	assert.InDelta(t, 9, b.Min.X, eps)
	assert.InDelta(t, 11, b.Max.X, eps)
	assert.InDelta(t, -0.5, b.Min.Y, eps)
	assert.InDelta(t, 0.5, b.Max.Z, eps)
}

func TestWorldBoundsRotated(t *testing.T) {
	b := WorldBounds(unitBox(), math.RotateY(math32.Pi/4))
	assert.InDelta(t, 0.7071, b.Max.X, eps)
	assert.InDelta(t, -0.7071, b.Min.Z, eps)
}

func TestNearest(t *testing.T) {
	boxes := []mesh.Bounds{
		WorldBounds(unitBox(), math.Translate(math.Vec3{Z: 3})),
		WorldBounds(unitBox(), math.Translate(math.Vec3{X: 5})),
		unitBox(),
	}
	r := Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}

	i, d := Nearest(r, boxes)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 4.5, d, eps)

	i, _ = Nearest(Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{Y: 1}}, boxes)
	assert.Equal(t, -1, i)
}
