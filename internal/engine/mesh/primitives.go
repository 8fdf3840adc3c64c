package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// quadBuilder appends clockwise quads for left-handed, front-face-clockwise drawing.
type quadBuilder struct {
	vertices []gpu.Vertex
	indices  []uint32
}

// add appends a quad centered at c facing normal, spanning right and up
// as seen by a viewer looking at its front. uvRepeat tiles the texture.
func (q *quadBuilder) add(c, normal, right, up math.Vec3, uvRepeat float32) {
	base := uint32(len(q.vertices))
	corners := [4]struct {
		p  math.Vec3
		uv math.Vec2
	}{
		{c.Sub(right).Add(up), math.Vec2{X: 0, Y: 0}},
		{c.Add(right).Add(up), math.Vec2{X: uvRepeat, Y: 0}},
		{c.Add(right).Sub(up), math.Vec2{X: uvRepeat, Y: uvRepeat}},
		{c.Sub(right).Sub(up), math.Vec2{X: 0, Y: uvRepeat}},
	}
	tangent := right.Normalize()
	for _, k := range corners {
		q.vertices = append(q.vertices, gpu.Vertex{Position: k.p, Normal: normal, Tangent: tangent, UV: k.uv})
	}
	q.indices = append(q.indices, base, base+1, base+2, base, base+2, base+3)
}

// CubeGeometry returns a unit cube centered on the origin with one quad per face.
func CubeGeometry(size float32) ([]gpu.Vertex, []uint32) {
	h := size / 2
	faces := []struct{ n, up math.Vec3 }{
		{math.Vec3{X: 1}, math.Vec3Up},
		{math.Vec3{X: -1}, math.Vec3Up},
		{math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Y: -1}, math.Vec3{Z: -1}},
		{math.Vec3{Z: 1}, math.Vec3Up},
		{math.Vec3{Z: -1}, math.Vec3Up},
	}
	var q quadBuilder
	for _, f := range faces {
		forward := f.n.Scale(-1)
		right := f.up.Cross(forward)
		q.add(f.n.Scale(h), f.n, right.Scale(h), f.up.Scale(h), 1)
	}
	return q.vertices, q.indices
}

// PlaneGeometry returns a square in the XZ plane facing +Y. The texture repeats
// uvRepeat times across each side.
func PlaneGeometry(size, uvRepeat float32) ([]gpu.Vertex, []uint32) {
	h := size / 2
	var q quadBuilder
	q.add(math.Vec3{}, math.Vec3Up, math.Vec3{X: h}, math.Vec3{Z: h}, uvRepeat)
	return q.vertices, q.indices
}

// SphereGeometry returns a UV sphere. U wraps around Y, V runs from the top pole down.
func SphereGeometry(radius float32, slices, stacks int) ([]gpu.Vertex, []uint32) {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	var vertices []gpu.Vertex
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sincos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sincos(theta)
			n := math.Vec3{X: sinPhi * sinTheta, Y: cosPhi, Z: sinPhi * cosTheta}
			vertices = append(vertices, gpu.Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				Tangent:  math.Vec3{X: cosTheta, Z: -sinTheta},
				UV:       math.Vec2{X: float32(j) / float32(slices), Y: float32(i) / float32(stacks)},
			})
		}
	}

	row := uint32(slices + 1)
	var indices []uint32
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + 1
			d := a + row
			c := d + 1
			if i != 0 {
				indices = append(indices, b, a, d)
			}
			if i != stacks-1 {
				indices = append(indices, b, d, c)
			}
		}
	}
	return vertices, indices
}

// Cube uploads CubeGeometry.
func Cube(device gpu.Device, name string, size float32) (*Mesh, error) {
	v, i := CubeGeometry(size)
	return New(device, name, v, i)
}

// Plane uploads PlaneGeometry.
func Plane(device gpu.Device, name string, size, uvRepeat float32) (*Mesh, error) {
	v, i := PlaneGeometry(size, uvRepeat)
	return New(device, name, v, i)
}

// Sphere uploads SphereGeometry.
func Sphere(device gpu.Device, name string, radius float32, slices, stacks int) (*Mesh, error) {
	v, i := SphereGeometry(radius, slices, stacks)
	return New(device, name, v, i)
}
