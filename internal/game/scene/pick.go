package scene

import (
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/picking"
)

// Pick returns the index of the nearest entity under the pixel (x, y) of a
// width x height view seen through the active camera, or -1.
func (s *Scene) Pick(x, y, width, height float32) int {
	if len(s.cameras) == 0 || width <= 0 || height <= 0 {
		return -1
	}
	cam := s.ActiveCamera()
	ray := picking.ScreenToRay(x, y, width, height, cam.ViewMatrix(), cam.ProjectionMatrix())

	boxes := make([]mesh.Bounds, 0, len(s.entities))
	owners := make([]int, 0, len(s.entities))
	for i, e := range s.entities {
		m := e.Mesh()
		if m == nil {
			continue
		}
		boxes = append(boxes, picking.WorldBounds(m.Bounds(), e.Transform().WorldMatrix()))
		owners = append(owners, i)
	}

	hit, _ := picking.Nearest(ray, boxes)
	if hit < 0 {
		return -1
	}
	return owners[hit]
}
