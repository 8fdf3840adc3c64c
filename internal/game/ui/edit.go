package ui

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/pkg/math"
)

const (
	toDegrees = 180 / math32.Pi
	toRadians = math32.Pi / 180
)

func degrees3(v math.Vec3) [3]float32 {
	return [3]float32{v.X * toDegrees, v.Y * toDegrees, v.Z * toDegrees}
}

func radians3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0] * toRadians, Y: v[1] * toRadians, Z: v[2] * toRadians}
}

func vec2(v [2]float32) math.Vec2 { return math.Vec2{X: v[0], Y: v[1]} }
func arr2(v math.Vec2) [2]float32 { return [2]float32{v.X, v.Y} }
func vec3(v [3]float32) math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }
func arr3(v math.Vec3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }
func vec4(v [4]float32) math.Vec4 { return math.Vec4(v) }
func arr4(v math.Vec4) [4]float32 { return [4]float32(v) }

// lightFields is the editable form of any light. Angles are in degrees.
type lightFields struct {
	Type       lighting.Type
	Position   [3]float32
	Direction  [3]float32
	Color      [3]float32
	Intensity  float32
	Range      float32
	InnerAngle float32
	OuterAngle float32
	Shadows    bool
}

func fieldsOf(l lighting.Light) lightFields {
	switch l := l.(type) {
	case lighting.Directional:
		return lightFields{
			Type:      lighting.TypeDirectional,
			Direction: arr3(l.Direction),
			Color:     arr3(l.Color),
			Intensity: l.Intensity,
			Shadows:   l.CastsShadows,
		}
	case lighting.Point:
		return lightFields{
			Type:      lighting.TypePoint,
			Position:  arr3(l.Position),
			Color:     arr3(l.Color),
			Intensity: l.Intensity,
			Range:     l.Range,
			Shadows:   l.CastsShadows,
		}
	case lighting.Spot:
		return lightFields{
			Type:       lighting.TypeSpot,
			Position:   arr3(l.Position),
			Direction:  arr3(l.Direction),
			Color:      arr3(l.Color),
			Intensity:  l.Intensity,
			Range:      l.Range,
			InnerAngle: l.InnerAngle * toDegrees,
			OuterAngle: l.OuterAngle * toDegrees,
			Shadows:    l.CastsShadows,
		}
	}
	return lightFields{}
}

// light rebuilds the light. A spot's outer angle never drops below its inner one.
func (f lightFields) light() lighting.Light {
	switch f.Type {
	case lighting.TypePoint:
		return lighting.Point{
			Position:     vec3(f.Position),
			Range:        max(f.Range, 0),
			Color:        vec3(f.Color),
			Intensity:    f.Intensity,
			CastsShadows: f.Shadows,
		}
	case lighting.TypeSpot:
		return lighting.Spot{
			Position:     vec3(f.Position),
			Direction:    vec3(f.Direction),
			Range:        max(f.Range, 0),
			Color:        vec3(f.Color),
			Intensity:    f.Intensity,
			InnerAngle:   f.InnerAngle * toRadians,
			OuterAngle:   max(f.OuterAngle, f.InnerAngle) * toRadians,
			CastsShadows: f.Shadows,
		}
	default:
		return lighting.Directional{
			Direction:    vec3(f.Direction),
			Color:        vec3(f.Color),
			Intensity:    f.Intensity,
			CastsShadows: f.Shadows,
		}
	}
}
