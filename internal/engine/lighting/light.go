// Package lighting describes scene lights and packs them for shader upload.
package lighting

import (
	"github.com/Faultbox/prism/pkg/math"
)

// Type identifies a light variant in the packed GPU record.
type Type int32

const (
	TypeDirectional Type = 0
	TypePoint       Type = 1
	TypeSpot        Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeDirectional:
		return "directional"
	case TypePoint:
		return "point"
	case TypeSpot:
		return "spot"
	}
	return "unknown"
}

// Light is one of Directional, Point or Spot.
type Light interface {
	Type() Type
	// Record returns the packed GPU form.
	Record() GPULight
	normalized() Light
}

// Directional lights the whole scene from one direction.
type Directional struct {
	Direction    math.Vec3 // direction the light travels
	Color        math.Vec3
	Intensity    float32
	CastsShadows bool
}

// Point radiates from a position and fades out at Range.
type Point struct {
	Position     math.Vec3
	Range        float32
	Color        math.Vec3
	Intensity    float32
	CastsShadows bool
}

// Spot is a cone from Position along Direction. Angles are in radians;
// full intensity inside InnerAngle, none outside OuterAngle.
type Spot struct {
	Position     math.Vec3
	Direction    math.Vec3
	Range        float32
	Color        math.Vec3
	Intensity    float32
	InnerAngle   float32
	OuterAngle   float32
	CastsShadows bool
}

func (Directional) Type() Type { return TypeDirectional }
func (Point) Type() Type { return TypePoint }
func (Spot) Type() Type { return TypeSpot }

func (l Directional) Record() GPULight {
	return GPULight{
		Type:         int32(TypeDirectional),
		Intensity:    l.Intensity,
		Direction:    l.Direction.Array(),
		Color:        l.Color.Array(),
		CastsShadows: boolToInt(l.CastsShadows),
	}
}

func (l Point) Record() GPULight {
	return GPULight{
		Type:         int32(TypePoint),
		Range:        l.Range,
		Intensity:    l.Intensity,
		Position:     l.Position.Array(),
		Color:        l.Color.Array(),
		CastsShadows: boolToInt(l.CastsShadows),
	}
}

func (l Spot) Record() GPULight {
	return GPULight{
		Type:         int32(TypeSpot),
		Range:        l.Range,
		Intensity:    l.Intensity,
		SpotInner:    l.InnerAngle,
		Direction:    l.Direction.Array(),
		SpotOuter:    l.OuterAngle,
		Position:     l.Position.Array(),
		CastsShadows: boolToInt(l.CastsShadows),
		Color:        l.Color.Array(),
	}
}

func (l Directional) normalized() Light {
	l.Direction = l.Direction.Normalize()
	return l
}

func (l Point) normalized() Light { return l }

func (l Spot) normalized() Light {
	l.Direction = l.Direction.Normalize()
	return l
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
