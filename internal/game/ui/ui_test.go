package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/pkg/math"
)

func TestOverlayFPS(t *testing.T) {
	o := NewOverlay()
	for range 30 {
		o.Update(10)
	}
	assert.Zero(t, o.FPS(), "no sample before half a second")

	for range 21 {
		o.Update(10)
	}
	assert.InDelta(t, 100.0, o.FPS(), 0.5)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.00 KB", formatBytes(2048))
	assert.Equal(t, "1.50 MB", formatBytes(3*1024*1024/2))
	assert.Equal(t, "3.00 GB", formatBytes(3*1024*1024*1024))
}

func TestDegreesRoundTrip(t *testing.T) {
	v := math.Vec3{X: 0.5, Y: -1.2, Z: 3}
	got := radians3(degrees3(v))
	assert.InDelta(t, v.X, got.X, 1e-5)
	assert.InDelta(t, v.Y, got.Y, 1e-5)
	assert.InDelta(t, v.Z, got.Z, 1e-5)

	assert.InDelta(t, 90, degrees3(math.Vec3{Y: toRadians * 90})[1], 1e-4)
}

func TestLightFieldsRoundTrip(t *testing.T) {
	lights := []lighting.Light{
		lighting.Directional{Direction: math.Vec3{Y: -1}, Color: math.Vec3One, Intensity: 2, CastsShadows: true},
		lighting.Point{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Range: 8, Color: math.Vec3{X: 1}, Intensity: 0.5},
		lighting.Spot{
			Position:   math.Vec3{Y: 4},
			Direction:  math.Vec3{Z: 1},
			Range:      12,
			Color:      math.Vec3{Z: 1},
			Intensity:  3,
			InnerAngle: 20 * toRadians,
			OuterAngle: 30 * toRadians,
		},
	}
	for _, l := range lights {
		t.Run(l.Type().String(), func(t *testing.T) {
			f := fieldsOf(l)
			assert.Equal(t, l.Type(), f.Type)
			got := f.light()
			assert.Equal(t, l.Type(), got.Type())
			assert.Equal(t, l.Record().Color, got.Record().Color)
			assert.Equal(t, l.Record().Intensity, got.Record().Intensity)
		})
	}

	spot := fieldsOf(lights[2])
	assert.InDelta(t, 20, spot.InnerAngle, 1e-4)
	assert.InDelta(t, 30, spot.OuterAngle, 1e-4)
}

func TestLightFieldsClampOuterAngle(t *testing.T) {
	f := lightFields{Type: lighting.TypeSpot, InnerAngle: 40, OuterAngle: 10, Range: -5}
	spot := f.light().(lighting.Spot)
	assert.InDelta(t, spot.InnerAngle, spot.OuterAngle, 1e-6)
	assert.Zero(t, spot.Range)
}
