package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit vector
// pointing towards the sun. Longitude turns around Y from +Z towards +X,
// latitude is elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180
	sinLon, cosLon := math32.Sincos(lon)
	sinLat, cosLat := math32.Sincos(lat)
	return math.Vec3{X: cosLat * sinLon, Y: sinLat, Z: cosLat * cosLon}
}

// Sun returns a directional light shining from the sun position given by
// longitude and latitude.
func Sun(longitude, latitude float32, color math.Vec3, intensity float32) Directional {
	return Directional{
		Direction: SunDirection(longitude, latitude).Scale(-1),
		Color:     color,
		Intensity: intensity,
	}
}
