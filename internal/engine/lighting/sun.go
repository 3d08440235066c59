// Package lighting provides the light rig used to shade scene geometry: a
// directional key light plus point lights such as the lamp bulb.
package lighting

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude is rotation around Y, latitude is elevation from the
// horizon. Returns a unit vector pointing towards the light.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := math.Radians(longitude)
	lat := math.Radians(latitude)

	// Spherical to Cartesian conversion
	return math.Vec3{
		X: math.Cos(lat) * math.Sin(lon),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Cos(lon),
	}
}

// DefaultSun is the key light over the desk.
var DefaultSun = SunDirection(40, 55)
