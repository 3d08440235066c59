package lighting

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// MaxPointLights is the maximum number of point lights a Rig applies.
const MaxPointLights = 4

// PointLight is a point light source.
type PointLight struct {
	Position  math.Vec3  // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// BulbLight is the warm light of the desk lamp bulb.
func BulbLight(pos math.Vec3) PointLight {
	return PointLight{
		Position:  pos,
		Color:     [3]float32{1, 0.86, 0.6},
		Range:     0.9,
		Intensity: 0.9,
	}
}

// Attenuation returns the falloff at p: quadratic to zero at Range.
func (l PointLight) Attenuation(p math.Vec3) float32 {
	if l.Range <= 0 {
		return 0
	}
	k := math.Clamp(1-p.Distance(l.Position)/l.Range, 0, 1)
	return k * k * l.Intensity
}

// Rig is a set of lights shading one frame.
type Rig struct {
	Sun     math.Vec3 // towards the light
	Ambient float32
	Points  []PointLight
}

// DefaultRig returns the sun with soft ambient fill and no point lights.
func DefaultRig() Rig {
	return Rig{Sun: DefaultSun, Ambient: 0.35}
}

// AddPoint adds a point light. Returns false if the rig is full.
func (r *Rig) AddPoint(l PointLight) bool {
	if len(r.Points) >= MaxPointLights {
		return false
	}
	r.Points = append(r.Points, l)
	return true
}

// Shade lights color c at point p with surface normal n. The sun uses
// half-lambert wrap; point lights add their color where they face the
// surface. Channels are clamped to [0, 1].
func (r Rig) Shade(c [3]float32, p, n math.Vec3) [3]float32 {
	n = n.Normalize()
	d := n.Dot(r.Sun)
	k := r.Ambient + (1-r.Ambient)*math.Clamp(0.5+0.5*d, 0, 1)

	out := [3]float32{c[0] * k, c[1] * k, c[2] * k}
	for _, l := range r.Points {
		to := l.Position.Sub(p)
		facing := math.Clamp(n.Dot(to.Normalize()), 0, 1)
		w := l.Attenuation(p) * facing
		for i := range out {
			out[i] += c[i] * l.Color[i] * w
		}
	}
	for i := range out {
		out[i] = math.Clamp(out[i], 0, 1)
	}
	return out
}
