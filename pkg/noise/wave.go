package noise

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// Wave is one travelling sinusoid: A*sin(x*Frequency - t*Speed + Phase).
type Wave struct {
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	Speed     float32 `yaml:"speed"`
	Phase     float32 `yaml:"phase"`
}

// DefaultRipple returns the three-term ripple used on the liquid surface.
// Amplitudes sum to 1 so Ripple stays within [-1, 1].
func DefaultRipple() []Wave {
	return []Wave{
		{Amplitude: 0.5, Frequency: 18, Speed: 2.2, Phase: 0},
		{Amplitude: 0.3, Frequency: 31, Speed: 3.1, Phase: 1.3},
		{Amplitude: 0.2, Frequency: 47, Speed: 4.7, Phase: 2.9},
	}
}

// Ripple evaluates the sum of waves at position x and time t.
func Ripple(x, t float32, waves []Wave) float32 {
	var sum float32
	for _, w := range waves {
		sum += w.Amplitude * math.Sin(x*w.Frequency-t*w.Speed+w.Phase)
	}
	return sum
}

// Bound returns the largest magnitude Ripple can reach for waves.
func Bound(waves []Wave) float32 {
	var b float32
	for _, w := range waves {
		b += math.Abs(w.Amplitude)
	}
	return b
}

// WoodGrain returns ring-shaped grain bands in [0, 1] for a point on a plank.
// Rings run around the Z axis, warped by FBM and modulated along the plank by
// two slow sinusoids.
func WoodGrain(x, z float32) float32 {
	warp := FBM(x*3, z*0.6) * 0.35
	dist := math.Sqrt(x*x+(z*0.08)*(z*0.08)) + warp
	band := 0.5 + 0.5*math.Sin(dist*42)

	mod := 0.5 + 0.25*math.Sin(z*5.3) + 0.25*math.Sin(z*11.1+x*2)
	return math.Clamp(band*(0.7+0.3*mod), 0, 1)
}
