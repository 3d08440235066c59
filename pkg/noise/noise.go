// Package noise provides deterministic scalar fields for procedural animation:
// value noise, fractal sums of it, and small sums of travelling sinusoids.
//
// Every function is pure. Identical inputs always give identical outputs and no
// package-level state is consulted, so the same fields can be reproduced in a
// shader or in tests.
package noise

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// DefaultOctaves is the octave count used by FBM.
const DefaultOctaves = 4

// Hash2 maps an integer lattice point to a pseudo-random value in [0, 1).
// It is an integer avalanche hash, so results are identical on every platform.
func Hash2(ix, iy int32) float32 {
	h := uint32(ix)*0x8da6b343 ^ uint32(iy)*0xd8163841
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	h *= 0x297a2d39
	h ^= h >> 15
	return float32(h>>8) / float32(1<<24)
}

// ValueNoise returns smoothly interpolated lattice noise in [0, 1).
func ValueNoise(x, y float32) float32 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	ix := int32(fx)
	iy := int32(fy)
	tx := fade(x - fx)
	ty := fade(y - fy)

	a := Hash2(ix, iy)
	b := Hash2(ix+1, iy)
	c := Hash2(ix, iy+1)
	d := Hash2(ix+1, iy+1)

	return math.Mix(math.Mix(a, b, tx), math.Mix(c, d, tx), ty)
}

// FBM sums DefaultOctaves layers of value noise and returns a value in [0, 1).
func FBM(x, y float32) float32 {
	return FBMOctaves(x, y, DefaultOctaves)
}

// FBMOctaves sums octaves layers of value noise at doubling frequency and
// halving amplitude, normalised by the total amplitude.
func FBMOctaves(x, y float32, octaves int) float32 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float32
	amp := float32(0.5)
	for i := 0; i < octaves; i++ {
		sum += amp * ValueNoise(x, y)
		norm += amp
		x *= 2
		y *= 2
		amp *= 0.5
	}
	return sum / norm
}

// fade is the cubic hermite curve used between lattice points.
func fade(t float32) float32 {
	return t * t * (3 - 2*t)
}
