package particles

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// Containment is the tapered interior of the cup in cup-local space.
//
// The allowed radius grows linearly from BottomRadius at BaseY to TopRadius at
// RimY. Two optional reductions carve out room for the handle, and both apply
// only in the lower part of the cup (below SectorHeightFrac of the rim).
type Containment struct {
	RimY         float32
	BottomRadius float32
	TopRadius    float32
	Margin       float32

	HandleAngle      float32 // radians around +Y, measured from +X towards +Z
	SectorReduction  float32 // flat reduction within 45 degrees of HandleAngle
	LobeReduction    float32 // smooth reduction peaking at HandleAngle
	LobeSharpness    float32
	SectorHeightFrac float32
}

// DefaultContainment matches the default cup interior.
func DefaultContainment() Containment {
	return Containment{
		RimY:             0.55,
		BottomRadius:     0.28,
		TopRadius:        0.36,
		Margin:           0.015,
		LobeSharpness:    4,
		SectorHeightFrac: 0.7,
	}
}

// normalizedHeight maps y to [0,1] between baseY and the rim.
func (c Containment) normalizedHeight(baseY, y float32) float32 {
	return math.Clamp((y-baseY)/math.SafeDenom(c.RimY-baseY), 0, 1)
}

// Profile returns the radius at y without any handle reductions.
func (c Containment) Profile(baseY, y float32) float32 {
	n := c.normalizedHeight(baseY, y)
	return math.Lerp(c.BottomRadius, c.TopRadius, n) - c.Margin
}

// Allowed returns the maximum horizontal distance from the axis for a point
// at height y and azimuth angle. It never goes below zero.
func (c Containment) Allowed(baseY, y, angle float32) float32 {
	n := c.normalizedHeight(baseY, y)
	r := math.Lerp(c.BottomRadius, c.TopRadius, n) - c.Margin

	if n < c.SectorHeightFrac {
		d := math.Abs(math.WrapAngle(angle - c.HandleAngle))
		if d <= math.Pi/4 {
			r -= c.SectorReduction
		}
		if c.LobeReduction != 0 {
			if cos := math.Cos(d); cos > 0 {
				r -= c.LobeReduction * math.Pow(cos, c.LobeSharpness)
			}
		}
	}
	if r < 0 {
		return 0
	}
	return r
}
