package lamp

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// Curve is a Catmull-Rom spline through four control points. The end points
// are duplicated so the curve passes through all four.
type Curve struct {
	Points [4]math.Vec3
}

// Point evaluates the curve at t in [0,1]; t is clamped.
func (c Curve) Point(t float32) math.Vec3 {
	t = math.Clamp(t, 0, 1)
	const segments = 3
	f := t * segments
	seg := int(f)
	if seg >= segments {
		seg = segments - 1
	}
	local := f - float32(seg)

	p := func(i int) math.Vec3 {
		if i < 0 {
			i = 0
		}
		if i > 3 {
			i = 3
		}
		return c.Points[i]
	}
	return catmullRom(p(seg-1), p(seg), p(seg+1), p(seg+2), local)
}

// Sample returns n points evenly spaced in parameter between from and to.
func (c Curve) Sample(from, to float32, n int) []math.Vec3 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []math.Vec3{c.Point(from)}
	}
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = c.Point(math.Lerp(from, to, float32(i)/float32(n-1)))
	}
	return out
}

func catmullRom(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	t2 := t * t
	t3 := t2 * t
	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}
