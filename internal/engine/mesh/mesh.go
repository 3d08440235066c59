// Package mesh builds the solid scene geometry drawn by the renderer: the
// desk slab with its wood top, the cup shell and the lamp parts.
//
// Geometry is emitted as unindexed triangles of guides.Vertex with lighting
// baked into the vertex color, so one flat shader draws every solid.
package mesh

import (
	"github.com/Faultbox/deskscene/internal/engine/guides"
	"github.com/Faultbox/deskscene/internal/engine/lighting"
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/pkg/math"
	"github.com/Faultbox/deskscene/pkg/noise"
)

// Scene colors.
var (
	ColorWoodLight = guides.Color{0.62, 0.43, 0.25}
	ColorWoodDark  = guides.Color{0.42, 0.26, 0.13}
	ColorCup       = guides.Color{0.92, 0.9, 0.86}
	ColorLamp      = guides.Color{0.2, 0.22, 0.26}
	ColorShade     = guides.Color{0.75, 0.2, 0.18}
	ColorBulb      = guides.Color{1, 0.95, 0.7}
)

// Builder emits geometry shaded by its light rig.
type Builder struct {
	Light lighting.Rig
}

// NewBuilder returns a builder lit by the default rig.
func NewBuilder() Builder {
	return Builder{Light: lighting.DefaultRig()}
}

// Shade lights c at point p facing n.
func (m Builder) Shade(c guides.Color, p, n math.Vec3) guides.Color {
	return guides.Color(m.Light.Shade(c, p, n))
}

func vertex(p math.Vec3, c guides.Color) guides.Vertex {
	return guides.Vertex{X: p.X, Y: p.Y, Z: p.Z, R: c[0], G: c[1], B: c[2]}
}

// triangle appends a, b, c shaded at their centroid by the face normal.
func (m Builder) triangle(out []guides.Vertex, a, b, c math.Vec3, col guides.Color) []guides.Vertex {
	n := b.Sub(a).Cross(c.Sub(a))
	center := a.Add(b).Add(c).Scale(1.0 / 3)
	s := m.Shade(col, center, n)
	return append(out, vertex(a, s), vertex(b, s), vertex(c, s))
}

// quad appends two triangles for the counter-clockwise quad a, b, c, d.
func (m Builder) quad(out []guides.Vertex, a, b, c, d math.Vec3, col guides.Color) []guides.Vertex {
	out = m.triangle(out, a, b, c, col)
	return m.triangle(out, a, c, d, col)
}

// BoxVertexCount is the vertex count of SolidBox output.
const BoxVertexCount = 36

// SolidBox returns the six faces of an axis-aligned box.
func (m Builder) SolidBox(b picking.AABB, c guides.Color) []guides.Vertex {
	lo, hi := b.Min, b.Max
	p := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	out := make([]guides.Vertex, 0, BoxVertexCount)
	out = m.quad(out, p(lo.X, hi.Y, lo.Z), p(lo.X, hi.Y, hi.Z), p(hi.X, hi.Y, hi.Z), p(hi.X, hi.Y, lo.Z), c) // top
	out = m.quad(out, p(lo.X, lo.Y, lo.Z), p(hi.X, lo.Y, lo.Z), p(hi.X, lo.Y, hi.Z), p(lo.X, lo.Y, hi.Z), c) // bottom
	out = m.quad(out, p(lo.X, lo.Y, hi.Z), p(hi.X, lo.Y, hi.Z), p(hi.X, hi.Y, hi.Z), p(lo.X, hi.Y, hi.Z), c) // +z
	out = m.quad(out, p(hi.X, lo.Y, lo.Z), p(lo.X, lo.Y, lo.Z), p(lo.X, hi.Y, lo.Z), p(hi.X, hi.Y, lo.Z), c) // -z
	out = m.quad(out, p(hi.X, lo.Y, hi.Z), p(hi.X, lo.Y, lo.Z), p(hi.X, hi.Y, lo.Z), p(hi.X, hi.Y, hi.Z), c) // +x
	out = m.quad(out, p(lo.X, lo.Y, lo.Z), p(lo.X, lo.Y, hi.Z), p(lo.X, hi.Y, hi.Z), p(lo.X, hi.Y, lo.Z), c) // -x
	return out
}

// WoodTop tessellates the desk top into an n x n grid colored by wood grain.
// Grain is sampled in desk-local coordinates so it travels with the desk.
func (m Builder) WoodTop(r math.Rect, y float32, n int) []guides.Vertex {
	if n < 1 {
		n = 1
	}
	cx, cz := (r.MinX+r.MaxX)/2, (r.MinZ+r.MaxZ)/2
	w, d := r.MaxX-r.MinX, r.MaxZ-r.MinZ
	up := math.Vec3{Y: 1}

	at := func(i, j int) guides.Vertex {
		x := r.MinX + w*float32(i)/float32(n)
		z := r.MinZ + d*float32(j)/float32(n)
		g := noise.WoodGrain((x-cx)*0.9, (z-cz)*0.9)
		col := guides.Color{
			math.Mix(ColorWoodDark[0], ColorWoodLight[0], g),
			math.Mix(ColorWoodDark[1], ColorWoodLight[1], g),
			math.Mix(ColorWoodDark[2], ColorWoodLight[2], g),
		}
		p := math.Vec3{X: x, Y: y, Z: z}
		return vertex(p, m.Shade(col, p, up))
	}

	out := make([]guides.Vertex, 0, n*n*6)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a, b, c, e := at(i, j), at(i, j+1), at(i+1, j+1), at(i+1, j)
			out = append(out, a, b, c, a, c, e)
		}
	}
	return out
}

// Frustum returns the side wall and floor of a truncated cone standing on the
// local origin, transformed by model.
func (m Builder) Frustum(model math.Mat4, bottom, top, height float32, segments int, c guides.Color) []guides.Vertex {
	if segments < 3 {
		segments = 3
	}
	ring := func(i int, radius, y float32) math.Vec3 {
		a := float32(i) / float32(segments) * 2 * math.Pi
		return model.TransformVec3(math.Vec3{X: math.Cos(a) * radius, Y: y, Z: math.Sin(a) * radius})
	}
	center := model.TransformVec3(math.Vec3{})

	out := make([]guides.Vertex, 0, segments*9)
	for i := 0; i < segments; i++ {
		b0, b1 := ring(i, bottom, 0), ring(i+1, bottom, 0)
		t0, t1 := ring(i, top, height), ring(i+1, top, height)
		out = m.quad(out, b0, t0, t1, b1, c)
		out = m.triangle(out, center, b0, b1, c)
	}
	return out
}

// Tube sweeps a polygonal cross-section along points.
func (m Builder) Tube(points []math.Vec3, radius float32, sides int, c guides.Color) []guides.Vertex {
	if len(points) < 2 {
		return nil
	}
	if sides < 3 {
		sides = 3
	}

	var out []guides.Vertex
	for k := 0; k+1 < len(points); k++ {
		a, b := points[k], points[k+1]
		axis := b.Sub(a)
		if axis.Length() < math.Epsilon {
			continue
		}
		u, v := basis(axis.Normalize())
		at := func(p math.Vec3, i int) math.Vec3 {
			ang := float32(i) / float32(sides) * 2 * math.Pi
			off := u.Scale(math.Cos(ang) * radius).Add(v.Scale(math.Sin(ang) * radius))
			return p.Add(off)
		}
		for i := 0; i < sides; i++ {
			out = m.quad(out, at(a, i), at(a, i+1), at(b, i+1), at(b, i), c)
		}
	}
	return out
}

// basis returns two unit vectors perpendicular to n and to each other.
func basis(n math.Vec3) (math.Vec3, math.Vec3) {
	ref := math.Vec3{Y: 1}
	if math.Abs(n.Y) > 0.9 {
		ref = math.Vec3{X: 1}
	}
	u := n.Cross(ref).Normalize()
	return u, n.Cross(u)
}

// Cone returns an open cone whose apex sits at the local origin and whose
// base circle lies at local z = length, transformed by model.
func (m Builder) Cone(model math.Mat4, radius, length float32, segments int, c guides.Color) []guides.Vertex {
	if segments < 3 {
		segments = 3
	}
	apex := model.TransformVec3(math.Vec3{})
	rim := func(i int) math.Vec3 {
		a := float32(i) / float32(segments) * 2 * math.Pi
		return model.TransformVec3(math.Vec3{X: math.Cos(a) * radius, Y: math.Sin(a) * radius, Z: length})
	}

	out := make([]guides.Vertex, 0, segments*3)
	for i := 0; i < segments; i++ {
		out = m.triangle(out, apex, rim(i+1), rim(i), c)
	}
	return out
}

// Sphere returns a low-poly UV sphere.
func (m Builder) Sphere(center math.Vec3, radius float32, stacks, slices int, c guides.Color) []guides.Vertex {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}
	at := func(i, j int) math.Vec3 {
		phi := float32(i) / float32(stacks) * math.Pi
		theta := float32(j) / float32(slices) * 2 * math.Pi
		return center.Add(math.Vec3{
			X: math.Sin(phi) * math.Cos(theta) * radius,
			Y: math.Cos(phi) * radius,
			Z: math.Sin(phi) * math.Sin(theta) * radius,
		})
	}

	var out []guides.Vertex
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b, d, e := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			mid := a.Add(d).Scale(0.5)
			s := m.Shade(c, mid, mid.Sub(center))
			out = append(out, vertex(a, s), vertex(b, s), vertex(d, s), vertex(a, s), vertex(d, s), vertex(e, s))
		}
	}
	return out
}
