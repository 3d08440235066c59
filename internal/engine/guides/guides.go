// Package guides builds line geometry for reference markers: rings under
// movable objects, the desk support outline, the lamp body and bounding boxes.
package guides

import (
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Vertex is one colored line endpoint.
type Vertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// Color is an RGB triple.
type Color [3]float32

// Common guide colors.
var (
	ColorRing    = Color{0.95, 0.75, 0.3}
	ColorSupport = Color{0.4, 0.8, 0.5}
	ColorBody    = Color{0.6, 0.6, 0.9}
	ColorBounds  = Color{0.9, 0.3, 0.3}
)

// VertexFloats is the float count per Vertex in Flatten output.
const VertexFloats = 6

func vtx(p math.Vec3, c Color) Vertex {
	return Vertex{X: p.X, Y: p.Y, Z: p.Z, R: c[0], G: c[1], B: c[2]}
}

// Ring returns a horizontal circle as line segments (2 vertices each).
func Ring(center math.Vec3, radius float32, segments int, c Color) []Vertex {
	if segments < 3 {
		segments = 3
	}
	out := make([]Vertex, 0, segments*2)
	point := func(i int) math.Vec3 {
		a := 2 * math.Pi * float32(i) / float32(segments)
		return math.Vec3{
			X: center.X + radius*math.Cos(a),
			Y: center.Y,
			Z: center.Z + radius*math.Sin(a),
		}
	}
	for i := 0; i < segments; i++ {
		out = append(out, vtx(point(i), c), vtx(point(i+1), c))
	}
	return out
}

// RectOutline returns the outline of r at height y.
func RectOutline(r math.Rect, y float32, c Color) []Vertex {
	corners := []math.Vec3{
		{X: r.MinX, Y: y, Z: r.MinZ},
		{X: r.MaxX, Y: y, Z: r.MinZ},
		{X: r.MaxX, Y: y, Z: r.MaxZ},
		{X: r.MinX, Y: y, Z: r.MaxZ},
	}
	out := make([]Vertex, 0, 8)
	for i := range corners {
		out = append(out, vtx(corners[i], c), vtx(corners[(i+1)%4], c))
	}
	return out
}

// Polyline joins consecutive points with segments.
func Polyline(points []math.Vec3, c Color) []Vertex {
	if len(points) < 2 {
		return nil
	}
	out := make([]Vertex, 0, (len(points)-1)*2)
	for i := 1; i < len(points); i++ {
		out = append(out, vtx(points[i-1], c), vtx(points[i], c))
	}
	return out
}

// BoxVertexCount is the number of vertices for a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// Box returns the 12 edges of an axis-aligned box, padded on all sides.
func Box(b picking.AABB, padding float32, c Color) []Vertex {
	lo := b.Min.Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := b.Max.Add(math.Vec3{X: padding, Y: padding, Z: padding})
	p := func(x, y, z float32) Vertex { return vtx(math.Vec3{X: x, Y: y, Z: z}, c) }

	return []Vertex{
		// Bottom face
		p(lo.X, lo.Y, lo.Z), p(hi.X, lo.Y, lo.Z),
		p(hi.X, lo.Y, lo.Z), p(hi.X, lo.Y, hi.Z),
		p(hi.X, lo.Y, hi.Z), p(lo.X, lo.Y, hi.Z),
		p(lo.X, lo.Y, hi.Z), p(lo.X, lo.Y, lo.Z),
		// Top face
		p(lo.X, hi.Y, lo.Z), p(hi.X, hi.Y, lo.Z),
		p(hi.X, hi.Y, lo.Z), p(hi.X, hi.Y, hi.Z),
		p(hi.X, hi.Y, hi.Z), p(lo.X, hi.Y, hi.Z),
		p(lo.X, hi.Y, hi.Z), p(lo.X, hi.Y, lo.Z),
		// Vertical edges
		p(lo.X, lo.Y, lo.Z), p(lo.X, hi.Y, lo.Z),
		p(hi.X, lo.Y, lo.Z), p(hi.X, hi.Y, lo.Z),
		p(hi.X, lo.Y, hi.Z), p(hi.X, hi.Y, hi.Z),
		p(lo.X, lo.Y, hi.Z), p(lo.X, hi.Y, hi.Z),
	}
}

// Flatten appends vertices as [x, y, z, r, g, b] floats to dst.
func Flatten(dst []float32, verts []Vertex) []float32 {
	for _, v := range verts {
		dst = append(dst, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return dst
}
