// Package liquid animates the surface of the liquid inside the cup.
package liquid

import (
	"github.com/Faultbox/deskscene/pkg/math"
)

// Mesh is an indexed triangle mesh with flat position triples.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// BuildDisc creates a closed liquid body in cup-local space: a gently domed
// top whose rim sits at y=0 and whose interior rises to dome at the center,
// plus a flat base at y=-thickness joined to the rim by a side band.
// Only the top's interior vertices have positive height.
func BuildDisc(radius, dome, thickness float32, rings, segments int) *Mesh {
	if rings < 1 {
		rings = 1
	}
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}

	// Top: center + rings, ring k at radius k/rings.
	m.Positions = append(m.Positions, 0, dome, 0)
	for k := 1; k <= rings; k++ {
		fr := float32(k) / float32(rings)
		r := radius * fr
		y := dome * (1 - fr*fr)
		if k == rings {
			y = 0
		}
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float32(s) / float32(segments)
			m.Positions = append(m.Positions, r*math.Cos(a), y, r*math.Sin(a))
		}
	}
	ringStart := func(k int) uint32 { return uint32(1 + (k-1)*segments) }

	// Center fan, wound counter-clockwise seen from above (+Y normal).
	for s := 0; s < segments; s++ {
		n := (s + 1) % segments
		m.Indices = append(m.Indices, 0, ringStart(1)+uint32(n), ringStart(1)+uint32(s))
	}
	for k := 1; k < rings; k++ {
		in := ringStart(k)
		out := ringStart(k + 1)
		for s := 0; s < segments; s++ {
			n := uint32((s + 1) % segments)
			si := uint32(s)
			m.Indices = append(m.Indices,
				in+si, in+n, out+si,
				out+si, in+n, out+n,
			)
		}
	}

	// Base ring and center below the rim.
	rim := ringStart(rings)
	base := uint32(len(m.Positions) / 3)
	for s := 0; s < segments; s++ {
		a := 2 * math.Pi * float32(s) / float32(segments)
		m.Positions = append(m.Positions, radius*math.Cos(a), -thickness, radius*math.Sin(a))
	}
	baseCenter := uint32(len(m.Positions) / 3)
	m.Positions = append(m.Positions, 0, -thickness, 0)

	for s := 0; s < segments; s++ {
		n := uint32((s + 1) % segments)
		si := uint32(s)
		// side band
		m.Indices = append(m.Indices,
			rim+si, rim+n, base+si,
			base+si, rim+n, base+n,
		)
		// bottom fan, facing down
		m.Indices = append(m.Indices, baseCenter, base+si, base+n)
	}

	return m
}
