package math

// Rect is an axis-aligned rectangle on the horizontal XZ plane.
type Rect struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// RectAround returns a rectangle of the given width (X) and depth (Z)
// centered on (cx, cz).
func RectAround(cx, cz, width, depth float32) Rect {
	return Rect{
		MinX: cx - width/2,
		MaxX: cx + width/2,
		MinZ: cz - depth/2,
		MaxZ: cz + depth/2,
	}
}

// Contains reports whether (x, z) lies inside the rectangle shrunk by margin
// on every side.
func (r Rect) Contains(x, z, margin float32) bool {
	return x >= r.MinX+margin && x <= r.MaxX-margin &&
		z >= r.MinZ+margin && z <= r.MaxZ-margin
}

// Clamp moves (x, z) to the nearest point inside the rectangle.
func (r Rect) Clamp(x, z float32) (float32, float32) {
	return Clamp(x, r.MinX, r.MaxX), Clamp(z, r.MinZ, r.MaxZ)
}

// Shrink returns the rectangle inset by margin, collapsing to its center
// when the margin exceeds half its size.
func (r Rect) Shrink(margin float32) Rect {
	out := Rect{MinX: r.MinX + margin, MaxX: r.MaxX - margin, MinZ: r.MinZ + margin, MaxZ: r.MaxZ - margin}
	if out.MinX > out.MaxX {
		c := (r.MinX + r.MaxX) / 2
		out.MinX, out.MaxX = c, c
	}
	if out.MinZ > out.MaxZ {
		c := (r.MinZ + r.MaxZ) / 2
		out.MinZ, out.MaxZ = c, c
	}
	return out
}
