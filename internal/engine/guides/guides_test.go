package guides

import (
	"image/png"
	"os"
	"testing"

	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/pkg/math"
)

func TestRing(t *testing.T) {
	center := math.Vec3{X: 1, Y: 0.75, Z: -1}
	verts := Ring(center, 0.2, 16, ColorRing)
	if len(verts) != 32 {
		t.Fatalf("len(Ring()) = %d, want 32", len(verts))
	}
	for i, v := range verts {
		if v.Y != center.Y {
			t.Errorf("vertex %d y = %v, want %v", i, v.Y, center.Y)
		}
		d := math.Vec3{X: v.X, Y: v.Y, Z: v.Z}.Distance(center)
		if math.Abs(d-0.2) > 1e-5 {
			t.Errorf("vertex %d distance = %v, want 0.2", i, d)
		}
	}
	// closed loop
	last := verts[len(verts)-1]
	if math.Abs(last.X-verts[0].X) > 1e-5 || math.Abs(last.Z-verts[0].Z) > 1e-5 {
		t.Errorf("ring not closed: first %v last %v", verts[0], last)
	}
}

func TestRectOutline(t *testing.T) {
	r := math.Rect{MinX: -1, MaxX: 1, MinZ: -0.5, MaxZ: 0.5}
	verts := RectOutline(r, 0.7, ColorSupport)
	if len(verts) != 8 {
		t.Fatalf("len(RectOutline()) = %d, want 8", len(verts))
	}
	for _, v := range verts {
		if (v.X != -1 && v.X != 1) || (v.Z != -0.5 && v.Z != 0.5) {
			t.Errorf("vertex %v is not a corner", v)
		}
	}
}

func TestPolyline(t *testing.T) {
	if got := Polyline([]math.Vec3{{}}, ColorBody); got != nil {
		t.Errorf("Polyline(1 point) = %v, want nil", got)
	}
	got := Polyline([]math.Vec3{{}, {Y: 1}, {Y: 2}}, ColorBody)
	if len(got) != 4 {
		t.Errorf("len(Polyline(3 points)) = %d, want 4", len(got))
	}
}

func TestBox(t *testing.T) {
	b := picking.AABB{Min: math.Vec3{X: -1, Y: 0, Z: -1}, Max: math.Vec3{X: 1, Y: 2, Z: 1}}
	verts := Box(b, 0.5, ColorBounds)
	if len(verts) != BoxVertexCount {
		t.Fatalf("len(Box()) = %d, want %d", len(verts), BoxVertexCount)
	}
	for _, v := range verts {
		if v.X != -1.5 && v.X != 1.5 {
			t.Errorf("x = %v, want padded +-1.5", v.X)
		}
		if v.Y != -0.5 && v.Y != 2.5 {
			t.Errorf("y = %v, want -0.5 or 2.5", v.Y)
		}
	}
}

func TestFlatten(t *testing.T) {
	verts := Ring(math.Vec3{}, 1, 4, Color{1, 0, 0})
	flat := Flatten(nil, verts)
	if len(flat) != len(verts)*VertexFloats {
		t.Fatalf("len(Flatten()) = %d, want %d", len(flat), len(verts)*VertexFloats)
	}
	if flat[3] != 1 || flat[4] != 0 || flat[5] != 0 {
		t.Errorf("color = %v, want red", flat[3:6])
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")

	// 2x2: bottom row red, top row blue in GL order
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top-left pixel should be blue after flip, got r=%d b=%d", r, b)
	}

	if _, err := sc.CaptureFromPixels(pixels[:4], 2, 2); err == nil {
		t.Error("CaptureFromPixels() with short buffer should fail")
	}
}
