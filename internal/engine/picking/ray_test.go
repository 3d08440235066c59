package picking

import (
	"testing"

	"github.com/Faultbox/deskscene/pkg/math"
)

func TestIntersectPlaneY(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		planeY float32
		want   math.Vec3
		ok     bool
	}{
		{
			name:   "straight down",
			ray:    Ray{Origin: math.Vec3{X: 1, Y: 5, Z: 2}, Direction: math.Vec3{Y: -1}},
			planeY: 1,
			want:   math.Vec3{X: 1, Y: 1, Z: 2},
			ok:     true,
		},
		{
			name:   "diagonal",
			ray:    Ray{Origin: math.Vec3{Y: 2}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()},
			planeY: 0,
			want:   math.Vec3{X: 2},
			ok:     true,
		},
		{
			name:   "parallel",
			ray:    Ray{Origin: math.Vec3{Y: 2}, Direction: math.Vec3{X: 1}},
			planeY: 0,
			ok:     false,
		},
		{
			name:   "behind origin",
			ray:    Ray{Origin: math.Vec3{Y: 2}, Direction: math.Vec3{Y: 1}},
			planeY: 0,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneY(tt.planeY)
			if ok != tt.ok {
				t.Fatalf("IntersectPlaneY() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Distance(tt.want) > 0.0001 {
				t.Errorf("IntersectPlaneY() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})
	if box.Min.X != -1 || box.Max.X != 1 {
		t.Fatalf("NewAABB did not order corners: %+v", box)
	}

	hit := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	if tHit, ok := hit.IntersectAABB(box); !ok || tHit < 3.999 || tHit > 4.001 {
		t.Errorf("IntersectAABB() = %v, %v, want 4, true", tHit, ok)
	}

	miss := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("IntersectAABB() should miss a ray passing beside the box")
	}

	inside := Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}
	if tHit, ok := inside.IntersectAABB(box); !ok || tHit < 0.999 || tHit > 1.001 {
		t.Errorf("IntersectAABB() from inside = %v, %v, want 1, true", tHit, ok)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Y: 5, Z: 5}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(45), 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(400, 400, 800, 800, inv)
	p, ok := ray.IntersectPlaneY(0)
	if !ok {
		t.Fatal("center ray should hit the ground plane")
	}
	if p.Length() > 0.01 {
		t.Errorf("center ray hit %v, want origin", p)
	}
}

func TestScreenToNDCDegenerateViewport(t *testing.T) {
	x, y := ScreenToNDC(10, 10, 0, 0)
	if x != 0 || y != 0 {
		t.Errorf("ScreenToNDC() = (%v, %v), want (0, 0)", x, y)
	}
}
