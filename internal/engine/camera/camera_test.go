package camera

import (
	"testing"
)

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -10000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestScreenRayThroughCenterHitsTarget(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.SetCenter(0.2, 0, -0.1)

	ray := c.ScreenRay(400, 300)
	p, ok := ray.IntersectPlaneY(0)
	if !ok {
		t.Fatal("center ray should hit the plane through the orbit center")
	}
	if p.X < 0.19 || p.X > 0.21 || p.Z < -0.11 || p.Z > -0.09 {
		t.Errorf("center ray hit %v, want (0.2, 0, -0.1)", p)
	}
}

func TestNormalized(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	x, y := c.Normalized(800, 600)
	if x != 1 || y != 1 {
		t.Errorf("Normalized(bottom-right) = (%v, %v), want (1, 1)", x, y)
	}
}
