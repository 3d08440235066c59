// Package camera provides the viewpoint used for rendering, billboarding and
// pointer ray casting.
package camera

import (
	gomath "math"

	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY      float32 // radians
	Near, Far float32
	ViewportW float32
	ViewportH float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera framing a desk-sized scene.
func NewOrbitCamera(viewportW, viewportH int) *OrbitCamera {
	return &OrbitCamera{
		CenterY:         0.9,
		Distance:        3.2,
		RotationX:       0.45,
		RotationY:       0.6,
		FovY:            math.Radians(40),
		Near:            0.05,
		Far:             50,
		ViewportW:       float32(viewportW),
		ViewportH:       float32(viewportH),
		MinDistance:     1.0,
		MaxDistance:     10.0,
		MinPitch:        0.05,
		MaxPitch:        1.45,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// Eye is the viewpoint position billboards turn toward.
func (c *OrbitCamera) Eye() math.Vec3 {
	return c.Position()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, center, up)
}

// ProjectionMatrix returns the perspective projection for the current viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// ScreenRay casts a world-space ray through the given pixel.
func (c *OrbitCamera) ScreenRay(screenX, screenY float32) picking.Ray {
	return picking.ScreenToRay(screenX, screenY, c.ViewportW, c.ViewportH, c.ViewProjection().Inverse())
}

// Normalized converts pixel coordinates to [-1, 1] with +Y down, matching
// pointer deltas in screen space.
func (c *OrbitCamera) Normalized(screenX, screenY float32) (x, y float32) {
	nx, ny := picking.ScreenToNDC(screenX, screenY, c.ViewportW, c.ViewportH)
	return nx, -ny
}

// Resize updates the viewport used for projection and ray casting.
func (c *OrbitCamera) Resize(width, height int) {
	c.ViewportW = float32(width)
	c.ViewportH = float32(height)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}
