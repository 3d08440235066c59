package mesh

import (
	"github.com/Faultbox/deskscene/internal/engine/guides"
	"github.com/Faultbox/deskscene/internal/engine/lighting"
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Detail levels for the scene solids.
const (
	woodGrid     = 48
	cupSegments  = 40
	tubeSides    = 8
	legSize      = 0.05
	lampBaseRise = 0.02
)

// Rig returns the frame's lights: the default sun plus the lamp bulb while
// the lamp exists.
func Rig(snap scene.Snapshot) lighting.Rig {
	rig := lighting.DefaultRig()
	if !snap.Lamp.Removed {
		rig.AddPoint(lighting.BulbLight(snap.LampPose.Bulb))
	}
	return rig
}

// Solids builds every solid object in a snapshot, in world space.
func Solids(snap scene.Snapshot, cfg scene.Config) []guides.Vertex {
	m := Builder{Light: Rig(snap)}
	var out []guides.Vertex
	if !snap.Desk.Removed {
		out = append(out, m.Desk(snap)...)
	}
	if !snap.Cup.Removed {
		out = append(out, m.Cup(snap.Cup.Matrix, cfg)...)
	}
	if !snap.Lamp.Removed {
		out = append(out, m.Lamp(snap.Lamp.Matrix, snap.LampPose, cfg.Lamp)...)
	}
	return out
}

// Desk returns the slab, its wood top and four legs down to the floor.
func (m Builder) Desk(snap scene.Snapshot) []guides.Vertex {
	b := snap.Desk.Bounds
	out := m.SolidBox(b, ColorWoodDark)
	out = append(out, m.WoodTop(snap.DeskRect, snap.DeskTopY+0.0005, woodGrid)...)

	r := snap.DeskRect.Shrink(legSize)
	for _, c := range [][2]float32{{r.MinX, r.MinZ}, {r.MaxX, r.MinZ}, {r.MinX, r.MaxZ}, {r.MaxX, r.MaxZ}} {
		leg := picking.NewAABB(
			math.Vec3{X: c[0] - legSize/2, Y: 0, Z: c[1] - legSize/2},
			math.Vec3{X: c[0] + legSize/2, Y: b.Min.Y, Z: c[1] + legSize/2},
		)
		out = append(out, m.SolidBox(leg, ColorWoodDark)...)
	}
	return out
}

// Cup returns the cup shell and handle from its world matrix.
func (m Builder) Cup(world math.Mat4, cfg scene.Config) []guides.Vertex {
	cc := cfg.Cup
	shape := cfg.Particles.Containment
	model := world.
		Mul(math.Translate(0, -cc.HalfHeight*cc.Scale, 0)).
		Mul(math.Scale(cc.Scale, cc.Scale, cc.Scale))

	out := m.Frustum(model, shape.BottomRadius, shape.TopRadius, 2*cc.HalfHeight, cupSegments, ColorCup)
	return append(out, m.Tube(handle(model, shape.HandleAngle, shape.TopRadius, cc.HalfHeight), 0.03*cc.Scale, tubeSides, ColorCup)...)
}

// handle traces a half loop on the cup side facing angle.
func handle(model math.Mat4, angle, radius, halfHeight float32) []math.Vec3 {
	const steps = 10
	dir := math.Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
	pts := make([]math.Vec3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := float32(i) / steps * math.Pi
		out := radius*0.95 + math.Sin(a)*0.18
		y := halfHeight + math.Cos(a)*halfHeight*0.6
		pts = append(pts, model.TransformVec3(dir.Scale(out).Add(math.Vec3{Y: y})))
	}
	return pts
}

// Lamp returns the base, body, shade and bulb.
func (m Builder) Lamp(world math.Mat4, pose scene.LampView, lc scene.LampConfig) []guides.Vertex {
	out := m.Frustum(world, 0.1, 0.08, lampBaseRise, cupSegments, ColorLamp)
	out = append(out, m.Tube(pose.Body, lc.Geometry.TubeRadius, tubeSides, ColorLamp)...)
	out = append(out, m.Cone(pose.Head, lc.Geometry.BulbRadius*1.8, lc.Geometry.BulbOffset.Length()*1.3, cupSegments, ColorShade)...)
	// the bulb glows, so it skips the rig
	return append(out, Builder{Light: lighting.Rig{Ambient: 1}}.Sphere(pose.Bulb, lc.Geometry.BulbRadius*0.6, 6, 10, ColorBulb)...)
}
