package scene

import (
	"github.com/Faultbox/deskscene/internal/engine/guides"
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/internal/interact/drop"
	"github.com/Faultbox/deskscene/internal/lamp"
	"github.com/Faultbox/deskscene/internal/sim/steam"
	"github.com/Faultbox/deskscene/pkg/math"
)

// EntityView is a read-only copy of one entity's state.
type EntityView struct {
	Name      string
	Transform entity.Transform
	Matrix    math.Mat4
	Bounds    picking.AABB // world space
	Dragging  bool
	Removed   bool
}

// LiquidView is the liquid surface ready for upload.
type LiquidView struct {
	Model     math.Mat4
	Positions []float32
	Normals   []float32
	Indices   []uint32
	Dirty     bool
}

// ParticleView is the particle field in world space.
type ParticleView struct {
	World     []float32 // x,y,z triples
	Count     int
	MinY      float32 // cup-local
	MaxY      float32
	MaxExcess float32
	Respawns  int
}

// LampView is the lamp articulation in world space.
type LampView struct {
	Pose       lamp.Pose
	Bulb       math.Vec3
	Head       math.Mat4
	Body       []math.Vec3
	Clearance  float32
	Rejections int
	Posing     bool
}

// Snapshot is everything a renderer or recorder needs from one frame.
// It shares no memory with the scene.
type Snapshot struct {
	Frame     int
	Elapsed   float32
	Dt        float32
	SteamMode SteamMode

	Desk EntityView
	Cup  EntityView
	Lamp EntityView

	DeskRect     math.Rect
	DeskTopY     float32
	CupState     drop.State
	CupVelocityY float32

	Liquid    LiquidView
	Particles ParticleView
	Steam     []steam.Column
	LampPose  LampView
	Guides    []guides.Vertex
}

// Frame advances the scene by dt seconds and returns its snapshot.
//
// Order within a frame: transforms are committed (physics, spin, anchoring to
// the desk), then dependents are re-anchored from the committed positions,
// then the simulations step.
func (s *Scene) Frame(dt float32) Snapshot {
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt
	s.frame++

	prevRect := math.RectAround(s.deskAt.X, s.deskAt.Z, s.cfg.Desk.Width, s.cfg.Desk.Depth)
	shift := s.desk.Position().Sub(s.deskAt)
	s.deskAt = s.desk.Position()
	rect := s.deskRect()
	top := s.desk.Position().Y

	if !s.cup.Removed() {
		before := s.cup.Position()
		dragged := s.cupDrag.Active()
		if shift != (math.Vec3{}) && !dragged {
			s.carryCup(prevRect, shift)
		}
		if s.cfg.Cup.Physics {
			s.cupBody.SetSupport(rect, top)
			s.cupBody.Step(dt, dragged)
		}
		s.spinner.Step(dt, dragged)
		if after := s.cup.Position(); after != before {
			s.moved(NameCup)(after)
		}
	}

	if !s.lamp.Removed() {
		s.anchorLamp(top)
	}

	if !s.cup.Removed() {
		s.stepCup(dt)
	}

	return s.snapshot(dt, rect, top)
}

// carryCup moves a cup resting on the desk by the desk's horizontal shift.
func (s *Scene) carryCup(prevRect math.Rect, shift math.Vec3) {
	pos := s.cup.Position()
	if s.cupBody.State() != drop.Resting || !prevRect.Contains(pos.X, pos.Z, s.cfg.Drop.EdgeMargin) {
		return
	}
	pos.X += shift.X
	pos.Z += shift.Z
	s.cup.Apply(entity.Update{Source: entity.SourceScene, Position: &pos})
}

// anchorLamp keeps the lamp base standing on the desk top.
func (s *Scene) anchorLamp(top float32) {
	pos := s.lamp.Position()
	x, z := s.lampRect().Clamp(pos.X, pos.Z)
	want := math.Vec3{X: x, Y: top, Z: z}
	if want != pos {
		s.lamp.Apply(entity.Update{Source: entity.SourceScene, Position: &want})
		s.moved(NameLamp)(want)
	}
	s.solver.SetBase(s.lamp.Position(), s.lamp.Yaw())
}

// cupBase is the bottom center of the cup interior in world space.
func (s *Scene) cupBase() math.Vec3 {
	p := s.cup.Position()
	p.Y -= s.cfg.Cup.HalfHeight * s.cfg.Cup.Scale
	return p
}

// liquidAnchor is the liquid surface center in world space.
func (s *Scene) liquidAnchor() math.Vec3 {
	p := s.cupBase()
	p.Y += s.cfg.Cup.LiquidLevel * s.cfg.Cup.Scale
	return p
}

func (s *Scene) liquidModel() math.Mat4 {
	a := s.liquidAnchor()
	sc := s.cfg.Cup.Scale
	return math.Translate(a.X, a.Y, a.Z).
		Mul(math.RotateY(s.cup.Yaw())).
		Mul(math.Scale(sc, sc, sc))
}

func (s *Scene) stepCup(dt float32) {
	base := s.cupBase()

	switch s.cfg.SteamMode {
	case SteamParticles:
		s.field.SetOrigin(base)
		s.field.SetYaw(s.cup.Yaw())
		s.field.SetScale(s.cfg.Cup.Scale)
		s.field.Step(dt, s.elapsed)
	case SteamColumns:
		var eye math.Vec3
		if s.view != nil {
			eye = s.view.Eye()
		}
		s.steam.SetScale(s.cfg.Cup.Scale)
		s.steam.Update(s.elapsed, s.liquidAnchor(), eye)
	}

	s.surface.Update(s.elapsed)
}

func (s *Scene) entityView(e *entity.Entity) EntityView {
	t := e.Transform()
	return EntityView{
		Name:      e.Name,
		Transform: t,
		Matrix:    t.Matrix(),
		Bounds:    e.WorldBounds(),
		Dragging:  s.Dragging(e.Name),
		Removed:   e.Removed(),
	}
}

func (s *Scene) snapshot(dt float32, rect math.Rect, top float32) Snapshot {
	snap := Snapshot{
		Frame:        s.frame,
		Elapsed:      s.elapsed,
		Dt:           dt,
		SteamMode:    s.cfg.SteamMode,
		Desk:         s.entityView(s.desk),
		Cup:          s.entityView(s.cup),
		Lamp:         s.entityView(s.lamp),
		DeskRect:     rect,
		DeskTopY:     top,
		CupState:     s.cupBody.State(),
		CupVelocityY: s.cupBody.VelocityY(),
	}

	if !s.cup.Removed() {
		snap.Liquid = LiquidView{
			Model:     s.liquidModel(),
			Positions: s.surface.Positions(),
			Normals:   s.surface.Normals(),
			Indices:   s.surface.Indices(),
			Dirty:     s.surface.Dirty(),
		}
		s.surface.ClearDirty()

		switch s.cfg.SteamMode {
		case SteamParticles:
			lo, hi := s.field.HeightRange()
			snap.Particles = ParticleView{
				World:     s.field.WorldPositions(nil),
				Count:     s.field.Len(),
				MinY:      lo,
				MaxY:      hi,
				MaxExcess: s.field.MaxExcess(),
				Respawns:  s.field.Respawns(),
			}
		case SteamColumns:
			snap.Steam = s.steam.Columns()
		}
	}

	if !s.lamp.Removed() {
		pose := s.solver.Pose()
		snap.LampPose = LampView{
			Pose:       pose,
			Bulb:       s.solver.BulbWorld(pose),
			Head:       s.solver.HeadMatrix(pose),
			Body:       s.solver.BodyCurve(pose.ArmYaw, 16),
			Clearance:  s.solver.Clearance(pose),
			Rejections: s.solver.Rejections(),
			Posing:     s.solver.Dragging(),
		}
	}

	if s.cfg.ShowGuides {
		snap.Guides = s.guides(rect, top, snap.LampPose.Body)
	}
	return snap
}

// guides builds reference markers from the positions committed this frame.
func (s *Scene) guides(rect math.Rect, top float32, body []math.Vec3) []guides.Vertex {
	const lift = 0.002
	out := guides.RectOutline(rect, top+lift, guides.ColorSupport)

	if !s.cup.Removed() {
		p := s.cup.Position()
		ring := s.cfg.Particles.Containment.TopRadius * s.cfg.Cup.Scale * 1.3
		out = append(out, guides.Ring(math.Vec3{X: p.X, Y: top + lift, Z: p.Z}, ring, 32, guides.ColorRing)...)
		if s.cupDrag.Active() {
			out = append(out, guides.Box(s.cup.WorldBounds(), 0.01, guides.ColorBounds)...)
		}
	}
	if !s.lamp.Removed() {
		p := s.lamp.Position()
		out = append(out, guides.Ring(math.Vec3{X: p.X, Y: top + lift, Z: p.Z}, 0.1, 24, guides.ColorRing)...)
		out = append(out, guides.Polyline(body, guides.ColorBody)...)
	}
	return out
}
