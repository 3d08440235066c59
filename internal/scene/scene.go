// Package scene composes the desk, the cup and the lamp into one frame-driven
// simulation.
//
// The host calls the pointer methods as events arrive and Frame once per
// rendered frame. Frame commits entity positions first and then hands them
// explicitly to everything anchored to them (liquid, steam, guide markers),
// so dependents never observe a stale transform within a frame.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/engine/pointer"
	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/internal/interact/drag"
	"github.com/Faultbox/deskscene/internal/interact/drop"
	"github.com/Faultbox/deskscene/internal/interact/spin"
	"github.com/Faultbox/deskscene/internal/lamp"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/sim/liquid"
	"github.com/Faultbox/deskscene/internal/sim/particles"
	"github.com/Faultbox/deskscene/internal/sim/steam"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Entity names.
const (
	NameDesk = "desk"
	NameCup  = "cup"
	NameLamp = "lamp"
)

// Viewpoint is the camera the host renders with.
type Viewpoint interface {
	ScreenRay(screenX, screenY float32) picking.Ray
	Normalized(screenX, screenY float32) (x, y float32)
	Eye() math.Vec3
}

// Callbacks are optional outward notifications, invoked synchronously.
type Callbacks struct {
	OnDragChange func(name string, dragging bool)
	OnMove       func(name string, pos math.Vec3)
	OnLampPose   func(p lamp.Pose)
}

// Scene owns every entity and its controllers.
type Scene struct {
	cfg  Config
	view Viewpoint
	cb   Callbacks
	log  *zap.Logger

	capture *pointer.Capture
	arbiter *entity.Arbiter

	desk *entity.Entity
	cup  *entity.Entity
	lamp *entity.Entity

	deskDrag *drag.Controller
	cupDrag  *drag.Controller
	lampDrag *drag.Controller

	cupBody *drop.Body
	spinner *spin.Spinner

	solver   *lamp.Solver
	headGrab *pointer.Grab

	surface *liquid.Surface
	field   *particles.Field
	steam   *steam.Steam

	deskAt  math.Vec3 // desk position seen by the last Frame
	elapsed float32
	frame   int
}

// New builds the scene. view may be nil until SetViewpoint is called; pointer
// events are ignored without one.
func New(cfg Config, view Viewpoint, cb Callbacks) *Scene {
	s := &Scene{
		cfg:     cfg,
		view:    view,
		cb:      cb,
		log:     logger.Named("scene"),
		capture: pointer.NewCapture(),
		arbiter: entity.NewArbiter(cfg.ExclusiveDrag),
	}
	s.buildDesk()
	s.buildCup()
	s.buildLamp()

	s.log.Info("scene created",
		zap.Stringer("steam_mode", cfg.SteamMode),
		zap.Bool("exclusive_drag", cfg.ExclusiveDrag),
		zap.Int("particles", s.field.Len()),
	)
	return s
}

func (s *Scene) buildDesk() {
	dc := s.cfg.Desk
	s.desk = entity.New(NameDesk, entity.Transform{Position: dc.Center})
	s.deskAt = dc.Center
	s.desk.Bounds = picking.NewAABB(
		math.Vec3{X: -dc.Width / 2, Y: -dc.Thickness, Z: -dc.Depth / 2},
		math.Vec3{X: dc.Width / 2, Y: 0, Z: dc.Depth / 2},
	)
	planeY := dc.Center.Y
	s.deskDrag = drag.New(s.desk, drag.Options{
		Draggable:    dc.Draggable,
		PlaneY:       &planeY,
		Bounds:       drag.RadiusBounds{CenterX: dc.Center.X, CenterZ: dc.Center.Z, Radius: dc.DragRadius},
		Arbiter:      s.arbiter,
		Capture:      s.capture,
		OnDragChange: s.dragChanged(NameDesk),
		OnMove:       s.moved(NameDesk),
	})
}

func (s *Scene) buildCup() {
	cc := s.cfg.Cup
	hh := cc.HalfHeight * cc.Scale
	r := s.cfg.Particles.Containment.TopRadius * cc.Scale

	top := s.cfg.Desk.Center.Y
	start := math.Vec3{X: cc.Start.X, Y: top + hh + s.cfg.Drop.Clearance, Z: cc.Start.Z}
	s.cup = entity.New(NameCup, entity.Transform{Position: start})
	s.cup.Bounds = picking.NewAABB(math.Vec3{X: -r, Y: -hh, Z: -r}, math.Vec3{X: r, Y: hh, Z: r})

	var bounds drag.Bounds
	if cc.BoundRadius > 0 {
		bounds = drag.RadiusBounds{CenterX: s.cfg.Desk.Center.X, CenterZ: s.cfg.Desk.Center.Z, Radius: cc.BoundRadius}
	}
	s.cupDrag = drag.New(s.cup, drag.Options{
		Draggable:    cc.Draggable,
		Bounds:       bounds,
		Arbiter:      s.arbiter,
		Capture:      s.capture,
		OnDragChange: s.dragChanged(NameCup),
		OnMove:       s.moved(NameCup),
	})

	dc := s.cfg.Drop
	dc.HalfHeight = hh
	s.cupBody = drop.New(s.cup, dc)
	s.cupBody.SetSupport(s.deskRect(), top)
	s.spinner = spin.New(s.cup, cc.SpinSpeed)

	lm := s.cfg.LiquidMesh
	s.surface = liquid.NewSurface(liquid.BuildDisc(lm.Radius, lm.Dome, lm.Thickness, lm.Rings, lm.Segments), s.cfg.Liquid)
	s.field = particles.New(s.cfg.Particles)
	s.steam = steam.New(s.cfg.Steam)
}

func (s *Scene) buildLamp() {
	lc := s.cfg.Lamp
	top := s.cfg.Desk.Center.Y
	x, z := s.lampRect().Clamp(lc.Start.X, lc.Start.Z)
	s.lamp = entity.New(NameLamp, entity.Transform{
		Position: math.Vec3{X: x, Y: top, Z: z},
		Rotation: math.Vec3{Y: lc.Yaw},
	})
	s.lamp.Bounds = picking.NewAABB(math.Vec3{X: -0.1, Y: 0, Z: -0.1}, math.Vec3{X: 0.1, Y: 0.4, Z: 0.1})

	s.lampDrag = drag.New(s.lamp, drag.Options{
		Draggable:    lc.Draggable,
		Bounds:       drag.RectBounds{Rect: s.lampRect()},
		Arbiter:      s.arbiter,
		Capture:      s.capture,
		OnDragChange: s.dragChanged(NameLamp),
		OnMove:       s.moved(NameLamp),
	})

	s.solver = lamp.NewSolver(lc.Geometry, lc.Limits)
	s.solver.SetBase(s.lamp.Position(), s.lamp.Yaw())
	s.lamp.OnRemove(s.endHeadDrag)
}

func (s *Scene) dragChanged(name string) func(bool) {
	return func(dragging bool) {
		if s.cb.OnDragChange != nil {
			s.cb.OnDragChange(name, dragging)
		}
	}
}

func (s *Scene) moved(name string) func(math.Vec3) {
	return func(pos math.Vec3) {
		if s.cb.OnMove != nil {
			s.cb.OnMove(name, pos)
		}
	}
}

// deskRect is the desk top footprint at its committed position.
func (s *Scene) deskRect() math.Rect {
	p := s.desk.Position()
	return math.RectAround(p.X, p.Z, s.cfg.Desk.Width, s.cfg.Desk.Depth)
}

// lampRect is where the lamp base may stand.
func (s *Scene) lampRect() math.Rect {
	return s.deskRect().Shrink(s.cfg.Lamp.EdgeMargin)
}

// SetViewpoint replaces the camera used for picking and billboarding.
func (s *Scene) SetViewpoint(view Viewpoint) {
	s.view = view
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config {
	return s.cfg
}

// Desk returns the desk entity.
func (s *Scene) Desk() *entity.Entity { return s.desk }

// Cup returns the cup entity.
func (s *Scene) Cup() *entity.Entity { return s.cup }

// Lamp returns the lamp entity.
func (s *Scene) Lamp() *entity.Entity { return s.lamp }

// LampSolver returns the lamp head solver.
func (s *Scene) LampSolver() *lamp.Solver { return s.solver }

// Particles returns the particle field.
func (s *Scene) Particles() *particles.Field { return s.field }

// Steam returns the billboard steam columns.
func (s *Scene) Steam() *steam.Steam { return s.steam }

// Surface returns the liquid surface.
func (s *Scene) Surface() *liquid.Surface { return s.surface }

// CupBody returns the cup's drop physics.
func (s *Scene) CupBody() *drop.Body { return s.cupBody }

// Spinner returns the cup's spin animator.
func (s *Scene) Spinner() *spin.Spinner { return s.spinner }

// Arbiter returns the drag arbiter.
func (s *Scene) Arbiter() *entity.Arbiter { return s.arbiter }

// Elapsed returns the simulation clock.
func (s *Scene) Elapsed() float32 { return s.elapsed }

// SteamMode returns the active steam rendering.
func (s *Scene) SteamMode() SteamMode { return s.cfg.SteamMode }

// SetSteamMode switches between particles, columns and no steam.
func (s *Scene) SetSteamMode(m SteamMode) {
	if m == s.cfg.SteamMode {
		return
	}
	s.log.Debug("steam mode changed", zap.Stringer("from", s.cfg.SteamMode), zap.Stringer("to", m))
	s.cfg.SteamMode = m
}

func (s *Scene) controller(name string) *drag.Controller {
	switch name {
	case NameDesk:
		return s.deskDrag
	case NameCup:
		return s.cupDrag
	case NameLamp:
		return s.lampDrag
	}
	return nil
}

func (s *Scene) entityByName(name string) *entity.Entity {
	switch name {
	case NameDesk:
		return s.desk
	case NameCup:
		return s.cup
	case NameLamp:
		return s.lamp
	}
	return nil
}

// SetDraggable toggles the draggable capability of the named entity.
func (s *Scene) SetDraggable(name string, v bool) bool {
	c := s.controller(name)
	if c == nil {
		return false
	}
	c.SetDraggable(v)
	return true
}

// Dragging reports whether the named entity has an active drag session. The
// lamp counts as dragged while its head is being posed.
func (s *Scene) Dragging(name string) bool {
	if name == NameLamp && s.solver.Dragging() {
		return true
	}
	c := s.controller(name)
	return c != nil && c.Active()
}

// Remove unmounts the named entity. Active sessions on it end immediately and
// their pointers are released.
func (s *Scene) Remove(name string) bool {
	e := s.entityByName(name)
	if e == nil || e.Removed() {
		return false
	}
	e.Remove()
	s.log.Info("entity removed", zap.String("entity", name))
	return true
}

// CancelDrags ends every running session and releases their pointers. The
// viewer calls it when the window loses focus.
func (s *Scene) CancelDrags() {
	s.deskDrag.Cancel()
	s.cupDrag.Cancel()
	s.lampDrag.Cancel()
	s.endHeadDrag()
}
