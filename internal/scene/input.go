package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/engine/pointer"
	"github.com/Faultbox/deskscene/internal/interact/drag"
)

// Target is what a pointer-down landed on.
type Target int

const (
	TargetNone Target = iota
	TargetDesk
	TargetCup
	TargetLamp
	TargetLampHead
)

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetDesk:
		return "desk"
	case TargetCup:
		return "cup"
	case TargetLamp:
		return "lamp"
	case TargetLampHead:
		return "lamp_head"
	default:
		return "unknown"
	}
}

// Pick returns the object under the screen point. The lamp head wins over
// everything else; otherwise the nearest hit is chosen.
func (s *Scene) Pick(screenX, screenY float32) Target {
	if s.view == nil {
		return TargetNone
	}
	ray := s.view.ScreenRay(screenX, screenY)

	if !s.lamp.Removed() {
		head := picking.Around(s.solver.BulbWorld(s.solver.Pose()), s.cfg.Lamp.HeadRadius)
		if _, hit := ray.IntersectAABB(head); hit {
			return TargetLampHead
		}
	}

	best := TargetNone
	var bestT float32
	try := func(t Target, box picking.AABB) {
		if d, hit := ray.IntersectAABB(box); hit && (best == TargetNone || d < bestT) {
			best, bestT = t, d
		}
	}
	if !s.cup.Removed() {
		try(TargetCup, s.cup.WorldBounds())
	}
	if !s.lamp.Removed() {
		try(TargetLamp, s.lamp.WorldBounds())
	}
	if !s.desk.Removed() {
		try(TargetDesk, s.desk.WorldBounds())
	}
	return best
}

// PointerDown starts a session on whatever is under the pointer. It reports
// whether a session started.
func (s *Scene) PointerDown(ev pointer.Event) bool {
	if s.view == nil {
		return false
	}
	if _, held := s.capture.Owner(ev.PointerID); held {
		return false
	}

	switch s.Pick(ev.X, ev.Y) {
	case TargetLampHead:
		return s.beginHeadDrag(ev)
	case TargetLamp:
		if s.solver.Dragging() {
			return false
		}
		s.lampDrag.SetBounds(drag.RectBounds{Rect: s.lampRect()})
		return s.lampDrag.Begin(ev, s.view)
	case TargetCup:
		return s.cupDrag.Begin(ev, s.view)
	case TargetDesk:
		return s.deskDrag.Begin(ev, s.view)
	}
	return false
}

// PointerMove forwards ev to the session holding its pointer.
func (s *Scene) PointerMove(ev pointer.Event) bool {
	if s.view == nil {
		return false
	}
	owner, held := s.capture.Owner(ev.PointerID)
	if !held {
		return false
	}
	if owner == any(s.solver) {
		return s.moveHead(ev)
	}
	for _, c := range []*drag.Controller{s.deskDrag, s.cupDrag, s.lampDrag} {
		if owner == any(c) {
			return c.Move(ev, s.view)
		}
	}
	return false
}

// PointerUp ends the session holding ev's pointer.
func (s *Scene) PointerUp(ev pointer.Event) bool {
	if s.headGrab != nil && s.headGrab.PointerID() == ev.PointerID {
		s.endHeadDrag()
		return true
	}
	ended := false
	for _, c := range []*drag.Controller{s.deskDrag, s.cupDrag, s.lampDrag} {
		if c.End(ev) {
			ended = true
		}
	}
	return ended
}

// HandlePointer dispatches ev by kind.
func (s *Scene) HandlePointer(ev pointer.Event) bool {
	switch ev.Kind {
	case pointer.Down:
		return s.PointerDown(ev)
	case pointer.Move:
		return s.PointerMove(ev)
	case pointer.Up:
		return s.PointerUp(ev)
	}
	return false
}

func (s *Scene) beginHeadDrag(ev pointer.Event) bool {
	if !s.cfg.Lamp.Draggable || s.lampDrag.Active() || s.solver.Dragging() {
		return false
	}
	if !s.arbiter.TryAcquire(s.lamp) {
		return false
	}
	grab, ok := s.capture.Acquire(ev.PointerID, s.solver)
	if !ok {
		s.arbiter.Release(s.lamp)
		return false
	}
	s.headGrab = grab

	nx, ny := s.view.Normalized(ev.X, ev.Y)
	s.solver.BeginHeadDrag(nx, ny)
	s.log.Debug("head drag started", zap.Int("pointer", ev.PointerID))
	s.dragChanged(NameLamp)(true)
	return true
}

func (s *Scene) moveHead(ev pointer.Event) bool {
	if !s.headGrab.Active() {
		return false
	}
	nx, ny := s.view.Normalized(ev.X, ev.Y)
	if !s.solver.MoveHead(nx, ny) {
		return false
	}
	if s.cb.OnLampPose != nil {
		s.cb.OnLampPose(s.solver.Pose())
	}
	return true
}

func (s *Scene) endHeadDrag() {
	if !s.solver.Dragging() {
		return
	}
	s.solver.EndHeadDrag()
	s.headGrab.Release()
	s.headGrab = nil
	s.arbiter.Release(s.lamp)
	s.log.Debug("head drag ended")
	s.dragChanged(NameLamp)(false)
}
