// Package drag moves an entity across a horizontal plane under the pointer.
package drag

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/engine/pointer"
	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Viewpoint casts pointer rays into the scene.
type Viewpoint interface {
	ScreenRay(screenX, screenY float32) picking.Ray
}

// Bounds limits where a dragged entity may go on the XZ plane.
type Bounds interface {
	Clamp(x, z float32) (float32, float32)
}

// RectBounds keeps the entity over a rectangular support surface.
type RectBounds struct {
	math.Rect
}

// RadiusBounds keeps the entity within Radius of a center point.
type RadiusBounds struct {
	CenterX, CenterZ float32
	Radius           float32
}

// Clamp projects (x, z) back onto the circle when outside it.
func (b RadiusBounds) Clamp(x, z float32) (float32, float32) {
	dx := x - b.CenterX
	dz := z - b.CenterZ
	d := math.Sqrt(dx*dx + dz*dz)
	if d <= b.Radius {
		return x, z
	}
	s := b.Radius / math.SafeDenom(d)
	return b.CenterX + dx*s, b.CenterZ + dz*s
}

// Options configures a Controller.
type Options struct {
	Draggable bool

	// PlaneY overrides the projection plane; nil uses the entity's height at
	// pointer-down.
	PlaneY *float32

	// Bounds is optional.
	Bounds Bounds

	// Arbiter and Capture are optional shared collaborators.
	Arbiter *entity.Arbiter
	Capture *pointer.Capture

	OnDragChange func(dragging bool)
	OnMove       func(pos math.Vec3)
}

type session struct {
	pointerID int
	planeY    float32
	offset    math.Vec3
	grab      *pointer.Grab
}

// Controller runs drag sessions for one entity.
type Controller struct {
	target  *entity.Entity
	opts    Options
	session *session
	log     *zap.Logger
}

// New creates a controller for target. Removing the entity cancels any
// active session.
func New(target *entity.Entity, opts Options) *Controller {
	c := &Controller{
		target: target,
		opts:   opts,
		log:    logger.Named("drag").With(zap.String("entity", target.Name)),
	}
	target.OnRemove(c.Cancel)
	return c
}

// SetDraggable toggles the draggable capability. Disabling does not end a
// running session.
func (c *Controller) SetDraggable(v bool) {
	c.opts.Draggable = v
}

// Draggable reports the capability flag.
func (c *Controller) Draggable() bool {
	return c.opts.Draggable
}

// SetBounds replaces the movement bounds.
func (c *Controller) SetBounds(b Bounds) {
	c.opts.Bounds = b
}

// SetPlaneY pins the projection plane height.
func (c *Controller) SetPlaneY(y float32) {
	c.opts.PlaneY = &y
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Offset returns the stored entity-minus-hit offset of the running session.
func (c *Controller) Offset() (math.Vec3, bool) {
	if c.session == nil {
		return math.Vec3{}, false
	}
	return c.session.offset, true
}

// PlaneY returns the projection plane of the running session.
func (c *Controller) PlaneY() (float32, bool) {
	if c.session == nil {
		return 0, false
	}
	return c.session.planeY, true
}

// Begin starts a session for ev. It never moves the entity.
func (c *Controller) Begin(ev pointer.Event, view Viewpoint) bool {
	if !c.opts.Draggable || c.session != nil || c.target.Removed() {
		return false
	}

	pos := c.target.Position()
	planeY := pos.Y
	if c.opts.PlaneY != nil {
		planeY = *c.opts.PlaneY
	}

	hit, ok := view.ScreenRay(ev.X, ev.Y).IntersectPlaneY(planeY)
	if !ok {
		return false
	}

	if !c.opts.Arbiter.TryAcquire(c.target) {
		c.log.Debug("drag refused by arbiter")
		return false
	}

	var grab *pointer.Grab
	if c.opts.Capture != nil {
		grab, ok = c.opts.Capture.Acquire(ev.PointerID, c)
		if !ok {
			c.opts.Arbiter.Release(c.target)
			return false
		}
	}

	c.session = &session{
		pointerID: ev.PointerID,
		planeY:    planeY,
		offset:    math.Vec3{X: pos.X - hit.X, Z: pos.Z - hit.Z},
		grab:      grab,
	}
	c.log.Debug("drag started", zap.Int("pointer", ev.PointerID), zap.Float32("plane_y", planeY))

	if c.opts.OnDragChange != nil {
		c.opts.OnDragChange(true)
	}
	return true
}

// Move follows the pointer of the running session.
// Events from other pointers, and rays missing the plane, are ignored.
func (c *Controller) Move(ev pointer.Event, view Viewpoint) bool {
	s := c.session
	if s == nil || ev.PointerID != s.pointerID {
		return false
	}
	if s.grab != nil && !s.grab.Active() {
		return false
	}

	hit, ok := view.ScreenRay(ev.X, ev.Y).IntersectPlaneY(s.planeY)
	if !ok {
		return false
	}

	x := hit.X + s.offset.X
	z := hit.Z + s.offset.Z
	if c.opts.Bounds != nil {
		x, z = c.opts.Bounds.Clamp(x, z)
	}

	pos := c.target.Position()
	pos.X = x
	pos.Z = z
	if !c.target.Apply(entity.Update{Source: entity.SourceDrag, Position: &pos}) {
		return false
	}

	if c.opts.OnMove != nil {
		c.opts.OnMove(pos)
	}
	return true
}

// End finishes the session started by the same pointer.
func (c *Controller) End(ev pointer.Event) bool {
	if c.session == nil || ev.PointerID != c.session.pointerID {
		return false
	}
	c.finish()
	return true
}

// Cancel ends any running session regardless of pointer.
func (c *Controller) Cancel() {
	if c.session == nil {
		return
	}
	c.finish()
}

func (c *Controller) finish() {
	c.session.grab.Release()
	c.opts.Arbiter.Release(c.target)
	c.session = nil
	c.log.Debug("drag ended")

	if c.opts.OnDragChange != nil {
		c.opts.OnDragChange(false)
	}
}
