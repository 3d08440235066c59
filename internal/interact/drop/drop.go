// Package drop implements the support-or-fall vertical model used for objects
// resting on the desk.
//
// An object over its support rectangle is pinned to the support surface.
// Anywhere else it falls under constant gravity until it reaches the floor.
// There is no restitution and no horizontal coupling.
package drop

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Config describes the body and its surroundings.
type Config struct {
	HalfHeight float32
	SupportY   float32   // support surface height
	Support    math.Rect // support footprint on XZ
	HasSupport bool
	EdgeMargin float32
	FloorY     float32
	Gravity    float32 // positive, units/s^2
	Clearance  float32
}

// DefaultConfig returns a body with no support over a floor at 0.
func DefaultConfig() Config {
	return Config{
		HalfHeight: 0.05,
		Gravity:    9.8,
		Clearance:  0.001,
	}
}

// State is the regime the body was in after the last step.
type State int

const (
	Resting State = iota
	Falling
	Grounded
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Falling:
		return "falling"
	case Grounded:
		return "grounded"
	default:
		return "unknown"
	}
}

// Body integrates the vertical motion of one entity.
type Body struct {
	target *entity.Entity
	cfg    Config
	vy     float32
	state  State
	log    *zap.Logger
}

// New creates a body for target.
func New(target *entity.Entity, cfg Config) *Body {
	return &Body{
		target: target,
		cfg:    cfg,
		log:    logger.Named("drop").With(zap.String("entity", target.Name)),
	}
}

// SetSupport moves the support surface, e.g. when the desk is dragged.
func (b *Body) SetSupport(rect math.Rect, y float32) {
	b.cfg.Support = rect
	b.cfg.SupportY = y
	b.cfg.HasSupport = true
}

// ClearSupport removes the support surface.
func (b *Body) ClearSupport() {
	b.cfg.HasSupport = false
}

// VelocityY returns the current vertical velocity.
func (b *Body) VelocityY() float32 {
	return b.vy
}

// State returns the regime after the last step.
func (b *Body) State() State {
	return b.state
}

// OverSupport reports whether (x, z) is inside the support footprint minus
// the edge margin.
func (b *Body) OverSupport(x, z float32) bool {
	return b.cfg.HasSupport && b.cfg.Support.Contains(x, z, b.cfg.EdgeMargin)
}

// RestY is the pinned height on the support surface.
func (b *Body) RestY() float32 {
	return b.cfg.SupportY + b.cfg.HalfHeight + b.cfg.Clearance
}

// FloorRestY is the lowest height the body can reach.
func (b *Body) FloorRestY() float32 {
	return b.cfg.FloorY + b.cfg.HalfHeight
}

// Step advances the body by dt. Dragging does not change the regime choice;
// a dragged object over the support is pinned exactly like a resting one.
func (b *Body) Step(dt float32, dragged bool) {
	if dt <= 0 {
		return
	}
	pos := b.target.Position()
	prev := b.state

	switch {
	case b.OverSupport(pos.X, pos.Z):
		b.vy = 0
		pos.Y = b.RestY()
		b.state = Resting
	default:
		floor := b.FloorRestY()
		if pos.Y <= floor && b.vy <= 0 {
			pos.Y = floor
			b.vy = 0
			b.state = Grounded
			break
		}
		b.vy -= b.cfg.Gravity * dt
		pos.Y += b.vy * dt
		b.state = Falling
		if pos.Y <= floor {
			pos.Y = floor
			b.vy = 0
			b.state = Grounded
		}
	}

	if pos != b.target.Position() {
		b.target.Apply(entity.Update{Source: entity.SourcePhysics, Position: &pos})
	}
	if b.state != prev {
		b.log.Debug("regime changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", b.state),
			zap.Bool("dragged", dragged),
			zap.Float32("y", pos.Y),
		)
	}
}
