// Package entity holds the owned transform state of each animated scene object.
//
// Controllers never write a transform directly. They submit an Update through
// Entity.Apply, which is the single place where writes can be vetted, counted
// and, if ever needed, arbitrated between writers.
package entity

import (
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Source identifies the controller requesting a transform update.
type Source int

const (
	SourceScene Source = iota
	SourceDrag
	SourcePhysics
	SourceSpin
)

func (s Source) String() string {
	switch s {
	case SourceScene:
		return "scene"
	case SourceDrag:
		return "drag"
	case SourcePhysics:
		return "physics"
	case SourceSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// Transform is position, euler rotation (radians) and scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Matrix returns translate * rotateY * rotateX * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(math.RotateY(t.Rotation.Y)).
		Mul(math.RotateX(t.Rotation.X)).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// Update is a requested transform change. Nil fields are left untouched.
type Update struct {
	Source   Source
	Position *math.Vec3
	Rotation *math.Vec3
}

// Entity is one logical scene object (cup, desk, lamp).
type Entity struct {
	Name string

	// Bounds is the local-space pick box, offset by Position for hit tests.
	Bounds picking.AABB

	transform  Transform
	lastSource Source
	writes     int
	removed    bool
	onRemove   []func()
}

// New creates an entity at the given transform. A zero scale becomes 1.
func New(name string, t Transform) *Entity {
	if t.Scale == (math.Vec3{}) {
		t.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return &Entity{Name: name, transform: t}
}

// Transform returns a copy of the current transform.
func (e *Entity) Transform() Transform {
	return e.transform
}

// Position returns the current position.
func (e *Entity) Position() math.Vec3 {
	return e.transform.Position
}

// Yaw returns the rotation around the vertical axis.
func (e *Entity) Yaw() float32 {
	return e.transform.Rotation.Y
}

// Apply commits an update. Updates to a removed entity are dropped.
func (e *Entity) Apply(u Update) bool {
	if e.removed {
		return false
	}
	if u.Position == nil && u.Rotation == nil {
		return false
	}
	if u.Position != nil {
		e.transform.Position = *u.Position
	}
	if u.Rotation != nil {
		e.transform.Rotation = *u.Rotation
	}
	e.lastSource = u.Source
	e.writes++
	return true
}

// LastSource returns the source of the most recent committed update.
func (e *Entity) LastSource() Source {
	return e.lastSource
}

// Writes returns the number of committed updates.
func (e *Entity) Writes() int {
	return e.writes
}

// WorldBounds returns the pick box in world space.
func (e *Entity) WorldBounds() picking.AABB {
	return e.Bounds.Translate(e.transform.Position)
}

// OnRemove registers a hook run once when the entity is removed.
func (e *Entity) OnRemove(fn func()) {
	e.onRemove = append(e.onRemove, fn)
}

// Remove marks the entity gone and runs its removal hooks.
func (e *Entity) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	for _, fn := range e.onRemove {
		fn()
	}
	e.onRemove = nil
}

// Removed reports whether Remove was called.
func (e *Entity) Removed() bool {
	return e.removed
}
