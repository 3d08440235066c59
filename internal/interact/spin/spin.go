// Package spin rotates an entity around its vertical axis at a fixed rate.
package spin

import (
	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Spinner advances an entity's yaw while enabled.
type Spinner struct {
	target  *entity.Entity
	Speed   float32 // radians per second
	Enabled bool
}

// New creates a spinner; it starts enabled when speed is non-zero.
func New(target *entity.Entity, speed float32) *Spinner {
	return &Spinner{target: target, Speed: speed, Enabled: speed != 0}
}

// Step rotates the target by Speed*dt. Paused spinners and dragged targets
// are left alone.
func (s *Spinner) Step(dt float32, dragged bool) {
	if !s.Enabled || dragged || dt <= 0 || s.Speed == 0 {
		return
	}
	rot := s.target.Transform().Rotation
	rot.Y = math.WrapAngle(rot.Y + s.Speed*dt)
	s.target.Apply(entity.Update{Source: entity.SourceSpin, Rotation: &rot})
}
