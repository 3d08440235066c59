// Package particles simulates the steam fountain rising out of the cup.
//
// The field is a fixed pool of particles that rise at individual speeds,
// drift on a small swirl and are pushed back inside the cup interior while
// they are below the rim. Particles that leave the top of the volume are
// recycled near the base, so the fountain runs forever at constant size.
package particles

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Config controls the fountain.
type Config struct {
	Count       int
	Spread      float32 // seeding disc radius
	BaseY       float32
	Height      float32 // particles recycle above BaseY+Height
	SpeedMin    float32
	SpeedMax    float32
	RespawnBand float32 // respawn heights are in [BaseY, BaseY+RespawnBand)
	SwirlRate   float32
	SwirlAmount float32
	SwirlStep   float32
	Seed        int64

	Containment Containment
}

// DefaultConfig returns the default 400 particle fountain.
func DefaultConfig() Config {
	return Config{
		Count:       400,
		Spread:      0.35,
		BaseY:       0,
		Height:      1.2,
		SpeedMin:    0.2,
		SpeedMax:    0.55,
		RespawnBand: 0.12,
		SwirlRate:   1.3,
		SwirlAmount: 0.6,
		SwirlStep:   0.004,
		Seed:        1,
		Containment: DefaultContainment(),
	}
}

// ceilingEpsilon extends containment slightly above the rim.
const ceilingEpsilon = 1e-3

// Particle is one element of the pool.
type Particle struct {
	Position math.Vec3
	Speed    float32 // vertical, units/s
	Phase    float32 // swirl phase, radians
}

// Field owns the particle pool.
type Field struct {
	cfg       Config
	rng       *rand.Rand
	particles []Particle

	origin math.Vec3
	yaw    float32
	scale  float32

	respawns int
}

// New creates a field with cfg.Count particles spread uniformly over the
// full height so the fountain starts in its steady state.
func New(cfg Config) *Field {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if cfg.SpeedMax < cfg.SpeedMin {
		cfg.SpeedMin, cfg.SpeedMax = cfg.SpeedMax, cfg.SpeedMin
	}
	f := &Field{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		particles: make([]Particle, cfg.Count),
		scale:     1,
	}
	for i := range f.particles {
		y := cfg.BaseY + f.rng.Float32()*cfg.Height
		f.seed(&f.particles[i], y)
	}

	logger.Named("particles").Debug("particles field created",
		zap.Int("count", cfg.Count),
		zap.Float32("spread", cfg.Spread),
		zap.Float32("height", cfg.Height),
		zap.Int64("seed", cfg.Seed),
	)
	return f
}

// Config returns the configuration the field was built with.
func (f *Field) Config() Config {
	return f.cfg
}

// seed places p at height y with a fresh position, speed and phase.
// Radii are drawn as sqrt(u) so the disc is uniform by area.
func (f *Field) seed(p *Particle, y float32) {
	angle := f.rng.Float32() * 2 * math.Pi
	limit := f.cfg.Spread
	if allowed := f.cfg.Containment.Allowed(f.cfg.BaseY, y, angle); allowed < limit {
		limit = allowed
	}
	r := math.Sqrt(f.rng.Float32()) * limit

	p.Position = math.Vec3{X: r * math.Cos(angle), Y: y, Z: r * math.Sin(angle)}
	p.Speed = math.Lerp(f.cfg.SpeedMin, f.cfg.SpeedMax, f.rng.Float32())
	p.Phase = f.rng.Float32() * 2 * math.Pi
}

// Step advances every particle by dt at simulation time t.
func (f *Field) Step(dt, t float32) {
	if dt <= 0 {
		return
	}
	cfg := &f.cfg
	top := cfg.BaseY + cfg.Height
	ceiling := cfg.Containment.RimY + ceilingEpsilon
	swirl := cfg.SwirlAmount * cfg.SwirlStep

	for i := range f.particles {
		p := &f.particles[i]
		p.Position.Y += p.Speed * dt

		s := t*cfg.SwirlRate + p.Phase
		p.Position.X += math.Sin(s) * swirl
		p.Position.Z += math.Cos(s) * swirl

		if p.Position.Y > top {
			f.seed(p, cfg.BaseY+f.rng.Float32()*cfg.RespawnBand)
			f.respawns++
			continue
		}
		if p.Position.Y < ceiling {
			f.contain(p)
		}
	}
}

// contain projects p radially onto the allowed radius when it is outside.
func (f *Field) contain(p *Particle) {
	x, z := p.Position.X, p.Position.Z
	r := math.Sqrt(x*x + z*z)
	allowed := f.cfg.Containment.Allowed(f.cfg.BaseY, p.Position.Y, math.Atan2(z, x))
	if r <= allowed {
		return
	}
	k := allowed / math.SafeDenom(r)
	p.Position.X = x * k
	p.Position.Z = z * k
}

// Len returns the pool size.
func (f *Field) Len() int {
	return len(f.particles)
}

// Respawns returns how many particles have been recycled so far.
func (f *Field) Respawns() int {
	return f.respawns
}

// Particles returns a copy of the pool.
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

// Positions returns cup-local positions as x,y,z triples.
func (f *Field) Positions() []float32 {
	out := make([]float32, 0, len(f.particles)*3)
	for _, p := range f.particles {
		out = append(out, p.Position.X, p.Position.Y, p.Position.Z)
	}
	return out
}

// SetOrigin anchors the field to the cup's committed position.
func (f *Field) SetOrigin(origin math.Vec3) {
	f.origin = origin
}

// SetYaw anchors the field to the cup's committed rotation.
func (f *Field) SetYaw(yaw float32) {
	f.yaw = yaw
}

// SetScale sets the cup-local to world scale.
func (f *Field) SetScale(scale float32) {
	f.scale = scale
}

// Origin returns the current anchor.
func (f *Field) Origin() math.Vec3 {
	return f.origin
}

// WorldPositions appends world-space x,y,z triples to dst and returns it.
func (f *Field) WorldPositions(dst []float32) []float32 {
	m := math.Translate(f.origin.X, f.origin.Y, f.origin.Z).
		Mul(math.RotateY(f.yaw)).
		Mul(math.Scale(f.scale, f.scale, f.scale))
	for _, p := range f.particles {
		w := m.TransformVec3(p.Position)
		dst = append(dst, w.X, w.Y, w.Z)
	}
	return dst
}

// MaxExcess returns how far the worst particle below the rim sits outside
// its allowed radius, or 0 when all are contained.
func (f *Field) MaxExcess() float32 {
	var worst float32
	c := f.cfg.Containment
	for _, p := range f.particles {
		if p.Position.Y >= c.RimY {
			continue
		}
		x, z := p.Position.X, p.Position.Z
		d := math.Sqrt(x*x+z*z) - c.Allowed(f.cfg.BaseY, p.Position.Y, math.Atan2(z, x))
		if d > worst {
			worst = d
		}
	}
	return worst
}

// HeightRange returns the lowest and highest particle heights.
func (f *Field) HeightRange() (lo, hi float32) {
	if len(f.particles) == 0 {
		return 0, 0
	}
	lo, hi = f.particles[0].Position.Y, f.particles[0].Position.Y
	for _, p := range f.particles[1:] {
		if p.Position.Y < lo {
			lo = p.Position.Y
		}
		if p.Position.Y > hi {
			hi = p.Position.Y
		}
	}
	return lo, hi
}
