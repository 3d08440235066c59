// Package steam places a few camera-facing quads above the cup and animates
// their noise-masked opacity.
package steam

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
	"github.com/Faultbox/deskscene/pkg/noise"
)

// Config controls placement, motion and the opacity mask.
type Config struct {
	Columns     int
	Spread      float32 // radial offset of each column from the axis
	Speed       float32 // material time multiplier
	Wobble      float32 // jitter amplitude
	Rise        float32 // quad center height above the anchor
	Width       float32
	Height      float32
	IndexFactor float32 // per-column time rate offset

	NoiseScale     float32
	NoiseStrength  float32
	AlphaThreshold float32
	RiseSpeed      float32 // how fast the noise scrolls upward
}

// DefaultConfig returns three slow columns.
func DefaultConfig() Config {
	return Config{
		Columns:        3,
		Spread:         0.06,
		Speed:          0.6,
		Wobble:         0.015,
		Rise:           0.25,
		Width:          0.22,
		Height:         0.55,
		IndexFactor:    0.15,
		NoiseScale:     3.0,
		NoiseStrength:  0.75,
		AlphaThreshold: 0.02,
		RiseSpeed:      0.35,
	}
}

// Column is one billboard.
type Column struct {
	Index int
	Angle float32   // placement angle around the axis
	Local math.Vec3 // unscaled offset from the anchor, jitter included
	World math.Vec3
	Model math.Mat4 // billboard orientation scaled to Width x Height
	Time  float32   // material time uniform
}

// Steam owns the columns of one steam instance.
type Steam struct {
	cfg     Config
	columns []Column
	scale   float32
}

// New places cfg.Columns columns evenly around the vertical axis.
func New(cfg Config) *Steam {
	if cfg.Columns < 0 {
		cfg.Columns = 0
	}
	s := &Steam{cfg: cfg, columns: make([]Column, cfg.Columns), scale: 1}
	for i := range s.columns {
		a := 2 * math.Pi * float32(i) / float32(cfg.Columns)
		s.columns[i] = Column{
			Index: i,
			Angle: a,
			Local: s.base(a),
		}
	}
	logger.Named("steam").Debug("steam columns created", zap.Int("columns", cfg.Columns))
	return s
}

// Config returns the active configuration.
func (s *Steam) Config() Config {
	return s.cfg
}

// SetScale sets the steam-local to world scale applied to offsets and quad size.
func (s *Steam) SetScale(scale float32) {
	s.scale = scale
}

func (s *Steam) base(angle float32) math.Vec3 {
	return math.Vec3{
		X: math.Cos(angle) * s.cfg.Spread,
		Y: s.cfg.Rise,
		Z: math.Sin(angle) * s.cfg.Spread,
	}
}

// phase desynchronizes column i from its neighbours.
func phase(i int) float32 {
	return float32(i) * 2.39996 // golden angle
}

// Update jitters every column around its base offset, orients it towards eye
// and advances its material time. anchor is the committed world position the
// steam rises from.
func (s *Steam) Update(elapsed float32, anchor, eye math.Vec3) {
	up := math.Vec3{Y: 1}
	scale := math.Scale(s.cfg.Width*s.scale, s.cfg.Height*s.scale, 1)
	w := s.cfg.Wobble

	for i := range s.columns {
		c := &s.columns[i]
		ph := phase(i)

		c.Local = s.base(c.Angle).Add(math.Vec3{
			X: math.Sin(elapsed*1.3+ph) * w,
			Y: math.Sin(elapsed*0.9+ph) * w * 0.5,
			Z: math.Cos(elapsed*1.1+ph) * w,
		})
		c.World = anchor.Add(c.Local.Scale(s.scale))
		c.Model = math.Billboard(c.World, eye, up).Mul(scale)
		c.Time = elapsed * s.cfg.Speed * (1 + float32(i)*s.cfg.IndexFactor)
	}
}

// Columns returns a copy of the column state.
func (s *Steam) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Mask evaluates the opacity of quad coordinate (u, v) in [0,1]^2 at material
// time. Pixels whose alpha falls below cfg.AlphaThreshold are not drawn.
func Mask(u, v, time float32, cfg Config) (alpha float32, visible bool) {
	dx := (u - 0.5) * 2
	dy := (v - 0.5) * 2
	r := math.Sqrt(dx*dx + dy*dy)
	disc := 1 - math.Smoothstep(0.2, 1, r)

	n := noise.FBM(u*cfg.NoiseScale, v*cfg.NoiseScale-time*cfg.RiseSpeed)
	alpha = disc * math.Mix(1, n, cfg.NoiseStrength)
	return alpha, alpha >= cfg.AlphaThreshold
}
