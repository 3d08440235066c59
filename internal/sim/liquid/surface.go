package liquid

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
	"github.com/Faultbox/deskscene/pkg/noise"
)

// Config controls the surface ripple.
type Config struct {
	Amplitude float32      // world units at full wave strength
	Speed     float32      // time multiplier
	Waves     []noise.Wave // ripple terms in radial distance
}

// DefaultConfig returns a slow, shallow ripple.
func DefaultConfig() Config {
	return Config{
		Amplitude: 0.004,
		Speed:     1.0,
		Waves:     noise.DefaultRipple(),
	}
}

// Surface displaces the top of a liquid mesh every frame.
//
// Rest heights are captured exactly once and never written again; only the
// live positions and the normals derived from them change.
type Surface struct {
	cfg Config

	mesh      *Mesh
	rest      []float32 // rest Y per vertex
	live      []float32 // x,y,z per vertex
	normals   []float32 // x,y,z per vertex
	displaced []int     // vertices with rest Y > 0
	captured  bool
	dirty     bool
}

// NewSurface binds cfg to mesh and captures rest heights immediately.
func NewSurface(mesh *Mesh, cfg Config) *Surface {
	s := &Surface{cfg: cfg}
	s.Realize(mesh)
	s.capture()
	return s
}

// NewLazySurface creates a surface without geometry. Update is a silent
// no-op until Realize supplies a mesh; the first Update after that captures
// rest heights.
func NewLazySurface(cfg Config) *Surface {
	return &Surface{cfg: cfg}
}

// Realize attaches geometry. It is ignored once rest heights are captured.
func (s *Surface) Realize(mesh *Mesh) {
	if s.captured || mesh == nil {
		return
	}
	s.mesh = mesh
}

// SetConfig replaces the ripple parameters.
func (s *Surface) SetConfig(cfg Config) {
	s.cfg = cfg
}

func (s *Surface) capture() {
	if s.captured || s.mesh == nil {
		return
	}
	n := s.mesh.VertexCount()
	s.rest = make([]float32, n)
	s.live = make([]float32, len(s.mesh.Positions))
	s.normals = make([]float32, len(s.mesh.Positions))
	copy(s.live, s.mesh.Positions)

	for i := 0; i < n; i++ {
		s.rest[i] = s.mesh.Positions[i*3+1]
		if s.rest[i] > 0 {
			s.displaced = append(s.displaced, i)
		}
	}
	s.captured = true
	s.recomputeNormals()
	s.dirty = true

	logger.Named("liquid").Debug("rest heights captured",
		zap.Int("vertices", n),
		zap.Int("displaced", len(s.displaced)),
	)
}

// Captured reports whether rest heights have been taken.
func (s *Surface) Captured() bool {
	return s.captured
}

// Update writes rest + Amplitude*Ripple(r, t*Speed) into every vertex above
// the mid-plane and recomputes normals. It returns false, touching nothing,
// when no geometry has been realized yet.
func (s *Surface) Update(t float32) bool {
	if !s.captured {
		if s.mesh == nil {
			return false
		}
		s.capture()
	}

	tt := t * s.cfg.Speed
	for _, i := range s.displaced {
		x := s.live[i*3]
		z := s.live[i*3+2]
		r := math.Sqrt(x*x + z*z)
		s.live[i*3+1] = s.rest[i] + s.cfg.Amplitude*noise.Ripple(r, tt, s.cfg.Waves)
	}

	s.recomputeNormals()
	s.dirty = true
	return true
}

// recomputeNormals accumulates area-weighted face normals per vertex.
func (s *Surface) recomputeNormals() {
	for i := range s.normals {
		s.normals[i] = 0
	}
	idx := s.mesh.Indices
	for f := 0; f+2 < len(idx); f += 3 {
		a, b, c := idx[f], idx[f+1], idx[f+2]
		pa := s.vertex(a)
		e1 := s.vertex(b).Sub(pa)
		e2 := s.vertex(c).Sub(pa)
		n := e1.Cross(e2)
		for _, v := range [3]uint32{a, b, c} {
			s.normals[v*3] += n.X
			s.normals[v*3+1] += n.Y
			s.normals[v*3+2] += n.Z
		}
	}
	for i := 0; i+2 < len(s.normals); i += 3 {
		n := math.Vec3{X: s.normals[i], Y: s.normals[i+1], Z: s.normals[i+2]}
		if n.Length() < math.Epsilon {
			n = math.Vec3{Y: 1}
		} else {
			n = n.Normalize()
		}
		s.normals[i], s.normals[i+1], s.normals[i+2] = n.X, n.Y, n.Z
	}
}

func (s *Surface) vertex(i uint32) math.Vec3 {
	return math.Vec3{X: s.live[i*3], Y: s.live[i*3+1], Z: s.live[i*3+2]}
}

// Dirty reports whether positions changed since ClearDirty.
func (s *Surface) Dirty() bool {
	return s.dirty
}

// ClearDirty acknowledges an upload.
func (s *Surface) ClearDirty() {
	s.dirty = false
}

// Positions returns a copy of the live positions.
func (s *Surface) Positions() []float32 {
	return append([]float32(nil), s.live...)
}

// Normals returns a copy of the current normals.
func (s *Surface) Normals() []float32 {
	return append([]float32(nil), s.normals...)
}

// RestHeights returns a copy of the captured rest heights.
func (s *Surface) RestHeights() []float32 {
	return append([]float32(nil), s.rest...)
}

// Indices returns the mesh index buffer, or nil before realization.
func (s *Surface) Indices() []uint32 {
	if s.mesh == nil {
		return nil
	}
	return append([]uint32(nil), s.mesh.Indices...)
}
