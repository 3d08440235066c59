// Package lamp solves the pose of the desk lamp's articulated head.
//
// The lamp has two rotational degrees of freedom: the arm yaws around the
// base's vertical axis and the head pitches around a horizontal pivot at the
// end of the arm. Pointer drags on the head propose a new pose; the pose is
// committed only if the bulb keeps its clearance from the arm's body tube.
package lamp

import (
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Geometry describes the lamp in base-local space.
type Geometry struct {
	Body       [4]math.Vec3 // body tube control points, rising from the base
	HeadPivot  math.Vec3
	BulbOffset math.Vec3 // bulb center relative to the pivot at zero pitch
	BulbRadius float32
	TubeRadius float32
	Margin     float32
	SampleFrom float32 // body parameter range checked for collisions
	SampleTo   float32
	Samples    int
}

// DefaultGeometry returns a lamp whose arm bends towards +Z.
func DefaultGeometry() Geometry {
	return Geometry{
		Body: [4]math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: 0.32, Z: 0},
			{X: 0, Y: 0.56, Z: 0.06},
			{X: 0, Y: 0.64, Z: 0.2},
		},
		HeadPivot:  math.Vec3{X: 0, Y: 0.64, Z: 0.2},
		BulbOffset: math.Vec3{X: 0, Y: -0.03, Z: 0.11},
		BulbRadius: 0.04,
		TubeRadius: 0.012,
		Margin:     0.005,
		SampleFrom: 0.5,
		SampleTo:   0.95,
		Samples:    6,
	}
}

// Curve returns the body spline.
func (g Geometry) Curve() Curve {
	return Curve{Points: g.Body}
}

// MinDistance is the clearance the bulb must keep from the body axis.
func (g Geometry) MinDistance() float32 {
	return g.BulbRadius + g.TubeRadius - g.Margin
}

// Limits bound the pose and map pointer deltas onto it.
type Limits struct {
	YawMin, YawMax     float32
	PitchMin, PitchMax float32
	YawGain            float32 // radians per unit of normalized horizontal delta
	PitchGain          float32 // radians per unit of normalized vertical delta
}

// DefaultLimits allow more downward than upward tilt.
func DefaultLimits() Limits {
	return Limits{
		YawMin:    math.Radians(-135),
		YawMax:    math.Radians(135),
		PitchMin:  math.Radians(-75),
		PitchMax:  math.Radians(30),
		YawGain:   math.Pi,
		PitchGain: math.Pi / 2,
	}
}

// Clamp restricts p to the limits.
func (l Limits) Clamp(p Pose) Pose {
	return Pose{
		ArmYaw:    math.Clamp(p.ArmYaw, l.YawMin, l.YawMax),
		HeadPitch: math.Clamp(p.HeadPitch, l.PitchMin, l.PitchMax),
	}
}

// Pose is the lamp's articulation. Positive pitch tilts the head up.
type Pose struct {
	ArmYaw    float32
	HeadPitch float32
}

// Solver owns the lamp pose and the head drag session.
type Solver struct {
	geo    Geometry
	limits Limits
	pose   Pose

	basePos math.Vec3
	baseYaw float32

	dragging   bool
	startX     float32
	startY     float32
	startPose  Pose
	rejections int
}

// NewSolver creates a solver at the zero pose, clamped into limits.
func NewSolver(geo Geometry, limits Limits) *Solver {
	s := &Solver{geo: geo, limits: limits}
	s.pose = limits.Clamp(Pose{})
	return s
}

// Geometry returns the lamp geometry.
func (s *Solver) Geometry() Geometry {
	return s.geo
}

// Limits returns the pose limits.
func (s *Solver) Limits() Limits {
	return s.limits
}

// Pose returns the committed pose.
func (s *Solver) Pose() Pose {
	return s.pose
}

// SetBase anchors the solver to the lamp entity's committed transform.
func (s *Solver) SetBase(pos math.Vec3, yaw float32) {
	s.basePos = pos
	s.baseYaw = yaw
}

// SetPose commits p after clamping if it does not collide.
func (s *Solver) SetPose(p Pose) bool {
	p = s.limits.Clamp(p)
	if s.Collides(p) {
		return false
	}
	s.pose = p
	return true
}

// Dragging reports whether a head drag is active.
func (s *Solver) Dragging() bool {
	return s.dragging
}

// Rejections counts candidate poses refused by the collision gate.
func (s *Solver) Rejections() int {
	return s.rejections
}

// BeginHeadDrag records the normalized pointer position and current pose.
func (s *Solver) BeginHeadDrag(nx, ny float32) {
	s.dragging = true
	s.startX, s.startY = nx, ny
	s.startPose = s.pose
}

// MoveHead maps the pointer delta since BeginHeadDrag onto a candidate pose.
// Horizontal motion yaws the arm; downward motion tilts the head down. The
// candidate is clamped and committed only if it passes the collision gate.
// It reports whether the pose was committed.
func (s *Solver) MoveHead(nx, ny float32) bool {
	if !s.dragging {
		return false
	}
	dx := nx - s.startX
	dy := ny - s.startY
	candidate := s.limits.Clamp(Pose{
		ArmYaw:    s.startPose.ArmYaw + dx*s.limits.YawGain,
		HeadPitch: s.startPose.HeadPitch - dy*s.limits.PitchGain,
	})

	if s.Collides(candidate) {
		s.rejections++
		logger.Named("lamp").Debug("lamp pose rejected",
			zap.Float32("yaw", candidate.ArmYaw),
			zap.Float32("pitch", candidate.HeadPitch),
			zap.Float32("clearance", s.Clearance(candidate)),
		)
		return false
	}
	s.pose = candidate
	return true
}

// EndHeadDrag ends the session; the committed pose stays.
func (s *Solver) EndHeadDrag() {
	s.dragging = false
}

// armMatrix maps base-local points into world space for a given arm yaw.
func (s *Solver) armMatrix(yaw float32) math.Mat4 {
	return math.Translate(s.basePos.X, s.basePos.Y, s.basePos.Z).
		Mul(math.RotateY(s.baseYaw + yaw))
}

// HeadMatrix is the world transform of the head at pose p, with its origin
// at the pivot.
func (s *Solver) HeadMatrix(p Pose) math.Mat4 {
	piv := s.geo.HeadPivot
	return s.armMatrix(p.ArmYaw).
		Mul(math.Translate(piv.X, piv.Y, piv.Z)).
		Mul(math.RotateX(-p.HeadPitch))
}

// BulbWorld returns the bulb center in world space for pose p.
func (s *Solver) BulbWorld(p Pose) math.Vec3 {
	return s.HeadMatrix(p).TransformVec3(s.geo.BulbOffset)
}

// HeadWorld returns the pivot in world space for pose p.
func (s *Solver) HeadWorld(p Pose) math.Vec3 {
	return s.armMatrix(p.ArmYaw).TransformVec3(s.geo.HeadPivot)
}

// BodySamples returns world-space samples of the body's head-ward end for
// the given arm yaw.
func (s *Solver) BodySamples(yaw float32) []math.Vec3 {
	pts := s.geo.Curve().Sample(s.geo.SampleFrom, s.geo.SampleTo, s.geo.Samples)
	m := s.armMatrix(yaw)
	for i := range pts {
		pts[i] = m.TransformVec3(pts[i])
	}
	return pts
}

// BodyCurve returns n world-space points along the whole body at arm yaw.
func (s *Solver) BodyCurve(yaw float32, n int) []math.Vec3 {
	pts := s.geo.Curve().Sample(0, 1, n)
	m := s.armMatrix(yaw)
	for i := range pts {
		pts[i] = m.TransformVec3(pts[i])
	}
	return pts
}

// distance is the smallest distance from the bulb to the sampled body.
func (s *Solver) distance(p Pose) float32 {
	bulb := s.BulbWorld(p)
	samples := s.BodySamples(p.ArmYaw)
	if len(samples) == 0 {
		return float32(1e9)
	}
	best := bulb.Distance(samples[0])
	for i := 1; i < len(samples); i++ {
		if d := bulb.SegmentDistance(samples[i-1], samples[i]); d < best {
			best = d
		}
	}
	return best
}

// Clearance is the bulb-to-body distance minus both radii.
func (s *Solver) Clearance(p Pose) float32 {
	return s.distance(p) - s.geo.BulbRadius - s.geo.TubeRadius
}

// Collides reports whether pose p brings the bulb too close to the body.
func (s *Solver) Collides(p Pose) bool {
	return s.distance(p) < s.geo.MinDistance()
}
