// Package headless drives a scene without a window: scripted pointer
// gestures, fixed time steps and an optional CSV trace.
package headless

import (
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Gesture is one scripted pointer press, path and release.
//
// The pointer goes down on the world point Anchor returns at frame Start,
// follows Anchor + Path(t) for t in (0, 1) and is released at frame End.
type Gesture struct {
	Name      string
	Start     int
	End       int
	PointerID int
	Anchor    func(scene.Snapshot) math.Vec3
	Path      func(t float32) math.Vec3
}

// progress returns where frame falls within the gesture, in [0, 1].
func (g Gesture) progress(frame int) float32 {
	if g.End <= g.Start {
		return 1
	}
	return math.Clamp(float32(frame-g.Start)/float32(g.End-g.Start), 0, 1)
}

func cupCenter(s scene.Snapshot) math.Vec3  { return s.Cup.Transform.Position }
func deskCenter(s scene.Snapshot) math.Vec3 { return s.Desk.Transform.Position }
func lampBulb(s scene.Snapshot) math.Vec3   { return s.LampPose.Bulb }

// DefaultScript exercises every interaction once: a cup drag that returns
// home, a lamp head sweep overlapping a desk nudge, and a final cup drag off
// the desk edge.
func DefaultScript() []Gesture {
	return []Gesture{
		{
			Name: "cup-loop", Start: 30, End: 150, PointerID: 1,
			Anchor: cupCenter,
			Path: func(t float32) math.Vec3 {
				return math.Vec3{X: -0.3 * math.Sin(math.Pi*t), Z: 0.1 * math.Sin(2*math.Pi*t)}
			},
		},
		{
			Name: "lamp-sweep", Start: 180, End: 300, PointerID: 2,
			Anchor: lampBulb,
			Path: func(t float32) math.Vec3 {
				return math.Vec3{X: 0.25 * math.Sin(2*math.Pi*t), Y: 0.05 * math.Sin(math.Pi*t)}
			},
		},
		{
			Name: "desk-nudge", Start: 200, End: 260, PointerID: 3,
			Anchor: deskCenter,
			Path: func(t float32) math.Vec3 {
				return math.Vec3{Z: 0.08 * math.Sin(math.Pi*t)}
			},
		},
		{
			Name: "cup-off-desk", Start: 330, End: 390, PointerID: 1,
			Anchor: cupCenter,
			Path: func(t float32) math.Vec3 {
				return math.Vec3{X: 0.8 * t}
			},
		},
	}
}
