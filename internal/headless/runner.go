package headless

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/engine/pointer"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/internal/telemetry"
	"github.com/Faultbox/deskscene/pkg/math"
)

// DefaultStep is the fixed frame time.
const DefaultStep = float32(1.0 / 60)

// Runner steps a scene for a fixed number of frames.
type Runner struct {
	scene    *scene.Scene
	cam      *camera.OrbitCamera
	recorder *telemetry.Recorder
	script   []Gesture
	step     float32
	log      *zap.Logger

	anchors map[string]math.Vec3
	last    scene.Snapshot
	started int // gestures whose press started a session
}

// New creates a runner. A nil recorder disables tracing.
func New(s *scene.Scene, cam *camera.OrbitCamera, rec *telemetry.Recorder, script []Gesture) *Runner {
	return &Runner{
		scene:    s,
		cam:      cam,
		recorder: rec,
		script:   script,
		step:     DefaultStep,
		log:      logger.Named("headless"),
		anchors:  make(map[string]math.Vec3),
	}
}

// Run advances frames frames, feeding scripted gestures before each one.
// Gesture anchors are read from the previous frame's snapshot. It stops
// early when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, frames int) (scene.Snapshot, error) {
	for frame := 1; frame <= frames; frame++ {
		if err := ctx.Err(); err != nil {
			return r.last, fmt.Errorf("stopped at frame %d: %w", frame, err)
		}
		for _, g := range r.script {
			r.feed(g, frame)
		}
		r.last = r.scene.Frame(r.step)
		if err := r.recorder.Record(r.last); err != nil {
			return r.last, err
		}
	}
	return r.last, nil
}

// Started returns how many gesture presses began a session.
func (r *Runner) Started() int {
	return r.started
}

// feed sends the pointer event gesture g wants at frame, if any.
func (r *Runner) feed(g Gesture, frame int) {
	if frame < g.Start || frame > g.End {
		return
	}

	if frame == g.Start {
		r.anchors[g.Name] = g.Anchor(r.last)
	}
	anchor := r.anchors[g.Name]
	target := anchor.Add(g.Path(g.progress(frame)))
	x, y, ok := project(r.cam, target)
	if !ok {
		return
	}

	switch frame {
	case g.Start:
		if r.scene.PointerDown(pointer.Event{Kind: pointer.Down, PointerID: g.PointerID, X: x, Y: y}) {
			r.started++
			r.log.Debug("gesture started", zap.String("gesture", g.Name), zap.Int("frame", frame))
		} else {
			r.log.Debug("gesture missed", zap.String("gesture", g.Name), zap.Int("frame", frame))
		}
	case g.End:
		r.scene.PointerUp(pointer.Event{Kind: pointer.Up, PointerID: g.PointerID, X: x, Y: y})
		r.log.Debug("gesture ended", zap.String("gesture", g.Name), zap.Int("frame", frame))
	default:
		r.scene.PointerMove(pointer.Event{Kind: pointer.Move, PointerID: g.PointerID, X: x, Y: y})
	}
}

// project maps a world point to window pixels; false when it is behind the
// camera.
func project(cam *camera.OrbitCamera, p math.Vec3) (float32, float32, bool) {
	c := cam.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if c[3] <= 0 {
		return 0, 0, false
	}
	nx, ny := c[0]/c[3], c[1]/c[3]
	return (nx + 1) / 2 * cam.ViewportW, (1 - ny) / 2 * cam.ViewportH, true
}
