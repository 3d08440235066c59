package headless

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/interact/drop"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/internal/telemetry"
	"github.com/Faultbox/deskscene/pkg/math"
)

func newRunner(t *testing.T, rec *telemetry.Recorder, script []Gesture) (*Runner, *scene.Scene) {
	t.Helper()
	cam := camera.NewOrbitCamera(800, 600)
	s := scene.New(scene.DefaultConfig(), cam, scene.Callbacks{})
	return New(s, cam, rec, script), s
}

func TestProgress(t *testing.T) {
	g := Gesture{Start: 10, End: 20}
	tests := []struct {
		frame int
		want  float32
	}{
		{5, 0},
		{10, 0},
		{15, 0.5},
		{20, 1},
		{30, 1},
	}
	for _, tt := range tests {
		if got := g.progress(tt.frame); got != tt.want {
			t.Errorf("progress(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
	if got := (Gesture{Start: 5, End: 5}).progress(5); got != 1 {
		t.Errorf("progress() of instant gesture = %v, want 1", got)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := camera.NewOrbitCamera(800, 600)
	eye := cam.Eye()
	behind := eye.Add(eye.Sub(math.Vec3{Y: cam.CenterY}))
	if _, _, ok := project(cam, behind); ok {
		t.Error("project() of a point behind the camera should fail")
	}
	x, y, ok := project(cam, math.Vec3{X: cam.CenterX, Y: cam.CenterY, Z: cam.CenterZ})
	if !ok || math.Abs(x-400) > 0.5 || math.Abs(y-300) > 0.5 {
		t.Errorf("project(center) = %v, %v, %v; want 400, 300, true", x, y, ok)
	}
}

func TestCupLoopReturnsHome(t *testing.T) {
	script := DefaultScript()[:1]
	r, s := newRunner(t, nil, script)
	start := s.Cup().Position()

	snap, err := r.Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Started() != 1 {
		t.Fatalf("Started() = %d, want 1", r.Started())
	}
	if snap.Cup.Dragging {
		t.Error("cup still dragging after the gesture ended")
	}
	got := s.Cup().Position()
	if got.Distance(start) > 0.02 {
		t.Errorf("cup ended at %v, want near start %v", got, start)
	}
	if snap.CupState != drop.Resting {
		t.Errorf("CupState = %v, want resting", snap.CupState)
	}
}

func TestDefaultScript(t *testing.T) {
	dir := t.TempDir()
	rec, err := telemetry.NewRecorder(dir, 1)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	r, s := newRunner(t, rec, DefaultScript())

	snap, err := r.Run(context.Background(), 450)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if r.Started() < 3 {
		t.Errorf("Started() = %d, want at least cup, lamp and second cup gestures", r.Started())
	}
	if got := s.Cup().Position().Y; got >= snap.DeskTopY {
		t.Errorf("cup y = %v, want below desk top %v after being dragged off", got, snap.DeskTopY)
	}

	sum := rec.Summary()
	if sum.Frames != 450 {
		t.Errorf("Summary().Frames = %d, want 450", sum.Frames)
	}
	if sum.CupTravel < 0.5 {
		t.Errorf("Summary().CupTravel = %v, want > 0.5", sum.CupTravel)
	}
	if sum.LampYawSpan <= 0 {
		t.Errorf("Summary().LampYawSpan = %v, want > 0", sum.LampYawSpan)
	}
	if sum.DraggedRows == 0 {
		t.Error("Summary().DraggedRows = 0, want dragged frames")
	}

	rows, err := telemetry.ReadFrames(filepath.Join(dir, telemetry.FramesFile))
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if len(rows) != 450 {
		t.Errorf("len(rows) = %d, want 450", len(rows))
	}
}

func TestRunCancelled(t *testing.T) {
	r, _ := newRunner(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := r.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if snap.Frame != 0 {
		t.Errorf("Run() advanced to frame %d, want 0", snap.Frame)
	}
}
