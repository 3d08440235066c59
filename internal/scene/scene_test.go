package scene

import (
	"testing"

	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/engine/pointer"
	"github.com/Faultbox/deskscene/internal/entity"
	"github.com/Faultbox/deskscene/internal/interact/drop"
	"github.com/Faultbox/deskscene/pkg/math"
)

const dt = float32(1.0 / 60)

type recorder struct {
	dragChanges []string
	moves       map[string]int
}

func (r *recorder) callbacks() Callbacks {
	r.moves = make(map[string]int)
	return Callbacks{
		OnDragChange: func(name string, dragging bool) {
			state := "end"
			if dragging {
				state = "start"
			}
			r.dragChanges = append(r.dragChanges, name+":"+state)
		},
		OnMove: func(name string, _ math.Vec3) {
			r.moves[name]++
		},
	}
}

func newTestScene(t *testing.T, cfg Config) (*Scene, *camera.OrbitCamera, *recorder) {
	t.Helper()
	cam := camera.NewOrbitCamera(800, 600)
	rec := &recorder{}
	return New(cfg, cam, rec.callbacks()), cam, rec
}

// screenOf projects a world point to pixel coordinates.
func screenOf(cam *camera.OrbitCamera, p math.Vec3) (float32, float32) {
	c := cam.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	nx, ny := c[0]/c[3], c[1]/c[3]
	return (nx + 1) / 2 * cam.ViewportW, (1 - ny) / 2 * cam.ViewportH
}

func ev(kind pointer.Kind, id int, x, y float32) pointer.Event {
	return pointer.Event{Kind: kind, PointerID: id, X: x, Y: y}
}

func TestNewPlacesObjectsOnDesk(t *testing.T) {
	s, _, _ := newTestScene(t, DefaultConfig())
	cfg := s.Config()

	wantCupY := cfg.Desk.Center.Y + cfg.Cup.HalfHeight*cfg.Cup.Scale + cfg.Drop.Clearance
	if got := s.Cup().Position().Y; math.Abs(got-wantCupY) > 1e-6 {
		t.Errorf("cup y = %v, want %v", got, wantCupY)
	}
	if got := s.Lamp().Position().Y; got != cfg.Desk.Center.Y {
		t.Errorf("lamp y = %v, want desk top %v", got, cfg.Desk.Center.Y)
	}
	if !s.lampRect().Contains(s.Lamp().Position().X, s.Lamp().Position().Z, 0) {
		t.Error("lamp base outside its desk area")
	}
}

func TestRestingCupStaysPut(t *testing.T) {
	s, _, rec := newTestScene(t, DefaultConfig())
	start := s.Cup().Position()
	var snap Snapshot
	for i := 0; i < 120; i++ {
		snap = s.Frame(dt)
	}
	if got := s.Cup().Position(); got != start {
		t.Errorf("cup moved while resting: %v -> %v", start, got)
	}
	if snap.CupState != drop.Resting {
		t.Errorf("CupState = %v, want resting", snap.CupState)
	}
	if rec.moves[NameCup] != 0 {
		t.Errorf("OnMove fired %d times for a resting cup", rec.moves[NameCup])
	}
	if snap.Frame != 120 || math.Abs(snap.Elapsed-2) > 1e-4 {
		t.Errorf("Frame/Elapsed = %d/%v, want 120/2", snap.Frame, snap.Elapsed)
	}
}

func TestPickTargets(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	s.Frame(dt)

	tests := []struct {
		name  string
		world math.Vec3
		want  Target
	}{
		{"cup", s.Cup().Position(), TargetCup},
		{"lamp head", s.LampSolver().BulbWorld(s.LampSolver().Pose()), TargetLampHead},
		{"desk", math.Vec3{X: 0.6, Y: 0.75, Z: -0.3}, TargetDesk},
		{"floor", math.Vec3{X: 3, Y: 0, Z: 3}, TargetNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := screenOf(cam, tt.world)
			if got := s.Pick(x, y); got != tt.want {
				t.Errorf("Pick(%v) = %v, want %v", tt.world, got, tt.want)
			}
		})
	}
}

func TestDragCupOffsetContinuity(t *testing.T) {
	s, cam, rec := newTestScene(t, DefaultConfig())
	s.Frame(dt)

	before := s.Cup().Position()
	// grab slightly off center
	dx, dy := screenOf(cam, before.Add(math.Vec3{X: 0.02, Z: 0.01}))
	downHit, ok := cam.ScreenRay(dx, dy).IntersectPlaneY(before.Y)
	if !ok {
		t.Fatal("down ray missed the plane")
	}

	if !s.PointerDown(ev(pointer.Down, 1, dx, dy)) {
		t.Fatal("PointerDown() on the cup did not start a drag")
	}
	if got := s.Cup().Position(); got != before {
		t.Fatalf("cup jumped on pointer-down: %v -> %v", before, got)
	}
	if !s.Dragging(NameCup) {
		t.Error("Dragging(cup) = false after pointer-down")
	}

	mx, my := dx-40, dy+10
	if !s.PointerMove(ev(pointer.Move, 1, mx, my)) {
		t.Fatal("PointerMove() was not applied")
	}
	hit, _ := cam.ScreenRay(mx, my).IntersectPlaneY(before.Y)
	wantX := hit.X + (before.X - downHit.X)
	wantZ := hit.Z + (before.Z - downHit.Z)
	got := s.Cup().Position()
	if math.Abs(got.X-wantX) > 1e-5 || math.Abs(got.Z-wantZ) > 1e-5 {
		t.Errorf("cup at (%v, %v), want (%v, %v)", got.X, got.Z, wantX, wantZ)
	}

	s.PointerUp(ev(pointer.Up, 1, mx, my))
	if s.Dragging(NameCup) {
		t.Error("Dragging(cup) = true after pointer-up")
	}
	if s.capture.Held() != 0 {
		t.Errorf("capture.Held() = %d after pointer-up, want 0", s.capture.Held())
	}
	if len(rec.dragChanges) != 2 || rec.dragChanges[0] != "cup:start" || rec.dragChanges[1] != "cup:end" {
		t.Errorf("drag changes = %v", rec.dragChanges)
	}
	if rec.moves[NameCup] != 1 {
		t.Errorf("OnMove(cup) fired %d times, want 1", rec.moves[NameCup])
	}
}

func TestMovesAfterEndAreIgnored(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	x, y := screenOf(cam, s.Cup().Position())
	s.PointerDown(ev(pointer.Down, 1, x, y))
	s.PointerUp(ev(pointer.Up, 1, x, y))

	before := s.Cup().Position()
	if s.PointerMove(ev(pointer.Move, 1, x+50, y)) {
		t.Error("PointerMove() after pointer-up was applied")
	}
	if s.Cup().Position() != before {
		t.Error("cup moved after the session ended")
	}
}

func TestCupDraggedOffDeskFalls(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	s.Frame(dt)

	cup := s.Cup().Position()
	x, y := screenOf(cam, cup)
	if !s.PointerDown(ev(pointer.Down, 1, x, y)) {
		t.Fatal("PointerDown() on the cup failed")
	}
	ox, oy := screenOf(cam, math.Vec3{X: 1.2, Y: cup.Y, Z: 0.1})
	s.PointerMove(ev(pointer.Move, 1, ox, oy))
	s.PointerUp(ev(pointer.Up, 1, ox, oy))

	if s.CupBody().OverSupport(s.Cup().Position().X, s.Cup().Position().Z) {
		t.Fatalf("cup at %v still over the desk", s.Cup().Position())
	}

	floor := s.CupBody().FloorRestY()
	prev := s.Cup().Position().Y
	landed := false
	for i := 0; i < 120; i++ {
		snap := s.Frame(dt)
		y := snap.Cup.Transform.Position.Y
		if landed {
			if y != floor || snap.CupVelocityY != 0 {
				t.Fatalf("frame %d: cup left the floor: y=%v vy=%v", i, y, snap.CupVelocityY)
			}
			continue
		}
		if y >= prev {
			t.Fatalf("frame %d: y did not decrease (%v -> %v)", i, prev, y)
		}
		if y == floor {
			landed = true
		}
		prev = y
	}
	if !landed {
		t.Error("cup never reached the floor")
	}
}

func TestLampHeadDrag(t *testing.T) {
	s, cam, rec := newTestScene(t, DefaultConfig())
	s.Frame(dt)

	solver := s.LampSolver()
	bx, by := screenOf(cam, solver.BulbWorld(solver.Pose()))
	if !s.PointerDown(ev(pointer.Down, 3, bx, by)) {
		t.Fatal("PointerDown() on the head did not start posing")
	}
	if !s.Dragging(NameLamp) || !solver.Dragging() {
		t.Fatal("lamp head should be posing")
	}
	basePos := s.Lamp().Position()

	// 80px right on an 800px viewport is a normalized delta of 0.2.
	s.PointerMove(ev(pointer.Move, 3, bx+80, by))
	if got, want := solver.Pose().ArmYaw, 0.2*math.Pi; math.Abs(got-want) > 1e-4 {
		t.Errorf("ArmYaw = %v, want %v", got, want)
	}
	if s.Lamp().Position() != basePos {
		t.Error("posing the head moved the lamp base")
	}

	s.PointerUp(ev(pointer.Up, 3, bx+80, by))
	if solver.Dragging() || s.capture.Held() != 0 || s.Arbiter().Count() != 0 {
		t.Error("head session not fully released")
	}
	if len(rec.dragChanges) != 2 || rec.dragChanges[0] != "lamp:start" {
		t.Errorf("drag changes = %v", rec.dragChanges)
	}
}

func TestRemoveMidDragReleasesPointer(t *testing.T) {
	s, cam, rec := newTestScene(t, DefaultConfig())
	x, y := screenOf(cam, s.Cup().Position())
	if !s.PointerDown(ev(pointer.Down, 1, x, y)) {
		t.Fatal("PointerDown() failed")
	}

	if !s.Remove(NameCup) {
		t.Fatal("Remove(cup) = false")
	}
	if s.Dragging(NameCup) {
		t.Error("drag survived removal")
	}
	if s.capture.Held() != 0 || s.Arbiter().Count() != 0 {
		t.Errorf("held=%d arbiter=%d after removal", s.capture.Held(), s.Arbiter().Count())
	}
	if last := rec.dragChanges[len(rec.dragChanges)-1]; last != "cup:end" {
		t.Errorf("last drag change = %q, want cup:end", last)
	}
	if s.PointerMove(ev(pointer.Move, 1, x+10, y)) {
		t.Error("move after removal was applied")
	}

	snap := s.Frame(dt)
	if !snap.Cup.Removed || snap.Particles.Count != 0 || snap.Liquid.Positions != nil {
		t.Error("removed cup still simulated")
	}
	if s.Remove(NameCup) {
		t.Error("second Remove(cup) = true")
	}
}

func TestCancelDragsReleasesEverything(t *testing.T) {
	s, cam, rec := newTestScene(t, DefaultConfig())
	s.Frame(dt)

	cx, cy := screenOf(cam, s.Cup().Position())
	if !s.PointerDown(ev(pointer.Down, 1, cx, cy)) {
		t.Fatal("cup drag refused")
	}
	solver := s.LampSolver()
	bx, by := screenOf(cam, solver.BulbWorld(solver.Pose()))
	if !s.PointerDown(ev(pointer.Down, 2, bx, by)) {
		t.Fatal("head drag refused")
	}
	if s.capture.Held() != 2 || s.Arbiter().Count() != 2 {
		t.Fatalf("held=%d arbiter=%d, want 2 and 2", s.capture.Held(), s.Arbiter().Count())
	}

	cupBefore := s.Cup().Position()
	poseBefore := solver.Pose()
	s.CancelDrags()

	if s.capture.Held() != 0 || s.Arbiter().Count() != 0 {
		t.Errorf("held=%d arbiter=%d after CancelDrags, want 0", s.capture.Held(), s.Arbiter().Count())
	}
	if s.Dragging(NameCup) || s.Dragging(NameLamp) {
		t.Error("sessions survived CancelDrags")
	}
	ended := map[string]bool{}
	for _, c := range rec.dragChanges {
		ended[c] = true
	}
	if !ended["cup:end"] || !ended["lamp:end"] {
		t.Errorf("drag changes = %v, want cup:end and lamp:end", rec.dragChanges)
	}

	if s.PointerMove(ev(pointer.Move, 1, cx+40, cy)) {
		t.Error("cup move after CancelDrags was applied")
	}
	if s.PointerMove(ev(pointer.Move, 2, bx+80, by)) {
		t.Error("head move after CancelDrags was applied")
	}
	if s.Cup().Position() != cupBefore || solver.Pose() != poseBefore {
		t.Error("cancelled sessions still moved their targets")
	}

	n := len(rec.dragChanges)
	s.CancelDrags()
	if len(rec.dragChanges) != n {
		t.Error("second CancelDrags fired callbacks again")
	}
}

func TestRemoveLampMidPose(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	bx, by := screenOf(cam, s.LampSolver().BulbWorld(s.LampSolver().Pose()))
	s.PointerDown(ev(pointer.Down, 2, bx, by))
	s.Remove(NameLamp)
	if s.LampSolver().Dragging() || s.capture.Held() != 0 {
		t.Error("head session survived lamp removal")
	}
}

func TestDragArbitration(t *testing.T) {
	tests := []struct {
		name      string
		exclusive bool
		wantBoth  bool
	}{
		{"concurrent by default", false, true},
		{"exclusive", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ExclusiveDrag = tt.exclusive
			s, cam, _ := newTestScene(t, cfg)

			cx, cy := screenOf(cam, s.Cup().Position())
			dx, dy := screenOf(cam, math.Vec3{X: 0.6, Y: 0.75, Z: -0.3})

			if !s.PointerDown(ev(pointer.Down, 1, cx, cy)) {
				t.Fatal("first drag refused")
			}
			got := s.PointerDown(ev(pointer.Down, 2, dx, dy))
			if got != tt.wantBoth {
				t.Errorf("second PointerDown() = %v, want %v", got, tt.wantBoth)
			}
		})
	}
}

func TestSamePointerCannotStartTwice(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	cx, cy := screenOf(cam, s.Cup().Position())
	dx, dy := screenOf(cam, math.Vec3{X: 0.6, Y: 0.75, Z: -0.3})
	s.PointerDown(ev(pointer.Down, 1, cx, cy))
	if s.PointerDown(ev(pointer.Down, 1, dx, dy)) {
		t.Error("a captured pointer started a second session")
	}
}

func TestNotDraggable(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	s.SetDraggable(NameCup, false)
	x, y := screenOf(cam, s.Cup().Position())
	if s.PointerDown(ev(pointer.Down, 1, x, y)) {
		t.Error("non-draggable cup started a drag")
	}
}

func TestDeskDragKeepsLampOnDesk(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	from := math.Vec3{X: 0.6, Y: 0.75, Z: -0.3}
	x, y := screenOf(cam, from)
	if !s.PointerDown(ev(pointer.Down, 1, x, y)) {
		t.Fatal("desk drag refused")
	}
	tx, ty := screenOf(cam, math.Vec3{X: 2, Y: 0.75, Z: -0.3})
	s.PointerMove(ev(pointer.Move, 1, tx, ty))
	s.PointerUp(ev(pointer.Up, 1, tx, ty))

	desk := s.Desk().Position()
	if d := desk.LengthXZ(); d > s.Config().Desk.DragRadius+1e-5 {
		t.Errorf("desk dragged %v from the origin, limit %v", d, s.Config().Desk.DragRadius)
	}

	snap := s.Frame(dt)
	lampPos := s.Lamp().Position()
	if !s.lampRect().Contains(lampPos.X, lampPos.Z, -1e-5) {
		t.Errorf("lamp %v left the desk area %v", lampPos, s.lampRect())
	}
	if lampPos.Y != snap.DeskTopY {
		t.Errorf("lamp y = %v, want desk top %v", lampPos.Y, snap.DeskTopY)
	}
	if base := s.LampSolver().HeadWorld(s.LampSolver().Pose()); base.Y <= lampPos.Y {
		t.Error("lamp solver not re-anchored to the lamp base")
	}
}

func TestDeskDragCarriesRestingCup(t *testing.T) {
	s, cam, _ := newTestScene(t, DefaultConfig())
	s.Frame(dt)
	cupBefore := s.Cup().Position()
	deskBefore := s.Desk().Position()

	from := math.Vec3{X: 0.6, Y: 0.75, Z: -0.3}
	x, y := screenOf(cam, from)
	if !s.PointerDown(ev(pointer.Down, 1, x, y)) {
		t.Fatal("desk drag refused")
	}
	tx, ty := screenOf(cam, math.Vec3{X: 0.6, Y: 0.75, Z: 0.2})
	s.PointerMove(ev(pointer.Move, 1, tx, ty))
	s.PointerUp(ev(pointer.Up, 1, tx, ty))

	snap := s.Frame(dt)
	shift := s.Desk().Position().Sub(deskBefore)
	if shift.LengthXZ() < 0.1 {
		t.Fatalf("desk moved only %v", shift)
	}
	got := s.Cup().Position()
	want := math.Vec3{X: cupBefore.X + shift.X, Y: cupBefore.Y, Z: cupBefore.Z + shift.Z}
	if got.Distance(want) > 1e-4 {
		t.Errorf("cup at %v, want carried to %v", got, want)
	}
	if snap.CupState != drop.Resting {
		t.Errorf("CupState = %v, want resting", snap.CupState)
	}

	// a cup already on the floor stays where it fell
	s2, _, _ := newTestScene(t, DefaultConfig())
	off := s2.Cup().Position()
	off.X = 3
	s2.Cup().Apply(entity.Update{Position: &off})
	for i := 0; i < 120; i++ {
		s2.Frame(dt)
	}
	if s2.CupBody().State() != drop.Grounded {
		t.Fatalf("cup off the desk is %v, want grounded", s2.CupBody().State())
	}
	fallen := s2.Cup().Position()
	moved := s2.Desk().Position().Add(math.Vec3{Z: 0.3})
	s2.Desk().Apply(entity.Update{Position: &moved})
	s2.Frame(dt)
	if got := s2.Cup().Position(); got.X != fallen.X || got.Z != fallen.Z {
		t.Errorf("grounded cup moved from %v to %v with the desk", fallen, got)
	}
}

func TestSteamModes(t *testing.T) {
	s, _, _ := newTestScene(t, DefaultConfig())

	snap := s.Frame(dt)
	if snap.Particles.Count != 400 || len(snap.Particles.World) != 1200 {
		t.Errorf("particles: count %d, %d floats", snap.Particles.Count, len(snap.Particles.World))
	}
	if snap.Particles.MaxExcess > 1e-5 {
		t.Errorf("MaxExcess = %v", snap.Particles.MaxExcess)
	}
	if snap.Steam != nil {
		t.Error("steam columns reported in particle mode")
	}

	s.SetSteamMode(SteamColumns)
	snap = s.Frame(dt)
	if len(snap.Steam) != 3 || snap.Particles.World != nil {
		t.Errorf("columns mode: %d columns, particles %v", len(snap.Steam), snap.Particles.World != nil)
	}

	s.SetSteamMode(SteamOff)
	snap = s.Frame(dt)
	if snap.Steam != nil || snap.Particles.World != nil {
		t.Error("steam reported with steam off")
	}
}

func TestParticlesFollowCup(t *testing.T) {
	s, _, _ := newTestScene(t, DefaultConfig())
	snap := s.Frame(dt)
	cup := snap.Cup.Transform.Position
	cfg := s.Config()
	bottom := cup.Y - cfg.Cup.HalfHeight*cfg.Cup.Scale
	topY := bottom + cfg.Particles.Height*cfg.Cup.Scale

	w := snap.Particles.World
	for i := 0; i < len(w); i += 3 {
		if w[i+1] < bottom-1e-5 || w[i+1] > topY+1e-5 {
			t.Fatalf("particle %d at y=%v outside [%v, %v]", i/3, w[i+1], bottom, topY)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _, _ := newTestScene(t, DefaultConfig())
	snap := s.Frame(dt)
	snap.Liquid.Positions[1] = 42
	snap.Particles.World[0] = 42
	again := s.Frame(0)
	if again.Liquid.Positions[1] == 42 || again.Particles.World[0] == 42 {
		t.Error("snapshot shares memory with the scene")
	}
}

func TestGuidesFollowCommittedPositions(t *testing.T) {
	s, _, _ := newTestScene(t, DefaultConfig())
	snap := s.Frame(dt)
	if len(snap.Guides) == 0 {
		t.Fatal("no guides with ShowGuides set")
	}
	cfg := DefaultConfig()
	cfg.ShowGuides = false
	s2, _, _ := newTestScene(t, cfg)
	if g := s2.Frame(dt).Guides; g != nil {
		t.Errorf("guides = %d vertices with ShowGuides unset", len(g))
	}
}

func TestParseSteamMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SteamMode
		wantErr bool
	}{
		{"particles", SteamParticles, false},
		{"Columns", SteamColumns, false},
		{"off", SteamOff, false},
		{"", SteamParticles, false},
		{"smoke", SteamParticles, true},
	}
	for _, tt := range tests {
		got, err := ParseSteamMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseSteamMode(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestNilViewpointIgnoresPointer(t *testing.T) {
	s := New(DefaultConfig(), nil, Callbacks{})
	if s.PointerDown(ev(pointer.Down, 1, 400, 300)) {
		t.Error("PointerDown() without a viewpoint started a session")
	}
	s.Frame(dt)
}
