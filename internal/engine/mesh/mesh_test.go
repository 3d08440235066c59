package mesh

import (
	"testing"

	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/engine/guides"
	"github.com/Faultbox/deskscene/internal/engine/picking"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/pkg/math"
)

func inside(v guides.Vertex, b picking.AABB) bool {
	const eps = 1e-5
	return v.X >= b.Min.X-eps && v.X <= b.Max.X+eps &&
		v.Y >= b.Min.Y-eps && v.Y <= b.Max.Y+eps &&
		v.Z >= b.Min.Z-eps && v.Z <= b.Max.Z+eps
}

func TestSolidBox(t *testing.T) {
	b := picking.NewAABB(math.Vec3{X: -1, Y: 0, Z: -2}, math.Vec3{X: 1, Y: 0.5, Z: 2})
	verts := NewBuilder().SolidBox(b, ColorCup)
	if len(verts) != BoxVertexCount {
		t.Fatalf("len(SolidBox()) = %d, want %d", len(verts), BoxVertexCount)
	}
	for i, v := range verts {
		if !inside(v, b) {
			t.Errorf("vertex %d = %+v outside box", i, v)
		}
	}
}

func TestShadeDarkensAwayFromLight(t *testing.T) {
	m := NewBuilder()
	up := m.Shade(ColorCup, math.Vec3{}, math.Vec3{Y: 1})
	down := m.Shade(ColorCup, math.Vec3{}, math.Vec3{Y: -1})
	if down[0] >= up[0] {
		t.Errorf("Shade(down) = %v, want darker than Shade(up) = %v", down, up)
	}
	for i := range up {
		if up[i] > ColorCup[i] || down[i] < 0 {
			t.Errorf("Shade channel %d out of range: up %v down %v", i, up[i], down[i])
		}
	}
}

func TestWoodTop(t *testing.T) {
	r := math.RectAround(0, 0, 1.6, 0.8)
	verts := NewBuilder().WoodTop(r, 0.75, 8)
	if len(verts) != 8*8*6 {
		t.Fatalf("len(NewBuilder().WoodTop()) = %d, want %d", len(verts), 8*8*6)
	}
	varied := false
	for _, v := range verts {
		if v.Y != 0.75 || !r.Contains(v.X, v.Z, -1e-5) {
			t.Errorf("vertex %+v off the desk top", v)
		}
		if v.R > ColorWoodLight[0] || v.R < 0 {
			t.Errorf("vertex red %v outside wood palette", v.R)
		}
		if v.R != verts[0].R {
			varied = true
		}
	}
	if !varied {
		t.Error("WoodTop colors are uniform, want grain")
	}
}

func TestFrustum(t *testing.T) {
	model := math.Translate(1, 2, 3)
	verts := NewBuilder().Frustum(model, 0.3, 0.5, 1, 12, ColorCup)
	if len(verts) != 12*9 {
		t.Fatalf("len(NewBuilder().Frustum()) = %d, want %d", len(verts), 12*9)
	}
	for _, v := range verts {
		dx, dz := v.X-1, v.Z-3
		r := math.Sqrt(dx*dx + dz*dz)
		if r > 0.5+1e-5 || v.Y < 2-1e-5 || v.Y > 3+1e-5 {
			t.Errorf("vertex %+v outside frustum", v)
		}
	}
}

func TestTube(t *testing.T) {
	if got := NewBuilder().Tube([]math.Vec3{{}}, 0.1, 6, ColorLamp); got != nil {
		t.Errorf("NewBuilder().Tube(one point) = %d vertices, want nil", len(got))
	}

	pts := []math.Vec3{{}, {Y: 1}, {Y: 1}, {X: 1, Y: 1}}
	verts := NewBuilder().Tube(pts, 0.1, 6, ColorLamp)
	// the repeated point is skipped
	if len(verts) != 2*6*6 {
		t.Fatalf("len(NewBuilder().Tube()) = %d, want %d", len(verts), 2*6*6)
	}
	for _, v := range verts[:6*6] {
		if r := math.Sqrt(v.X*v.X + v.Z*v.Z); math.Abs(r-0.1) > 1e-5 {
			t.Errorf("vertical segment vertex at radius %v, want 0.1", r)
		}
	}
}

func TestConeAndSphere(t *testing.T) {
	cone := NewBuilder().Cone(math.Identity(), 0.2, 0.5, 8, ColorShade)
	if len(cone) != 8*3 {
		t.Fatalf("len(NewBuilder().Cone()) = %d, want 24", len(cone))
	}
	if cone[0].X != 0 || cone[0].Y != 0 || cone[0].Z != 0 {
		t.Errorf("cone apex = %+v, want origin", cone[0])
	}

	c := math.Vec3{X: 1, Y: 1, Z: 1}
	for _, v := range NewBuilder().Sphere(c, 0.5, 4, 6, ColorBulb) {
		d := math.Vec3{X: v.X, Y: v.Y, Z: v.Z}.Distance(c)
		if math.Abs(d-0.5) > 1e-5 {
			t.Errorf("sphere vertex at distance %v, want 0.5", d)
		}
	}
}

func TestSolidsFollowSnapshot(t *testing.T) {
	cfg := scene.DefaultConfig()
	s := scene.New(cfg, camera.NewOrbitCamera(800, 600), scene.Callbacks{})
	snap := s.Frame(1.0 / 60)

	all := Solids(snap, cfg)
	if len(all) == 0 {
		t.Fatal("Solids() returned nothing")
	}

	cup := NewBuilder().Cup(snap.Cup.Matrix, cfg)
	box := snap.Cup.Bounds
	box.Min.X -= 0.1 // handle sticks out
	box.Max.X += 0.1
	box.Min.Z -= 0.1
	box.Max.Z += 0.1
	for _, v := range cup {
		if !inside(v, box) {
			t.Fatalf("cup vertex %+v outside padded cup bounds %+v", v, box)
		}
	}

	s.Remove(scene.NameCup)
	snap = s.Frame(1.0 / 60)
	if got := len(Solids(snap, cfg)); got >= len(all) {
		t.Errorf("Solids() after removing cup = %d vertices, want fewer than %d", got, len(all))
	}
}
