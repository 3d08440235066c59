package scene

import (
	"fmt"
	"strings"

	"github.com/Faultbox/deskscene/internal/interact/drop"
	"github.com/Faultbox/deskscene/internal/lamp"
	"github.com/Faultbox/deskscene/internal/sim/liquid"
	"github.com/Faultbox/deskscene/internal/sim/particles"
	"github.com/Faultbox/deskscene/internal/sim/steam"
	"github.com/Faultbox/deskscene/pkg/math"
)

// SteamMode selects how steam above the cup is simulated.
type SteamMode int

const (
	SteamParticles SteamMode = iota
	SteamColumns
	SteamOff
)

func (m SteamMode) String() string {
	switch m {
	case SteamParticles:
		return "particles"
	case SteamColumns:
		return "columns"
	case SteamOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseSteamMode parses "particles", "columns" or "off".
func ParseSteamMode(s string) (SteamMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "particles", "":
		return SteamParticles, nil
	case "columns", "billboards":
		return SteamColumns, nil
	case "off", "none":
		return SteamOff, nil
	default:
		return SteamParticles, fmt.Errorf("unknown steam mode %q", s)
	}
}

// DeskConfig places the desk. The entity position is the center of the top.
type DeskConfig struct {
	Center     math.Vec3
	Width      float32
	Depth      float32
	Thickness  float32
	DragRadius float32 // how far the desk may be dragged from the origin
	Draggable  bool
}

// CupConfig places the cup. Sizes are in cup-local units and scaled by Scale.
type CupConfig struct {
	Start       math.Vec3 // XZ start; Y is derived from the desk
	Scale       float32
	HalfHeight  float32
	LiquidLevel float32 // liquid rim height above the cup bottom
	BoundRadius float32 // drag limit around the desk center, 0 for none
	SpinSpeed   float32
	Draggable   bool
	Physics     bool
}

// LampConfig places the lamp base on the desk.
type LampConfig struct {
	Start      math.Vec3 // XZ start; Y follows the desk top
	Yaw        float32
	EdgeMargin float32 // keeps the base inside the desk outline
	HeadRadius float32 // pick radius around the bulb
	Draggable  bool
	Geometry   lamp.Geometry
	Limits     lamp.Limits
}

// LiquidMeshConfig shapes the procedural liquid disc (cup-local units).
type LiquidMeshConfig struct {
	Radius    float32
	Dome      float32
	Thickness float32
	Rings     int
	Segments  int
}

// Config is everything needed to compose a scene.
type Config struct {
	SteamMode     SteamMode
	ExclusiveDrag bool
	ShowGuides    bool

	Desk       DeskConfig
	Cup        CupConfig
	Lamp       LampConfig
	Drop       drop.Config
	LiquidMesh LiquidMeshConfig
	Liquid     liquid.Config
	Particles  particles.Config
	Steam      steam.Config
}

// DefaultConfig returns the default desk still-life.
func DefaultConfig() Config {
	d := drop.DefaultConfig()
	d.EdgeMargin = 0.01
	return Config{
		SteamMode:  SteamParticles,
		ShowGuides: true,
		Desk: DeskConfig{
			Center:     math.Vec3{Y: 0.75},
			Width:      1.6,
			Depth:      0.8,
			Thickness:  0.05,
			DragRadius: 0.5,
			Draggable:  true,
		},
		Cup: CupConfig{
			Start:       math.Vec3{X: 0.25, Z: 0.1},
			Scale:       0.25,
			HalfHeight:  0.3,
			LiquidLevel: 0.42,
			BoundRadius: 2,
			Draggable:   true,
			Physics:     true,
		},
		Lamp: LampConfig{
			Start:      math.Vec3{X: -0.5, Z: -0.15},
			Yaw:        math.Radians(30),
			EdgeMargin: 0.08,
			HeadRadius: 0.07,
			Draggable:  true,
			Geometry:   lamp.DefaultGeometry(),
			Limits:     lamp.DefaultLimits(),
		},
		Drop: d,
		LiquidMesh: LiquidMeshConfig{
			Radius:    0.32,
			Dome:      0.012,
			Thickness: 0.04,
			Rings:     8,
			Segments:  32,
		},
		Liquid:    liquid.DefaultConfig(),
		Particles: particles.DefaultConfig(),
		Steam:     steam.DefaultConfig(),
	}
}
