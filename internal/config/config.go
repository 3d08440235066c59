// Package config handles deskscene configuration loading and management.
package config

import (
	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/pkg/math"
	"github.com/Faultbox/deskscene/pkg/noise"
)

// Config holds all settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Camera      CameraConfig      `yaml:"camera"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Steam       SteamConfig       `yaml:"steam"`
	Liquid      LiquidConfig      `yaml:"liquid"`
	Cup         CupConfig         `yaml:"cup"`
	Desk        DeskConfig        `yaml:"desk"`
	Lamp        LampConfig        `yaml:"lamp"`
	Interaction InteractionConfig `yaml:"interaction"`
	Trace       TraceConfig       `yaml:"trace"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowGuides bool `yaml:"show_guides"`
}

// CameraConfig frames the scene.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	PitchDeg float32 `yaml:"pitch_deg"`
	YawDeg   float32 `yaml:"yaw_deg"`
	CenterY  float32 `yaml:"center_y"`
	FovDeg   float32 `yaml:"fov_deg"`
}

// ParticlesConfig holds the particle fountain and its containment.
type ParticlesConfig struct {
	Count       int     `yaml:"count"`
	Spread      float32 `yaml:"spread"`
	BaseY       float32 `yaml:"base_y"`
	Height      float32 `yaml:"height"`
	SpeedMin    float32 `yaml:"speed_min"`
	SpeedMax    float32 `yaml:"speed_max"`
	RespawnBand float32 `yaml:"respawn_band"`
	SwirlRate   float32 `yaml:"swirl_rate"`
	SwirlAmount float32 `yaml:"swirl_amount"`
	SwirlStep   float32 `yaml:"swirl_step"`
	Seed        int64   `yaml:"seed"`

	RimY             float32 `yaml:"rim_y"`
	BottomRadius     float32 `yaml:"bottom_radius"`
	TopRadius        float32 `yaml:"top_radius"`
	Margin           float32 `yaml:"margin"`
	HandleAngleDeg   float32 `yaml:"handle_angle_deg"`
	SectorReduction  float32 `yaml:"sector_reduction"`
	LobeReduction    float32 `yaml:"lobe_reduction"`
	LobeSharpness    float32 `yaml:"lobe_sharpness"`
	SectorHeightFrac float32 `yaml:"sector_height_frac"`
}

// SteamConfig holds the steam mode and billboard column settings.
type SteamConfig struct {
	Mode           string  `yaml:"mode"` // particles, columns or off
	Columns        int     `yaml:"columns"`
	Spread         float32 `yaml:"spread"`
	Speed          float32 `yaml:"speed"`
	Wobble         float32 `yaml:"wobble"`
	Rise           float32 `yaml:"rise"`
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	IndexFactor    float32 `yaml:"index_factor"`
	NoiseScale     float32 `yaml:"noise_scale"`
	NoiseStrength  float32 `yaml:"noise_strength"`
	AlphaThreshold float32 `yaml:"alpha_threshold"`
	RiseSpeed      float32 `yaml:"rise_speed"`
}

// LiquidConfig holds the liquid mesh and ripple settings.
type LiquidConfig struct {
	Amplitude float32      `yaml:"amplitude"`
	Speed     float32      `yaml:"speed"`
	Waves     []noise.Wave `yaml:"waves"`
	Radius    float32      `yaml:"radius"`
	Dome      float32      `yaml:"dome"`
	Thickness float32      `yaml:"thickness"`
	Rings     int          `yaml:"rings"`
	Segments  int          `yaml:"segments"`
}

// CupConfig holds cup placement and its drop physics.
type CupConfig struct {
	X           float32 `yaml:"x"`
	Z           float32 `yaml:"z"`
	Scale       float32 `yaml:"scale"`
	HalfHeight  float32 `yaml:"half_height"`
	LiquidLevel float32 `yaml:"liquid_level"`
	BoundRadius float32 `yaml:"bound_radius"`
	SpinSpeed   float32 `yaml:"spin_speed"`
	Draggable   bool    `yaml:"draggable"`
	Physics     bool    `yaml:"physics"`
	Gravity     float32 `yaml:"gravity"`
	EdgeMargin  float32 `yaml:"edge_margin"`
	FloorY      float32 `yaml:"floor_y"`
	Clearance   float32 `yaml:"clearance"`
}

// DeskConfig holds the desk placement.
type DeskConfig struct {
	X          float32 `yaml:"x"`
	Z          float32 `yaml:"z"`
	TopY       float32 `yaml:"top_y"`
	Width      float32 `yaml:"width"`
	Depth      float32 `yaml:"depth"`
	Thickness  float32 `yaml:"thickness"`
	DragRadius float32 `yaml:"drag_radius"`
	Draggable  bool    `yaml:"draggable"`
}

// LampConfig holds the lamp placement and head limits.
type LampConfig struct {
	X           float32 `yaml:"x"`
	Z           float32 `yaml:"z"`
	YawDeg      float32 `yaml:"yaw_deg"`
	EdgeMargin  float32 `yaml:"edge_margin"`
	HeadRadius  float32 `yaml:"head_radius"`
	Draggable   bool    `yaml:"draggable"`
	YawMinDeg   float32 `yaml:"yaw_min_deg"`
	YawMaxDeg   float32 `yaml:"yaw_max_deg"`
	PitchMinDeg float32 `yaml:"pitch_min_deg"`
	PitchMaxDeg float32 `yaml:"pitch_max_deg"`
	BulbRadius  float32 `yaml:"bulb_radius"`
	TubeRadius  float32 `yaml:"tube_radius"`
	Margin      float32 `yaml:"margin"`
	Samples     int     `yaml:"samples"`
}

// InteractionConfig holds pointer interaction settings.
type InteractionConfig struct {
	ExclusiveDrag bool `yaml:"exclusive_drag"`
}

// TraceConfig holds the frame trace settings.
type TraceConfig struct {
	Dir    string `yaml:"dir"`    // empty disables tracing
	Every  int    `yaml:"every"`  // record every Nth frame
	Frames int    `yaml:"frames"` // headless run length
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // log file encoding: console or json
	LogFile string `yaml:"log_file"`
}

// LoggerOptions converts the logging section for logger.Setup.
func (l LoggingConfig) LoggerOptions(console bool) logger.Options {
	opts := logger.Options{Level: l.Level, Format: l.Format, Console: console}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
	}
	return opts
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cfg := &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ShowGuides: true,
		},
		Camera: CameraConfig{
			Distance: 3.2,
			PitchDeg: 26,
			YawDeg:   34,
			CenterY:  0.9,
			FovDeg:   40,
		},
		Trace: TraceConfig{
			Every:  1,
			Frames: 600,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
	cfg.fromScene(scene.DefaultConfig())
	return cfg
}

// fromScene copies the simulation sections from a scene configuration.
func (c *Config) fromScene(sc scene.Config) {
	p := sc.Particles
	c.Particles = ParticlesConfig{
		Count:            p.Count,
		Spread:           p.Spread,
		BaseY:            p.BaseY,
		Height:           p.Height,
		SpeedMin:         p.SpeedMin,
		SpeedMax:         p.SpeedMax,
		RespawnBand:      p.RespawnBand,
		SwirlRate:        p.SwirlRate,
		SwirlAmount:      p.SwirlAmount,
		SwirlStep:        p.SwirlStep,
		Seed:             p.Seed,
		RimY:             p.Containment.RimY,
		BottomRadius:     p.Containment.BottomRadius,
		TopRadius:        p.Containment.TopRadius,
		Margin:           p.Containment.Margin,
		HandleAngleDeg:   math.Degrees(p.Containment.HandleAngle),
		SectorReduction:  p.Containment.SectorReduction,
		LobeReduction:    p.Containment.LobeReduction,
		LobeSharpness:    p.Containment.LobeSharpness,
		SectorHeightFrac: p.Containment.SectorHeightFrac,
	}

	st := sc.Steam
	c.Steam = SteamConfig{
		Mode:           sc.SteamMode.String(),
		Columns:        st.Columns,
		Spread:         st.Spread,
		Speed:          st.Speed,
		Wobble:         st.Wobble,
		Rise:           st.Rise,
		Width:          st.Width,
		Height:         st.Height,
		IndexFactor:    st.IndexFactor,
		NoiseScale:     st.NoiseScale,
		NoiseStrength:  st.NoiseStrength,
		AlphaThreshold: st.AlphaThreshold,
		RiseSpeed:      st.RiseSpeed,
	}

	c.Liquid = LiquidConfig{
		Amplitude: sc.Liquid.Amplitude,
		Speed:     sc.Liquid.Speed,
		Waves:     append([]noise.Wave(nil), sc.Liquid.Waves...),
		Radius:    sc.LiquidMesh.Radius,
		Dome:      sc.LiquidMesh.Dome,
		Thickness: sc.LiquidMesh.Thickness,
		Rings:     sc.LiquidMesh.Rings,
		Segments:  sc.LiquidMesh.Segments,
	}

	c.Cup = CupConfig{
		X:           sc.Cup.Start.X,
		Z:           sc.Cup.Start.Z,
		Scale:       sc.Cup.Scale,
		HalfHeight:  sc.Cup.HalfHeight,
		LiquidLevel: sc.Cup.LiquidLevel,
		BoundRadius: sc.Cup.BoundRadius,
		SpinSpeed:   sc.Cup.SpinSpeed,
		Draggable:   sc.Cup.Draggable,
		Physics:     sc.Cup.Physics,
		Gravity:     sc.Drop.Gravity,
		EdgeMargin:  sc.Drop.EdgeMargin,
		FloorY:      sc.Drop.FloorY,
		Clearance:   sc.Drop.Clearance,
	}

	c.Desk = DeskConfig{
		X:          sc.Desk.Center.X,
		Z:          sc.Desk.Center.Z,
		TopY:       sc.Desk.Center.Y,
		Width:      sc.Desk.Width,
		Depth:      sc.Desk.Depth,
		Thickness:  sc.Desk.Thickness,
		DragRadius: sc.Desk.DragRadius,
		Draggable:  sc.Desk.Draggable,
	}

	l := sc.Lamp
	c.Lamp = LampConfig{
		X:           l.Start.X,
		Z:           l.Start.Z,
		YawDeg:      math.Degrees(l.Yaw),
		EdgeMargin:  l.EdgeMargin,
		HeadRadius:  l.HeadRadius,
		Draggable:   l.Draggable,
		YawMinDeg:   math.Degrees(l.Limits.YawMin),
		YawMaxDeg:   math.Degrees(l.Limits.YawMax),
		PitchMinDeg: math.Degrees(l.Limits.PitchMin),
		PitchMaxDeg: math.Degrees(l.Limits.PitchMax),
		BulbRadius:  l.Geometry.BulbRadius,
		TubeRadius:  l.Geometry.TubeRadius,
		Margin:      l.Geometry.Margin,
		Samples:     l.Geometry.Samples,
	}

	c.Interaction.ExclusiveDrag = sc.ExclusiveDrag
}

// ToScene converts the simulation sections into a scene configuration.
// An unknown steam mode falls back to particles; Validate reports it.
func (c *Config) ToScene() scene.Config {
	sc := scene.DefaultConfig()

	mode, _ := scene.ParseSteamMode(c.Steam.Mode)
	sc.SteamMode = mode
	sc.ExclusiveDrag = c.Interaction.ExclusiveDrag
	sc.ShowGuides = c.Graphics.ShowGuides

	p := c.Particles
	sc.Particles.Count = p.Count
	sc.Particles.Spread = p.Spread
	sc.Particles.BaseY = p.BaseY
	sc.Particles.Height = p.Height
	sc.Particles.SpeedMin = p.SpeedMin
	sc.Particles.SpeedMax = p.SpeedMax
	sc.Particles.RespawnBand = p.RespawnBand
	sc.Particles.SwirlRate = p.SwirlRate
	sc.Particles.SwirlAmount = p.SwirlAmount
	sc.Particles.SwirlStep = p.SwirlStep
	sc.Particles.Seed = p.Seed
	sc.Particles.Containment.RimY = p.RimY
	sc.Particles.Containment.BottomRadius = p.BottomRadius
	sc.Particles.Containment.TopRadius = p.TopRadius
	sc.Particles.Containment.Margin = p.Margin
	sc.Particles.Containment.HandleAngle = math.Radians(p.HandleAngleDeg)
	sc.Particles.Containment.SectorReduction = p.SectorReduction
	sc.Particles.Containment.LobeReduction = p.LobeReduction
	sc.Particles.Containment.LobeSharpness = p.LobeSharpness
	sc.Particles.Containment.SectorHeightFrac = p.SectorHeightFrac

	st := c.Steam
	sc.Steam.Columns = st.Columns
	sc.Steam.Spread = st.Spread
	sc.Steam.Speed = st.Speed
	sc.Steam.Wobble = st.Wobble
	sc.Steam.Rise = st.Rise
	sc.Steam.Width = st.Width
	sc.Steam.Height = st.Height
	sc.Steam.IndexFactor = st.IndexFactor
	sc.Steam.NoiseScale = st.NoiseScale
	sc.Steam.NoiseStrength = st.NoiseStrength
	sc.Steam.AlphaThreshold = st.AlphaThreshold
	sc.Steam.RiseSpeed = st.RiseSpeed

	sc.Liquid.Amplitude = c.Liquid.Amplitude
	sc.Liquid.Speed = c.Liquid.Speed
	if len(c.Liquid.Waves) > 0 {
		sc.Liquid.Waves = append([]noise.Wave(nil), c.Liquid.Waves...)
	}
	sc.LiquidMesh.Radius = c.Liquid.Radius
	sc.LiquidMesh.Dome = c.Liquid.Dome
	sc.LiquidMesh.Thickness = c.Liquid.Thickness
	sc.LiquidMesh.Rings = c.Liquid.Rings
	sc.LiquidMesh.Segments = c.Liquid.Segments

	sc.Cup.Start = math.Vec3{X: c.Cup.X, Z: c.Cup.Z}
	sc.Cup.Scale = c.Cup.Scale
	sc.Cup.HalfHeight = c.Cup.HalfHeight
	sc.Cup.LiquidLevel = c.Cup.LiquidLevel
	sc.Cup.BoundRadius = c.Cup.BoundRadius
	sc.Cup.SpinSpeed = c.Cup.SpinSpeed
	sc.Cup.Draggable = c.Cup.Draggable
	sc.Cup.Physics = c.Cup.Physics
	sc.Drop.Gravity = c.Cup.Gravity
	sc.Drop.EdgeMargin = c.Cup.EdgeMargin
	sc.Drop.FloorY = c.Cup.FloorY
	sc.Drop.Clearance = c.Cup.Clearance

	sc.Desk.Center = math.Vec3{X: c.Desk.X, Y: c.Desk.TopY, Z: c.Desk.Z}
	sc.Desk.Width = c.Desk.Width
	sc.Desk.Depth = c.Desk.Depth
	sc.Desk.Thickness = c.Desk.Thickness
	sc.Desk.DragRadius = c.Desk.DragRadius
	sc.Desk.Draggable = c.Desk.Draggable

	l := c.Lamp
	sc.Lamp.Start = math.Vec3{X: l.X, Z: l.Z}
	sc.Lamp.Yaw = math.Radians(l.YawDeg)
	sc.Lamp.EdgeMargin = l.EdgeMargin
	sc.Lamp.HeadRadius = l.HeadRadius
	sc.Lamp.Draggable = l.Draggable
	sc.Lamp.Limits.YawMin = math.Radians(l.YawMinDeg)
	sc.Lamp.Limits.YawMax = math.Radians(l.YawMaxDeg)
	sc.Lamp.Limits.PitchMin = math.Radians(l.PitchMinDeg)
	sc.Lamp.Limits.PitchMax = math.Radians(l.PitchMaxDeg)
	sc.Lamp.Geometry.BulbRadius = l.BulbRadius
	sc.Lamp.Geometry.TubeRadius = l.TubeRadius
	sc.Lamp.Geometry.Margin = l.Margin
	sc.Lamp.Geometry.Samples = l.Samples

	return sc
}

// NewCamera returns an orbit camera framed by the camera section.
func (c *Config) NewCamera(width, height int) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera(width, height)
	cam.Distance = math.Clamp(c.Camera.Distance, cam.MinDistance, cam.MaxDistance)
	cam.RotationX = math.Clamp(math.Radians(c.Camera.PitchDeg), cam.MinPitch, cam.MaxPitch)
	cam.RotationY = math.Radians(c.Camera.YawDeg)
	cam.CenterY = c.Camera.CenterY
	cam.FovY = math.Radians(c.Camera.FovDeg)
	return cam
}
