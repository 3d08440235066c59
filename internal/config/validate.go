package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
)

// Validate checks value ranges and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Camera.Distance > 0, "camera.distance %v must be positive", c.Camera.Distance)
	check(c.Camera.FovDeg > 0 && c.Camera.FovDeg < 180, "camera.fov_deg %v out of (0, 180)", c.Camera.FovDeg)

	p := c.Particles
	check(p.Count >= 0, "particles.count %d must not be negative", p.Count)
	check(p.Spread >= 0, "particles.spread %v must not be negative", p.Spread)
	check(p.Height > 0, "particles.height %v must be positive", p.Height)
	check(p.SpeedMin >= 0 && p.SpeedMin <= p.SpeedMax,
		"particles: speed range [%v, %v] invalid", p.SpeedMin, p.SpeedMax)
	check(p.RespawnBand >= 0 && p.RespawnBand <= p.Height,
		"particles.respawn_band %v must be within [0, height]", p.RespawnBand)
	check(p.BottomRadius >= 0 && p.TopRadius >= 0, "particles: containment radii must not be negative")
	check(p.SectorHeightFrac >= 0 && p.SectorHeightFrac <= 1,
		"particles.sector_height_frac %v out of [0, 1]", p.SectorHeightFrac)

	if _, err := scene.ParseSteamMode(c.Steam.Mode); err != nil {
		errs = append(errs, fmt.Errorf("steam.mode: %w", err))
	}
	check(c.Steam.Columns >= 0, "steam.columns %d must not be negative", c.Steam.Columns)
	check(c.Steam.NoiseStrength >= 0 && c.Steam.NoiseStrength <= 1,
		"steam.noise_strength %v out of [0, 1]", c.Steam.NoiseStrength)

	check(c.Liquid.Rings >= 1 && c.Liquid.Segments >= 3,
		"liquid: mesh needs at least 1 ring and 3 segments, got %d/%d", c.Liquid.Rings, c.Liquid.Segments)
	check(c.Liquid.Amplitude >= 0, "liquid.amplitude %v must not be negative", c.Liquid.Amplitude)

	check(c.Cup.Scale > 0, "cup.scale %v must be positive", c.Cup.Scale)
	check(c.Cup.Gravity > 0, "cup.gravity %v must be positive", c.Cup.Gravity)
	check(c.Desk.Width > 0 && c.Desk.Depth > 0, "desk: size %vx%v must be positive", c.Desk.Width, c.Desk.Depth)

	l := c.Lamp
	check(l.YawMinDeg <= l.YawMaxDeg, "lamp: yaw range [%v, %v] inverted", l.YawMinDeg, l.YawMaxDeg)
	check(l.PitchMinDeg <= l.PitchMaxDeg, "lamp: pitch range [%v, %v] inverted", l.PitchMinDeg, l.PitchMaxDeg)
	check(l.Samples >= 2, "lamp.samples %d must be at least 2", l.Samples)

	check(c.Trace.Every >= 1, "trace.every %d must be at least 1", c.Trace.Every)
	check(c.Trace.Frames >= 0, "trace.frames %d must not be negative", c.Trace.Frames)

	f := c.Logging.Format
	check(f == "" || f == logger.FormatConsole || f == logger.FormatJSON, "logging.format %q must be console or json", f)

	return errors.Join(errs...)
}
