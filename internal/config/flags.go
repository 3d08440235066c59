package config

import (
	"flag"

	"github.com/Faultbox/deskscene/internal/scene"
)

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed      = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen    = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagSteamMode     = flag.String("steam-mode", "", "Steam rendering: particles, columns or off")
	flagExclusiveDrag = flag.Bool("exclusive-drag", false, "Allow only one object to be dragged at a time")
	flagTraceDir      = flag.String("trace-dir", "", "Directory for frame traces")
	flagFrames        = flag.Int("frames", 0, "Frames to simulate in headless runs")
	flagSeed          = flag.Int64("seed", 0, "Particle random seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowGuides = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSteamMode != "" {
		mode, err := scene.ParseSteamMode(*flagSteamMode)
		if err != nil {
			return err
		}
		cfg.Steam.Mode = mode.String()
	}
	if *flagExclusiveDrag {
		cfg.Interaction.ExclusiveDrag = true
	}
	if *flagTraceDir != "" {
		cfg.Trace.Dir = *flagTraceDir
	}
	if *flagFrames > 0 {
		cfg.Trace.Frames = *flagFrames
	}
	if *flagSeed != 0 {
		cfg.Particles.Seed = *flagSeed
	}
	return nil
}
