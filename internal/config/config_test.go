package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test simulation defaults
	if cfg.Particles.Count != 400 {
		t.Errorf("expected particle count 400, got %d", cfg.Particles.Count)
	}
	if cfg.Particles.Spread != 0.35 {
		t.Errorf("expected spread 0.35, got %f", cfg.Particles.Spread)
	}
	if cfg.Particles.RespawnBand != 0.12 {
		t.Errorf("expected respawn band 0.12, got %f", cfg.Particles.RespawnBand)
	}
	if cfg.Steam.Mode != "particles" {
		t.Errorf("expected steam mode particles, got %s", cfg.Steam.Mode)
	}
	if cfg.Steam.Columns != 3 {
		t.Errorf("expected 3 steam columns, got %d", cfg.Steam.Columns)
	}
	if len(cfg.Liquid.Waves) != 3 {
		t.Errorf("expected 3 ripple waves, got %d", len(cfg.Liquid.Waves))
	}
	if cfg.Interaction.ExclusiveDrag {
		t.Error("expected concurrent drags to be allowed by default")
	}
	if math.Abs(cfg.Lamp.YawMaxDeg-135) > 1e-3 || math.Abs(cfg.Lamp.PitchMinDeg+75) > 1e-3 {
		t.Errorf("expected lamp limits 135/-75, got %f/%f", cfg.Lamp.YawMaxDeg, cfg.Lamp.PitchMinDeg)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestToSceneMatchesSceneDefaults(t *testing.T) {
	got := Default().ToScene()
	want := scene.DefaultConfig()

	if got.SteamMode != want.SteamMode || got.ExclusiveDrag != want.ExclusiveDrag {
		t.Errorf("mode/exclusive = %v/%v, want %v/%v", got.SteamMode, got.ExclusiveDrag, want.SteamMode, want.ExclusiveDrag)
	}
	if !reflect.DeepEqual(got.Particles, want.Particles) {
		t.Errorf("particles = %+v, want %+v", got.Particles, want.Particles)
	}
	if !reflect.DeepEqual(got.Steam, want.Steam) {
		t.Errorf("steam = %+v, want %+v", got.Steam, want.Steam)
	}
	if !reflect.DeepEqual(got.Liquid, want.Liquid) {
		t.Errorf("liquid = %+v, want %+v", got.Liquid, want.Liquid)
	}
	if got.Cup != want.Cup || got.Desk != want.Desk || got.Drop != want.Drop {
		t.Error("cup, desk or drop settings changed in conversion")
	}
	if math.Abs(got.Lamp.Yaw-want.Lamp.Yaw) > 1e-5 ||
		math.Abs(got.Lamp.Limits.PitchMin-want.Lamp.Limits.PitchMin) > 1e-5 {
		t.Errorf("lamp angles = %v/%v, want %v/%v",
			got.Lamp.Yaw, got.Lamp.Limits.PitchMin, want.Lamp.Yaw, want.Lamp.Limits.PitchMin)
	}
}

func TestToSceneOverrides(t *testing.T) {
	cfg := Default()
	cfg.Steam.Mode = "columns"
	cfg.Interaction.ExclusiveDrag = true
	cfg.Particles.Count = 50
	cfg.Particles.HandleAngleDeg = 90
	cfg.Desk.TopY = 0.8

	sc := cfg.ToScene()
	if sc.SteamMode != scene.SteamColumns {
		t.Errorf("steam mode = %v, want columns", sc.SteamMode)
	}
	if !sc.ExclusiveDrag {
		t.Error("exclusive drag not carried over")
	}
	if sc.Particles.Count != 50 {
		t.Errorf("particle count = %d, want 50", sc.Particles.Count)
	}
	if math.Abs(sc.Particles.Containment.HandleAngle-math.Pi/2) > 1e-6 {
		t.Errorf("handle angle = %v, want pi/2", sc.Particles.Containment.HandleAngle)
	}
	if sc.Desk.Center.Y != 0.8 {
		t.Errorf("desk top = %v, want 0.8", sc.Desk.Center.Y)
	}
}

func TestNewCamera(t *testing.T) {
	cfg := Default()
	cfg.Camera.Distance = 100
	cfg.Camera.YawDeg = 90

	cam := cfg.NewCamera(640, 480)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("Distance = %v, want clamped to %v", cam.Distance, cam.MaxDistance)
	}
	if math.Abs(cam.RotationY-math.Pi/2) > 1e-6 {
		t.Errorf("RotationY = %v, want pi/2", cam.RotationY)
	}
	if cam.ViewportW != 640 || cam.ViewportH != 480 {
		t.Errorf("viewport = %vx%v, want 640x480", cam.ViewportW, cam.ViewportH)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

particles:
  count: 250
  spread: 0.3

steam:
  mode: columns
  columns: 4

liquid:
  waves:
    - amplitude: 1
      frequency: 10
      speed: 2
      phase: 0

interaction:
  exclusive_drag: true

logging:
  level: "debug"
  log_file: "deskscene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Particles.Count != 250 {
		t.Errorf("expected particle count 250, got %d", cfg.Particles.Count)
	}
	// untouched keys keep their defaults
	if cfg.Particles.Height != 1.2 {
		t.Errorf("expected default height 1.2, got %f", cfg.Particles.Height)
	}
	if cfg.Steam.Mode != "columns" || cfg.Steam.Columns != 4 {
		t.Errorf("expected 4 columns mode, got %s/%d", cfg.Steam.Mode, cfg.Steam.Columns)
	}
	if len(cfg.Liquid.Waves) != 1 || cfg.Liquid.Waves[0].Frequency != 10 {
		t.Errorf("expected one custom wave, got %+v", cfg.Liquid.Waves)
	}
	if !cfg.Interaction.ExclusiveDrag {
		t.Error("expected exclusive drag to be true")
	}
	if cfg.Logging.LogFile != "deskscene.log" {
		t.Errorf("expected log file 'deskscene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
	if _, err := LoadFile("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected LoadFile error for missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Particles.Count = 123
	cfg.Steam.Mode = "off"
	cfg.Trace.Dir = "traces"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad steam mode", func(c *Config) { c.Steam.Mode = "smoke" }, []string{"steam.mode"}},
		{"inverted speeds", func(c *Config) { c.Particles.SpeedMin = 1; c.Particles.SpeedMax = 0.5 }, []string{"speed range"}},
		{"tiny mesh", func(c *Config) { c.Liquid.Segments = 2 }, []string{"liquid"}},
		{
			"several problems",
			func(c *Config) {
				c.Graphics.Width = 0
				c.Lamp.PitchMinDeg = 40
				c.Trace.Every = 0
				c.Logging.Format = "xml"
			},
			[]string{"window size", "pitch range", "trace.every", "logging.format"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("Validate() = %q, want mention of %q", err, w)
				}
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "steam mode flag",
			setup: func() { *flagSteamMode = "Columns" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Steam.Mode != "columns" {
					t.Errorf("expected steam mode columns, got %s", cfg.Steam.Mode)
				}
			},
			teardown: func() { *flagSteamMode = "" },
		},
		{
			name: "headless flags",
			setup: func() {
				*flagExclusiveDrag = true
				*flagTraceDir = "out"
				*flagFrames = 42
				*flagSeed = 7
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Interaction.ExclusiveDrag {
					t.Error("expected exclusive drag")
				}
				if cfg.Trace.Dir != "out" || cfg.Trace.Frames != 42 {
					t.Errorf("expected trace out/42, got %s/%d", cfg.Trace.Dir, cfg.Trace.Frames)
				}
				if cfg.Particles.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Particles.Seed)
				}
			},
			teardown: func() {
				*flagExclusiveDrag = false
				*flagTraceDir = ""
				*flagFrames = 0
				*flagSeed = 0
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsBadSteamMode(t *testing.T) {
	*flagSteamMode = "smoke"
	defer func() { *flagSteamMode = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for unknown steam mode")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("particles:\n  height: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if err == nil {
		t.Fatal("expected invalid config error")
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Errorf("expected joined validation errors, got %T", err)
	}
}
