// Package main runs the desk scene without a window: scripted drags, fixed
// time steps and an optional CSV trace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/config"
	"github.com/Faultbox/deskscene/internal/headless"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/internal/telemetry"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(cfg.Logging.LoggerOptions(true)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec, err := telemetry.NewRecorder(cfg.Trace.Dir, cfg.Trace.Every)
	if err != nil {
		return err
	}
	defer rec.Close()
	if err := rec.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing run config: %w", err)
	}

	cam := cfg.NewCamera(cfg.Graphics.Width, cfg.Graphics.Height)
	s := scene.New(cfg.ToScene(), cam, scene.Callbacks{
		OnDragChange: func(name string, dragging bool) {
			logger.Debug("drag changed", zap.String("entity", name), zap.Bool("dragging", dragging))
		},
	})

	logger.Info("running headless",
		zap.Int("frames", cfg.Trace.Frames),
		zap.String("trace_dir", rec.Dir()),
		zap.String("steam_mode", cfg.Steam.Mode),
	)

	runner := headless.New(s, cam, rec, headless.DefaultScript())
	last, err := runner.Run(ctx, cfg.Trace.Frames)
	if err != nil {
		return err
	}

	logger.Info("final state",
		zap.Int("frame", last.Frame),
		zap.Stringer("cup_state", last.CupState),
		zap.Float32("lamp_yaw", last.LampPose.Pose.ArmYaw),
		zap.Float32("lamp_pitch", last.LampPose.Pose.HeadPitch),
		zap.Int("gestures", runner.Started()),
	)
	if rec != nil {
		logger.Info("trace summary", rec.Summary().Fields()...)
	}
	return nil
}
