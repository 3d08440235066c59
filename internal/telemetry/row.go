// Package telemetry records per-frame scene traces as CSV for offline analysis.
package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/deskscene/internal/scene"
)

// FrameRow is one traced frame.
type FrameRow struct {
	Frame     int     `csv:"frame"`
	Elapsed   float32 `csv:"elapsed"`
	SteamMode string  `csv:"steam_mode"`

	Particles int     `csv:"particles"`
	MinY      float64 `csv:"min_y"` // world space
	MeanY     float64 `csv:"mean_y"`
	MaxY      float64 `csv:"max_y"`
	MaxExcess float32 `csv:"max_excess"`
	Respawns  int     `csv:"respawns"`

	CupX     float32 `csv:"cup_x"`
	CupY     float32 `csv:"cup_y"`
	CupZ     float32 `csv:"cup_z"`
	CupState string  `csv:"cup_state"`

	LampYaw       float32 `csv:"lamp_yaw"`
	LampPitch     float32 `csv:"lamp_pitch"`
	LampClearance float32 `csv:"lamp_clearance"`

	CupDragging  bool `csv:"cup_dragging"`
	DeskDragging bool `csv:"desk_dragging"`
	LampDragging bool `csv:"lamp_dragging"`
}

// NewFrameRow flattens a snapshot into a trace row.
func NewFrameRow(s scene.Snapshot) FrameRow {
	cup := s.Cup.Transform.Position
	row := FrameRow{
		Frame:     s.Frame,
		Elapsed:   s.Elapsed,
		SteamMode: s.SteamMode.String(),

		Particles: s.Particles.Count,
		MaxExcess: s.Particles.MaxExcess,
		Respawns:  s.Particles.Respawns,

		CupX:     cup.X,
		CupY:     cup.Y,
		CupZ:     cup.Z,
		CupState: s.CupState.String(),

		LampYaw:       s.LampPose.Pose.ArmYaw,
		LampPitch:     s.LampPose.Pose.HeadPitch,
		LampClearance: s.LampPose.Clearance,

		CupDragging:  s.Cup.Dragging,
		DeskDragging: s.Desk.Dragging,
		LampDragging: s.Lamp.Dragging || s.LampPose.Posing,
	}

	ys := heights(s.Particles.World)
	if len(ys) > 0 {
		row.MinY = floats.Min(ys)
		row.MeanY = stat.Mean(ys, nil)
		row.MaxY = floats.Max(ys)
	}
	return row
}

// heights extracts the y components of packed x,y,z triples.
func heights(world []float32) []float64 {
	n := len(world) / 3
	if n == 0 {
		return nil
	}
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = float64(world[i*3+1])
	}
	return ys
}
