package telemetry

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run.
type Summary struct {
	Frames       int
	MeanHeight   float64 // mean of per-frame mean particle y
	PeakHeight   float64
	LowestHeight float64
	MaxExcess    float64
	Respawns     int
	CupTravel    float64 // horizontal path length of the cup
	LampYawSpan  float64
	DraggedRows  int
}

// Summarize computes a Summary over rows.
func Summarize(rows []FrameRow) Summary {
	s := Summary{Frames: len(rows)}
	if len(rows) == 0 {
		return s
	}

	var means, peaks, lows, excess, yaws []float64
	for i, row := range rows {
		if row.Particles > 0 {
			means = append(means, row.MeanY)
			peaks = append(peaks, row.MaxY)
			lows = append(lows, row.MinY)
		}
		excess = append(excess, float64(row.MaxExcess))
		yaws = append(yaws, float64(row.LampYaw))
		if row.CupDragging || row.DeskDragging || row.LampDragging {
			s.DraggedRows++
		}
		if i > 0 {
			prev := rows[i-1]
			dx := float64(row.CupX - prev.CupX)
			dz := float64(row.CupZ - prev.CupZ)
			s.CupTravel += floats.Norm([]float64{dx, dz}, 2)
		}
	}

	if len(means) > 0 {
		s.MeanHeight = stat.Mean(means, nil)
		s.PeakHeight = floats.Max(peaks)
		s.LowestHeight = floats.Min(lows)
	}
	s.MaxExcess = floats.Max(excess)
	s.LampYawSpan = floats.Max(yaws) - floats.Min(yaws)
	s.Respawns = rows[len(rows)-1].Respawns
	return s
}

// Fields returns the summary as structured log fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("frames", s.Frames),
		zap.Float64("mean_height", s.MeanHeight),
		zap.Float64("peak_height", s.PeakHeight),
		zap.Float64("lowest_height", s.LowestHeight),
		zap.Float64("max_excess", s.MaxExcess),
		zap.Int("respawns", s.Respawns),
		zap.Float64("cup_travel", s.CupTravel),
		zap.Float64("lamp_yaw_span", s.LampYawSpan),
		zap.Int("dragged_rows", s.DraggedRows),
	}
}
