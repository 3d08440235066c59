package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/deskscene/internal/config"
	"github.com/Faultbox/deskscene/internal/scene"
)

// FramesFile is the trace file name inside the output directory.
const FramesFile = "frames.csv"

// Recorder writes frame traces to a directory.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	dir           string
	every         int
	file          *os.File
	headerWritten bool
	rows          []FrameRow
}

// NewRecorder creates the output directory and opens frames.csv.
// Returns nil if dir is empty (tracing disabled).
func NewRecorder(dir string, every int) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if every < 1 {
		every = 1
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, FramesFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", FramesFile, err)
	}

	return &Recorder{dir: dir, every: every, file: f}, nil
}

// Record appends the snapshot if its frame falls on the sampling interval.
func (r *Recorder) Record(s scene.Snapshot) error {
	if r == nil || s.Frame%r.every != 0 {
		return nil
	}

	row := NewFrameRow(s)
	records := []FrameRow{row}

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing frame %d: %w", s.Frame, err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing frame %d: %w", s.Frame, err)
		}
	}

	r.rows = append(r.rows, row)
	return nil
}

// WriteConfig saves the run configuration next to the trace.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.SaveTo(filepath.Join(r.dir, "config.yaml"))
}

// Rows returns a copy of the recorded rows.
func (r *Recorder) Rows() []FrameRow {
	if r == nil {
		return nil
	}
	return append([]FrameRow(nil), r.rows...)
}

// Summary aggregates the recorded rows.
func (r *Recorder) Summary() Summary {
	if r == nil {
		return Summary{}
	}
	return Summarize(r.rows)
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close closes the trace file.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFrames loads a trace written by a Recorder.
func ReadFrames(path string) ([]FrameRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	var rows []FrameRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return rows, nil
}
