package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout"
)

// TrackPlotter collects per-player positions across a run and writes
// them out as PNG overhead plots afterwards. Sampling is cheap enough
// to run on every frame during clip replay.
type TrackPlotter struct {
	outputDir string
	runID     string

	// tracks holds per-player positions in frame order, court feet.
	tracks map[int64]plotter.XYs

	frameIdx int
}

// NewTrackPlotter creates a plotter for a run.
func NewTrackPlotter(runID string) *TrackPlotter {
	return &TrackPlotter{
		runID:  runID,
		tracks: make(map[int64]plotter.XYs),
	}
}

// Start creates the output directory for this run's plots.
func (tp *TrackPlotter) Start(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tp.outputDir = outputDir
	tp.frameIdx = 0
	tp.tracks = make(map[int64]plotter.XYs)
	return nil
}

// Sample records the calibrated court position of every player in a
// frame. Frames without a calibration are skipped since pixel tracks
// would not overlay on the court outline.
func (tp *TrackPlotter) Sample(frame scout.Frame, cal *scout.CourtCalibration) {
	tp.frameIdx++
	if cal == nil {
		return
	}
	for i := range frame.Players {
		p := &frame.Players[i]
		court := cal.ImageToCourt(p.Position())
		tp.tracks[p.PlayerID] = append(tp.tracks[p.PlayerID], plotter.XY{X: court.X, Y: court.Y})
	}
}

// GeneratePlot writes the overhead track plot and returns its path.
func (tp *TrackPlotter) GeneratePlot(geom scout.CourtGeometry) (string, error) {
	if tp.outputDir == "" {
		return "", fmt.Errorf("no output directory configured")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Player Tracks (run %s)", tp.runID)
	p.X.Label.Text = "X (ft)"
	p.Y.Label.Text = "Y (ft)"
	p.X.Min, p.X.Max = 0, geom.Width
	p.Y.Min, p.Y.Max = 0, geom.Length/2

	ids := make([]int64, 0, len(tp.tracks))
	for id := range tp.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	colors := trackColors(len(ids))
	for i, id := range ids {
		pts := tp.tracks[id]
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("player %d", id), line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	file := filepath.Join(tp.outputDir, fmt.Sprintf("tracks_%s.png", tp.runID))
	if err := p.Save(10*vg.Inch, 10*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save track plot: %w", err)
	}
	return file, nil
}

// SampleCount returns the total positions collected so far.
func (tp *TrackPlotter) SampleCount() int {
	count := 0
	for _, pts := range tp.tracks {
		count += len(pts)
	}
	return count
}

// MakePlotOutputDir builds a timestamped output directory for a clip:
// plots/<clip_basename>/<timestamp>.
func MakePlotOutputDir(baseDir, clipFile string) string {
	ts := time.Now().Format("20060102_150405")
	if clipFile != "" {
		base := filepath.Base(clipFile)
		ext := filepath.Ext(base)
		name := base[:len(base)-len(ext)]
		return filepath.Join(baseDir, name, ts)
	}
	return filepath.Join(baseDir, "run_"+ts)
}

// trackColors spreads hues evenly so adjacent player IDs stay
// distinguishable.
func trackColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
