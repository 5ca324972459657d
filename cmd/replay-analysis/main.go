// replay-analysis feeds a recorded detection dump through the analysis
// engine and prints the resulting defense profile. Detection dumps are
// JSON arrays of per-frame detections as exported by the upstream
// vision stage.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/farshadalemi/Basketball-Analytics-Application/internal/config"
	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout"
	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout/monitor"
)

// frameRecord mirrors the upstream JSON dump format for one frame.
type frameRecord struct {
	Index       int     `json:"index"`
	TimestampMs float64 `json:"timestamp_ms"`
	Players     []struct {
		ID        int64        `json:"id"`
		Box       [4]float64   `json:"box"` // x1, y1, x2, y2
		Team      string       `json:"team"`
		Jersey    string       `json:"jersey"`
		Keypoints [][3]float64 `json:"keypoints"` // x, y, confidence
	} `json:"players"`
	Ball *struct {
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Radius     float64 `json:"radius"`
		Confidence float64 `json:"confidence"`
	} `json:"ball"`
	Lines [][4]float64 `json:"lines"` // x1, y1, x2, y2
}

func (fr *frameRecord) toFrame() scout.Frame {
	frame := scout.Frame{
		Index:     fr.Index,
		Timestamp: time.Duration(fr.TimestampMs * float64(time.Millisecond)),
	}
	for _, p := range fr.Players {
		obs := scout.PlayerObservation{
			PlayerID:     p.ID,
			BBox:         scout.BBox{X1: p.Box[0], Y1: p.Box[1], X2: p.Box[2], Y2: p.Box[3]},
			JerseyNumber: p.Jersey,
		}
		switch p.Team {
		case "defense":
			obs.Team = scout.TeamDefense
		case "offense":
			obs.Team = scout.TeamOffense
		default:
			obs.Team = scout.TeamUnknown
		}
		for _, kp := range p.Keypoints {
			obs.Keypoints = append(obs.Keypoints, scout.Keypoint{X: kp[0], Y: kp[1], Confidence: kp[2]})
		}
		frame.Players = append(frame.Players, obs)
	}
	if fr.Ball != nil {
		frame.Ball = &scout.BallObservation{
			Position:   scout.Point{X: fr.Ball.X, Y: fr.Ball.Y},
			Radius:     fr.Ball.Radius,
			Confidence: fr.Ball.Confidence,
		}
	}
	for _, l := range fr.Lines {
		frame.Lines = append(frame.Lines, scout.LineSegment{
			P1: scout.Point{X: l[0], Y: l[1]},
			P2: scout.Point{X: l[2], Y: l[3]},
		})
	}
	return frame
}

func main() {
	input := flag.String("input", "", "Path to detection dump (JSON array of frames)")
	optimal := flag.Bool("optimal", false, "Use optimal one-to-one matchup assignment")
	chartOut := flag.String("charts", "", "Directory to write debug charts into (optional)")
	plotDir := flag.String("plots", "", "Base directory for track plot PNGs (optional)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: replay-analysis -input frames.json [-optimal] [-charts dir]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	var records []frameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Fprintf(os.Stderr, "decode input: %v\n", err)
		os.Exit(1)
	}

	var opts []scout.SessionOption
	if *optimal {
		opts = append(opts, scout.WithMatchupAssignor(&scout.OptimalAssignor{Config: cfg.Matchup}))
	}
	session := scout.NewAnalysisSession(*cfg, opts...)

	var tracks *monitor.TrackPlotter
	if *plotDir != "" {
		tracks = monitor.NewTrackPlotter(session.RunID)
		if err := tracks.Start(monitor.MakePlotOutputDir(*plotDir, *input)); err != nil {
			fmt.Fprintf(os.Stderr, "plot dir error: %v\n", err)
			os.Exit(1)
		}
	}

	for i := range records {
		frame := records[i].toFrame()
		if err := session.ProcessFrame(frame); err != nil {
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", records[i].Index, err)
			os.Exit(1)
		}
		if tracks != nil {
			tracks.Sample(frame, session.Calibration())
		}
	}

	profile, err := session.Profile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d frames analysed\n", session.RunID, profile.FramesAnalyzed)
	fmt.Printf("defense: %s (%.1f%% confidence), line %s, pressure %s\n",
		profile.PrimaryFormation, profile.Classification.Confidence, profile.PrimaryLine, profile.DominantPressure)
	fmt.Printf("ratings: overall %.1f formation %.1f matchup %.1f stance %.1f movement %.1f rotation %.1f\n",
		profile.OverallRating, profile.FormationRating, profile.MatchupRating,
		profile.StanceRating, profile.MovementRating, profile.RotationRating)
	if profile.BestDefenderID >= 0 {
		fmt.Printf("best defender: %d (%.1f), weakest: %d (%.1f)\n",
			profile.BestDefenderID, profile.BestDefenderScore, profile.WeakestLinkID, profile.WeakestLinkScore)
	}
	if profile.BestMatchupDefender.PlayerID >= 0 {
		fmt.Printf("matchups: best %d (%.1f), worst %d (%.1f)\n",
			profile.BestMatchupDefender.PlayerID, profile.BestMatchupDefender.Score,
			profile.WorstMatchupDefender.PlayerID, profile.WorstMatchupDefender.Score)
	}
	if profile.BestMover.PlayerID >= 0 {
		fmt.Printf("movement: best %d (%.1f), worst %d (%.1f)\n",
			profile.BestMover.PlayerID, profile.BestMover.Score,
			profile.WorstMover.PlayerID, profile.WorstMover.Score)
	}
	for sub, pct := range profile.Classification.Subtypes {
		fmt.Printf("  subtype %s: %.1f%%\n", sub, pct)
	}

	shots := session.Shots()
	dist := scout.AnalyzeShotDistribution(shots)
	fmt.Printf("shots: %d attempts, %d makes (%.1f%% FG, %.2f pts/shot)\n",
		dist.TotalShots, dist.TotalMakes, dist.FieldGoalPercentage, dist.PointsPerShot)
	for _, s := range shots {
		result := "miss"
		if s.Made {
			result = "make"
		}
		fmt.Printf("  frame %d: %s from %.1f ft (%s, %dpt, conf %.2f)\n",
			s.StartFrame, result, s.Distance, s.Zone.Name(), s.PointValue, s.Confidence)
	}

	if *chartOut != "" {
		if err := writeCharts(*chartOut, session, shots, cfg.Court); err != nil {
			fmt.Fprintf(os.Stderr, "chart error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("charts written to %s\n", *chartOut)
	}

	if tracks != nil {
		file, err := tracks.GeneratePlot(cfg.Court)
		if err != nil {
			fmt.Fprintf(os.Stderr, "track plot error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("track plot written to %s (%d samples)\n", file, tracks.SampleCount())
	}
}

func writeCharts(dir string, session *scout.AnalysisSession, shots []scout.Shot, geom scout.CourtGeometry) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(dir + "/shot_chart.html")
	if err != nil {
		return err
	}
	if err := monitor.RenderShotChart(f, session.RunID, shots, geom); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	f, err = os.Create(dir + "/formations.html")
	if err != nil {
		return err
	}
	if err := monitor.RenderFormationTimeline(f, session.RunID, session.FormationSnapshots()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
