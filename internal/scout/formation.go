package scout

import (
	"math"
)

// FormationType labels the spatial shape of the defensive unit.
type FormationType string

const (
	FormationManToMan FormationType = "Man-to-Man"
	FormationZone23   FormationType = "2-3 Zone"
	FormationZone131  FormationType = "1-3-1 Zone"
	FormationZone32   FormationType = "3-2 Zone"
	FormationZone122  FormationType = "1-2-2 Zone"
	FormationMixed    FormationType = "Mixed Defense"
	FormationUnknown  FormationType = "Unknown"
)

// IsZone reports whether the label is one of the zone shapes.
func (f FormationType) IsZone() bool {
	switch f {
	case FormationZone23, FormationZone131, FormationZone32, FormationZone122:
		return true
	}
	return false
}

// DefensiveLine buckets where on the court the defense picked up.
type DefensiveLine string

const (
	LineFullCourt         DefensiveLine = "Full Court"
	LineThreeQuarterCourt DefensiveLine = "3/4 Court"
	LineHalfCourt         DefensiveLine = "Half Court"
	LinePaint             DefensiveLine = "Paint"
	LineUnknown           DefensiveLine = "Unknown"
)

// PressureLevel grades how aggressively the defense contests.
type PressureLevel string

const (
	PressureHigh   PressureLevel = "High"
	PressureMedium PressureLevel = "Medium"
	PressureLow    PressureLevel = "Low"
)

// FormationSnapshot is one frame's formation classification.
type FormationSnapshot struct {
	FrameIndex int
	Formation  FormationType
	Spacing    float64 // Average pairwise defender distance, pixels
	Line       DefensiveLine
	Pressure   PressureLevel

	AvgStanceQuality float64

	// Raw clustering output, kept for subtype analysis.
	ClusterCenters []Point
	ClusterCounts  []int
	Assignments    []int
	Positions      []Point // Defender anchor positions, frame order
}

// neutralFormation is the degraded snapshot for frames that cannot be
// clustered.
func neutralFormation(frameIndex int) FormationSnapshot {
	return FormationSnapshot{
		FrameIndex: frameIndex,
		Formation:  FormationUnknown,
		Line:       LineUnknown,
		Pressure:   PressureLow,
	}
}

// FormationAnalyzer classifies the defensive shape of a single frame.
type FormationAnalyzer struct {
	Config   FormationConfig
	Geometry CourtGeometry
}

// NewFormationAnalyzer creates an analyzer with the given thresholds.
func NewFormationAnalyzer(cfg FormationConfig, geom CourtGeometry) *FormationAnalyzer {
	return &FormationAnalyzer{Config: cfg, Geometry: geom}
}

// Analyze clusters the defenders of one frame into a formation shape.
// stanceQuality maps defender IDs to their stance score for the frame and
// may be sparse. Fewer than MinDefenders yields the Unknown snapshot.
func (fa *FormationAnalyzer) Analyze(frameIndex int, defenders []PlayerObservation, stanceQuality map[int64]int, cal *CourtCalibration) FormationSnapshot {
	if len(defenders) < fa.Config.MinDefenders {
		return neutralFormation(frameIndex)
	}

	positions := make([]Point, len(defenders))
	for i := range defenders {
		positions[i] = defenders[i].Position()
	}

	k := fa.Config.MaxClusters
	if len(positions) < k {
		k = len(positions)
	}
	centers, assignments := kmeans(positions, k, fa.Config.MaxIterations)

	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}

	snap := FormationSnapshot{
		FrameIndex:     frameIndex,
		Formation:      classifyClusters(counts, len(positions)),
		Spacing:        averagePairwiseDistance(positions),
		ClusterCenters: centers,
		ClusterCounts:  counts,
		Assignments:    assignments,
		Positions:      positions,
	}

	var stanceSum float64
	for _, d := range defenders {
		stanceSum += float64(stanceQuality[d.PlayerID])
	}
	snap.AvgStanceQuality = stanceSum / float64(len(defenders))

	snap.Line = fa.defensiveLine(positions, cal)
	snap.Pressure = fa.pressureLevel(snap.Spacing, snap.AvgStanceQuality)
	return snap
}

// classifyClusters maps the cluster-size distribution onto a formation
// label.
func classifyClusters(counts []int, players int) FormationType {
	k := len(counts)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	switch {
	case k == 1 || maxCount >= players-1:
		// One dominant cluster: everyone collapsed onto their own man.
		return FormationManToMan
	case k == 2:
		if abs(counts[0]-counts[1]) <= 1 {
			return FormationZone23
		}
		return FormationZone131
	case k == 3:
		if maxCount <= 2 {
			return FormationZone32
		}
		return FormationZone122
	}
	return FormationMixed
}

// defensiveLine buckets the average vertical court position. The pickup
// point is judged in court feet when a calibration exists; without one the
// frame cannot place the defense and the bucket is Unknown.
func (fa *FormationAnalyzer) defensiveLine(positions []Point, cal *CourtCalibration) DefensiveLine {
	if cal == nil {
		return LineUnknown
	}
	var sumY float64
	for _, p := range positions {
		sumY += cal.ImageToCourt(p).Y
	}
	avgY := sumY / float64(len(positions))

	length := fa.Geometry.Length
	switch {
	case avgY >= length*0.75:
		return LineFullCourt
	case avgY >= length*0.5:
		return LineThreeQuarterCourt
	case avgY >= length*0.25:
		return LineHalfCourt
	}
	return LinePaint
}

// pressureLevel grades contest intensity from spacing and stance quality.
func (fa *FormationAnalyzer) pressureLevel(spacing, avgStance float64) PressureLevel {
	cfg := fa.Config
	switch {
	case spacing < cfg.TightSpacingPx && avgStance > cfg.HighPressureMin:
		return PressureHigh
	case spacing < cfg.MediumSpacingPx && avgStance > cfg.MediumPressureMin:
		return PressureMedium
	}
	return PressureLow
}

// averagePairwiseDistance computes mean inter-defender spacing.
func averagePairwiseDistance(positions []Point) float64 {
	n := len(positions)
	if n < 2 {
		return 0
	}
	var sum float64
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += positions[i].DistanceTo(positions[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}

// kmeans clusters 2D positions into k groups with Lloyd's algorithm.
// Centroids seed deterministically from evenly-spaced input points so the
// same frame always clusters the same way. Empty clusters are re-seeded on
// the farthest point from its centroid.
func kmeans(positions []Point, k, maxIterations int) (centers []Point, assignments []int) {
	n := len(positions)
	if k <= 0 || n == 0 {
		return nil, nil
	}
	if k > n {
		k = n
	}

	centers = make([]Point, k)
	for i := 0; i < k; i++ {
		centers[i] = positions[i*n/k]
	}
	assignments = make([]int, n)

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range positions {
			best := 0
			bestDist := math.Inf(1)
			for c, center := range centers {
				if d := p.DistanceTo(center); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		sums := make([]Point, k)
		counts := make([]int, k)
		for i, p := range positions {
			a := assignments[i]
			sums[a].X += p.X
			sums[a].Y += p.Y
			counts[a]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				centers[c] = farthestPoint(positions, assignments, centers)
				changed = true
				continue
			}
			centers[c] = Point{X: sums[c].X / float64(counts[c]), Y: sums[c].Y / float64(counts[c])}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return centers, assignments
}

// farthestPoint returns the position farthest from its assigned centroid,
// used to re-seed an empty cluster.
func farthestPoint(positions []Point, assignments []int, centers []Point) Point {
	best := positions[0]
	bestDist := -1.0
	for i, p := range positions {
		d := p.DistanceTo(centers[assignments[i]])
		if d > bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
