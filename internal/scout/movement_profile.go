package scout

import (
	"math"
	"sort"
)

// CourtZone is a coarse region of the half court used for occupancy
// profiling.
type CourtZone string

const (
	CourtZonePaint       CourtZone = "paint"
	CourtZoneLeftCorner  CourtZone = "left_corner"
	CourtZoneRightCorner CourtZone = "right_corner"
	CourtZoneLeftWing    CourtZone = "left_wing"
	CourtZoneRightWing   CourtZone = "right_wing"
	CourtZoneTopOfKey    CourtZone = "top_of_key"
	CourtZoneBackcourt   CourtZone = "backcourt"
)

// MoveDirection is one of eight compass headings in image space.
type MoveDirection string

const (
	DirUp        MoveDirection = "up"
	DirUpRight   MoveDirection = "up_right"
	DirRight     MoveDirection = "right"
	DirDownRight MoveDirection = "down_right"
	DirDown      MoveDirection = "down"
	DirDownLeft  MoveDirection = "down_left"
	DirLeft      MoveDirection = "left"
	DirUpLeft    MoveDirection = "up_left"
)

// MovementProfile summarizes where and how a single player moved over a
// run.
type MovementProfile struct {
	PlayerID int64

	TotalDistance float64 // Court feet when calibrated, else pixels
	AverageSpeed  float64 // Distance per frame step
	Calibrated    bool

	// ZoneOccupancy maps zones to the percentage of samples spent there.
	ZoneOccupancy map[CourtZone]float64

	// DirectionTendency maps headings to the percentage of steps taken
	// in that direction. Stationary steps are excluded.
	DirectionTendency map[MoveDirection]float64
	DominantDirection MoveDirection
}

// zoneBoundaryEps absorbs homography round-trip error so points on a
// zone boundary classify stably.
const zoneBoundaryEps = 1e-6

// ClassifyCourtZone buckets a court position (feet, basket at top edge)
// into a coarse zone.
func ClassifyCourtZone(pos Point, geom CourtGeometry) CourtZone {
	if pos.Y > geom.Length/2+zoneBoundaryEps {
		return CourtZoneBackcourt
	}

	keyHalf := geom.KeyWidth / 2
	centerX := geom.Width / 2
	if pos.Y <= geom.FreeThrowDistance+zoneBoundaryEps && math.Abs(pos.X-centerX) <= keyHalf+zoneBoundaryEps {
		return CourtZonePaint
	}
	if pos.Y <= geom.CornerDepth+zoneBoundaryEps {
		if pos.X <= geom.CornerMargin+zoneBoundaryEps {
			return CourtZoneLeftCorner
		}
		if pos.X >= geom.Width-geom.CornerMargin-zoneBoundaryEps {
			return CourtZoneRightCorner
		}
	}
	if math.Abs(pos.X-centerX) <= keyHalf+zoneBoundaryEps {
		return CourtZoneTopOfKey
	}
	if pos.X < centerX {
		return CourtZoneLeftWing
	}
	return CourtZoneRightWing
}

// classifyDirection buckets a displacement vector into one of eight
// headings. Image coordinates grow downward, so negative dy is "up".
func classifyDirection(dx, dy float64) MoveDirection {
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	switch {
	case angle < 22.5 || angle >= 337.5:
		return DirRight
	case angle < 67.5:
		return DirUpRight
	case angle < 112.5:
		return DirUp
	case angle < 157.5:
		return DirUpLeft
	case angle < 202.5:
		return DirLeft
	case angle < 247.5:
		return DirDownLeft
	case angle < 292.5:
		return DirDown
	default:
		return DirDownRight
	}
}

// minMoveStepPx filters jitter out of direction tallies.
const minMoveStepPx = 2.0

// BuildMovementProfile folds a player's per-frame image positions into
// a MovementProfile. With a calibration, distances and zones use court
// feet; otherwise distance stays in pixels and zone occupancy is empty.
func BuildMovementProfile(playerID int64, track []Point, cal *CourtCalibration) MovementProfile {
	profile := MovementProfile{
		PlayerID:          playerID,
		ZoneOccupancy:     make(map[CourtZone]float64),
		DirectionTendency: make(map[MoveDirection]float64),
	}
	if len(track) == 0 {
		return profile
	}

	// Direction tendency works in image space regardless of
	// calibration.
	dirCounts := make(map[MoveDirection]int)
	moves := 0
	for i := 1; i < len(track); i++ {
		dx := track[i].X - track[i-1].X
		dy := track[i].Y - track[i-1].Y
		if math.Hypot(dx, dy) < minMoveStepPx {
			continue
		}
		dirCounts[classifyDirection(dx, dy)]++
		moves++
	}
	if moves > 0 {
		bestN := 0
		dirs := make([]MoveDirection, 0, len(dirCounts))
		for d := range dirCounts {
			dirs = append(dirs, d)
		}
		sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
		for _, d := range dirs {
			pct := float64(dirCounts[d]) / float64(moves) * 100
			profile.DirectionTendency[d] = round1(pct)
			if dirCounts[d] > bestN {
				bestN = dirCounts[d]
				profile.DominantDirection = d
			}
		}
	}

	if cal == nil {
		var dist float64
		for i := 1; i < len(track); i++ {
			dist += track[i-1].DistanceTo(track[i])
		}
		profile.TotalDistance = round1(dist)
		if len(track) > 1 {
			profile.AverageSpeed = round1(dist / float64(len(track)-1))
		}
		return profile
	}

	profile.Calibrated = true
	court := make([]Point, len(track))
	for i, p := range track {
		court[i] = cal.ImageToCourt(p)
	}

	var dist float64
	for i := 1; i < len(court); i++ {
		dist += court[i-1].DistanceTo(court[i])
	}
	profile.TotalDistance = round1(dist)
	if len(court) > 1 {
		profile.AverageSpeed = round1(dist / float64(len(court)-1))
	}

	zoneCounts := make(map[CourtZone]int)
	for _, p := range court {
		zoneCounts[ClassifyCourtZone(p, cal.Geometry)]++
	}
	zones := make([]CourtZone, 0, len(zoneCounts))
	for z := range zoneCounts {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	for _, z := range zones {
		profile.ZoneOccupancy[z] = round1(float64(zoneCounts[z]) / float64(len(court)) * 100)
	}
	return profile
}
