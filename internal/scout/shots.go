package scout

import (
	"github.com/google/uuid"
)

// ShotZone labels the court region a shot was attempted from. Zones are
// mutually exclusive and assigned purely from distance and corner position.
type ShotZone string

const (
	ZoneRestrictedArea  ShotZone = "restricted_area"
	ZonePaint           ShotZone = "paint"
	ZoneMidRange        ShotZone = "mid_range"
	ZoneCornerThree     ShotZone = "corner_three"
	ZoneAboveBreakThree ShotZone = "above_break_three"
)

// Name returns the human-readable zone label used in reports.
func (z ShotZone) Name() string {
	switch z {
	case ZoneRestrictedArea:
		return "Restricted Area"
	case ZonePaint:
		return "In The Paint (Non-RA)"
	case ZoneMidRange:
		return "Mid-Range"
	case ZoneCornerThree:
		return "Corner 3"
	case ZoneAboveBreakThree:
		return "Above the Break 3"
	}
	return string(z)
}

// Zone distance bands in feet.
const (
	restrictedAreaMaxFt = 4
	paintMaxFt          = 14
)

// ClassifyShotZone assigns the zone and point value for a shot at the given
// court position and basket distance. It is a pure function of (distance,
// corner position).
func ClassifyShotZone(courtPos Point, distance float64, geom CourtGeometry) (ShotZone, int) {
	switch {
	case distance < restrictedAreaMaxFt:
		return ZoneRestrictedArea, 2
	case distance < paintMaxFt:
		return ZonePaint, 2
	case distance < geom.ThreePointDistance:
		return ZoneMidRange, 2
	}

	isCorner := (courtPos.X < geom.CornerMargin || courtPos.X > geom.Width-geom.CornerMargin) &&
		courtPos.Y > geom.CornerDepth
	if isCorner {
		return ZoneCornerThree, 3
	}
	return ZoneAboveBreakThree, 3
}

// Shot is one detected shot attempt. Created once per detection and
// immutable thereafter.
type Shot struct {
	ID            string
	StartFrame    int // Trajectory start (release region)
	PeakFrame     int // Ball apex
	OutcomeFrame  int // Rim/landing frame
	CourtPosition Point
	Distance      float64 // Feet from basket
	Zone          ShotZone
	PointValue    int
	Made          bool
	Confidence    float64 // [0, 1]
}

// DetectShots scans a clip's ball sample series for shot attempts.
//
// The image-vertical series is smoothed, apexes (local y-minima, since y
// decreases as the ball rises) open candidates when their prominence clears
// the minimum shot height, and the first following valley closes them. A
// candidate survives only when the ball near the valley lies within the
// basket-proximity radius of the calibrated basket point. A cooldown window
// suppresses double counting. With no qualifying candidate the result is
// empty; the detector never fabricates shots.
func DetectShots(samples []BallSample, cal *CourtCalibration, cfg ShotConfig) []Shot {
	if cal == nil || len(samples) < cfg.MinTrajectoryLength {
		return nil
	}

	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Position.Y
	}
	smoothed := savgolSmooth(ys, cfg.SmoothingWindow, cfg.SmoothingOrder)

	// Apexes are minima of y; negate to reuse the maxima finder.
	neg := make([]float64, len(smoothed))
	for i, v := range smoothed {
		neg[i] = -v
	}
	apexes := findPeaks(neg, cfg.MinShotHeight)
	valleys := findPeaks(smoothed, cfg.MinShotHeight)

	basketImg := cal.BasketImagePosition()

	var shots []Shot
	lastShotFrame := -cfg.CooldownFrames
	for _, apexIdx := range apexes {
		apexFrame := samples[apexIdx].FrameIndex
		if apexFrame-lastShotFrame < cfg.CooldownFrames {
			continue
		}

		valleyIdx := firstAfter(valleys, apexIdx)
		if valleyIdx < 0 {
			// No interior valley: the ball may still be descending when the
			// clip ends. Close the candidate at the final sample when the
			// descent since the apex is itself peak-sized.
			last := len(samples) - 1
			if last <= apexIdx || smoothed[last]-smoothed[apexIdx] < cfg.MinShotHeight {
				continue
			}
			valleyIdx = last
		}

		apexPos := samples[apexIdx].Position
		valleyPos := samples[valleyIdx].Position
		if valleyPos.DistanceTo(basketImg) > cfg.BasketProximityPx {
			continue // Trajectory did not end near the rim
		}

		made := shotMade(samples, apexIdx, valleyIdx, basketImg, cfg)

		courtPos := cal.ImageToCourt(apexPos)
		distance := courtPos.DistanceTo(cal.Geometry.Basket())
		zone, points := ClassifyShotZone(courtPos, distance, cal.Geometry)

		shots = append(shots, Shot{
			ID:            uuid.NewString(),
			StartFrame:    trajectoryStart(samples, valleys, apexIdx),
			PeakFrame:     apexFrame,
			OutcomeFrame:  samples[valleyIdx].FrameIndex,
			CourtPosition: courtPos,
			Distance:      distance,
			Zone:          zone,
			PointValue:    points,
			Made:          made,
			Confidence:    shotConfidence(samples, apexIdx, valleyIdx, cal),
		})
		lastShotFrame = apexFrame
	}
	return shots
}

// firstAfter returns the first index in sorted that is greater than idx, or
// -1 when none exists.
func firstAfter(sorted []int, idx int) int {
	for _, v := range sorted {
		if v > idx {
			return v
		}
	}
	return -1
}

// trajectoryStart finds the frame where the shot trajectory began: the last
// valley before the apex, else the first sample.
func trajectoryStart(samples []BallSample, valleys []int, apexIdx int) int {
	start := samples[0].FrameIndex
	for _, v := range valleys {
		if v >= apexIdx {
			break
		}
		start = samples[v].FrameIndex
	}
	return start
}

// shotMade decides the outcome: the ball must end within the basket radius
// (checked by the caller) and keep descending past the basket point.
// Descent is accepted either as a sufficient apex-to-valley drop or as
// continued downward motion in the follow-through frames after the valley.
func shotMade(samples []BallSample, apexIdx, valleyIdx int, basketImg Point, cfg ShotConfig) bool {
	drop := samples[valleyIdx].Position.Y - samples[apexIdx].Position.Y
	if drop >= cfg.MinDescentPx {
		return true
	}

	valleyFrame := samples[valleyIdx].FrameIndex
	for i := valleyIdx + 1; i < len(samples); i++ {
		if samples[i].FrameIndex > valleyFrame+cfg.FollowThroughFrames {
			break
		}
		if samples[i].Position.Y > basketImg.Y {
			return true
		}
	}
	return false
}

// shotConfidence scores how trustworthy a detection is. Real calibrations
// and fully-detected trajectories earn boosts; default calibrations and
// predicted samples do not.
func shotConfidence(samples []BallSample, apexIdx, valleyIdx int, cal *CourtCalibration) float64 {
	conf := 0.5
	if !cal.IsDefault {
		conf += 0.2
	}

	predicted := 0
	for i := apexIdx; i <= valleyIdx; i++ {
		if samples[i].Predicted {
			predicted++
		}
	}
	if predicted == 0 {
		conf += 0.2
	} else if predicted <= (valleyIdx-apexIdx+1)/4 {
		conf += 0.1
	}

	if valleyIdx-apexIdx >= 3 {
		conf += 0.1
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// ZoneStats aggregates attempts from one court zone.
type ZoneStats struct {
	Attempts      int
	Makes         int
	Points        int
	Percentage    float64 // Field goal percentage within the zone
	PointsPerShot float64
}

// ShotDistribution summarises shooting efficiency over a clip.
type ShotDistribution struct {
	TotalShots          int
	TotalMakes          int
	TotalPoints         int
	FieldGoalPercentage float64
	PointsPerShot       float64
	Zones               map[ShotZone]ZoneStats
}

// AnalyzeShotDistribution reduces a shot list into per-zone efficiency
// stats. An empty shot list yields zeroed totals and an empty zone map.
func AnalyzeShotDistribution(shots []Shot) ShotDistribution {
	dist := ShotDistribution{Zones: make(map[ShotZone]ZoneStats)}
	for _, s := range shots {
		dist.TotalShots++
		zs := dist.Zones[s.Zone]
		zs.Attempts++
		if s.Made {
			dist.TotalMakes++
			dist.TotalPoints += s.PointValue
			zs.Makes++
			zs.Points += s.PointValue
		}
		dist.Zones[s.Zone] = zs
	}

	if dist.TotalShots > 0 {
		dist.FieldGoalPercentage = float64(dist.TotalMakes) / float64(dist.TotalShots) * 100
		dist.PointsPerShot = float64(dist.TotalPoints) / float64(dist.TotalShots)
	}
	for zone, zs := range dist.Zones {
		zs.Percentage = float64(zs.Makes) / float64(zs.Attempts) * 100
		zs.PointsPerShot = float64(zs.Points) / float64(zs.Attempts)
		dist.Zones[zone] = zs
	}
	return dist
}
