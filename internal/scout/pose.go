package scout

import (
	"math"
)

// StanceMetrics scores one defender's body posture in a single frame.
type StanceMetrics struct {
	PlayerID   int64
	FrameIndex int

	StanceWidth  float64 // Ankle-to-ankle distance, pixels
	KneeBend     float64 // Hip-to-knee vertical delta, pixels (negative = bent)
	TorsoAngle   float64 // Degrees off vertical
	ArmExtension float64 // Average shoulder-to-wrist distance, pixels

	StanceQuality     int // [1, 10]
	IsDefensiveStance bool
}

// MovementMetrics scores one defender's movement over a keypoint window.
type MovementMetrics struct {
	PlayerID int64

	LateralMovement  float64 // Total absolute horizontal hip displacement, pixels
	VerticalMovement float64 // Total absolute vertical hip displacement, pixels
	AverageSpeed     float64 // Pixels per frame
	DirectionChanges int     // Lateral sign reversals

	MovementQuality int // [1, 10]
}

// stanceJoints are the keypoints a stance analysis cannot do without.
var stanceJoints = []int{
	KPRightShoulder, KPLeftShoulder,
	KPRightHip, KPLeftHip,
	KPRightKnee, KPLeftKnee,
	KPRightAnkle, KPLeftAnkle,
	KPRightWrist, KPLeftWrist,
}

// AnalyzeStance scores a defender's stance from one frame's keypoints.
// Missing or invalid keypoints yield the neutral minimal-quality result
// rather than an error, so a bad pose frame never aborts a clip.
func AnalyzeStance(playerID int64, frameIndex int, obs *PlayerObservation, cfg StanceConfig) StanceMetrics {
	neutral := StanceMetrics{PlayerID: playerID, FrameIndex: frameIndex, StanceQuality: 1}
	if obs == nil || !obs.HasPose() {
		return neutral
	}
	for _, j := range stanceJoints {
		if !obs.keypointValid(j) {
			return neutral
		}
	}
	kps := obs.Keypoints

	rAnkle, lAnkle := kps[KPRightAnkle], kps[KPLeftAnkle]
	stanceWidth := math.Hypot(rAnkle.X-lAnkle.X, rAnkle.Y-lAnkle.Y)

	// Image y grows downward, so a bent knee (hip sinking toward the knee)
	// drives the delta negative.
	rBend := kps[KPRightHip].Y - kps[KPRightKnee].Y
	lBend := kps[KPLeftHip].Y - kps[KPLeftKnee].Y
	kneeBend := (rBend + lBend) / 2

	hipCenter := Point{
		X: (kps[KPRightHip].X + kps[KPLeftHip].X) / 2,
		Y: (kps[KPRightHip].Y + kps[KPLeftHip].Y) / 2,
	}
	shoulderCenter := Point{
		X: (kps[KPRightShoulder].X + kps[KPLeftShoulder].X) / 2,
		Y: (kps[KPRightShoulder].Y + kps[KPLeftShoulder].Y) / 2,
	}
	torsoAngle := math.Atan2(shoulderCenter.X-hipCenter.X, hipCenter.Y-shoulderCenter.Y) * 180 / math.Pi

	rExt := math.Hypot(kps[KPRightShoulder].X-kps[KPRightWrist].X, kps[KPRightShoulder].Y-kps[KPRightWrist].Y)
	lExt := math.Hypot(kps[KPLeftShoulder].X-kps[KPLeftWrist].X, kps[KPLeftShoulder].Y-kps[KPLeftWrist].Y)
	armExtension := (rExt + lExt) / 2

	score := 0
	switch {
	case stanceWidth > cfg.WideStancePx:
		score += 3
	case stanceWidth > cfg.MediumStancePx:
		score += 2
	default:
		score++
	}
	switch {
	case kneeBend < cfg.DeepKneeBendPx:
		score += 3
	case kneeBend < cfg.ModerateKneeBendPx:
		score += 2
	default:
		score++
	}
	switch {
	case math.Abs(torsoAngle) < cfg.UprightTorsoDeg:
		score += 3
	case math.Abs(torsoAngle) < cfg.LeaningTorsoDeg:
		score += 2
	default:
		score++
	}
	switch {
	case armExtension > cfg.FullArmExtensionPx:
		score += 3
	case armExtension > cfg.PartArmExtensionPx:
		score += 2
	default:
		score++
	}

	// Four sub-scores max out at 12; rescale onto [1, 10].
	quality := int(clampRating(float64(score) * 10 / 12))

	return StanceMetrics{
		PlayerID:          playerID,
		FrameIndex:        frameIndex,
		StanceWidth:       stanceWidth,
		KneeBend:          kneeBend,
		TorsoAngle:        torsoAngle,
		ArmExtension:      armExtension,
		StanceQuality:     quality,
		IsDefensiveStance: quality >= cfg.DefensiveStanceMin,
	}
}

// AnalyzeMovement scores a defender's movement over a keypoint sequence
// spanning at least two frames. The hip centre stands in for the player
// position; defensive quality rewards lateral slides over vertical drift
// and a moderate number of direction reversals. Degenerate sequences yield
// the neutral minimal-quality result.
func AnalyzeMovement(playerID int64, seq [][]Keypoint, cfg MovementConfig) MovementMetrics {
	neutral := MovementMetrics{PlayerID: playerID, MovementQuality: 1}
	if len(seq) < 2 {
		return neutral
	}

	centers := make([]Point, 0, len(seq))
	for _, kps := range seq {
		if len(kps) <= KPLeftHip {
			return neutral
		}
		centers = append(centers, Point{
			X: (kps[KPRightHip].X + kps[KPLeftHip].X) / 2,
			Y: (kps[KPRightHip].Y + kps[KPLeftHip].Y) / 2,
		})
	}

	var totalLateral, totalVertical float64
	laterals := make([]float64, 0, len(centers)-1)
	for i := 1; i < len(centers); i++ {
		dx := centers[i].X - centers[i-1].X
		dy := centers[i].Y - centers[i-1].Y
		totalLateral += math.Abs(dx)
		totalVertical += math.Abs(dy)
		laterals = append(laterals, dx)
	}

	avgSpeed := math.Hypot(totalLateral, totalVertical) / float64(len(seq))

	dirChanges := 0
	for i := 1; i < len(laterals); i++ {
		if (laterals[i] > 0 && laterals[i-1] < 0) || (laterals[i] < 0 && laterals[i-1] > 0) {
			dirChanges++
		}
	}

	score := 0
	lateralRatio := totalLateral / (totalVertical + 1e-5)
	switch {
	case lateralRatio > cfg.StrongLateralRatio:
		score += 4
	case lateralRatio > cfg.GoodLateralRatio:
		score += 3
	case lateralRatio > cfg.BalancedLateralRatio:
		score += 2
	default:
		score++
	}
	switch {
	case dirChanges >= cfg.MinDirectionChanges && dirChanges <= cfg.MaxDirectionChanges:
		score += 3
	case dirChanges > cfg.MaxDirectionChanges:
		score += 2
	default:
		score++
	}

	// Two sub-scores max out at 7; rescale onto [1, 10].
	quality := int(clampRating(float64(score) * 10 / 7))

	return MovementMetrics{
		PlayerID:         playerID,
		LateralMovement:  totalLateral,
		VerticalMovement: totalVertical,
		AverageSpeed:     avgSpeed,
		DirectionChanges: dirChanges,
		MovementQuality:  quality,
	}
}
