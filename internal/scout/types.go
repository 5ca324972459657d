// Package scout implements the basketball defensive analytics engine.
//
// The engine consumes an ordered stream of per-frame detection records
// (player bounding boxes and pose keypoints, ball position, court line
// evidence) produced by upstream detection models, and reduces them into a
// defensive scouting profile: detected shot attempts, per-player stance and
// movement quality, formation classification, defender-attacker matchups,
// rotation behaviour, and an aggregated 1-10 team defense rating.
//
// The package never decodes images or runs model inference; it trusts the
// structured output of the detection stage. All per-run state lives in an
// AnalysisSession so that independent clips can be analysed concurrently.
package scout

import (
	"math"
	"time"
)

// Point is a 2D position. Depending on context the coordinates are image
// pixels (origin top-left, y increasing downward) or court feet (origin at
// the baseline corner, y increasing away from the basket).
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox is an axis-aligned bounding box in image pixels.
type BBox struct {
	X1, Y1 float64 // Top-left corner
	X2, Y2 float64 // Bottom-right corner
}

// Center returns the box centre.
func (b BBox) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// LineSegment is a detected court line in image pixels.
type LineSegment struct {
	P1 Point
	P2 Point
}

// Keypoint is a single pose joint in image pixels with detection confidence.
type Keypoint struct {
	X          float64
	Y          float64
	Confidence float64 // [0, 1]; 0 means the joint was not detected
}

// Keypoint indices in the 18-joint pose layout emitted by the upstream pose
// estimators. The order is fixed; analyzers index into it directly.
const (
	KPNose          = 0
	KPNeck          = 1
	KPRightShoulder = 2
	KPRightElbow    = 3
	KPRightWrist    = 4
	KPLeftShoulder  = 5
	KPLeftElbow     = 6
	KPLeftWrist     = 7
	KPRightHip      = 8
	KPRightKnee     = 9
	KPRightAnkle    = 10
	KPLeftHip       = 11
	KPLeftKnee      = 12
	KPLeftAnkle     = 13
	KPRightEye      = 14
	KPLeftEye       = 15
	KPRightEar      = 16
	KPLeftEar       = 17

	// KeypointCount is the expected length of a full keypoint list.
	KeypointCount = 18
)

// Team is the side a player was assigned to by the upstream team classifier.
type Team string

const (
	TeamDefense Team = "defense"
	TeamOffense Team = "offense"
	TeamUnknown Team = "unknown"
)

// PlayerObservation is one player detection within a frame. PlayerID
// identity is owned by the upstream tracker; the engine never reassigns it.
type PlayerObservation struct {
	PlayerID     int64
	BBox         BBox
	Keypoints    []Keypoint // Empty when pose estimation produced nothing
	Team         Team
	JerseyNumber string // Optional, from OCR; may be empty
}

// HasPose reports whether a usable full keypoint list is present.
func (p *PlayerObservation) HasPose() bool {
	return len(p.Keypoints) >= KeypointCount
}

// keypointValid reports whether the indexed joint carries a real detection.
func (p *PlayerObservation) keypointValid(idx int) bool {
	if idx >= len(p.Keypoints) {
		return false
	}
	kp := p.Keypoints[idx]
	return kp.Confidence > 0 && (kp.X != 0 || kp.Y != 0)
}

// Position returns the player's anchor position in image pixels: the hip
// centre when both hip joints are available, otherwise the bounding box
// centre.
func (p *PlayerObservation) Position() Point {
	if p.keypointValid(KPRightHip) && p.keypointValid(KPLeftHip) {
		r := p.Keypoints[KPRightHip]
		l := p.Keypoints[KPLeftHip]
		return Point{X: (r.X + l.X) / 2, Y: (r.Y + l.Y) / 2}
	}
	return p.BBox.Center()
}

// BallObservation is the detected (or extrapolated) ball for one frame.
type BallObservation struct {
	Position    Point
	Radius      float64 // Pixels; 0 when unknown
	Confidence  float64 // [0, 1]; 0 when unknown
	IsPredicted bool    // True when the position was extrapolated, not detected
}

// Frame is one processed video frame's worth of detections. Frames are
// produced by the external detection stage and consumed read-only; the
// engine never mutates them.
type Frame struct {
	Index       int
	Timestamp   time.Duration // Offset from clip start
	Players     []PlayerObservation
	Ball        *BallObservation  // nil when the ball was not detected
	Calibration *CourtCalibration // nil when no calibration was computed
	Lines       []LineSegment     // Court line evidence, may be empty
}

// splitTeams partitions players into defenders and attackers. When the
// upstream team classifier produced no usable labels for either side the
// observation list is split in half, matching the upstream fallback; callers
// interpret such frames with reduced confidence.
func splitTeams(players []PlayerObservation) (defenders, attackers []PlayerObservation) {
	for _, p := range players {
		switch p.Team {
		case TeamDefense:
			defenders = append(defenders, p)
		case TeamOffense:
			attackers = append(attackers, p)
		}
	}
	if len(defenders) == 0 || len(attackers) == 0 {
		mid := len(players) / 2
		defenders = players[:mid]
		attackers = players[mid:]
	}
	return defenders, attackers
}

// clampRating clamps a quality rating to the canonical [1, 10] band.
func clampRating(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// round1 rounds to one decimal place, matching the precision the profile
// reports ratings at.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
