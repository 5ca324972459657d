package scout

import (
	"math"
)

// RotationEvent captures defensive rotation behaviour between two
// consecutive frames.
type RotationEvent struct {
	FrameIndex int // Index of the later frame

	RotationQuality   float64 // [1, 10], or 0 when no defenders were shared
	RotationSpeed     float64 // Mean per-defender displacement, pixels
	HelpDefenseRating float64 // Mean help-defense score
	CommonDefenders   int
}

// RotationAnalyzer differences consecutive frames' defender sets.
type RotationAnalyzer struct {
	Config RotationConfig
}

// NewRotationAnalyzer creates an analyzer with the given scoring weights.
func NewRotationAnalyzer(cfg RotationConfig) *RotationAnalyzer {
	return &RotationAnalyzer{Config: cfg}
}

// Analyze compares two consecutive frames' defenders, matched by shared
// player ID. Per common defender it measures positional displacement (a
// proxy for rotation speed) and whether the nearest attacker changed
// between the frames (a help-defense event earning the configured bonus).
// Frame pairs with no common IDs produce the all-zero neutral event.
func (ra *RotationAnalyzer) Analyze(frameIndex int, prevDefenders, currDefenders, prevAttackers, currAttackers []PlayerObservation) RotationEvent {
	prev := byPlayerID(prevDefenders)
	curr := byPlayerID(currDefenders)

	var speeds, helpScores []float64
	for id, p := range prev {
		c, ok := curr[id]
		if !ok {
			continue
		}

		speeds = append(speeds, p.Position().DistanceTo(c.Position()))

		prevTarget, prevOK := nearestAttackerID(p, prevAttackers)
		currTarget, currOK := nearestAttackerID(c, currAttackers)
		if prevOK && currOK {
			if prevTarget != currTarget {
				helpScores = append(helpScores, ra.Config.HelpDefenseScore)
			} else {
				helpScores = append(helpScores, ra.Config.NeutralScore)
			}
		}
	}

	if len(speeds) == 0 {
		return RotationEvent{FrameIndex: frameIndex}
	}

	avgSpeed := mean(speeds)
	avgHelp := mean(helpScores)
	quality := clampRating(avgSpeed*ra.Config.SpeedWeight + avgHelp*ra.Config.HelpWeight)

	return RotationEvent{
		FrameIndex:        frameIndex,
		RotationQuality:   round1(quality),
		RotationSpeed:     round1(avgSpeed),
		HelpDefenseRating: round1(avgHelp),
		CommonDefenders:   len(speeds),
	}
}

// byPlayerID indexes observations by their tracker identity.
func byPlayerID(players []PlayerObservation) map[int64]*PlayerObservation {
	m := make(map[int64]*PlayerObservation, len(players))
	for i := range players {
		m[players[i].PlayerID] = &players[i]
	}
	return m
}

// nearestAttackerID finds the attacker closest to the defender.
func nearestAttackerID(def *PlayerObservation, attackers []PlayerObservation) (int64, bool) {
	if len(attackers) == 0 {
		return 0, false
	}
	defPos := def.Position()
	bestID := attackers[0].PlayerID
	bestDist := math.Inf(1)
	for i := range attackers {
		if d := defPos.DistanceTo(attackers[i].Position()); d < bestDist {
			bestDist = d
			bestID = attackers[i].PlayerID
		}
	}
	return bestID, true
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
