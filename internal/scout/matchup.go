package scout

import (
	"math"
)

// Matchup pairs one defender with the attacker they are effectively
// guarding in a single frame. Matchups are recomputed fresh each frame and
// never persisted as mutable state.
type Matchup struct {
	DefenderID int64
	AttackerID int64
	FrameIndex int
	Distance   float64 // Pixels between anchor positions
	Quality    float64 // [1, 10]
}

// MatchupAssignor pairs defenders with attackers for one frame. Defenders
// with no reachable attacker simply produce no matchup; an empty attacker
// list yields an empty result, never an error.
type MatchupAssignor interface {
	Assign(frameIndex int, defenders, attackers []PlayerObservation, stance map[int64]StanceMetrics) []Matchup
}

// NearestAssignor implements the greedy per-defender nearest-attacker
// pairing. Two defenders may be assigned the same attacker; this mirrors
// the behaviour the profile heuristics were tuned against and is the
// default assignor.
type NearestAssignor struct {
	Config MatchupConfig
}

// Assign pairs each defender with their nearest attacker.
func (na *NearestAssignor) Assign(frameIndex int, defenders, attackers []PlayerObservation, stance map[int64]StanceMetrics) []Matchup {
	if len(attackers) == 0 {
		return nil
	}

	matchups := make([]Matchup, 0, len(defenders))
	for i := range defenders {
		def := &defenders[i]
		defPos := def.Position()

		bestIdx := -1
		bestDist := math.Inf(1)
		for j := range attackers {
			if d := defPos.DistanceTo(attackers[j].Position()); d < bestDist {
				bestDist = d
				bestIdx = j
			}
		}
		if bestIdx < 0 {
			continue
		}
		matchups = append(matchups, scoreMatchup(frameIndex, def, &attackers[bestIdx], bestDist, stance, na.Config))
	}
	return matchups
}

// OptimalAssignor solves the defender-attacker pairing as a minimum-cost
// bipartite assignment, so no two defenders share an attacker. It is the
// opt-in upgrade over the greedy assignor; quality scoring is identical.
type OptimalAssignor struct {
	Config MatchupConfig

	// MaxPairDistance gates assignments: pairs farther apart than this are
	// never matched. Zero disables gating.
	MaxPairDistance float64
}

// Assign computes the optimal pairing over the distance matrix.
func (oa *OptimalAssignor) Assign(frameIndex int, defenders, attackers []PlayerObservation, stance map[int64]StanceMetrics) []Matchup {
	if len(defenders) == 0 || len(attackers) == 0 {
		return nil
	}

	cost := make([][]float64, len(defenders))
	for i := range defenders {
		cost[i] = make([]float64, len(attackers))
		defPos := defenders[i].Position()
		for j := range attackers {
			d := defPos.DistanceTo(attackers[j].Position())
			if oa.MaxPairDistance > 0 && d > oa.MaxPairDistance {
				cost[i][j] = forbiddenCost
			} else {
				cost[i][j] = d
			}
		}
	}

	assignment := assignMinCost(cost)

	matchups := make([]Matchup, 0, len(defenders))
	for i, j := range assignment {
		if j < 0 {
			continue
		}
		matchups = append(matchups, scoreMatchup(frameIndex, &defenders[i], &attackers[j], cost[i][j], stance, oa.Config))
	}
	return matchups
}

// scoreMatchup blends distance, stance quality, and body orientation into
// the per-instant matchup quality. When the defender carries no stance
// data quality degrades to the distance factor alone.
func scoreMatchup(frameIndex int, def, att *PlayerObservation, distance float64, stance map[int64]StanceMetrics, cfg MatchupConfig) Matchup {
	distFactor := 10 - distance/cfg.DistanceScalePx
	if distFactor < 0 {
		distFactor = 0
	}

	quality := distFactor
	if sm, ok := stance[def.PlayerID]; ok && sm.StanceQuality > 1 {
		orient := orientationFactor(def, att, cfg)
		quality = float64(sm.StanceQuality)*cfg.StanceWeight +
			distFactor*cfg.DistanceWeight +
			orient*cfg.OrientWeight
	}

	return Matchup{
		DefenderID: def.PlayerID,
		AttackerID: att.PlayerID,
		FrameIndex: frameIndex,
		Distance:   distance,
		Quality:    clampRating(quality),
	}
}

// orientationFactor rewards a defender squared up on their attacker: the
// shoulder line should sit near-perpendicular to the defender→attacker
// vector. Without usable shoulder keypoints the neutral value applies.
func orientationFactor(def, att *PlayerObservation, cfg MatchupConfig) float64 {
	if !def.keypointValid(KPRightShoulder) || !def.keypointValid(KPLeftShoulder) {
		return cfg.NeutralOrientVal
	}

	rs := def.Keypoints[KPRightShoulder]
	ls := def.Keypoints[KPLeftShoulder]
	shoulderX := ls.X - rs.X
	shoulderY := ls.Y - rs.Y

	defPos := def.Position()
	attPos := att.Position()
	toAttX := attPos.X - defPos.X
	toAttY := attPos.Y - defPos.Y

	shoulderMag := math.Hypot(shoulderX, shoulderY)
	toAttMag := math.Hypot(toAttX, toAttY)
	if shoulderMag == 0 || toAttMag == 0 {
		return cfg.NeutralOrientVal
	}

	// |cos| of the angle: 0 when perpendicular (ideal), 1 when parallel.
	dot := (shoulderX*toAttX + shoulderY*toAttY) / (shoulderMag * toAttMag)
	return 10 - math.Abs(dot)*10
}
