package scout

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefenseProfile is the aggregated team defense report for a run.
type DefenseProfile struct {
	OverallRating float64 // [1, 10]

	FormationRating float64
	MatchupRating   float64
	StanceRating    float64
	MovementRating  float64
	RotationRating  float64

	Classification DefenseClassification

	PrimaryFormation  FormationType
	PrimaryLine       DefensiveLine
	DominantPressure  PressureLevel
	AverageSpacing    float64 // Pixels
	FramesAnalyzed    int
	DefendersObserved int

	// Per-player superlatives by metric. IDs are -1 when no player
	// qualified.
	BestDefenderID    int64 // Stance
	BestDefenderScore float64
	WeakestLinkID     int64
	WeakestLinkScore  float64

	BestMatchupDefender  PlayerScore
	WorstMatchupDefender PlayerScore
	BestMover            PlayerScore
	WorstMover           PlayerScore
}

// PlayerScore pairs a player with one metric's score for superlative
// reporting. PlayerID is -1 when no player qualified.
type PlayerScore struct {
	PlayerID int64
	Score    float64
}

// TeamDefenseAggregator folds per-frame analysis streams into a single
// DefenseProfile.
type TeamDefenseAggregator struct {
	Config AggregationConfig
}

func NewTeamDefenseAggregator(cfg AggregationConfig) *TeamDefenseAggregator {
	return &TeamDefenseAggregator{Config: cfg}
}

// Aggregate combines the analysis streams of a run. A missing stream
// contributes zero to its component, so a pose-free or rotation-free
// run still yields a profile; the final clamp keeps the overall rating
// in range.
func (ta *TeamDefenseAggregator) Aggregate(
	snapshots []FormationSnapshot,
	matchups []Matchup,
	stances map[int64][]StanceMetrics,
	movements map[int64]MovementMetrics,
	rotations []RotationEvent,
	classification DefenseClassification,
) DefenseProfile {
	profile := DefenseProfile{
		Classification: classification,
		BestDefenderID: -1,
		WeakestLinkID:  -1,
		FramesAnalyzed: len(snapshots),
	}

	profile.FormationRating = ta.formationRating(snapshots)
	profile.MatchupRating = ta.matchupRating(matchups)
	profile.StanceRating, profile.BestDefenderID, profile.BestDefenderScore,
		profile.WeakestLinkID, profile.WeakestLinkScore = ta.stanceRating(stances)
	profile.MovementRating = ta.movementRating(movements)
	profile.RotationRating = ta.rotationRating(rotations)

	profile.BestMatchupDefender, profile.WorstMatchupDefender = bestWorst(matchupMeansByDefender(matchups))
	moveScores := make(map[int64]float64, len(movements))
	for id, m := range movements {
		moveScores[id] = float64(m.MovementQuality)
	}
	profile.BestMover, profile.WorstMover = bestWorst(moveScores)

	cfg := ta.Config
	overall := profile.FormationRating*cfg.FormationWeight +
		profile.MatchupRating*cfg.MatchupWeight +
		profile.StanceRating*cfg.StanceWeight +
		profile.MovementRating*cfg.MovementWeight +
		profile.RotationRating*cfg.RotationWeight
	// Confident classifications nudge the overall score upward.
	overall += classification.Confidence / 100
	profile.OverallRating = round1(clampRating(overall))

	profile.PrimaryFormation = classification.Primary
	profile.PrimaryLine = dominantLine(snapshots)
	profile.DominantPressure = dominantPressure(snapshots)
	profile.AverageSpacing = round1(averageSpacing(snapshots))
	profile.DefendersObserved = countDefenders(stances, snapshots)

	return profile
}

// formationRating blends snapshot consistency, spacing tightness and
// applied pressure.
func (ta *TeamDefenseAggregator) formationRating(snapshots []FormationSnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}

	counts := make(map[FormationType]int)
	for _, s := range snapshots {
		counts[s.Formation]++
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	consistency := float64(best) / float64(len(snapshots)) * 10

	spacing := averageSpacing(snapshots)
	spacingRating := clampRating(10 - spacing/ta.Config.SpacingScalePx)

	var pressureSum float64
	for _, s := range snapshots {
		switch s.Pressure {
		case PressureHigh:
			pressureSum += 10
		case PressureMedium:
			pressureSum += 6
		default:
			pressureSum += 3
		}
	}
	pressureRating := pressureSum / float64(len(snapshots))

	rating := consistency*ta.Config.ConsistencyWeight +
		spacingRating*ta.Config.SpacingWeight +
		pressureRating*ta.Config.PressureWeight
	return round1(clampRating(rating))
}

func (ta *TeamDefenseAggregator) matchupRating(matchups []Matchup) float64 {
	if len(matchups) == 0 {
		return 0
	}
	qualities := make([]float64, len(matchups))
	for i, m := range matchups {
		qualities[i] = m.Quality
	}
	return round1(clampRating(stat.Mean(qualities, nil)))
}

// stanceRating averages per-player mean stance quality and identifies
// the strongest and weakest defenders by that mean.
func (ta *TeamDefenseAggregator) stanceRating(stances map[int64][]StanceMetrics) (rating float64, bestID int64, bestScore float64, worstID int64, worstScore float64) {
	bestID, worstID = -1, -1
	if len(stances) == 0 {
		return 0, bestID, 0, worstID, 0
	}

	ids := make([]int64, 0, len(stances))
	for id := range stances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var playerMeans []float64
	for _, id := range ids {
		samples := stances[id]
		if len(samples) == 0 {
			continue
		}
		var sum float64
		for _, s := range samples {
			sum += float64(s.StanceQuality)
		}
		m := sum / float64(len(samples))
		playerMeans = append(playerMeans, m)

		if bestID == -1 || m > bestScore {
			bestID, bestScore = id, m
		}
		if worstID == -1 || m < worstScore {
			worstID, worstScore = id, m
		}
	}
	if len(playerMeans) == 0 {
		return 0, -1, 0, -1, 0
	}
	bestScore = round1(bestScore)
	worstScore = round1(worstScore)
	return round1(clampRating(stat.Mean(playerMeans, nil))), bestID, bestScore, worstID, worstScore
}

func (ta *TeamDefenseAggregator) movementRating(movements map[int64]MovementMetrics) float64 {
	if len(movements) == 0 {
		return 0
	}
	var qualities []float64
	for _, m := range movements {
		qualities = append(qualities, float64(m.MovementQuality))
	}
	return round1(clampRating(stat.Mean(qualities, nil)))
}

func (ta *TeamDefenseAggregator) rotationRating(rotations []RotationEvent) float64 {
	var qualities []float64
	for _, r := range rotations {
		if r.CommonDefenders == 0 {
			continue
		}
		qualities = append(qualities, r.RotationQuality)
	}
	if len(qualities) == 0 {
		return 0
	}
	return round1(clampRating(stat.Mean(qualities, nil)))
}

func matchupMeansByDefender(matchups []Matchup) map[int64]float64 {
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, m := range matchups {
		sums[m.DefenderID] += m.Quality
		counts[m.DefenderID]++
	}
	means := make(map[int64]float64, len(sums))
	for id, s := range sums {
		means[id] = s / float64(counts[id])
	}
	return means
}

// bestWorst picks the highest and lowest scoring players from per-player
// mean scores. IDs iterate sorted so ties break deterministically.
func bestWorst(means map[int64]float64) (best, worst PlayerScore) {
	best = PlayerScore{PlayerID: -1}
	worst = PlayerScore{PlayerID: -1}
	if len(means) == 0 {
		return best, worst
	}

	ids := make([]int64, 0, len(means))
	for id := range means {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var bestRaw, worstRaw float64
	for _, id := range ids {
		m := means[id]
		if best.PlayerID == -1 || m > bestRaw {
			best.PlayerID, bestRaw = id, m
		}
		if worst.PlayerID == -1 || m < worstRaw {
			worst.PlayerID, worstRaw = id, m
		}
	}
	best.Score = round1(bestRaw)
	worst.Score = round1(worstRaw)
	return best, worst
}

func averageSpacing(snapshots []FormationSnapshot) float64 {
	var sum float64
	n := 0
	for _, s := range snapshots {
		if s.Spacing > 0 {
			sum += s.Spacing
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func dominantLine(snapshots []FormationSnapshot) DefensiveLine {
	counts := make(map[DefensiveLine]int)
	for _, s := range snapshots {
		counts[s.Line]++
	}
	best, bestN := LineUnknown, 0
	lines := make([]DefensiveLine, 0, len(counts))
	for l := range counts {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	for _, l := range lines {
		if counts[l] > bestN {
			best, bestN = l, counts[l]
		}
	}
	return best
}

func dominantPressure(snapshots []FormationSnapshot) PressureLevel {
	counts := make(map[PressureLevel]int)
	for _, s := range snapshots {
		counts[s.Pressure]++
	}
	best, bestN := PressureLow, 0
	levels := make([]PressureLevel, 0, len(counts))
	for p := range counts {
		levels = append(levels, p)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	for _, p := range levels {
		if counts[p] > bestN {
			best, bestN = p, counts[p]
		}
	}
	return best
}

func countDefenders(stances map[int64][]StanceMetrics, snapshots []FormationSnapshot) int {
	seen := make(map[int64]struct{})
	for id := range stances {
		seen[id] = struct{}{}
	}
	if len(seen) > 0 {
		return len(seen)
	}
	// Without pose data fall back to the widest defender count seen in
	// any single snapshot.
	max := 0
	for _, s := range snapshots {
		if len(s.Positions) > max {
			max = len(s.Positions)
		}
	}
	return max
}
