package scout

import (
	"testing"
)

func TestAggregate_EmptyStreamsScoreZero(t *testing.T) {
	ta := NewTeamDefenseAggregator(DefaultAggregationConfig())

	profile := ta.Aggregate(nil, nil, nil, nil, nil, DefenseClassification{Primary: FormationUnknown})

	// Absent streams contribute nothing to their component.
	for name, got := range map[string]float64{
		"formation": profile.FormationRating,
		"matchup":   profile.MatchupRating,
		"stance":    profile.StanceRating,
		"movement":  profile.MovementRating,
		"rotation":  profile.RotationRating,
	} {
		if got != 0 {
			t.Errorf("%s rating: expected absent 0, got %v", name, got)
		}
	}
	// The overall rating still clamps onto the [1, 10] scale.
	if profile.OverallRating != 1 {
		t.Errorf("expected overall clamped to 1, got %v", profile.OverallRating)
	}
	if profile.BestDefenderID != -1 || profile.WeakestLinkID != -1 {
		t.Errorf("expected sentinel player IDs, got %d / %d", profile.BestDefenderID, profile.WeakestLinkID)
	}
	if profile.BestMatchupDefender.PlayerID != -1 || profile.BestMover.PlayerID != -1 {
		t.Errorf("expected sentinel superlative IDs, got %+v / %+v", profile.BestMatchupDefender, profile.BestMover)
	}
	if profile.FramesAnalyzed != 0 || profile.DefendersObserved != 0 {
		t.Errorf("expected zero counts, got %d frames, %d defenders", profile.FramesAnalyzed, profile.DefendersObserved)
	}
}

func TestAggregate_ConfidenceBonus(t *testing.T) {
	ta := NewTeamDefenseAggregator(DefaultAggregationConfig())

	rotations := []RotationEvent{{CommonDefenders: 2, RotationQuality: 10}}
	without := ta.Aggregate(nil, nil, nil, nil, rotations, DefenseClassification{Primary: FormationManToMan})
	with := ta.Aggregate(nil, nil, nil, nil, rotations, DefenseClassification{Primary: FormationManToMan, Confidence: 100})

	if with.OverallRating != without.OverallRating+1 {
		t.Errorf("expected a full confidence point: %v vs %v", with.OverallRating, without.OverallRating)
	}
}

func TestAggregate_StanceSuperlatives(t *testing.T) {
	ta := NewTeamDefenseAggregator(DefaultAggregationConfig())

	stances := map[int64][]StanceMetrics{
		1: {{StanceQuality: 9}, {StanceQuality: 9}},
		2: {{StanceQuality: 3}, {StanceQuality: 5}},
		3: {{StanceQuality: 6}},
	}
	profile := ta.Aggregate(nil, nil, stances, nil, nil, DefenseClassification{})

	if profile.BestDefenderID != 1 || profile.BestDefenderScore != 9 {
		t.Errorf("best defender: got %d (%v), want 1 (9)", profile.BestDefenderID, profile.BestDefenderScore)
	}
	if profile.WeakestLinkID != 2 || profile.WeakestLinkScore != 4 {
		t.Errorf("weakest link: got %d (%v), want 2 (4)", profile.WeakestLinkID, profile.WeakestLinkScore)
	}
	// Player means 9, 4, 6 average to 6.3.
	if profile.StanceRating != 6.3 {
		t.Errorf("stance rating: got %v, want 6.3", profile.StanceRating)
	}
	if profile.DefendersObserved != 3 {
		t.Errorf("expected 3 defenders observed, got %d", profile.DefendersObserved)
	}
}

func TestAggregate_MatchupAndMovementSuperlatives(t *testing.T) {
	ta := NewTeamDefenseAggregator(DefaultAggregationConfig())

	matchups := []Matchup{
		{DefenderID: 1, Quality: 8},
		{DefenderID: 1, Quality: 6},
		{DefenderID: 2, Quality: 3},
	}
	movements := map[int64]MovementMetrics{
		4: {PlayerID: 4, MovementQuality: 9},
		5: {PlayerID: 5, MovementQuality: 2},
	}
	profile := ta.Aggregate(nil, matchups, nil, movements, nil, DefenseClassification{})

	if profile.BestMatchupDefender != (PlayerScore{PlayerID: 1, Score: 7}) {
		t.Errorf("best matchup defender: got %+v, want player 1 at 7", profile.BestMatchupDefender)
	}
	if profile.WorstMatchupDefender != (PlayerScore{PlayerID: 2, Score: 3}) {
		t.Errorf("worst matchup defender: got %+v, want player 2 at 3", profile.WorstMatchupDefender)
	}
	if profile.BestMover != (PlayerScore{PlayerID: 4, Score: 9}) {
		t.Errorf("best mover: got %+v, want player 4 at 9", profile.BestMover)
	}
	if profile.WorstMover != (PlayerScore{PlayerID: 5, Score: 2}) {
		t.Errorf("worst mover: got %+v, want player 5 at 2", profile.WorstMover)
	}
}

func TestAggregate_FormationRatingBlend(t *testing.T) {
	cfg := DefaultAggregationConfig()
	ta := NewTeamDefenseAggregator(cfg)

	// Perfectly consistent, tightly spaced, high-pressure snapshots:
	// consistency 10 * 0.4 + spacing (10 - 40/20) 8 * 0.3 + pressure 10
	// * 0.3 = 9.4.
	snapshots := []FormationSnapshot{
		{Formation: FormationZone23, Spacing: 40, Pressure: PressureHigh, Line: LineHalfCourt},
		{Formation: FormationZone23, Spacing: 40, Pressure: PressureHigh, Line: LineHalfCourt},
	}
	profile := ta.Aggregate(snapshots, nil, nil, nil, nil, DefenseClassification{Primary: FormationZone23})

	if profile.FormationRating != 9.4 {
		t.Errorf("formation rating: got %v, want 9.4", profile.FormationRating)
	}
	if profile.AverageSpacing != 40 {
		t.Errorf("average spacing: got %v, want 40", profile.AverageSpacing)
	}
	if profile.PrimaryLine != LineHalfCourt || profile.DominantPressure != PressureHigh {
		t.Errorf("dominant line/pressure wrong: %s / %s", profile.PrimaryLine, profile.DominantPressure)
	}
	if profile.FramesAnalyzed != 2 {
		t.Errorf("expected 2 frames analysed, got %d", profile.FramesAnalyzed)
	}
}

func TestAggregate_RotationSkipsEmptyEvents(t *testing.T) {
	ta := NewTeamDefenseAggregator(DefaultAggregationConfig())

	rotations := []RotationEvent{
		{CommonDefenders: 0},                      // ignored
		{CommonDefenders: 2, RotationQuality: 8},  //
		{CommonDefenders: 3, RotationQuality: 6},  //
		{CommonDefenders: 0, RotationQuality: 99}, // ignored
	}
	profile := ta.Aggregate(nil, nil, nil, nil, rotations, DefenseClassification{})
	if profile.RotationRating != 7 {
		t.Errorf("rotation rating: got %v, want 7", profile.RotationRating)
	}
}
