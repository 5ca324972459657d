package scout

import (
	"testing"
)

func TestClassifier_Empty(t *testing.T) {
	dc := NewDefenseTypeClassifier(DefaultClassifierConfig())
	got := dc.Classify(nil)
	if got.Primary != FormationUnknown || got.Confidence != 0 {
		t.Errorf("expected Unknown at zero confidence, got %+v", got)
	}
}

func TestClassifier_MajorityVote(t *testing.T) {
	dc := NewDefenseTypeClassifier(DefaultClassifierConfig())

	snapshots := []FormationSnapshot{
		{Formation: FormationZone23},
		{Formation: FormationZone23},
		{Formation: FormationZone23},
		{Formation: FormationManToMan},
	}
	got := dc.Classify(snapshots)
	if got.Primary != FormationZone23 {
		t.Errorf("expected 2-3 Zone, got %s", got.Primary)
	}
	if got.Confidence != 75 {
		t.Errorf("expected 75%% confidence, got %v", got.Confidence)
	}
	// Zone primaries degenerate to a single subtype entry keyed by the
	// primary at its confidence.
	if len(got.Subtypes) != 1 {
		t.Fatalf("expected one zone subtype entry, got %v", got.Subtypes)
	}
	if got.Subtypes[DefenseSubtype(FormationZone23)] != 75 {
		t.Errorf("expected subtype %q at 75, got %v", FormationZone23, got.Subtypes)
	}
}

func TestClassifier_ManToManSubtypes(t *testing.T) {
	cfg := DefaultClassifierConfig()
	dc := NewDefenseTypeClassifier(cfg)

	wide := []Point{{100, 400}, {400, 400}, {700, 400}, {1000, 400}, {1300, 400}}
	shifted := []Point{{200, 400}, {500, 400}, {800, 400}, {1100, 400}, {1400, 400}}

	snapshots := []FormationSnapshot{
		{FrameIndex: 0, Formation: FormationManToMan, Positions: wide, Spacing: 400, ClusterCounts: []int{1, 1, 1}},
		// A 100px mean shift past the switch threshold.
		{FrameIndex: 1, Formation: FormationManToMan, Positions: shifted, Spacing: 400, ClusterCounts: []int{1, 1, 1}},
		// Holding position: a regular coverage frame.
		{FrameIndex: 2, Formation: FormationManToMan, Positions: shifted, Spacing: 400, ClusterCounts: []int{1, 1, 1}},
	}

	got := dc.Classify(snapshots)
	if got.Primary != FormationManToMan {
		t.Fatalf("expected Man-to-Man, got %s", got.Primary)
	}
	if got.Subtypes == nil {
		t.Fatal("expected subtype percentages")
	}
	if got.Subtypes[SubtypeSwitching] != 50 {
		t.Errorf("expected 50%% switching, got %v", got.Subtypes[SubtypeSwitching])
	}
	if got.Subtypes[SubtypeRegular] != 50 {
		t.Errorf("expected 50%% regular, got %v", got.Subtypes[SubtypeRegular])
	}

	var sum float64
	for _, v := range got.Subtypes {
		sum += v
	}
	if sum > 100.01 {
		t.Errorf("subtype percentages exceed 100: %v (sum %v)", got.Subtypes, sum)
	}
}

func TestClassifier_SubtypesNormalised(t *testing.T) {
	cfg := DefaultClassifierConfig()
	dc := NewDefenseTypeClassifier(cfg)

	// Every transition trips both the switching and the help signal, so
	// raw percentages would sum to 200 and must be scaled back.
	a := []Point{{100, 400}, {130, 400}, {160, 400}}
	b := []Point{{200, 400}, {230, 400}, {260, 400}}
	snapshots := []FormationSnapshot{
		{FrameIndex: 0, Formation: FormationManToMan, Positions: a, Spacing: 40, ClusterCounts: []int{1, 1, 1}},
		{FrameIndex: 1, Formation: FormationManToMan, Positions: b, Spacing: 40, ClusterCounts: []int{1, 1, 1}},
		{FrameIndex: 2, Formation: FormationManToMan, Positions: a, Spacing: 40, ClusterCounts: []int{1, 1, 1}},
	}

	got := dc.Classify(snapshots)
	var sum float64
	for _, v := range got.Subtypes {
		sum += v
	}
	if sum > 100.01 {
		t.Errorf("expected normalised subtypes, got %v (sum %v)", got.Subtypes, sum)
	}
	if got.Subtypes[SubtypeSwitching] != got.Subtypes[SubtypeHelpDefense] {
		t.Errorf("co-occurring signals should scale equally: %v", got.Subtypes)
	}
}

func TestClassifier_SingleSnapshotManToMan(t *testing.T) {
	dc := NewDefenseTypeClassifier(DefaultClassifierConfig())

	got := dc.Classify([]FormationSnapshot{{Formation: FormationManToMan}})
	if got.Primary != FormationManToMan || got.Confidence != 100 {
		t.Fatalf("expected unanimous Man-to-Man, got %+v", got)
	}
	// No transitions to analyse: everything defaults to regular coverage.
	if got.Subtypes[SubtypeRegular] != 100 {
		t.Errorf("expected 100%% regular with no transitions, got %v", got.Subtypes)
	}
}
