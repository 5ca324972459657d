package scout

import "sort"

// DefenseSubtype labels a stylistic variant of the primary defense. For
// man-to-man these are the coverage variants below; zone defenses carry
// a single subtype named after the zone itself.
type DefenseSubtype string

const (
	SubtypeRegular     DefenseSubtype = "Regular"
	SubtypeSwitching   DefenseSubtype = "Switching"
	SubtypeHedging     DefenseSubtype = "Hedging"
	SubtypeHelpDefense DefenseSubtype = "Help Defense"
)

// DefenseClassification is the verdict over a whole sequence of
// formation snapshots.
type DefenseClassification struct {
	Primary    FormationType
	Confidence float64 // Percentage of snapshots agreeing with Primary

	// Subtypes holds variant percentages. Man-to-man splits into the
	// coverage variants; any other primary degenerates to a single
	// entry keyed by the primary at its confidence. Values sum to at
	// most 100.
	Subtypes map[DefenseSubtype]float64
}

// DefenseTypeClassifier votes across per-frame formation snapshots and,
// for man-to-man, distinguishes switching, hedging and help-defense
// looks from positional dynamics.
type DefenseTypeClassifier struct {
	Config ClassifierConfig
}

func NewDefenseTypeClassifier(cfg ClassifierConfig) *DefenseTypeClassifier {
	return &DefenseTypeClassifier{Config: cfg}
}

// Classify tallies formation snapshots into the dominant type. An empty
// input yields FormationUnknown at zero confidence.
func (dc *DefenseTypeClassifier) Classify(snapshots []FormationSnapshot) DefenseClassification {
	if len(snapshots) == 0 {
		return DefenseClassification{Primary: FormationUnknown}
	}

	counts := make(map[FormationType]int)
	for _, s := range snapshots {
		counts[s.Formation]++
	}

	primary := FormationUnknown
	best := 0
	// Deterministic tie-break: sort candidate types by name.
	types := make([]FormationType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		if counts[t] > best {
			best = counts[t]
			primary = t
		}
	}

	out := DefenseClassification{
		Primary:    primary,
		Confidence: round1(float64(best) / float64(len(snapshots)) * 100),
	}
	if primary == FormationManToMan {
		out.Subtypes = dc.subtypes(snapshots)
	} else {
		out.Subtypes = map[DefenseSubtype]float64{
			DefenseSubtype(primary): out.Confidence,
		}
	}
	return out
}

// subtypes scores man-to-man variants from frame-to-frame dynamics:
// large mean defender displacement reads as switching, a cluster holding
// two or more defenders reads as hedging on a screen, and tight overall
// spacing reads as help defense. Frames showing none of those count as
// regular coverage. Raw percentages are normalized so they never exceed
// 100 in total.
func (dc *DefenseTypeClassifier) subtypes(snapshots []FormationSnapshot) map[DefenseSubtype]float64 {
	var switching, hedging, help, regular int
	total := 0

	for i := 1; i < len(snapshots); i++ {
		prev, curr := snapshots[i-1], snapshots[i]
		total++
		tagged := false

		if disp, ok := meanDisplacement(prev, curr); ok && disp > dc.Config.SwitchDisplacementPx {
			switching++
			tagged = true
		}
		for _, n := range curr.ClusterCounts {
			if n >= 2 {
				hedging++
				tagged = true
				break
			}
		}
		if curr.Spacing > 0 && curr.Spacing < dc.Config.HelpSpacingPx {
			help++
			tagged = true
		}
		if !tagged {
			regular++
		}
	}

	if total == 0 {
		return map[DefenseSubtype]float64{SubtypeRegular: 100}
	}

	pct := func(n int) float64 { return float64(n) / float64(total) * 100 }
	out := map[DefenseSubtype]float64{
		SubtypeRegular:     pct(regular),
		SubtypeSwitching:   pct(switching),
		SubtypeHedging:     pct(hedging),
		SubtypeHelpDefense: pct(help),
	}

	// Frames can carry several tags at once, so the raw percentages may
	// sum past 100. Scale them down proportionally when they do.
	var sum float64
	for _, v := range out {
		sum += v
	}
	if sum > 100 {
		scale := 100 / sum
		for k, v := range out {
			out[k] = round1(v * scale)
		}
	} else {
		for k, v := range out {
			out[k] = round1(v)
		}
	}
	return out
}

// meanDisplacement averages positional change across defenders present
// in both snapshots, matched by index order of recorded positions.
func meanDisplacement(prev, curr FormationSnapshot) (float64, bool) {
	n := len(prev.Positions)
	if len(curr.Positions) < n {
		n = len(curr.Positions)
	}
	if n == 0 {
		return 0, false
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += prev.Positions[i].DistanceTo(curr.Positions[i])
	}
	return sum / float64(n), true
}
