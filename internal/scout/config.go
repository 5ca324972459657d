package scout

// Config collects every tunable threshold used by the engine. All analyzers
// take their thresholds from here rather than from inline literals, so the
// heuristics can be tuned from the tuning file without code changes.
type Config struct {
	Court       CourtGeometry     `koanf:"court"`
	Shot        ShotConfig        `koanf:"shot"`
	Stance      StanceConfig      `koanf:"stance"`
	Movement    MovementConfig    `koanf:"movement"`
	Formation   FormationConfig   `koanf:"formation"`
	Matchup     MatchupConfig     `koanf:"matchup"`
	Rotation    RotationConfig    `koanf:"rotation"`
	Classifier  ClassifierConfig  `koanf:"classifier"`
	Aggregation AggregationConfig `koanf:"aggregation"`

	// FrameWidth and FrameHeight are the assumed frame dimensions when a
	// frame carries no calibration and none was seen earlier in the clip.
	FrameWidth  float64 `koanf:"frame_width"`
	FrameHeight float64 `koanf:"frame_height"`
}

// DefaultConfig returns the production-default configuration.
func DefaultConfig() Config {
	return Config{
		Court:       DefaultCourtGeometry(),
		Shot:        DefaultShotConfig(),
		Stance:      DefaultStanceConfig(),
		Movement:    DefaultMovementConfig(),
		Formation:   DefaultFormationConfig(),
		Matchup:     DefaultMatchupConfig(),
		Rotation:    DefaultRotationConfig(),
		Classifier:  DefaultClassifierConfig(),
		Aggregation: DefaultAggregationConfig(),
		FrameWidth:  1920,
		FrameHeight: 1080,
	}
}

// CourtGeometry holds the court dimensions in feet used for calibration and
// zone classification. Defaults are the NBA half-court numbers.
type CourtGeometry struct {
	Width              float64 `koanf:"width"`                // Half-court width
	Length             float64 `koanf:"length"`               // Full court length
	ThreePointDistance float64 `koanf:"three_point_distance"` // Arc distance from basket
	FreeThrowDistance  float64 `koanf:"free_throw_distance"`
	KeyWidth           float64 `koanf:"key_width"`
	CornerMargin       float64 `koanf:"corner_margin"` // Sideline band width for corner threes
	CornerDepth        float64 `koanf:"corner_depth"`  // Minimum y for a corner three
}

// DefaultCourtGeometry returns NBA court dimensions.
func DefaultCourtGeometry() CourtGeometry {
	return CourtGeometry{
		Width:              50,
		Length:             94,
		ThreePointDistance: 23.75,
		FreeThrowDistance:  15,
		KeyWidth:           16,
		CornerMargin:       5,
		CornerDepth:        20,
	}
}

// Basket returns the basket reference point in court feet. The basket sits
// on the baseline at mid-width.
func (g CourtGeometry) Basket() Point {
	return Point{X: g.Width / 2, Y: 0}
}

// FreeThrowLine returns the free-throw line midpoint in court feet.
func (g CourtGeometry) FreeThrowLine() Point {
	return Point{X: g.Width / 2, Y: g.FreeThrowDistance}
}

// ThreePointTop returns the top of the three-point arc in court feet.
func (g CourtGeometry) ThreePointTop() Point {
	return Point{X: g.Width / 2, Y: g.ThreePointDistance}
}

// Corners returns the four court corners in the fixed order top-left,
// top-right, bottom-right, bottom-left of the court plane: (0,0), (W,0),
// (W,L), (0,L).
func (g CourtGeometry) Corners() [4]Point {
	return [4]Point{
		{0, 0},
		{g.Width, 0},
		{g.Width, g.Length},
		{0, g.Length},
	}
}

// ShotConfig holds trajectory shot-detection thresholds.
type ShotConfig struct {
	MinTrajectoryLength int     `koanf:"min_trajectory_length"` // Minimum valid ball samples per clip
	MinShotHeight       float64 `koanf:"min_shot_height"`       // Peak prominence threshold, pixels
	CooldownFrames      int     `koanf:"cooldown_frames"`       // Minimum frame gap between shots
	SmoothingWindow     int     `koanf:"smoothing_window"`      // Savitzky-Golay window, odd
	SmoothingOrder      int     `koanf:"smoothing_order"`       // Savitzky-Golay polynomial order
	BasketProximityPx   float64 `koanf:"basket_proximity_px"`   // Made/attempt radius around the rim
	MinDescentPx        float64 `koanf:"min_descent_px"`        // Apex-to-outcome drop for a made shot
	FollowThroughFrames int     `koanf:"follow_through_frames"` // Frames after the valley checked for continued descent
}

// DefaultShotConfig returns shot-detection defaults calibrated for 30 fps
// broadcast footage.
func DefaultShotConfig() ShotConfig {
	return ShotConfig{
		MinTrajectoryLength: 10,
		MinShotHeight:       30,
		CooldownFrames:      15,
		SmoothingWindow:     9,
		SmoothingOrder:      2,
		BasketProximityPx:   50,
		MinDescentPx:        20,
		FollowThroughFrames: 5,
	}
}

// StanceConfig holds the pixel thresholds that convert raw stance
// measurements into 1-3 sub-scores.
type StanceConfig struct {
	WideStancePx       float64 `koanf:"wide_stance_px"`   // Ankle spread for the top sub-score
	MediumStancePx     float64 `koanf:"medium_stance_px"` //
	DeepKneeBendPx     float64 `koanf:"deep_knee_bend_px"`
	ModerateKneeBendPx float64 `koanf:"moderate_knee_bend_px"`
	UprightTorsoDeg    float64 `koanf:"upright_torso_deg"`
	LeaningTorsoDeg    float64 `koanf:"leaning_torso_deg"`
	FullArmExtensionPx float64 `koanf:"full_arm_extension_px"`
	PartArmExtensionPx float64 `koanf:"part_arm_extension_px"`
	DefensiveStanceMin int     `koanf:"defensive_stance_min"` // Quality at/above which a stance counts as defensive
}

// DefaultStanceConfig returns the stance scoring thresholds.
func DefaultStanceConfig() StanceConfig {
	return StanceConfig{
		WideStancePx:       50,
		MediumStancePx:     30,
		DeepKneeBendPx:     -20,
		ModerateKneeBendPx: -10,
		UprightTorsoDeg:    15,
		LeaningTorsoDeg:    30,
		FullArmExtensionPx: 100,
		PartArmExtensionPx: 70,
		DefensiveStanceMin: 7,
	}
}

// MovementConfig holds the movement-quality thresholds.
type MovementConfig struct {
	StrongLateralRatio   float64 `koanf:"strong_lateral_ratio"`   // Lateral:vertical ratio for the top sub-score
	GoodLateralRatio     float64 `koanf:"good_lateral_ratio"`     //
	BalancedLateralRatio float64 `koanf:"balanced_lateral_ratio"` //
	MinDirectionChanges  int     `koanf:"min_direction_changes"`  // Optimal direction-change band
	MaxDirectionChanges  int     `koanf:"max_direction_changes"`  //
}

// DefaultMovementConfig returns the movement scoring thresholds.
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		StrongLateralRatio:   2,
		GoodLateralRatio:     1,
		BalancedLateralRatio: 0.5,
		MinDirectionChanges:  1,
		MaxDirectionChanges:  3,
	}
}

// FormationConfig holds formation clustering and pressure thresholds.
type FormationConfig struct {
	MinDefenders      int     `koanf:"min_defenders"`       // Below this the snapshot is Unknown
	MaxClusters       int     `koanf:"max_clusters"`        // k-means k upper bound
	MaxIterations     int     `koanf:"max_iterations"`      // k-means iteration cap
	TightSpacingPx    float64 `koanf:"tight_spacing_px"`    // High-pressure spacing band
	MediumSpacingPx   float64 `koanf:"medium_spacing_px"`   // Medium-pressure spacing band
	HighPressureMin   float64 `koanf:"high_pressure_min"`   // Stance quality floor for High pressure
	MediumPressureMin float64 `koanf:"medium_pressure_min"` // Stance quality floor for Medium pressure
}

// DefaultFormationConfig returns formation analysis defaults.
func DefaultFormationConfig() FormationConfig {
	return FormationConfig{
		MinDefenders:      3,
		MaxClusters:       3,
		MaxIterations:     50,
		TightSpacingPx:    50,
		MediumSpacingPx:   100,
		HighPressureMin:   7,
		MediumPressureMin: 5,
	}
}

// MatchupConfig holds matchup scoring weights and scale.
type MatchupConfig struct {
	DistanceScalePx  float64 `koanf:"distance_scale_px"` // Pixels per quality point lost to distance
	DistanceWeight   float64 `koanf:"distance_weight"`
	StanceWeight     float64 `koanf:"stance_weight"`
	OrientWeight     float64 `koanf:"orient_weight"`
	NeutralOrientVal float64 `koanf:"neutral_orient_val"` // Used when shoulder line is unavailable
}

// DefaultMatchupConfig returns matchup scoring defaults. The weights apply
// only when stance data exists; otherwise quality falls back to the distance
// factor alone.
func DefaultMatchupConfig() MatchupConfig {
	return MatchupConfig{
		DistanceScalePx:  20,
		DistanceWeight:   0.3,
		StanceWeight:     0.5,
		OrientWeight:     0.2,
		NeutralOrientVal: 5,
	}
}

// RotationConfig holds rotation analysis scores.
type RotationConfig struct {
	HelpDefenseScore float64 `koanf:"help_defense_score"` // Awarded when the guarded attacker changed
	NeutralScore     float64 `koanf:"neutral_score"`      // Awarded when it did not
	SpeedWeight      float64 `koanf:"speed_weight"`
	HelpWeight       float64 `koanf:"help_weight"`
}

// DefaultRotationConfig returns rotation analysis defaults.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		HelpDefenseScore: 8,
		NeutralScore:     5,
		SpeedWeight:      0.5,
		HelpWeight:       0.5,
	}
}

// ClassifierConfig holds defense-type subtype thresholds.
type ClassifierConfig struct {
	SwitchDisplacementPx float64 `koanf:"switch_displacement_px"` // Mean defender displacement counting as a switch signal
	HelpSpacingPx        float64 `koanf:"help_spacing_px"`        // Spacing below which help defense is signalled
}

// DefaultClassifierConfig returns classifier defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		SwitchDisplacementPx: 15,
		HelpSpacingPx:        50,
	}
}

// AggregationConfig holds the weights composing the overall team rating.
type AggregationConfig struct {
	FormationWeight float64 `koanf:"formation_weight"`
	MatchupWeight   float64 `koanf:"matchup_weight"`
	StanceWeight    float64 `koanf:"stance_weight"`
	MovementWeight  float64 `koanf:"movement_weight"`
	RotationWeight  float64 `koanf:"rotation_weight"`

	// Formation rating internal blend.
	ConsistencyWeight float64 `koanf:"consistency_weight"`
	SpacingWeight     float64 `koanf:"spacing_weight"`
	PressureWeight    float64 `koanf:"pressure_weight"`

	// SpacingScalePx converts average pixel spacing into the 1-10 spacing
	// rating (rating = 10 - spacing/scale).
	SpacingScalePx float64 `koanf:"spacing_scale_px"`
}

// DefaultAggregationConfig returns the canonical rating weights.
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		FormationWeight:   0.25,
		MatchupWeight:     0.20,
		StanceWeight:      0.15,
		MovementWeight:    0.20,
		RotationWeight:    0.20,
		ConsistencyWeight: 0.4,
		SpacingWeight:     0.3,
		PressureWeight:    0.3,
		SpacingScalePx:    20,
	}
}
