package scout

import (
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrEmptyStream is returned when a profile is requested before any
	// frame was processed.
	ErrEmptyStream = errors.New("scout: no frames processed")

	// ErrOutOfOrder is returned when a frame arrives with an index at or
	// before the last processed one.
	ErrOutOfOrder = errors.New("scout: frame index out of order")
)

// PlayerTracker resolves per-frame player observations to stable
// identities. The default assumes the upstream detector already assigns
// stable IDs; sessions fed raw detections can plug in their own tracker.
type PlayerTracker interface {
	Track(frameIndex int, players []PlayerObservation) []PlayerObservation
}

// UpstreamTracker trusts the PlayerID values already present on
// observations.
type UpstreamTracker struct{}

func (UpstreamTracker) Track(_ int, players []PlayerObservation) []PlayerObservation {
	return players
}

// SessionOption configures an AnalysisSession.
type SessionOption func(*AnalysisSession)

// WithTracker replaces the identity tracker.
func WithTracker(t PlayerTracker) SessionOption {
	return func(s *AnalysisSession) { s.tracker = t }
}

// WithMatchupAssignor replaces the defender-to-attacker assignment
// strategy.
func WithMatchupAssignor(a MatchupAssignor) SessionOption {
	return func(s *AnalysisSession) { s.assignor = a }
}

// AnalysisSession drives one analysis run: it consumes frames in order,
// runs every per-frame analyzer, and accumulates their outputs until a
// profile is requested. Sessions are not safe for concurrent use.
type AnalysisSession struct {
	RunID  string
	Config Config

	tracker  PlayerTracker
	assignor MatchupAssignor

	formation  *FormationAnalyzer
	rotation   *RotationAnalyzer
	classifier *DefenseTypeClassifier
	aggregator *TeamDefenseAggregator

	calibration *CourtCalibration
	ball        ballPredictor

	lastFrameIndex int
	frames         int

	ballSamples  []BallSample
	snapshots    []FormationSnapshot
	matchups     []Matchup
	rotations    []RotationEvent
	stances      map[int64][]StanceMetrics
	keypointSeqs map[int64][][]Keypoint
	tracks       map[int64][]Point

	prevDefenders []PlayerObservation
	prevAttackers []PlayerObservation
}

// NewAnalysisSession creates a session with the given tuning. Zero-value
// sub-configs are replaced with their defaults so a partially populated
// Config still produces sane analysis.
func NewAnalysisSession(cfg Config, opts ...SessionOption) *AnalysisSession {
	if cfg.FrameWidth == 0 || cfg.FrameHeight == 0 {
		def := DefaultConfig()
		cfg.FrameWidth, cfg.FrameHeight = def.FrameWidth, def.FrameHeight
	}
	if cfg.Court.Width == 0 {
		cfg.Court = DefaultCourtGeometry()
	}
	if cfg.Shot.MinTrajectoryLength == 0 {
		cfg.Shot = DefaultShotConfig()
	}
	if cfg.Stance.WideStancePx == 0 {
		cfg.Stance = DefaultStanceConfig()
	}
	if cfg.Movement.StrongLateralRatio == 0 {
		cfg.Movement = DefaultMovementConfig()
	}
	if cfg.Formation.MinDefenders == 0 {
		cfg.Formation = DefaultFormationConfig()
	}
	if cfg.Matchup.DistanceScalePx == 0 {
		cfg.Matchup = DefaultMatchupConfig()
	}
	if cfg.Classifier.SwitchDisplacementPx == 0 {
		cfg.Classifier = DefaultClassifierConfig()
	}
	if cfg.Aggregation.FormationWeight == 0 {
		cfg.Aggregation = DefaultAggregationConfig()
	}
	if cfg.Rotation.HelpDefenseScore == 0 {
		cfg.Rotation = DefaultRotationConfig()
	}

	s := &AnalysisSession{
		RunID:          uuid.NewString(),
		Config:         cfg,
		tracker:        UpstreamTracker{},
		assignor:       &NearestAssignor{Config: cfg.Matchup},
		formation:      NewFormationAnalyzer(cfg.Formation, cfg.Court),
		rotation:       NewRotationAnalyzer(cfg.Rotation),
		classifier:     NewDefenseTypeClassifier(cfg.Classifier),
		aggregator:     NewTeamDefenseAggregator(cfg.Aggregation),
		lastFrameIndex: -1,
		stances:        make(map[int64][]StanceMetrics),
		keypointSeqs:   make(map[int64][][]Keypoint),
		tracks:         make(map[int64][]Point),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFrame ingests one frame. Frames must arrive with strictly
// increasing indices; gaps are fine, regressions are not.
func (s *AnalysisSession) ProcessFrame(frame Frame) error {
	if frame.Index <= s.lastFrameIndex {
		return ErrOutOfOrder
	}
	s.lastFrameIndex = frame.Index
	s.frames++

	s.updateCalibration(frame)
	s.updateBall(frame)

	players := s.tracker.Track(frame.Index, frame.Players)
	defenders, attackers := splitTeams(players)

	stanceByID := make(map[int64]StanceMetrics, len(defenders))
	stanceQuality := make(map[int64]int, len(defenders))
	for i := range defenders {
		d := &defenders[i]
		s.tracks[d.PlayerID] = append(s.tracks[d.PlayerID], d.Position())
		if !d.HasPose() {
			continue
		}
		s.keypointSeqs[d.PlayerID] = append(s.keypointSeqs[d.PlayerID], d.Keypoints)
		m := AnalyzeStance(d.PlayerID, frame.Index, d, s.Config.Stance)
		s.stances[d.PlayerID] = append(s.stances[d.PlayerID], m)
		stanceByID[d.PlayerID] = m
		stanceQuality[d.PlayerID] = m.StanceQuality
	}

	snap := s.formation.Analyze(frame.Index, defenders, stanceQuality, s.calibration)
	s.snapshots = append(s.snapshots, snap)

	if len(attackers) > 0 {
		s.matchups = append(s.matchups, s.assignor.Assign(frame.Index, defenders, attackers, stanceByID)...)
	}

	if s.prevDefenders != nil {
		s.rotations = append(s.rotations,
			s.rotation.Analyze(frame.Index, s.prevDefenders, defenders, s.prevAttackers, attackers))
	}
	s.prevDefenders = defenders
	s.prevAttackers = attackers

	return nil
}

// updateCalibration prefers a calibration supplied on the frame, then a
// fit from court line evidence, then the static default. A fitted or
// supplied calibration sticks for the rest of the run.
func (s *AnalysisSession) updateCalibration(frame Frame) {
	if frame.Calibration != nil {
		s.calibration = frame.Calibration
		return
	}
	if s.calibration != nil && !s.calibration.IsDefault {
		return
	}
	if len(frame.Lines) > 0 {
		if cal := FitCalibration(frame.Lines, s.Config.FrameWidth, s.Config.FrameHeight, s.Config.Court); !cal.IsDefault {
			s.calibration = cal
			return
		}
	}
	if s.calibration == nil {
		s.calibration = DefaultCalibration(s.Config.FrameWidth, s.Config.FrameHeight, s.Config.Court)
	}
}

// updateBall records the observed ball or, during short detector
// dropouts, a linearly extrapolated position.
func (s *AnalysisSession) updateBall(frame Frame) {
	if frame.Ball != nil && !frame.Ball.IsPredicted {
		s.ball.observe(frame.Ball.Position)
		s.ballSamples = append(s.ballSamples, BallSample{
			FrameIndex: frame.Index,
			Position:   frame.Ball.Position,
		})
		return
	}
	if p, ok := s.ball.predict(); ok {
		s.ballSamples = append(s.ballSamples, BallSample{
			FrameIndex: frame.Index,
			Position:   p,
			Predicted:  true,
		})
	}
}

// Shots runs shot detection over the accumulated ball trajectory.
func (s *AnalysisSession) Shots() []Shot {
	return DetectShots(s.ballSamples, s.calibration, s.Config.Shot)
}

// StanceMetrics returns every per-frame stance evaluation, keyed by
// player.
func (s *AnalysisSession) StanceMetrics() map[int64][]StanceMetrics {
	return s.stances
}

// MovementMetrics evaluates lateral defensive movement per player over
// the full run.
func (s *AnalysisSession) MovementMetrics() map[int64]MovementMetrics {
	out := make(map[int64]MovementMetrics, len(s.keypointSeqs))
	for id, seq := range s.keypointSeqs {
		out[id] = AnalyzeMovement(id, seq, s.Config.Movement)
	}
	return out
}

// MovementProfiles builds the court-zone and heading profile for every
// tracked defender.
func (s *AnalysisSession) MovementProfiles() []MovementProfile {
	ids := make([]int64, 0, len(s.tracks))
	for id := range s.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]MovementProfile, 0, len(ids))
	for _, id := range ids {
		out = append(out, BuildMovementProfile(id, s.tracks[id], s.calibration))
	}
	return out
}

// Calibration returns the calibration currently in effect, or nil
// before the first frame.
func (s *AnalysisSession) Calibration() *CourtCalibration {
	return s.calibration
}

// FormationSnapshots returns the per-frame formation stream.
func (s *AnalysisSession) FormationSnapshots() []FormationSnapshot {
	return s.snapshots
}

// Matchups returns every matchup produced over the run.
func (s *AnalysisSession) Matchups() []Matchup {
	return s.matchups
}

// Profile aggregates the run into its final defense profile. It returns
// ErrEmptyStream when no frames were processed.
func (s *AnalysisSession) Profile() (*DefenseProfile, error) {
	if s.frames == 0 {
		return nil, ErrEmptyStream
	}

	classification := s.classifier.Classify(s.snapshots)
	profile := s.aggregator.Aggregate(
		s.snapshots, s.matchups, s.stances, s.MovementMetrics(), s.rotations, classification)

	log.Printf("[AnalysisSession] run %s: %d frames, %d defenders, %s (%.1f%% conf), overall %.1f",
		s.RunID, s.frames, profile.DefendersObserved,
		profile.PrimaryFormation, classification.Confidence, profile.OverallRating)

	return &profile, nil
}
