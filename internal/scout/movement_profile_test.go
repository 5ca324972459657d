package scout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyCourtZone(t *testing.T) {
	geom := DefaultCourtGeometry()
	tests := []struct {
		name string
		pos  Point
		want CourtZone
	}{
		{"under the rim", Point{25, 3}, CourtZonePaint},
		{"free throw line", Point{25, 14}, CourtZonePaint},
		{"left corner", Point{2, 10}, CourtZoneLeftCorner},
		{"right corner", Point{48, 10}, CourtZoneRightCorner},
		{"top of the key", Point{25, 22}, CourtZoneTopOfKey},
		{"left wing", Point{10, 30}, CourtZoneLeftWing},
		{"right wing", Point{40, 30}, CourtZoneRightWing},
		{"backcourt", Point{25, 60}, CourtZoneBackcourt},
		{"paint boundary with float error", Point{25, 15.0000000001}, CourtZonePaint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCourtZone(tt.pos, geom); got != tt.want {
				t.Errorf("ClassifyCourtZone(%v) = %s, want %s", tt.pos, got, tt.want)
			}
		})
	}
}

func TestClassifyDirection(t *testing.T) {
	// Image y grows downward: negative dy means up.
	tests := []struct {
		dx, dy float64
		want   MoveDirection
	}{
		{10, 0, DirRight},
		{-10, 0, DirLeft},
		{0, -10, DirUp},
		{0, 10, DirDown},
		{10, -10, DirUpRight},
		{-10, 10, DirDownLeft},
	}
	for _, tt := range tests {
		if got := classifyDirection(tt.dx, tt.dy); got != tt.want {
			t.Errorf("classifyDirection(%v, %v) = %s, want %s", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestBuildMovementProfile_Uncalibrated(t *testing.T) {
	track := []Point{{100, 400}, {150, 400}, {200, 400}}
	p := BuildMovementProfile(4, track, nil)

	if p.PlayerID != 4 || p.Calibrated {
		t.Errorf("unexpected identity/calibration: %+v", p)
	}
	if p.TotalDistance != 100 {
		t.Errorf("expected 100px travelled, got %v", p.TotalDistance)
	}
	if p.AverageSpeed != 50 {
		t.Errorf("expected 50px per step, got %v", p.AverageSpeed)
	}
	if len(p.ZoneOccupancy) != 0 {
		t.Errorf("zones require a calibration, got %v", p.ZoneOccupancy)
	}
	if p.DominantDirection != DirRight {
		t.Errorf("expected rightward tendency, got %s", p.DominantDirection)
	}
	want := map[MoveDirection]float64{DirRight: 100}
	if diff := cmp.Diff(want, p.DirectionTendency); diff != "" {
		t.Errorf("direction tendency mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMovementProfile_JitterIgnored(t *testing.T) {
	// Sub-threshold wobble produces no directional tallies.
	track := []Point{{100, 400}, {100.5, 400.5}, {100, 400}}
	p := BuildMovementProfile(1, track, nil)
	if len(p.DirectionTendency) != 0 || p.DominantDirection != "" {
		t.Errorf("expected jitter to be filtered, got %+v", p.DirectionTendency)
	}
}

func TestBuildMovementProfile_Calibrated(t *testing.T) {
	geom := DefaultCourtGeometry()
	cal := DefaultCalibration(1920, 1080, geom)

	// Walk the paint in court terms: a straight 10ft move ending at
	// the free throw line. The endpoint round-trips through the
	// homography with a little float error and must still land in
	// the paint.
	track := []Point{
		cal.CourtToImage(Point{25, 5}),
		cal.CourtToImage(Point{25, 15}),
	}
	p := BuildMovementProfile(2, track, cal)

	if !p.Calibrated {
		t.Fatal("expected a calibrated profile")
	}
	if p.TotalDistance != 10 {
		t.Errorf("expected 10ft travelled, got %v", p.TotalDistance)
	}
	if p.ZoneOccupancy[CourtZonePaint] != 100 {
		t.Errorf("expected full paint occupancy, got %v", p.ZoneOccupancy)
	}
}

func TestBuildMovementProfile_Empty(t *testing.T) {
	p := BuildMovementProfile(1, nil, nil)
	if p.TotalDistance != 0 || len(p.ZoneOccupancy) != 0 || len(p.DirectionTendency) != 0 {
		t.Errorf("expected zeroed profile, got %+v", p)
	}
}
