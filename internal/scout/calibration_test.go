package scout

import (
	"math"
	"testing"
)

func TestFitCalibration_TooFewLines(t *testing.T) {
	geom := DefaultCourtGeometry()
	cal := FitCalibration(rectLines(100, 100, 800, 600)[:2], 1920, 1080, geom)
	if !cal.IsDefault {
		t.Error("expected default calibration with fewer than 4 segments")
	}
}

func TestFitCalibration_Degenerate(t *testing.T) {
	geom := DefaultCourtGeometry()
	// All endpoints coincide: no usable corners.
	p := Point{500, 500}
	lines := []LineSegment{{p, p}, {p, p}, {p, p}, {p, p}}
	cal := FitCalibration(lines, 1920, 1080, geom)
	if !cal.IsDefault {
		t.Error("expected default calibration for degenerate line evidence")
	}
}

func TestFitCalibration_CornerMapping(t *testing.T) {
	geom := DefaultCourtGeometry()
	cal := FitCalibration(rectLines(384, 216, 1536, 864), 1920, 1080, geom)
	if cal.IsDefault {
		t.Fatal("expected fitted calibration")
	}

	// The fitted image corners must map onto the court corners in order.
	courtCorners := geom.Corners()
	for i, ic := range cal.ImageCorners {
		got := cal.ImageToCourt(ic)
		want := courtCorners[i]
		if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
			t.Errorf("corner %d: ImageToCourt(%v) = %v, want %v", i, ic, got, want)
		}
	}
}

func TestCalibration_RoundTrip(t *testing.T) {
	geom := DefaultCourtGeometry()
	cal := DefaultCalibration(1920, 1080, geom)

	for _, p := range []Point{{500, 400}, {960, 540}, {1400, 900}, {0, 0}} {
		back := cal.CourtToImage(cal.ImageToCourt(p))
		if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}

func TestDefaultCalibration_BasketPosition(t *testing.T) {
	geom := DefaultCourtGeometry()
	cal := DefaultCalibration(1920, 1080, geom)

	// The basket sits at mid-width on the baseline: with a 20% inset the
	// image position is (960, 216).
	basket := cal.BasketImagePosition()
	if math.Abs(basket.X-960) > 1e-6 || math.Abs(basket.Y-216) > 1e-6 {
		t.Errorf("basket image position = %v, want (960, 216)", basket)
	}
	if !cal.IsDefault {
		t.Error("expected IsDefault on fallback calibration")
	}
}
