package scout

import (
	"math"
	"testing"
)

func TestSavgolSmooth_QuadraticExact(t *testing.T) {
	// An order-2 filter reproduces a quadratic exactly, including at the
	// clamped edge windows.
	series := make([]float64, 25)
	for i := range series {
		x := float64(i)
		series[i] = 0.5*x*x - 3*x + 7
	}

	out := savgolSmooth(series, 9, 2)
	for i := range series {
		if math.Abs(out[i]-series[i]) > 1e-6 {
			t.Errorf("index %d: got %v, want %v", i, out[i], series[i])
		}
	}
}

func TestSavgolSmooth_Degenerate(t *testing.T) {
	series := []float64{1, 2, 3}
	out := savgolSmooth(series, 9, 12)
	for i := range series {
		if out[i] != series[i] {
			t.Errorf("expected passthrough for window <= order, got %v", out)
		}
	}

	if out := savgolSmooth(nil, 9, 2); len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %v", out)
	}
}

func TestFindPeaks_Prominence(t *testing.T) {
	// One tall peak at index 3 and a small bump at index 7.
	series := []float64{0, 1, 5, 50, 5, 1, 0, 3, 0, 1}

	peaks := findPeaks(series, 10)
	if len(peaks) != 1 || peaks[0] != 3 {
		t.Errorf("expected single peak at 3, got %v", peaks)
	}

	// With a low threshold the bump qualifies too.
	peaks = findPeaks(series, 2)
	if len(peaks) != 2 || peaks[0] != 3 || peaks[1] != 7 {
		t.Errorf("expected peaks at 3 and 7, got %v", peaks)
	}
}

func TestFindPeaks_Plateau(t *testing.T) {
	// A flat top counts once, at its left edge.
	series := []float64{0, 10, 10, 10, 0}
	peaks := findPeaks(series, 5)
	if len(peaks) != 1 || peaks[0] != 1 {
		t.Errorf("expected plateau peak at 1, got %v", peaks)
	}
}

func TestBallPredictor(t *testing.T) {
	var bp ballPredictor

	if _, ok := bp.predict(); ok {
		t.Error("expected no prediction before any observation")
	}

	bp.observe(Point{100, 200})
	if _, ok := bp.predict(); ok {
		t.Error("expected no prediction with a single observation")
	}

	bp.observe(Point{110, 190})
	p, ok := bp.predict()
	if !ok {
		t.Fatal("expected a prediction after two observations")
	}
	if p.X != 120 || p.Y != 180 {
		t.Errorf("expected linear extrapolation to (120, 180), got %v", p)
	}
}
