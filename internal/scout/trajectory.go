package scout

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BallSample is one entry of the per-clip ball position series. Frames
// where the ball was neither detected nor predictable are simply absent
// from the series.
type BallSample struct {
	FrameIndex int
	Position   Point
	Predicted  bool // True when linearly extrapolated rather than detected
}

// ballPredictor fills detection gaps with short-horizon linear
// extrapolation from the last two known positions. It is run-scoped state
// owned by an AnalysisSession.
type ballPredictor struct {
	history []Point // Last two known (detected or predicted) positions
}

// observe records a detected position.
func (bp *ballPredictor) observe(p Point) {
	bp.history = append(bp.history, p)
	if len(bp.history) > 2 {
		bp.history = bp.history[len(bp.history)-2:]
	}
}

// predict extrapolates the next position from the last two known ones.
// Returns ok=false when fewer than two positions have been seen.
func (bp *ballPredictor) predict() (Point, bool) {
	if len(bp.history) < 2 {
		return Point{}, false
	}
	prev := bp.history[len(bp.history)-1]
	prev2 := bp.history[len(bp.history)-2]
	next := Point{
		X: prev.X + (prev.X - prev2.X),
		Y: prev.Y + (prev.Y - prev2.Y),
	}
	return next, true
}

// savgolSmooth applies a Savitzky-Golay filter to the series: each output
// value is the least-squares polynomial fit of the surrounding window
// evaluated at the centre index. Windows are clamped at the series edges,
// so an order-p polynomial input is reproduced exactly everywhere. The
// window is forced odd and never exceeds the series length; degenerate
// parameters fall back to a copy of the input.
func savgolSmooth(series []float64, window, order int) []float64 {
	n := len(series)
	out := make([]float64, n)
	copy(out, series)
	if n == 0 || order < 0 {
		return out
	}
	if window > n {
		window = n
	}
	if window%2 == 0 {
		window--
	}
	if window <= order {
		return out
	}

	half := window / 2
	for i := 0; i < n; i++ {
		lo := i - half
		hi := i + half
		if lo < 0 {
			hi -= lo
			lo = 0
		}
		if hi >= n {
			lo -= hi - n + 1
			hi = n - 1
		}
		out[i] = polyfitEval(series[lo:hi+1], float64(i-lo), order)
	}
	return out
}

// polyfitEval fits an order-p polynomial to the window by least squares and
// evaluates it at position t (window-local index). Falls back to the
// nearest sample when the normal equations are singular.
func polyfitEval(window []float64, t float64, order int) float64 {
	m := len(window)
	a := mat.NewDense(m, order+1, nil)
	b := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		x := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, x)
			x *= float64(i)
		}
		b.SetVec(i, window[i])
	}

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		idx := int(math.Round(t))
		if idx < 0 {
			idx = 0
		}
		if idx >= m {
			idx = m - 1
		}
		return window[idx]
	}

	v := 0.0
	x := 1.0
	for j := 0; j <= order; j++ {
		v += coef.AtVec(j) * x
		x *= t
	}
	return v
}

// findPeaks returns indices of local maxima whose prominence is at least
// minProminence. Prominence follows the usual definition: the height of
// the peak above the higher of the two minima separating it from the
// nearest higher terrain (or the series edge).
func findPeaks(series []float64, minProminence float64) []int {
	n := len(series)
	if n < 3 {
		return nil
	}

	var peaks []int
	for i := 1; i < n-1; i++ {
		if !isLocalMax(series, i) {
			continue
		}
		if peakProminence(series, i) >= minProminence {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// isLocalMax reports whether index i tops its neighbours, treating plateaus
// as a single peak at their left edge.
func isLocalMax(series []float64, i int) bool {
	if series[i] <= series[i-1] {
		return false
	}
	for j := i + 1; j < len(series); j++ {
		if series[j] > series[i] {
			return false
		}
		if series[j] < series[i] {
			return true
		}
	}
	// Plateau runs to the right edge.
	return true
}

// peakProminence computes the prominence of the peak at index i.
func peakProminence(series []float64, i int) float64 {
	peak := series[i]

	leftMin := peak
	for j := i - 1; j >= 0; j-- {
		if series[j] > peak {
			break
		}
		if series[j] < leftMin {
			leftMin = series[j]
		}
	}

	rightMin := peak
	for j := i + 1; j < len(series); j++ {
		if series[j] > peak {
			break
		}
		if series[j] < rightMin {
			rightMin = series[j]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return peak - base
}
