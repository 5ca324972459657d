package scout

import (
	"gonum.org/v1/gonum/mat"
)

// Fraction of the frame used for the proportional fallback mapping when
// court line detection fails.
const defaultCalibrationInset = 0.2

// CourtCalibration maps between image pixels and court feet via a planar
// homography. A calibration is computed once per frame (or reused from an
// earlier frame) and is immutable afterwards.
type CourtCalibration struct {
	// H is the image→court homography, row-major 3x3. HInv is its inverse.
	H    [9]float64
	HInv [9]float64

	// ImageCorners are the fitted court boundary corners in image pixels,
	// ordered top-left, top-right, bottom-right, bottom-left.
	ImageCorners [4]Point

	Geometry CourtGeometry

	// IsDefault is true when line detection failed and the proportional
	// fallback mapping was substituted. Default calibrations still produce
	// results but grant no confidence boost downstream.
	IsDefault bool
}

// FitCalibration fits a calibration from detected court line segments.
// The four boundary corners are picked from the segment endpoints by the
// coordinate-sum/difference heuristics (top-left has the minimal x+y,
// bottom-right the maximal x+y, top-right the minimal y-x, bottom-left the
// maximal y-x) and mapped onto the known court corners. On any failure
// (fewer than 4 segments, degenerate quadrilateral, singular system) the
// default proportional calibration for the frame size is returned instead.
func FitCalibration(lines []LineSegment, frameWidth, frameHeight float64, geom CourtGeometry) *CourtCalibration {
	if len(lines) < 4 {
		return DefaultCalibration(frameWidth, frameHeight, geom)
	}

	corners, ok := orderCorners(segmentEndpoints(lines))
	if !ok {
		return DefaultCalibration(frameWidth, frameHeight, geom)
	}

	cal, err := newCalibration(corners, geom, false)
	if err != nil {
		return DefaultCalibration(frameWidth, frameHeight, geom)
	}
	return cal
}

// DefaultCalibration builds the fallback mapping: image corners placed at
// 20%/80% of the frame dimensions, mapped uniformly onto the court corners.
func DefaultCalibration(frameWidth, frameHeight float64, geom CourtGeometry) *CourtCalibration {
	lo := defaultCalibrationInset
	hi := 1 - defaultCalibrationInset
	corners := [4]Point{
		{frameWidth * lo, frameHeight * lo}, // Top-left
		{frameWidth * hi, frameHeight * lo}, // Top-right
		{frameWidth * hi, frameHeight * hi}, // Bottom-right
		{frameWidth * lo, frameHeight * hi}, // Bottom-left
	}

	// The fallback corners are axis-aligned and non-degenerate, so the
	// homography always exists.
	cal, err := newCalibration(corners, geom, true)
	if err != nil {
		panic("scout: default calibration is singular: " + err.Error())
	}
	return cal
}

// ImageToCourt maps an image pixel position to court feet.
func (c *CourtCalibration) ImageToCourt(p Point) Point {
	return applyHomography(c.H, p)
}

// CourtToImage maps a court position in feet back to image pixels.
func (c *CourtCalibration) CourtToImage(p Point) Point {
	return applyHomography(c.HInv, p)
}

// BasketImagePosition returns the basket reference point in image pixels.
func (c *CourtCalibration) BasketImagePosition() Point {
	return c.CourtToImage(c.Geometry.Basket())
}

// segmentEndpoints flattens segments into their endpoint list.
func segmentEndpoints(lines []LineSegment) []Point {
	pts := make([]Point, 0, len(lines)*2)
	for _, l := range lines {
		pts = append(pts, l.P1, l.P2)
	}
	return pts
}

// orderCorners selects and orders the four boundary corners from candidate
// points. Returns ok=false when the candidates collapse into fewer than
// four distinct corners or the resulting quadrilateral has no area.
func orderCorners(pts []Point) ([4]Point, bool) {
	var out [4]Point
	if len(pts) < 4 {
		return out, false
	}

	tl, tr, br, bl := pts[0], pts[0], pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X+p.Y < tl.X+tl.Y {
			tl = p
		}
		if p.X+p.Y > br.X+br.Y {
			br = p
		}
		if p.Y-p.X < tr.Y-tr.X {
			tr = p
		}
		if p.Y-p.X > bl.Y-bl.X {
			bl = p
		}
	}
	out = [4]Point{tl, tr, br, bl}

	// Reject degenerate fits: repeated corners or near-zero area.
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if out[i].DistanceTo(out[j]) < 1 {
				return out, false
			}
		}
	}
	if quadArea(out) < 1 {
		return out, false
	}
	return out, true
}

// quadArea computes the shoelace area of an ordered quadrilateral.
func quadArea(q [4]Point) float64 {
	var s float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		s += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	if s < 0 {
		s = -s
	}
	return s / 2
}

// newCalibration solves the 4-point homography from the ordered image
// corners onto the court corners and caches its inverse.
func newCalibration(imageCorners [4]Point, geom CourtGeometry, isDefault bool) (*CourtCalibration, error) {
	h, err := solveHomography(imageCorners, geom.Corners())
	if err != nil {
		return nil, err
	}
	hInv, err := invertHomography(h)
	if err != nil {
		return nil, err
	}
	return &CourtCalibration{
		H:            h,
		HInv:         hInv,
		ImageCorners: imageCorners,
		Geometry:     geom,
		IsDefault:    isDefault,
	}, nil
}

// solveHomography computes the 3x3 projective transform mapping src[i] to
// dst[i] for four point pairs, using the standard DLT formulation with
// h22 fixed to 1: an 8x8 linear system solved with gonum.
func solveHomography(src, dst [4]Point) ([9]float64, error) {
	var h [9]float64

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y

		a.SetRow(2*i, []float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx})
		b.SetVec(2*i, dx)
		a.SetRow(2*i+1, []float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy})
		b.SetVec(2*i+1, dy)
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return h, err
	}
	for i := 0; i < 8; i++ {
		h[i] = x.AtVec(i)
	}
	h[8] = 1
	return h, nil
}

// invertHomography inverts a row-major 3x3 matrix with gonum.
func invertHomography(h [9]float64) ([9]float64, error) {
	var out [9]float64
	m := mat.NewDense(3, 3, h[:])
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return out, err
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c)
		}
	}
	return out, nil
}

// applyHomography applies a homography to a point in homogeneous
// coordinates.
func applyHomography(h [9]float64, p Point) Point {
	x := h[0]*p.X + h[1]*p.Y + h[2]
	y := h[3]*p.X + h[4]*p.Y + h[5]
	w := h[6]*p.X + h[7]*p.Y + h[8]
	if w == 0 {
		return Point{}
	}
	return Point{X: x / w, Y: y / w}
}
