package spline

import (
	"errors"
	"fmt"

	"InkBoard/internal/geom"
)

var (
	// ErrInsufficientData means the basis needs more control points. It is
	// an expected state while a stroke is still short.
	ErrInsufficientData = errors.New("spline: insufficient data")

	// ErrDegenerate means enough points were given but no usable curve
	// exists: non-finite coordinates or every point coincident.
	ErrDegenerate = errors.New("spline: degenerate control points")

	// ErrContractViolation marks caller errors that must not be retried.
	ErrContractViolation = errors.New("contract violation")

	// ErrTangentMismatch is returned by FitHermite when points and tangents
	// differ in length.
	ErrTangentMismatch = fmt.Errorf("%w: spline: point and tangent counts differ", ErrContractViolation)
)

// Fit builds a curve through points with the Catmull-Rom or B-spline basis.
// Hermite needs tangents and must go through FitHermite.
func Fit(points []geom.Point, basis Basis, cyclic bool) (*Curve, error) {
	if basis == Hermite {
		return nil, fmt.Errorf("%w: spline: hermite basis requires tangents", ErrContractViolation)
	}
	if len(points) < basis.MinPoints() {
		return nil, ErrInsufficientData
	}
	if err := checkDegenerate(points); err != nil {
		return nil, err
	}

	switch basis {
	case CatmullRom:
		return catmullRom(points, cyclic), nil
	case BSpline:
		return bSpline(points, cyclic), nil
	}
	return nil, fmt.Errorf("%w: spline: unknown basis %d", ErrContractViolation, uint8(basis))
}

// FitHermite builds a curve through points using one tangent per point.
func FitHermite(points, tangents []geom.Point, cyclic bool) (*Curve, error) {
	if len(points) != len(tangents) {
		return nil, fmt.Errorf("%w (%d points, %d tangents)", ErrTangentMismatch, len(points), len(tangents))
	}
	if len(points) < Hermite.MinPoints() {
		return nil, ErrInsufficientData
	}
	if err := checkDegenerate(points); err != nil {
		return nil, err
	}
	for _, v := range tangents {
		if !v.IsFinite() {
			return nil, ErrDegenerate
		}
	}

	n := len(points)
	count := n - 1
	if cyclic {
		count = n
	}
	c := &Curve{segments: make([]segment, 0, count)}
	for i := range count {
		j := (i + 1) % n
		in := [4]vec2{toVec(points[i]), toVec(tangents[i]), toVec(points[j]), toVec(tangents[j])}
		c.segments = append(c.segments, newSegment(in, &hermiteMatrix))
	}
	return c, nil
}

// HermiteTangents derives a tangent for each point from its neighbours:
// half of next minus previous, or the plain one-sided difference at the
// ends of an open curve.
func HermiteTangents(points []geom.Point, cyclic bool) []geom.Point {
	n := len(points)
	out := make([]geom.Point, n)
	if n < 2 {
		return out
	}
	for i := range n {
		switch {
		case cyclic:
			out[i] = points[(i+1)%n].Sub(points[(i+n-1)%n]).Mul(0.5)
		case i == 0:
			out[i] = points[1].Sub(points[0])
		case i == n-1:
			out[i] = points[i].Sub(points[i-1])
		default:
			out[i] = points[i+1].Sub(points[i-1]).Mul(0.5)
		}
	}
	return out
}

func checkDegenerate(points []geom.Point) error {
	coincident := true
	for i, p := range points {
		if !p.IsFinite() {
			return ErrDegenerate
		}
		if i > 0 && p != points[0] {
			coincident = false
		}
	}
	if coincident {
		return ErrDegenerate
	}
	return nil
}

// catmullRom mirrors the neighbours of the first and last point outward so
// that open curves start and end exactly on the outer control points.
func catmullRom(points []geom.Point, cyclic bool) *Curve {
	n := len(points)
	if cyclic {
		c := &Curve{segments: make([]segment, 0, n)}
		for i := range n {
			in := [4]vec2{
				toVec(points[(i+n-1)%n]),
				toVec(points[i]),
				toVec(points[(i+1)%n]),
				toVec(points[(i+2)%n]),
			}
			c.segments = append(c.segments, newSegment(in, &catmullRomMatrix))
		}
		return c
	}

	ext := make([]vec2, 0, n+2)
	ext = append(ext, toVec(points[0].Mul(2).Sub(points[1])))
	for _, p := range points {
		ext = append(ext, toVec(p))
	}
	ext = append(ext, toVec(points[n-1].Mul(2).Sub(points[n-2])))
	return windowed(ext, &catmullRomMatrix)
}

func bSpline(points []geom.Point, cyclic bool) *Curve {
	n := len(points)
	if cyclic {
		c := &Curve{segments: make([]segment, 0, n)}
		for i := range n {
			var in [4]vec2
			for k := range 4 {
				in[k] = toVec(points[(i+k)%n])
			}
			c.segments = append(c.segments, newSegment(in, &bSplineMatrix))
		}
		return c
	}
	ext := make([]vec2, n)
	for i, p := range points {
		ext[i] = toVec(p)
	}
	return windowed(ext, &bSplineMatrix)
}

// windowed emits one segment per run of four consecutive inputs.
func windowed(in []vec2, m *[4][4]float64) *Curve {
	c := &Curve{segments: make([]segment, 0, max(len(in)-3, 0))}
	for i := 0; i+4 <= len(in); i++ {
		c.segments = append(c.segments, newSegment([4]vec2(in[i:i+4]), m))
	}
	return c
}
