package spline

import (
	"fmt"
	"strings"
)

// Basis selects the cubic basis used to build a curve from control points.
type Basis uint8

const (
	// CatmullRom interpolates every control point, deriving each tangent
	// from the neighbouring points. It is the basis for live freehand input.
	CatmullRom Basis = iota
	// Hermite interpolates control points with explicitly supplied tangents.
	Hermite
	// BSpline is a uniform cubic B-spline. It approximates the control
	// points without passing through them.
	BSpline
)

func (b Basis) String() string {
	switch b {
	case CatmullRom:
		return "Cardinal"
	case Hermite:
		return "Hermite"
	case BSpline:
		return "B"
	default:
		return fmt.Sprintf("Basis(%d)", uint8(b))
	}
}

// MinPoints is the smallest number of control points the basis can fit.
func (b Basis) MinPoints() int {
	if b == Hermite {
		return 2
	}
	return 4
}

// ParseBasis accepts the config spellings ("catmull-rom", "hermite",
// "b-spline") as well as the display names returned by String.
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "catmull-rom", "catmullrom", "cardinal":
		return CatmullRom, nil
	case "hermite":
		return Hermite, nil
	case "b-spline", "bspline", "b":
		return BSpline, nil
	}
	return 0, fmt.Errorf("spline: unknown basis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Basis) MarshalText() ([]byte, error) {
	switch b {
	case CatmullRom:
		return []byte("catmull-rom"), nil
	case Hermite:
		return []byte("hermite"), nil
	case BSpline:
		return []byte("b-spline"), nil
	}
	return nil, fmt.Errorf("spline: unknown basis %d", uint8(b))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Basis) UnmarshalText(text []byte) error {
	v, err := ParseBasis(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// CyclingLabel renders the cyclic flag the way the mode overlay shows it.
func CyclingLabel(cyclic bool) string {
	if cyclic {
		return "Cyclic"
	}
	return "Not Cyclic"
}

// Characteristic matrices. Row r holds the weights of the four segment
// inputs for the t^r coefficient.
var (
	// Cardinal spline with tension 0.5.
	catmullRomMatrix = [4][4]float64{
		{0, 1, 0, 0},
		{-0.5, 0, 0.5, 0},
		{1, -2.5, 2, -0.5},
		{-0.5, 1.5, -1.5, 0.5},
	}

	bSplineMatrix = [4][4]float64{
		{1.0 / 6, 4.0 / 6, 1.0 / 6, 0},
		{-3.0 / 6, 0, 3.0 / 6, 0},
		{3.0 / 6, -6.0 / 6, 3.0 / 6, 0},
		{-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6},
	}

	// Inputs are ordered p0, v0, p1, v1.
	hermiteMatrix = [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{-3, -2, 3, -1},
		{2, 1, -2, 1},
	}
)
