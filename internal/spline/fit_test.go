package spline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/geom"
)

const eps = 1e-4

var zigzag = []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0), geom.Pt(3, 1)}

func TestFitSegmentCounts(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(4, 3), geom.Pt(8, 0), geom.Pt(12, 3), geom.Pt(16, 0)}
	tests := []struct {
		name   string
		basis  Basis
		cyclic bool
		want   int
	}{
		{"catmull-rom open", CatmullRom, false, 4},
		{"catmull-rom cyclic", CatmullRom, true, 5},
		{"b-spline open", BSpline, false, 2},
		{"b-spline cyclic", BSpline, true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Fit(pts, tt.basis, tt.cyclic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Segments())
		})
	}
}

func TestFitInsufficientData(t *testing.T) {
	for _, basis := range []Basis{CatmullRom, BSpline} {
		for n := 0; n < 4; n++ {
			_, err := Fit(zigzag[:n], basis, false)
			assert.ErrorIs(t, err, ErrInsufficientData, "%v with %d points", basis, n)
		}
	}
	_, err := FitHermite(zigzag[:1], []geom.Point{{}}, false)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitDegenerate(t *testing.T) {
	same := []geom.Point{geom.Pt(2, 2), geom.Pt(2, 2), geom.Pt(2, 2), geom.Pt(2, 2)}
	_, err := Fit(same, CatmullRom, false)
	assert.ErrorIs(t, err, ErrDegenerate)

	nan := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(float32(math.NaN()), 0), geom.Pt(3, 1)}
	_, err = Fit(nan, BSpline, false)
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.NotErrorIs(t, err, ErrContractViolation)
}

func TestFitHermiteRequiresTangents(t *testing.T) {
	_, err := Fit(zigzag, Hermite, false)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = FitHermite(zigzag, zigzag[:3], false)
	assert.ErrorIs(t, err, ErrTangentMismatch)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestCatmullRomInterpolatesControlPoints(t *testing.T) {
	c, err := Fit(zigzag, CatmullRom, false)
	require.NoError(t, err)
	require.Equal(t, 3, c.Segments())

	for i, p := range zigzag {
		got := c.Position(float32(i))
		assert.True(t, got.ApproxEqual(p, eps), "t=%d: got %v want %v", i, got, p)
	}
}

func TestCatmullRomEndpointsSampled(t *testing.T) {
	inputs := [][]geom.Point{
		zigzag,
		{geom.Pt(-10, 4), geom.Pt(3, 9), geom.Pt(7, -2), geom.Pt(20, 20), geom.Pt(21, 5)},
		{geom.Pt(100, 100), geom.Pt(101, 100), geom.Pt(140, 90), geom.Pt(141, 60)},
	}
	for _, pts := range inputs {
		c, err := Fit(pts, CatmullRom, false)
		require.NoError(t, err)
		for _, n := range []int{2, 3, 7, 40} {
			s := Sample(c, n)
			require.Len(t, s, n)
			assert.True(t, s[0].ApproxEqual(pts[0], eps), "first of %d: %v", n, s[0])
			assert.True(t, s[n-1].ApproxEqual(pts[len(pts)-1], eps), "last of %d: %v", n, s[n-1])
		}
	}
}

func TestCatmullRomCyclicCloses(t *testing.T) {
	c, err := Fit(zigzag, CatmullRom, true)
	require.NoError(t, err)
	start := c.Position(0)
	end := c.Position(float32(c.Segments()))
	assert.True(t, start.ApproxEqual(end, eps), "start %v end %v", start, end)
	assert.True(t, start.ApproxEqual(zigzag[0], eps))
}

func TestBSplineApproximates(t *testing.T) {
	c, err := Fit(zigzag, BSpline, false)
	require.NoError(t, err)
	require.Equal(t, 1, c.Segments())

	// Uniform cubic B-spline starts at (p0 + 4p1 + p2) / 6.
	want := geom.Pt((0+4+2)/6.0, (0+4+0)/6.0)
	assert.True(t, c.Position(0).ApproxEqual(want, eps), "got %v", c.Position(0))
	assert.False(t, c.Position(0).ApproxEqual(zigzag[0], eps))
}

func TestHermiteUsesTangents(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}
	flat := []geom.Point{geom.Pt(10, 0), geom.Pt(10, 0)}
	c, err := FitHermite(pts, flat, false)
	require.NoError(t, err)
	require.Equal(t, 1, c.Segments())
	assert.True(t, c.Position(0.5).ApproxEqual(geom.Pt(5, 0), eps))

	up := []geom.Point{geom.Pt(0, 20), geom.Pt(0, -20)}
	c, err = FitHermite(pts, up, false)
	require.NoError(t, err)
	assert.Greater(t, c.Position(0.5).Y, float32(1))
	assert.True(t, c.Position(1).ApproxEqual(pts[1], eps))

	c, err = FitHermite(pts, flat, true)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Segments())
	assert.True(t, c.Position(2).ApproxEqual(pts[0], eps))
}

func TestHermiteTangents(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(4, 2)}
	open := HermiteTangents(pts, false)
	assert.Equal(t, []geom.Point{geom.Pt(2, 0), geom.Pt(2, 1), geom.Pt(2, 2)}, open)

	two := HermiteTangents(pts[:2], false)
	assert.Equal(t, []geom.Point{geom.Pt(2, 0), geom.Pt(2, 0)}, two)

	cyc := HermiteTangents(pts, true)
	assert.Equal(t, geom.Pt(-1, -1), cyc[0])
	assert.Len(t, HermiteTangents(nil, false), 0)
}

func TestParseBasis(t *testing.T) {
	tests := []struct {
		in   string
		want Basis
	}{
		{"catmull-rom", CatmullRom},
		{"Cardinal", CatmullRom},
		{"", CatmullRom},
		{"hermite", Hermite},
		{"B", BSpline},
		{"b-spline", BSpline},
	}
	for _, tt := range tests {
		got, err := ParseBasis(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseBasis("nurbs")
	assert.Error(t, err)
}

func TestBasisText(t *testing.T) {
	for _, b := range []Basis{CatmullRom, Hermite, BSpline} {
		text, err := b.MarshalText()
		require.NoError(t, err)
		var back Basis
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, b, back)
	}
	assert.Equal(t, "Cardinal", CatmullRom.String())
	assert.Equal(t, "B", BSpline.String())
	assert.Equal(t, "Cyclic", CyclingLabel(true))
	assert.Equal(t, "Not Cyclic", CyclingLabel(false))
}
