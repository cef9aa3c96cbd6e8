package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Pt(0, 0).Distance(Pt(3, 4)), 1e-6)
	assert.Equal(t, float32(0), Pt(2, 2).Distance(Pt(2, 2)))
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Pt(1, -1).IsFinite())
	assert.False(t, Pt(float32(math.NaN()), 0).IsFinite())
	assert.False(t, Pt(0, float32(math.Inf(1))).IsFinite())
}

func TestVertexRoundTrip(t *testing.T) {
	v := Pt(1.5, -2).Vertex()
	assert.Equal(t, Vertex{1.5, -2, 0}, v)
	assert.Equal(t, Pt(1.5, -2), v.Point())
}

func rectOf(points ...Point) Rect {
	var r Rect
	for _, p := range points {
		r = r.Extend(p)
	}
	return r
}

func TestRectExtend(t *testing.T) {
	require.True(t, Rect{}.Empty())

	r := rectOf(Pt(1, 5), Pt(-2, 3), Pt(4, -1))
	require.False(t, r.Empty())
	assert.Equal(t, Pt(-2, -1), r.Min)
	assert.Equal(t, Pt(4, 5), r.Max)
	assert.Equal(t, float32(6), r.Width())
	assert.Equal(t, float32(6), r.Height())
}

func TestRectUnionAndOverlap(t *testing.T) {
	a := rectOf(Pt(0, 0), Pt(2, 2))
	b := rectOf(Pt(3, 3), Pt(4, 4))
	assert.False(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Rect{}))
	assert.True(t, a.Overlaps(rectOf(Pt(2, 2), Pt(5, 5))))

	u := a.Union(b)
	assert.Equal(t, Pt(0, 0), u.Min)
	assert.Equal(t, Pt(4, 4), u.Max)
	assert.True(t, u.Overlaps(a))
	assert.Equal(t, a, a.Union(Rect{}))
	assert.Equal(t, b, Rect{}.Union(b))
}
