package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/geom"
)

func line(n int, start float32) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(start+float32(i), -start-float32(i))
	}
	return pts
}

func TestNewVertexBuffer(t *testing.T) {
	b := NewVertexBuffer(8)
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, 0, b.Used())
	assert.Empty(t, b.Positions())
	assert.Empty(t, b.Indices())
	assert.True(t, b.Bounds().Empty())

	assert.Equal(t, 0, NewVertexBuffer(-4).Cap())
}

func TestAppendDirectFit(t *testing.T) {
	b := NewVertexBuffer(8)
	b.AppendPositions(line(20, 0))
	assert.Equal(t, 20, b.Used())
	assert.GreaterOrEqual(t, b.Cap(), 20)
	assert.Equal(t, 20, b.Cap(), "request larger than doubling is satisfied directly")
}

func TestAppendDoubling(t *testing.T) {
	b := NewVertexBuffer(8)
	var caps []int
	for i := 0; i < 20; i++ {
		b.AppendPositions(line(1, float32(i)))
		caps = append(caps, b.Cap())
	}
	assert.Equal(t, 20, b.Used())
	assert.Equal(t, 32, b.Cap())
	assert.Equal(t, 8, caps[7])
	assert.Equal(t, 16, caps[8])
	assert.Equal(t, 32, caps[16])
}

func TestAppendPreservesExisting(t *testing.T) {
	b := NewVertexBuffer(2)
	first := line(3, 0)
	second := line(5, 100)
	b.AppendPositions(first)
	b.AppendPositions(second)

	got := b.Positions()
	require.Len(t, got, 8)
	for i, p := range append(first, second...) {
		assert.Equal(t, p.Vertex(), got[i], "vertex %d", i)
	}
}

func TestAppendEmpty(t *testing.T) {
	b := NewVertexBuffer(4)
	b.AppendPositions(nil)
	assert.Equal(t, 0, b.Used())
	assert.Equal(t, 4, b.Cap())
}

func TestEnsureCapacityNeverShrinks(t *testing.T) {
	b := NewVertexBuffer(16)
	b.EnsureCapacity(4)
	assert.Equal(t, 16, b.Cap())
	b.EnsureCapacity(17)
	assert.Equal(t, 32, b.Cap())
	b.EnsureCapacity(100)
	assert.Equal(t, 100, b.Cap())
}

func TestAppendInvariantsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		b := NewVertexBuffer(rng.Intn(10))
		total := 0
		prevCap := b.Cap()
		for step := 0; step < 30; step++ {
			n := rng.Intn(40)
			before := b.Used()
			b.AppendPositions(line(n, float32(total)))
			total += n

			require.GreaterOrEqual(t, b.Used(), before)
			require.Equal(t, total, b.Used())
			require.GreaterOrEqual(t, b.Cap(), b.Used())
			require.GreaterOrEqual(t, b.Cap(), prevCap)
			prevCap = b.Cap()
		}
		pos := b.Positions()
		for i := range pos {
			require.Equal(t, float32(i), pos[i][0])
		}
	}
}

func TestRebuildIndices(t *testing.T) {
	b := NewVertexBuffer(4)
	b.RebuildIndices()
	assert.Empty(t, b.Indices())

	b.AppendPositions(line(6, 0))
	b.RebuildIndices()
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, b.Indices())

	again := append([]uint32(nil), b.Indices()...)
	b.RebuildIndices()
	assert.Equal(t, again, b.Indices())

	b.AppendPositions(line(2, 6))
	b.RebuildIndices()
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, b.Indices())
}

func TestBounds(t *testing.T) {
	b := NewVertexBuffer(4)
	b.AppendPositions([]geom.Point{geom.Pt(1, 2), geom.Pt(-3, 5)})
	b.AppendPositions([]geom.Point{geom.Pt(4, -1)})
	assert.Equal(t, geom.Pt(-3, -1), b.Bounds().Min)
	assert.Equal(t, geom.Pt(4, 5), b.Bounds().Max)
}

func TestSnapshotIsDetached(t *testing.T) {
	b := NewVertexBuffer(2)
	b.AppendPositions(line(3, 0))
	b.RebuildIndices()

	s := b.Snapshot()
	assert.Equal(t, 3, s.Used)
	assert.Len(t, s.Positions, 3)
	assert.Equal(t, []uint32{0, 1, 2}, s.Indices)

	b.AppendPositions(line(10, 3))
	b.RebuildIndices()
	assert.Len(t, s.Positions, 3)
	assert.Equal(t, []uint32{0, 1, 2}, s.Indices)
}
