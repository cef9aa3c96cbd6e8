// Package mesh holds the per-stroke line-strip geometry handed to the
// renderer.
package mesh

import (
	"InkBoard/internal/geom"
	"InkBoard/internal/logger"
)

// DefaultCapacity is the number of vertex slots a new stroke starts with.
const DefaultCapacity = 2048

// VertexBuffer stores positions with amortized growth and a line-strip
// index list over the valid prefix. Capacity only grows.
//
// A VertexBuffer is owned by a single stroke and is not safe for
// concurrent use.
type VertexBuffer struct {
	// positions has len == capacity; only [0, used) is meaningful.
	positions []geom.Vertex
	used      int
	indices   []uint32
	bounds    geom.Rect
}

// NewVertexBuffer creates an empty buffer with room for capacity vertices.
func NewVertexBuffer(capacity int) *VertexBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &VertexBuffer{
		positions: make([]geom.Vertex, capacity),
		indices:   make([]uint32, 0, capacity),
	}
}

// Cap returns the number of vertex slots allocated.
func (b *VertexBuffer) Cap() int {
	return len(b.positions)
}

// Used returns the number of valid leading vertices.
func (b *VertexBuffer) Used() int {
	return b.used
}

// EnsureCapacity grows the storage to max(n, 2*Cap()) when Cap() < n,
// keeping the valid vertices.
func (b *VertexBuffer) EnsureCapacity(n int) {
	if len(b.positions) >= n {
		return
	}
	grown := max(n, len(b.positions)*2)
	next := make([]geom.Vertex, grown)
	copy(next, b.positions[:b.used])
	logger.Logger().Debug("vertex buffer resized", "from", len(b.positions), "to", grown, "used", b.used)
	b.positions = next
}

// AppendPositions writes points after the valid prefix, growing as needed.
// Indices are stale until RebuildIndices is called.
func (b *VertexBuffer) AppendPositions(points []geom.Point) {
	if len(points) == 0 {
		return
	}
	b.EnsureCapacity(b.used + len(points))
	for i, p := range points {
		b.positions[b.used+i] = p.Vertex()
		b.bounds = b.bounds.Extend(p)
	}
	b.used += len(points)
}

// RebuildIndices regenerates the line strip 0..Used()-1.
func (b *VertexBuffer) RebuildIndices() {
	b.indices = b.indices[:0]
	for i := range b.used {
		b.indices = append(b.indices, uint32(i))
	}
}

// Positions returns the valid vertices. The slice aliases the buffer.
func (b *VertexBuffer) Positions() []geom.Vertex {
	return b.positions[:b.used]
}

// Indices returns the index list as of the last RebuildIndices.
func (b *VertexBuffer) Indices() []uint32 {
	return b.indices
}

// Bounds returns the bounding box of every vertex written so far.
func (b *VertexBuffer) Bounds() geom.Rect {
	return b.bounds
}

// Snapshot is a copy of a buffer's renderable state.
type Snapshot struct {
	Positions []geom.Vertex
	Indices   []uint32
	Used      int
	Bounds    geom.Rect
}

// Snapshot copies the valid vertices and indices so a renderer can upload
// them while the stroke keeps growing.
func (b *VertexBuffer) Snapshot() Snapshot {
	s := Snapshot{
		Positions: make([]geom.Vertex, b.used),
		Indices:   make([]uint32, len(b.indices)),
		Used:      b.used,
		Bounds:    b.bounds,
	}
	copy(s.Positions, b.positions[:b.used])
	copy(s.Indices, b.indices)
	return s
}
