package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"InkBoard/internal/geom"
	"InkBoard/internal/mesh"
)

// Stroke is one continuous drag: an append-only list of committed points,
// the queue of points not merged yet, and the vertex buffer rendered so far.
//
// Points are handed over through the pending queue so the input side never
// touches the committed list. Update and Close serialize on the stroke, so
// at most one update of a stroke runs at a time.
type Stroke struct {
	ID      string
	Source  Source
	Created time.Time

	cfg Config

	// inMu guards the hand-off from the input side.
	inMu      sync.Mutex
	pending   []geom.Point
	finalized bool

	// mu guards the tessellation state. Lock order: mu, then inMu.
	mu        sync.Mutex
	points    []geom.Point
	processed int
	phase     Phase
	buf       *mesh.VertexBuffer
}

func newStroke(id string, src Source, cfg Config) *Stroke {
	return &Stroke{
		ID:      id,
		Source:  src,
		Created: time.Now(),
		cfg:     cfg,
		pending: make([]geom.Point, 0, 32),
		points:  make([]geom.Point, 0, cfg.InitialCapacity),
		buf:     mesh.NewVertexBuffer(cfg.InitialCapacity),
	}
}

// Config returns the tuning the stroke was opened with.
func (s *Stroke) Config() Config {
	return s.cfg
}

// Push queues raw samples for the next update. A batch holding a NaN or
// infinite coordinate is rejected whole.
func (s *Stroke) Push(points ...geom.Point) error {
	for i, p := range points {
		if !p.IsFinite() {
			return fmt.Errorf("%w: sample %d of %s is (%v, %v)", ErrInvalidPoint, i, s.ID, p.X, p.Y)
		}
	}

	s.inMu.Lock()
	defer s.inMu.Unlock()
	if s.finalized {
		return fmt.Errorf("%w: push to %s", ErrFinalized, s.ID)
	}
	s.pending = append(s.pending, points...)
	return nil
}

// Pending returns the number of queued, unmerged points.
func (s *Stroke) Pending() int {
	s.inMu.Lock()
	defer s.inMu.Unlock()
	return len(s.pending)
}

// Points returns a copy of the committed points.
func (s *Stroke) Points() []geom.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.points)
}

// Processed returns the watermark: committed points before this index are
// already reflected in the buffer.
func (s *Stroke) Processed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed
}

// Phase returns the current tessellation phase.
func (s *Stroke) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Vertices returns the number of valid vertices in the buffer.
func (s *Stroke) Vertices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Used()
}

// Bounds returns the bounding box of the vertices tessellated so far.
func (s *Stroke) Bounds() geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Bounds()
}

// Snapshot copies the renderable buffer state.
func (s *Stroke) Snapshot() mesh.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Snapshot()
}

// Finalized reports whether the stroke has been closed.
func (s *Stroke) Finalized() bool {
	s.inMu.Lock()
	defer s.inMu.Unlock()
	return s.finalized
}

// drainLocked merges the pending queue into the committed points.
// s.mu must be held.
func (s *Stroke) drainLocked() int {
	s.inMu.Lock()
	n := len(s.pending)
	s.points = append(s.points, s.pending...)
	s.pending = s.pending[:0]
	s.inMu.Unlock()

	if n > 0 && s.phase != PhaseFinalized {
		s.phase = PhaseAccumulating
	}
	return n
}
