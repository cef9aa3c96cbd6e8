package state

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"InkBoard/internal/geom"
	"InkBoard/internal/logger"
	"InkBoard/internal/mesh"
	"InkBoard/internal/parallel"
)

// Store is the set of strokes, indexed by id, with at most one active
// stroke per input source.
type Store struct {
	cfg  Config
	pool *parallel.WorkerPool

	mu      sync.RWMutex
	strokes map[string]*Stroke
	active  map[Source]string
}

// NewStore creates a store whose strokes default to cfg. With a nil pool,
// UpdateAll runs strokes one after another on the calling goroutine.
func NewStore(cfg Config, pool *parallel.WorkerPool) *Store {
	return &Store{
		cfg:     cfg,
		pool:    pool,
		strokes: make(map[string]*Stroke),
		active:  make(map[Source]string),
	}
}

// Open starts a stroke for src with the store's default tuning. An empty id
// is replaced by a generated one.
func (st *Store) Open(id string, src Source) (*Stroke, error) {
	return st.OpenWithConfig(id, src, st.cfg)
}

// OpenWithConfig starts a stroke with its own tuning.
func (st *Store) OpenWithConfig(id string, src Source, cfg Config) (*Stroke, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if id == "" {
		id = NewStrokeID()
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.strokes[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrStrokeExists, id)
	}
	if cur, busy := st.active[src]; busy {
		return nil, fmt.Errorf("%w: %s is drawing %s", ErrSourceBusy, src, cur)
	}

	s := newStroke(id, src, cfg)
	st.strokes[id] = s
	st.active[src] = id
	logger.Logger().Info("stroke opened", "stroke", id, "source", src.String(), "basis", cfg.Basis.String())
	return s, nil
}

// Stroke looks up a stroke by id.
func (st *Store) Stroke(id string) (*Stroke, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.strokes[id]
	return s, ok
}

func (st *Store) lookup(id string) (*Stroke, error) {
	s, ok := st.Stroke(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStroke, id)
	}
	return s, nil
}

// ActiveFor returns the id of the stroke src is currently drawing.
func (st *Store) ActiveFor(src Source) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	id, ok := st.active[src]
	return id, ok
}

// IDs returns every stroke id in sorted order.
func (st *Store) IDs() []string {
	st.mu.RLock()
	ids := make([]string, 0, len(st.strokes))
	for id := range st.strokes {
		ids = append(ids, id)
	}
	st.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of strokes held.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.strokes)
}

// Visible returns, in sorted order, the ids of strokes whose tessellated
// vertices overlap view. Strokes with no vertices yet are never visible.
func (st *Store) Visible(view geom.Rect) []string {
	var ids []string
	for _, id := range st.IDs() {
		if s, ok := st.Stroke(id); ok && s.Bounds().Overlaps(view) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Extent returns the bounding box of every stroke's vertices.
func (st *Store) Extent() geom.Rect {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var r geom.Rect
	for _, s := range st.strokes {
		r = r.Union(s.Bounds())
	}
	return r
}

// Push queues samples on a stroke.
func (st *Store) Push(id string, points ...geom.Point) error {
	s, err := st.lookup(id)
	if err != nil {
		return err
	}
	return s.Push(points...)
}

// Close finalizes a stroke and frees its source for a new one.
func (st *Store) Close(id string) error {
	s, err := st.lookup(id)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}

	st.mu.Lock()
	if st.active[s.Source] == id {
		delete(st.active, s.Source)
	}
	st.mu.Unlock()

	logger.Logger().Info("stroke closed", "stroke", id, "source", s.Source.String(), "vertices", s.Vertices())
	return nil
}

// Delete drops a stroke, active or not. It reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.strokes[id]
	if !ok {
		return false
	}
	delete(st.strokes, id)
	if st.active[s.Source] == id {
		delete(st.active, s.Source)
	}
	logger.Logger().Info("stroke deleted", "stroke", id)
	return true
}

// Buffer returns a copy of a stroke's renderable state.
func (st *Store) Buffer(id string) (mesh.Snapshot, error) {
	s, err := st.lookup(id)
	if err != nil {
		return mesh.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Update runs one tessellation update of a single stroke.
func (st *Store) Update(id string) (int, error) {
	s, err := st.lookup(id)
	if err != nil {
		return 0, err
	}
	return s.Update()
}

// UpdateAll runs one update of every open stroke, in parallel across
// strokes, and returns the number of vertices appended in total.
func (st *Store) UpdateAll() int {
	st.mu.RLock()
	open := make([]*Stroke, 0, len(st.active))
	for _, s := range st.strokes {
		if !s.Finalized() {
			open = append(open, s)
		}
	}
	st.mu.RUnlock()

	var added atomic.Int64
	work := make([]func(), len(open))
	for i, s := range open {
		work[i] = func() {
			// A stroke closed since the scan reports ErrFinalized; skip it.
			n, err := s.Update()
			if err == nil {
				added.Add(int64(n))
			}
		}
	}

	if st.pool != nil {
		st.pool.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}
	return int(added.Load())
}
