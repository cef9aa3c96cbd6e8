package state

import (
	"errors"
	"fmt"

	"InkBoard/internal/geom"
	"InkBoard/internal/logger"
	"InkBoard/internal/spline"
)

// Tessellate fits a curve over window and samples it at a density derived
// from the window's chord lengths. The errors are the transient
// spline.ErrInsufficientData and spline.ErrDegenerate.
func Tessellate(window []geom.Point, cfg Config) ([]geom.Point, error) {
	if len(window) < cfg.MinPoints {
		return nil, spline.ErrInsufficientData
	}

	var (
		curve *spline.Curve
		err   error
	)
	if cfg.Basis == spline.Hermite {
		curve, err = spline.FitHermite(window, spline.HermiteTangents(window, cfg.Cyclic), cfg.Cyclic)
	} else {
		curve, err = spline.Fit(window, cfg.Basis, cfg.Cyclic)
	}
	if err != nil {
		return nil, err
	}

	resolution := EstimateResolution(window, cfg)
	return spline.Sample(curve, resolution*curve.Segments()), nil
}

// Update merges the pending queue and tessellates the unprocessed window
// when it is long enough. It returns the number of vertices appended.
// Short windows and failed fits append nothing and are retried on the next
// update; only updating a finalized stroke is an error.
func (s *Stroke) Update() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseFinalized {
		return 0, fmt.Errorf("%w: update of %s", ErrFinalized, s.ID)
	}
	s.drainLocked()
	return s.tessellateLocked(), nil
}

// Close flushes queued points, tessellates what it can and finalizes the
// stroke. Closing twice is an error.
func (s *Stroke) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inMu.Lock()
	if s.finalized {
		s.inMu.Unlock()
		return fmt.Errorf("%w: close of %s", ErrFinalized, s.ID)
	}
	s.finalized = true
	s.inMu.Unlock()

	s.drainLocked()
	s.tessellateLocked()
	if tail := len(s.points) - s.processed; tail > 1 {
		logger.Logger().Debug("stroke closed with untessellated tail", "stroke", s.ID, "points", tail)
	}
	s.phase = PhaseFinalized
	return nil
}

// tessellateLocked appends vertices for points[processed:]. s.mu must be held.
func (s *Stroke) tessellateLocked() int {
	if len(s.points) == 0 {
		s.phase = PhaseEmpty
		return 0
	}

	window := s.points[s.processed:]
	samples, err := Tessellate(window, s.cfg)
	if err != nil {
		if !errors.Is(err, spline.ErrInsufficientData) {
			logger.Logger().Debug("fit deferred", "stroke", s.ID, "window", len(window), "error", err)
		}
		return 0
	}

	s.buf.AppendPositions(samples)
	s.buf.RebuildIndices()
	// The last point seeds the next window so consecutive curves share an endpoint.
	s.processed = len(s.points) - 1
	s.phase = PhaseCommitted

	logger.Logger().Debug("stroke tessellated",
		"stroke", s.ID,
		"window", len(window),
		"samples", len(samples),
		"used", s.buf.Used(),
		"capacity", s.buf.Cap())
	return len(samples)
}
