package state

import (
	"math"

	"InkBoard/internal/geom"
)

// EstimateResolution returns the samples per curve segment for a window:
// the largest ceil(chord)/divisor over consecutive pairs, clamped to the
// configured bounds. Windows with fewer than two points yield 1 before
// clamping.
func EstimateResolution(points []geom.Point, cfg Config) int {
	lo, hi := max(cfg.ResolutionMin, 1), cfg.ResolutionMax
	if hi < lo {
		hi = lo
	}
	div := max(cfg.DistanceDivisor, 1)

	if len(points) < 2 {
		return min(max(1, lo), hi)
	}

	// Anything at or above this chord already saturates the clamp.
	limit := float64(hi+1) * float64(div)
	best := 0
	for i := 1; i < len(points); i++ {
		d := float64(points[i-1].Distance(points[i]))
		if !(d >= 0) {
			continue
		}
		d = math.Min(math.Ceil(d), limit)
		best = max(best, int(d)/div)
	}
	return min(max(best, lo), hi)
}
