package spline

import (
	"iter"
	"math"
	"slices"

	"InkBoard/internal/geom"
)

type vec2 struct{ x, y float64 }

func toVec(p geom.Point) vec2 { return vec2{float64(p.X), float64(p.Y)} }

// segment is one cubic piece in power form: a + b*t + c*t^2 + d*t^3.
type segment struct {
	coeff [4]vec2
}

func newSegment(in [4]vec2, m *[4][4]float64) segment {
	var s segment
	for r := range 4 {
		for i := range 4 {
			s.coeff[r].x += m[r][i] * in[i].x
			s.coeff[r].y += m[r][i] * in[i].y
		}
	}
	return s
}

func (s segment) position(t float64) geom.Point {
	c := s.coeff
	x := c[0].x + t*(c[1].x+t*(c[2].x+t*c[3].x))
	y := c[0].y + t*(c[1].y+t*(c[2].y+t*c[3].y))
	return geom.Point{X: float32(x), Y: float32(y)}
}

// Curve is a piecewise cubic curve. Its parameter runs from 0 to
// Segments(), each unit interval covering one segment.
type Curve struct {
	segments []segment
}

// Segments returns the number of cubic segments.
func (c *Curve) Segments() int {
	return len(c.segments)
}

// Position evaluates the curve at t, clamped to [0, Segments()].
func (c *Curve) Position(t float32) geom.Point {
	return c.position(float64(t))
}

func (c *Curve) position(t float64) geom.Point {
	n := len(c.segments)
	if n == 0 {
		return geom.Point{}
	}
	t = math.Max(0, math.Min(t, float64(n)))
	i := int(t)
	if i >= n {
		i = n - 1
	}
	return c.segments[i].position(t - float64(i))
}

// Positions yields n points spread uniformly in parameter (not arc length)
// over the whole curve, both endpoints included. The sequence can be
// ranged over any number of times.
func (c *Curve) Positions(n int) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		if n <= 0 || len(c.segments) == 0 {
			return
		}
		if n == 1 {
			yield(c.position(0))
			return
		}
		span := float64(len(c.segments))
		last := float64(n - 1)
		for k := range n {
			if !yield(c.position(span * float64(k) / last)) {
				return
			}
		}
	}
}

// Sample collects exactly n positions from the curve.
func Sample(c *Curve, n int) []geom.Point {
	if n <= 0 || c == nil || c.Segments() == 0 {
		return nil
	}
	return slices.AppendSeq(make([]geom.Point, 0, n), c.Positions(n))
}
