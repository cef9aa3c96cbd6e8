package geom

import "math"

// Point is a position in drawing space. Samples arrive already transformed
// by the input layer, so no camera or viewport math happens here.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales the point by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	return float32(math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)))
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	x, y := float64(p.X), float64(p.Y)
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

// ApproxEqual reports whether p and q differ by at most eps on each axis.
func (p Point) ApproxEqual(q Point, eps float32) bool {
	return abs32(p.X-q.X) <= eps && abs32(p.Y-q.Y) <= eps
}

// Vertex returns the point in the renderer's position layout (z = 0).
func (p Point) Vertex() Vertex {
	return Vertex{p.X, p.Y, 0}
}

// Vertex is one position attribute as uploaded to the renderer.
type Vertex [3]float32

// Point drops the z component.
func (v Vertex) Point() Point {
	return Point{X: v[0], Y: v[1]}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
