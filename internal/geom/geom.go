// Package geom provides the small amount of 2D geometry the interaction
// layer needs for drag-and-drop hit testing.
package geom

import "math"

// Point is a position in layout units
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns |dx| + |dy| between p and q
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Size is a width and height
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	Min  Point
	Size Size
}

// R builds a rectangle from its top-left corner and size
func R(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Max returns the bottom-right corner
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// Center returns the centre point
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2}
}

// Contains reports whether p lies inside r (edges on the min side inclusive)
func (r Rect) Contains(p Point) bool {
	m := r.Max()
	return p.X >= r.Min.X && p.X < m.X && p.Y >= r.Min.Y && p.Y < m.Y
}

// Intersects reports whether r and s overlap with a non-zero area
func (r Rect) Intersects(s Rect) bool {
	rm, sm := r.Max(), s.Max()
	return r.Min.X < sm.X && s.Min.X < rm.X && r.Min.Y < sm.Y && s.Min.Y < rm.Y
}

// Moved returns r with its corner at p
func (r Rect) Moved(p Point) Rect {
	return Rect{Min: p, Size: r.Size}
}

// Translate returns r shifted by d
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Size: r.Size}
}
