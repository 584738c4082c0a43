// Package geom provides the integer rectangle and point types shared by the
// surface and filter packages.
//
// A Rect is used in two ways: as an absolute pixel-space rectangle, and as
// the result of a domain computation whose X/Y describe how far a filtered
// rectangle moved relative to its source. Callers decide which meaning
// applies at each call site.
package geom

import "fmt"

// Point is an integer 2D offset.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an integer rectangle with its origin at (X, Y).
type Rect struct {
	X, Y int
	W, H int
}

// R is a convenience function to create a Rect.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Size returns a Rect at the origin with the given dimensions.
func Size(w, h int) Rect {
	return Rect{W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns W*H, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Union returns the smallest rectangle containing both r and other.
// Empty operands are not special-cased: their origin still counts.
func (r Rect) Union(other Rect) Rect {
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.Right(), other.Right())
	y1 := max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect returns the overlap of r and other. The result has zero width
// or height when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// UpToPower2 returns the smallest power of two >= v. Values <= 1 return 1.
func UpToPower2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
