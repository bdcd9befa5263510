package geom

import "math"

// Rect is an axis-aligned rectangle given by its origin and size.
// A rectangle with non-positive width or height is empty.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a rectangle from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromPoints returns the rectangle spanned by two corners.
func RectFromPoints(p0, p1 Point) Rect {
	minX, maxX := math.Min(p0.X, p1.X), math.Max(p0.X, p1.X)
	minY, maxY := math.Min(p0.Y, p1.Y), math.Max(p0.Y, p1.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.W > 0 && r.H > 0)
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both rectangles.
// Empty rectangles do not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.Right(), other.Right())
	maxY := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Intersect returns the overlap of both rectangles, or an empty rectangle.
func (r Rect) Intersect(other Rect) Rect {
	minX := math.Max(r.X, other.X)
	minY := math.Max(r.Y, other.Y)
	maxX := math.Min(r.Right(), other.Right())
	maxY := math.Min(r.Bottom(), other.Bottom())
	if maxX <= minX || maxY <= minY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// include grows r (which may be empty) to contain p.
func (r Rect) include(p Point, first bool) Rect {
	if first {
		return Rect{X: p.X, Y: p.Y}
	}
	minX := math.Min(r.X, p.X)
	minY := math.Min(r.Y, p.Y)
	maxX := math.Max(r.Right(), p.X)
	maxY := math.Max(r.Bottom(), p.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
