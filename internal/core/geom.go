// Package core provides fundamental types and utilities for the road game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a position in world or cell coordinates.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredFromBottom builds a rectangle from a horizontal center and a bottom edge.
// Edges follow integer division: left = cx - w/2, right = cx + w/2.
func CenteredFromBottom(cx, bottom, w, h int) Rect {
	return Rect{X: cx - w/2, Y: bottom - h, W: 2 * (w / 2), H: h}
}

// CenteredFromTop builds a rectangle from a horizontal center and a top edge.
func CenteredFromTop(cx, top, w, h int) Rect {
	return Rect{X: cx - w/2, Y: top, W: 2 * (w / 2), H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection; shared edges do not count.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps reports whether rectangle A, given by its horizontal center and
// bottom edge, strictly overlaps rectangle B, given by its horizontal center
// and top edge. Touching edges are not an overlap.
func Overlaps(centerA, bottomA, widthA, heightA, centerXB, topB, widthB, heightB int) bool {
	a := CenteredFromBottom(centerA, bottomA, widthA, heightA)
	b := CenteredFromTop(centerXB, topB, widthB, heightB)
	return a.Intersects(b)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FloorDiv divides a by b rounding toward negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
