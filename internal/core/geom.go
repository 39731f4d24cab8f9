// Package core provides fundamental types and utilities shared by the
// environment, its renderers and the terminal platform.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ClampTo restricts both axes to [0, size-1].
func (p Point) ClampTo(size int) Point {
	return Point{X: Clamp(p.X, 0, size-1), Y: Clamp(p.Y, 0, size-1)}
}

// In reports whether the point lies inside a size×size grid.
func (p Point) In(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Norm returns the Euclidean length of the point taken as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Manhattan returns the L1 distance between two points.
func (p Point) Manhattan(q Point) int {
	d := p.Sub(q)
	return Abs(d.X) + Abs(d.Y)
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
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
