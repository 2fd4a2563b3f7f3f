// Package core provides fundamental types and utilities shared by the simulation,
// the renderers and the terminal host. It has no external dependencies (especially
// no Bubble Tea) to keep the simulation pure and testable.
package core

import "fmt"

// Point is an integer cell position. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect represents an axis-aligned rectangle of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
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
