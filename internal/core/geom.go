// Package core provides fundamental types and utilities shared by the
// simulation core and the terminal platform. It contains no external
// dependencies (especially no Bubble Tea) to keep simulation logic pure and
// testable.
package core

import "math"

// RectF is an axis-aligned bounding box in world units.
// X, Y is the lower-left corner; world coordinates are y-up.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a new world-space rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 {
	return r.Y + r.H
}

// Overlaps reports whether the extents of both rectangles intersect on both
// axes. Touching edges do not overlap. The test is symmetric.
func (r RectF) Overlaps(other RectF) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Finite reports whether every component is a finite number.
func (r RectF) Finite() bool {
	return IsFinite(r.X) && IsFinite(r.Y) && IsFinite(r.W) && IsFinite(r.H)
}

// Center returns the center point of the rectangle.
func (r RectF) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Rect is an integer rectangle in screen cells, used for drawing.
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

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidDelta reports whether dt is a usable frame delta: finite and non-negative.
func ValidDelta(dt float64) bool {
	return IsFinite(dt) && dt >= 0
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

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
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
