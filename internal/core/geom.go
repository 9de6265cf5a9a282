// Package core provides fundamental types and utilities shared by the Pong
// simulation and its hosts. It contains no external dependencies (especially
// no Bubble Tea) to keep simulation logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. The simulation uses a y-up frame.
type Vec2 struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Span is a closed scalar interval [Min, Max].
type Span struct {
	Min, Max float64
}

// Within reports whether v lies strictly inside the span.
// Values exactly on an edge are outside.
func (s Span) Within(v float64) bool {
	return v > s.Min && v < s.Max
}

// Overlaps reports whether two spans share interior. Touching spans and
// zero-length spans sitting on an edge do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Min < o.Max && o.Min < s.Max
}

// Box is an axis-aligned bounding box described by its center and half extents.
// Half extents must be non-negative; zero degenerates the box to a line or point.
type Box struct {
	CX, CY       float64
	HalfW, HalfH float64
}

// NewBox creates a box centered on c.
func NewBox(c Vec2, halfW, halfH float64) Box {
	return Box{CX: c.X, CY: c.Y, HalfW: halfW, HalfH: halfH}
}

// Left returns the minimum x edge.
func (b Box) Left() float64 { return b.CX - b.HalfW }

// Right returns the maximum x edge.
func (b Box) Right() float64 { return b.CX + b.HalfW }

// Bottom returns the minimum y edge.
func (b Box) Bottom() float64 { return b.CY - b.HalfH }

// Top returns the maximum y edge.
func (b Box) Top() float64 { return b.CY + b.HalfH }

// SpanX returns the horizontal extent.
func (b Box) SpanX() Span { return Span{Min: b.Left(), Max: b.Right()} }

// SpanY returns the vertical extent.
func (b Box) SpanY() Span { return Span{Min: b.Bottom(), Max: b.Top()} }

// OverlapsX reports whether the x-intervals of a and b intersect.
func OverlapsX(a, b Box) bool {
	return a.SpanX().Overlaps(b.SpanX())
}

// OverlapsY reports whether the y-intervals of a and b intersect.
func OverlapsY(a, b Box) bool {
	return a.SpanY().Overlaps(b.SpanY())
}

// Intersects is the AABB test: both axes must overlap.
func Intersects(a, b Box) bool {
	return OverlapsX(a, b) && OverlapsY(a, b)
}

// Rect represents an integer cell rectangle on a Screen.
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
