// Package vec2 provides two-dimensional vector algebra for the simulation core.
//
// Vec2 is an immutable value type: every operation returns a new Vec2 rather
// than mutating its receiver, matching the value semantics the rest of the
// engine relies on (an edit replaces a body record wholesale).
package vec2

import "math"

// Vec2 is an immutable pair of finite 64-bit floats.
type Vec2 struct {
	X, Y float64
}

// Zero is the additive identity.
var Zero = Vec2{}

// New constructs a Vec2 from components.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div divides both components by s. Callers must not pass s == 0.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) NormSquared() float64 {
	return v.Dot(v)
}

// Cross returns the scalar (z-component) of the 3-D cross product of v and o
// treated as vectors in the z=0 plane. Used for 2-D angular momentum/torque.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.NormSquared())
}

// NormalizedOr returns v scaled to unit length, or fallback if v has zero
// length (avoids a division by zero at the origin).
func (v Vec2) NormalizedOr(fallback Vec2) Vec2 {
	length := v.Norm()
	if length > 0 {
		return v.Div(length)
	}
	return fallback
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
