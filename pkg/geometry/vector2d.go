package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq.
const Epsilon = 1e-9

// Vector2D is a 2D vector or point in cartesian space.
// Fields are public so literals stay short: v := Vector2D{1, 2}
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the zero vector.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, every operation returns a new vector.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z-component of the 3D cross product.
// Zero means the two vectors are parallel.
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// ---------------------------------------------------------------------
// Magnitude
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{0, 0}
	}
	return v.Mul(1 / l)
}

// ClampMagnitude returns v unchanged when |v| <= limit, otherwise v rescaled
// to a length of exactly limit.
// A zero vector is always returned unchanged.
func (v Vector2D) ClampMagnitude(limit float64) Vector2D {
	l := v.Len()
	if l > limit {
		return v.Mul(limit / l)
	}
	return v
}

// SetMagnitude rescales v to a length of exactly mag.
// There is no guard on the zero vector: the division by zero yields NaN
// components, callers decide how to handle that case.
func (v Vector2D) SetMagnitude(mag float64) Vector2D {
	l := v.Len()
	return Vector2D{v.X * (mag / l), v.Y * (mag / l)}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
