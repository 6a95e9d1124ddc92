// Package math provides math types and functions for game development.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for zero and equality checks.
const Epsilon = 1e-5

// Vec3 is a 3D vector. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

// Common directions.
var (
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Forward = Vec3{0, 0, 1}
	Right   = Vec3{1, 0, 0}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSqr returns the squared magnitude.
func (v Vec3) LengthSqr() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// IsZero reports whether every component is within Epsilon of zero.
func (v Vec3) IsZero() bool {
	return v.LengthSqr() < Epsilon*Epsilon
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// ApproxEqual reports whether v and other differ by at most tol per component.
func (v Vec3) ApproxEqual(other Vec3, tol float32) bool {
	return math32.Abs(v.X-other.X) <= tol &&
		math32.Abs(v.Y-other.Y) <= tol &&
		math32.Abs(v.Z-other.Z) <= tol
}

// Horizontal returns v projected onto the XZ plane.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// WithY returns v with its Y component replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// Lerp linearly interpolates from v to other. t is clamped to [0, 1].
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	t = Clamp01(t)
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// ClampLength rescales v so its length does not exceed max. Direction is kept.
func (v Vec3) ClampLength(max float32) Vec3 {
	if max <= 0 {
		return Vec3{}
	}
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// Angle returns the unsigned angle between v and other in degrees.
func (v Vec3) Angle(other Vec3) float32 {
	denom := math32.Sqrt(v.LengthSqr() * other.LengthSqr())
	if denom < Epsilon {
		return 0
	}
	cos := Clamp(v.Dot(other)/denom, -1, 1)
	return math32.Acos(cos) * Rad2Deg
}

// SlerpDirection rotates the direction v toward other by fraction t along the great arc.
// The result has the interpolated length of both inputs.
func (v Vec3) SlerpDirection(other Vec3, t float32) Vec3 {
	t = Clamp01(t)
	la, lb := v.Length(), other.Length()
	if la < Epsilon || lb < Epsilon {
		return v.Lerp(other, t)
	}
	a, b := v.Scale(1/la), other.Scale(1/lb)
	dir := QuatIdentity().Slerp(FromToRotation(a, b), t).Rotate(a)
	return dir.Scale(la + (lb-la)*t)
}

func (v Vec3) mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func vec3FromMGL(m mgl32.Vec3) Vec3 {
	return Vec3{m[0], m[1], m[2]}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
