package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	return quatFromMGL(mgl32.QuatRotate(angle, axis.mgl()))
}

// QuatFromYaw returns a rotation of yaw radians about the up axis.
// Yaw 0 faces +Z, positive yaw turns toward +X.
func QuatFromYaw(yaw float32) Quat {
	return QuatFromAxisAngle(Up, yaw)
}

// LookRotation returns the rotation whose forward (+Z) is forward and whose up is
// as close to up as possible. A zero forward yields the identity.
func LookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f.IsZero() {
		return QuatIdentity()
	}
	r := up.Cross(f).Normalize()
	if r.IsZero() {
		// forward is parallel to up; pick any perpendicular right axis
		r = Right
		if math32.Abs(f.Dot(r)) > 0.99 {
			r = Forward
		}
		r = r.Sub(f.Scale(r.Dot(f))).Normalize()
	}
	u := f.Cross(r)
	basis := mgl32.Mat3FromCols(r.mgl(), u.mgl(), f.mgl())
	return quatFromMGL(mgl32.Mat4ToQuat(basis.Mat4()))
}

// FromToRotation returns the shortest rotation taking direction from onto direction to.
func FromToRotation(from, to Vec3) Quat {
	a, b := from.Normalize(), to.Normalize()
	if a.IsZero() || b.IsZero() {
		return QuatIdentity()
	}
	return quatFromMGL(mgl32.QuatBetweenVectors(a.mgl(), b.mgl()))
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	return quatFromMGL(mgl32.QuatSlerp(q.mgl(), other.mgl(), Clamp01(t)))
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return quatFromMGL(q.mgl().Mul(other.mgl()))
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return vec3FromMGL(q.Normalize().mgl().Rotate(v.mgl()))
}

// Forward returns the rotated +Z axis.
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

// Right returns the rotated +X axis.
func (q Quat) Right() Vec3 {
	return q.Rotate(Right)
}

// Up returns the rotated +Y axis.
func (q Quat) Up() Vec3 {
	return q.Rotate(Up)
}

// Yaw returns the heading of the rotated forward axis in radians.
func (q Quat) Yaw() float32 {
	f := q.Forward()
	return math32.Atan2(f.X, f.Z)
}

func (q Quat) mgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func quatFromMGL(m mgl32.Quat) Quat {
	return Quat{X: m.V[0], Y: m.V[1], Z: m.V[2], W: m.W}
}
