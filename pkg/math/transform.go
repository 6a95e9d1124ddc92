package math

// Transform is a rigid placement: rotation followed by translation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// NewTransform returns a transform at position with identity rotation.
func NewTransform(position Vec3) Transform {
	return Transform{Position: position, Rotation: QuatIdentity()}
}

// Point converts a point from local space to world space.
func (t Transform) Point(local Vec3) Vec3 {
	return t.Rotation.Rotate(local).Add(t.Position)
}

// Forward returns the world forward axis.
func (t Transform) Forward() Vec3 { return t.Rotation.Forward() }

// Right returns the world right axis.
func (t Transform) Right() Vec3 { return t.Rotation.Right() }

// Up returns the world up axis.
func (t Transform) Up() Vec3 { return t.Rotation.Up() }
