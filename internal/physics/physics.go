// Package physics defines the physics collaborators used by character locomotion
// (ray queries and rigid-body actuation) and provides simple reference
// implementations of both.
package physics

import (
	"github.com/Faultbox/clamber/pkg/math"
)

// Layer is a collision layer bitmask.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerClimbable
	LayerTrigger
)

// LayerAll matches every layer.
const LayerAll Layer = ^Layer(0)

// Has reports whether mask includes any bit of l.
func (mask Layer) Has(l Layer) bool {
	return mask&l != 0
}

// TagWalkable marks surfaces feet may be planted on.
const TagWalkable = "Walkable"

// Hit describes a ray intersection.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Tag      string
	Layer    Layer
}

// Query intersects rays with the static environment.
type Query interface {
	// Raycast returns the nearest hit along direction within maxDistance on
	// any layer in mask. ok is false when nothing was hit.
	Raycast(origin, direction math.Vec3, maxDistance float32, mask Layer) (hit Hit, ok bool)
}

// ForceMode selects how AddForce affects a body.
type ForceMode int

const (
	// ForceContinuous is integrated over the next step (mass-scaled acceleration).
	ForceContinuous ForceMode = iota
	// ForceImpulse changes velocity immediately by force/mass.
	ForceImpulse
)

// String returns the mode name.
func (m ForceMode) String() string {
	switch m {
	case ForceContinuous:
		return "continuous"
	case ForceImpulse:
		return "impulse"
	default:
		return "unknown"
	}
}

// Capsule is the body's collider shape in local space.
type Capsule struct {
	Center math.Vec3
	Height float32
	Radius float32
}

// Body is the rigid-body actuator driven by locomotion.
type Body interface {
	Position() math.Vec3
	Rotation() math.Quat
	SetRotation(q math.Quat)
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	AddForce(f math.Vec3, mode ForceMode)
	Capsule() Capsule
	SetCapsule(c Capsule)

	// Connect couples a joint to the body until Disconnect is called.
	Connect(j *SpringJoint)
	// Disconnect removes a joint. Unknown joints are ignored.
	Disconnect(j *SpringJoint)
}
