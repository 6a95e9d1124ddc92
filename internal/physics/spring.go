package physics

import (
	"github.com/Faultbox/clamber/pkg/math"
)

// SpringParams configures a SpringJoint.
type SpringParams struct {
	Spring      float32 // stiffness
	Damper      float32 // damping along the joint axis
	MaxDistance float32 // slack before the spring engages
}

// SpringJoint couples a body to a fixed world anchor. The spring only pulls once
// the body is further than MaxDistance from the anchor.
type SpringJoint struct {
	Anchor   math.Vec3
	Rotation math.Quat
	Params   SpringParams
}

// NewSpringJoint creates a joint anchored at point with the given orientation.
func NewSpringJoint(point math.Vec3, rot math.Quat, params SpringParams) *SpringJoint {
	return &SpringJoint{Anchor: point, Rotation: rot, Params: params}
}

// Force returns the force the joint exerts on a body at pos moving with vel.
func (j *SpringJoint) Force(pos, vel math.Vec3) math.Vec3 {
	delta := j.Anchor.Sub(pos)
	dist := delta.Length()
	if dist <= j.Params.MaxDistance || dist < math.Epsilon {
		return math.Vec3{}
	}
	dir := delta.Scale(1 / dist)
	stretch := dist - j.Params.MaxDistance
	// closing speed along the axis, positive when moving toward the anchor
	closing := vel.Dot(dir)
	mag := j.Params.Spring*stretch - j.Params.Damper*closing
	if mag < 0 {
		// pull only
		return math.Vec3{}
	}
	return dir.Scale(mag)
}
