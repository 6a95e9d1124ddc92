package locomotion

import (
	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Pose is the collider shape the body eases between.
type Pose struct {
	Center math.Vec3
	Height float32
}

// StandPose returns the standing collider shape.
func StandPose(cfg config.ColliderConfig) Pose {
	return Pose{Center: cfg.StandCenter, Height: cfg.StandHeight}
}

// ClimbPose returns the climbing collider shape.
func ClimbPose(cfg config.ColliderConfig) Pose {
	return Pose{Center: cfg.ClimbCenter, Height: cfg.ClimbHeight}
}

// Toward moves p a fraction of the way to target. The fraction is clamped to
// [0, 1] so the shape never passes the target.
func (p Pose) Toward(target Pose, rate, dt float32) Pose {
	t := math.Clamp01(rate * dt)
	return Pose{
		Center: p.Center.Lerp(target.Center, t),
		Height: math.Lerp(p.Height, target.Height, t),
	}
}

// Capsule returns the body collider for this pose.
func (p Pose) Capsule(radius float32) physics.Capsule {
	return physics.Capsule{Center: p.Center, Height: p.Height, Radius: radius}
}
