// Package camera provides the third-person follow camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/pkg/math"
)

// ThirdPersonCamera follows a target from behind.
type ThirdPersonCamera struct {
	// Camera orientation
	Yaw   float32 // Horizontal rotation around target (radians), 0 looks along +Z
	Pitch float32 // Vertical angle (radians), positive looks down

	Distance float32
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	YawSensitivity   float32
	PitchSensitivity float32

	// Height above the target's origin the camera aims at
	LookHeight float32

	target math.Vec3
	pos    math.Vec3
}

// NewThirdPersonCamera creates a camera from config.
func NewThirdPersonCamera(cfg config.CameraConfig) *ThirdPersonCamera {
	c := &ThirdPersonCamera{
		Pitch:            cfg.Pitch,
		Distance:         cfg.Distance,
		MinPitch:         cfg.MinPitch,
		MaxPitch:         cfg.MaxPitch,
		YawSensitivity:   cfg.YawSensitivity,
		PitchSensitivity: cfg.PitchSensitivity,
		LookHeight:       0.5,
	}
	c.clampPitch()
	c.Follow(math.Vec3{})
	return c
}

// Follow re-centers the camera on target and recomputes its position.
func (c *ThirdPersonCamera) Follow(target math.Vec3) {
	c.target = target.Add(math.Vec3{Y: c.LookHeight})

	offsetY := c.Distance * math32.Sin(c.Pitch)
	horizDist := c.Distance * math32.Cos(c.Pitch)

	// behind and above the target
	c.pos = math.Vec3{
		X: c.target.X - horizDist*math32.Sin(c.Yaw),
		Y: c.target.Y + offsetY,
		Z: c.target.Z - horizDist*math32.Cos(c.Yaw),
	}
}

// Position returns the camera position from the last Follow.
func (c *ThirdPersonCamera) Position() math.Vec3 {
	return c.pos
}

// Target returns the point the camera looks at.
func (c *ThirdPersonCamera) Target() math.Vec3 {
	return c.target
}

// Forward returns the unit view direction.
func (c *ThirdPersonCamera) Forward() math.Vec3 {
	f := c.target.Sub(c.pos).Normalize()
	if f.IsZero() {
		return c.FlatForward()
	}
	return f
}

// FlatForward returns the view direction projected on the XZ plane.
func (c *ThirdPersonCamera) FlatForward() math.Vec3 {
	return math.Vec3{X: math32.Sin(c.Yaw), Z: math32.Cos(c.Yaw)}
}

// Rotation returns the camera orientation.
func (c *ThirdPersonCamera) Rotation() math.Quat {
	return math.LookRotation(c.Forward(), math.Up)
}

// HandleDrag rotates the camera around its target by a mouse delta.
func (c *ThirdPersonCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.YawSensitivity
	c.Pitch += deltaY * c.PitchSensitivity
	c.clampPitch()
	c.Follow(c.target.Sub(math.Vec3{Y: c.LookHeight}))
}

// SetYaw sets the absolute yaw, wrapped to [-Pi, Pi).
func (c *ThirdPersonCamera) SetYaw(yaw float32) {
	c.Yaw = wrapAngle(yaw)
	c.Follow(c.target.Sub(math.Vec3{Y: c.LookHeight}))
}

func (c *ThirdPersonCamera) clampPitch() {
	if c.MinPitch > c.MaxPitch {
		return
	}
	c.Pitch = math.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
