package config

import (
	"errors"
	"fmt"
)

// Character profiles.
const (
	ProfileRig     = "rig"
	ProfileCapsule = "capsule"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid value")

// Validate checks values the simulation cannot run with.
func (c *Config) Validate() error {
	switch c.Character.Profile {
	case ProfileRig, ProfileCapsule:
	default:
		return fmt.Errorf("character.profile %q: %w", c.Character.Profile, ErrInvalid)
	}
	if c.Sim.FixedStep <= 0 {
		return fmt.Errorf("sim.fixed_step %v: %w", c.Sim.FixedStep, ErrInvalid)
	}
	if c.Sim.FrameRate <= 0 {
		return fmt.Errorf("sim.frame_rate %d: %w", c.Sim.FrameRate, ErrInvalid)
	}
	if c.Sim.Frames < 0 {
		return fmt.Errorf("sim.frames %d: %w", c.Sim.Frames, ErrInvalid)
	}
	if c.Character.Body.Mass <= 0 {
		return fmt.Errorf("character.body.mass %v: %w", c.Character.Body.Mass, ErrInvalid)
	}
	if c.Character.Movement.TopSpeed <= 0 {
		return fmt.Errorf("character.movement.top_speed %v: %w", c.Character.Movement.TopSpeed, ErrInvalid)
	}
	if c.Character.Arms.CaptureRadius < 0 {
		return fmt.Errorf("character.arms.capture_radius %v: %w", c.Character.Arms.CaptureRadius, ErrInvalid)
	}
	if c.Character.Legs.SpeedLow > c.Character.Legs.SpeedHigh {
		return fmt.Errorf("character.legs speed range [%v, %v]: %w",
			c.Character.Legs.SpeedLow, c.Character.Legs.SpeedHigh, ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	return nil
}
