package math

import "github.com/chewxy/math32"

// Angle conversion factors.
const (
	Deg2Rad = math32.Pi / 180
	Rad2Deg = 180 / math32.Pi
)

// Clamp limits v to [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates from a to b by t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// InverseLerp returns where v falls between a and b as a fraction in [0, 1].
func InverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// DeltaAngle returns the shortest signed difference target-current in radians,
// in the range (-Pi, Pi].
func DeltaAngle(current, target float32) float32 {
	d := math32.Mod(target-current, 2*math32.Pi)
	if d > math32.Pi {
		d -= 2 * math32.Pi
	}
	if d <= -math32.Pi {
		d += 2 * math32.Pi
	}
	return d
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries state between calls. smoothTime is roughly the time to reach
// the target; maxSpeed limits the rate of change (units per second), zero means unlimited.
func SmoothDamp(current, target float32, velocity *float32, smoothTime, maxSpeed, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	if maxSpeed <= 0 {
		maxSpeed = math32.MaxFloat32
	}
	smoothTime = math32.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	original := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// Prevent overshooting
	if (original-current > 0) == (out > original) {
		out = original
		*velocity = (out - original) / dt
	}
	return out
}

// SmoothDampAngle is SmoothDamp for angles in radians, taking the shortest way around.
func SmoothDampAngle(current, target float32, velocity *float32, smoothTime, maxSpeed, dt float32) float32 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, maxSpeed, dt)
}
