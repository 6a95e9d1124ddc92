package locomotion

import (
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Side selects the left or right limb of a pair.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// String returns the side name.
func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Solve casts one ray from socket along aim and returns the surface it hits.
// ok is false when nothing is hit within maxDistance.
func Solve(q physics.Query, socket, aim math.Vec3, maxDistance float32, mask physics.Layer) (point, normal math.Vec3, ok bool) {
	if q == nil {
		return math.Vec3{}, math.Vec3{}, false
	}
	hit, ok := q.Raycast(socket, aim, maxDistance, mask)
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	return hit.Point, hit.Normal, true
}

// LimbState is the IK state of one limb.
type LimbState struct {
	Socket math.Vec3 // ray origin used on the last solve

	// Desired is the last surface point found. It is kept when a later solve
	// misses; Valid tells whether the most recent solve hit.
	Desired       math.Vec3
	DesiredNormal math.Vec3
	Valid         bool

	Target   math.Vec3 // smoothed IK target
	Weight   float32   // IK blend in [0, 1]
	Attached bool
}

// NewLimbState creates a limb whose target starts at rest.
func NewLimbState(rest math.Vec3) LimbState {
	return LimbState{Target: rest, Desired: rest, DesiredNormal: math.Up}
}

// Aim runs the solver for this limb unless it is attached. A miss keeps the
// previous desired point.
func (l *LimbState) Aim(q physics.Query, socket, dir math.Vec3, maxDistance float32, mask physics.Layer) bool {
	if l.Attached {
		return l.Valid
	}
	l.Socket = socket
	point, normal, ok := Solve(q, socket, dir, maxDistance, mask)
	l.Valid = ok
	if ok {
		l.Desired = point
		l.DesiredNormal = normal
	}
	return ok
}

// Approach eases the IK target toward the desired point.
func (l *LimbState) Approach(rate, dt float32) {
	l.Target = l.Target.Lerp(l.Desired, rate*dt)
}

// SetWeight sets the IK blend, clamped to [0, 1].
func (l *LimbState) SetWeight(w float32) {
	l.Weight = math.Clamp01(w)
}
