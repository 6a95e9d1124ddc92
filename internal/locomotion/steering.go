package locomotion

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/pkg/math"
)

// Steering turns the body about the vertical axis with a critically damped
// spring whose rate is capped at the turn speed.
type Steering struct {
	cfg    config.MovementConfig
	yawVel float32
}

// NewSteering creates steering from movement settings.
func NewSteering(cfg config.MovementConfig) *Steering {
	return &Steering{cfg: cfg}
}

// viewBasis returns the camera's horizontal forward and right axes as seen from
// the body.
func viewBasis(ctx *Context) (forward, right math.Vec3) {
	pos := ctx.Body.Position()
	cam := ctx.Camera.Position()
	forward = pos.Sub(math.Vec3{X: cam.X, Y: pos.Y, Z: cam.Z}).Normalize()
	if forward.IsZero() {
		// camera straight above
		forward = ctx.Camera.Forward().Horizontal().Normalize()
	}
	if forward.IsZero() {
		forward = ctx.Body.Rotation().Forward()
	}
	right = math.Up.Cross(forward).Normalize()
	return forward, right
}

// Heading returns the yaw the body should turn to, or false when it should
// keep its heading. Move input wins; without it the body follows the camera
// once the camera has drifted past the threshold.
func (s *Steering) Heading(ctx *Context) (yaw float32, ok bool) {
	forward, right := viewBasis(ctx)
	move := ctx.Input.Move
	dir := forward.Scale(move.Y).Add(right.Scale(move.X))
	if !dir.IsZero() {
		return math32.Atan2(dir.X, dir.Z), true
	}
	body := ctx.Body.Rotation().Forward().Horizontal()
	if forward.Angle(body) > s.cfg.CameraThreshold {
		return math32.Atan2(forward.X, forward.Z), true
	}
	return 0, false
}

// FixedUpdate turns the body. While climbing it faces into the grabbed
// surface instead of following the camera.
func (s *Steering) FixedUpdate(ctx *Context, wallNormal math.Vec3, climbing bool, dt float32) {
	if climbing {
		s.yawVel = 0
		if wallNormal.IsZero() {
			return
		}
		current := ctx.Body.Rotation().Forward()
		forward := current.SlerpDirection(wallNormal.Neg(), s.cfg.ClimbTurnSpeed*dt)
		ctx.Body.SetRotation(math.LookRotation(forward, math.Up))
		return
	}

	// off the wall the body is always levelled to a pure yaw
	yaw := ctx.Body.Rotation().Yaw()
	if target, ok := s.Heading(ctx); ok {
		maxRate := s.cfg.TurnSpeed * math.Deg2Rad
		yaw = math.SmoothDampAngle(yaw, target, &s.yawVel, s.cfg.TurnSmoothTime, maxRate, dt)
	} else {
		s.yawVel = 0
	}
	ctx.Body.SetRotation(math.QuatFromYaw(yaw))
}
