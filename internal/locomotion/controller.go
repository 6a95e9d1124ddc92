package locomotion

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Controller runs one character. FixedUpdate is called once per physics tick
// and Update once per rendered frame; both must be called from the same
// goroutine.
type Controller struct {
	ctx     *Context
	cfg     config.CharacterConfig
	capsule bool

	grab  *Grab
	gait  *Gait
	steer *Steering
	pose  Pose

	running bool
	ticks   uint64
}

// ErrIncompleteContext is returned by New when a required collaborator is missing.
var ErrIncompleteContext = errors.New("locomotion: incomplete context")

// New creates a controller for the body and collaborators in ctx. Body, World
// and Camera are required. Missing optional collaborators are filled in: a
// NopSink, a random source and a discarding logger.
func New(ctx *Context, cfg config.CharacterConfig) (*Controller, error) {
	switch {
	case ctx == nil:
		return nil, fmt.Errorf("%w: nil context", ErrIncompleteContext)
	case ctx.Body == nil:
		return nil, fmt.Errorf("%w: no body", ErrIncompleteContext)
	case ctx.World == nil:
		return nil, fmt.Errorf("%w: no world", ErrIncompleteContext)
	case ctx.Camera == nil:
		return nil, fmt.Errorf("%w: no camera", ErrIncompleteContext)
	}
	if ctx.Sink == nil {
		ctx.Sink = NopSink{}
	}
	if ctx.Rand == nil {
		ctx.Rand = rand.New(rand.NewSource(1))
	}
	if ctx.Log == nil {
		ctx.Log = zap.NewNop()
	}
	if ctx.Mask == 0 {
		ctx.Mask = physics.LayerDefault | physics.LayerGround | physics.LayerClimbable
	}
	if ctx.GroundMask == 0 {
		ctx.GroundMask = physics.LayerGround
	}
	ctx.Skeleton = NewSkeleton(cfg.Skeleton)

	t := ctx.Transform()
	c := &Controller{
		ctx:     ctx,
		cfg:     cfg,
		capsule: cfg.Profile == config.ProfileCapsule,
		grab:    NewGrab(cfg.Arms, ctx.Skeleton, t),
		gait:    NewGait(cfg.Legs, ctx.Skeleton, t),
		steer:   NewSteering(cfg.Movement),
		pose:    StandPose(cfg.Collider),
	}
	ctx.Body.SetCapsule(c.pose.Capsule(cfg.Collider.Radius))
	return c, nil
}

// Context returns the shared character context.
func (c *Controller) Context() *Context { return c.ctx }

// Climbing reports whether either hand is attached.
func (c *Controller) Climbing() bool { return c.grab.Climbing() }

// Grounded reports the result of the last ground probe.
func (c *Controller) Grounded() bool { return c.ctx.Grounded }

// Hand returns the hand on side.
func (c *Controller) Hand(side Side) *Hand { return c.grab.Hand(side) }

// Grab returns the hands' state machines.
func (c *Controller) Grab() *Grab { return c.grab }

// Gait returns the leg alternator.
func (c *Controller) Gait() *Gait { return c.gait }

// Pose returns the current collider shape.
func (c *Controller) Pose() Pose { return c.pose }

// Ticks returns the number of fixed ticks run.
func (c *Controller) Ticks() uint64 { return c.ticks }

// FixedUpdate advances the character by one physics tick of dt seconds.
func (c *Controller) FixedUpdate(in Input, dt float32) {
	ctx := c.ctx
	c.ticks++

	// 1. sample input and probe the ground
	ctx.Input = in
	ctx.Grounded = c.probeGround()

	// 2. mode, recomputed from the hands
	climbing := c.grab.Climbing()

	// 3. hands
	c.grab.FixedUpdate(ctx, climbing, dt)
	climbing = c.grab.Climbing()

	// 4. forces and collider
	if climbing {
		c.climb(dt)
	} else {
		c.move(dt)
	}
	ctx.Body.SetCapsule(c.pose.Capsule(c.cfg.Collider.Radius))

	// 5. rotation
	normal, _ := c.grab.SurfaceNormal()
	c.steer.FixedUpdate(ctx, normal, climbing, dt)

	// 6. jump
	if in.Jump && ctx.Grounded && !climbing {
		ctx.Body.AddForce(math.Up.Scale(c.cfg.Movement.JumpForce), physics.ForceImpulse)
		ctx.logger().Debug("jump", zap.Uint64("tick", c.ticks))
	}

	c.gait.FixedUpdate(ctx)
}

func (c *Controller) probeGround() bool {
	hit, ok := c.ctx.World.Raycast(c.ctx.Body.Position(), math.Down, c.cfg.Movement.GroundRay, c.ctx.GroundMask)
	return ok && hit.Tag == physics.TagWalkable
}

func (c *Controller) move(dt float32) {
	ctx := c.ctx
	mv := c.cfg.Movement
	forward, right := viewBasis(ctx)
	dir := forward.Scale(ctx.Input.Move.Y).Add(right.Scale(ctx.Input.Move.X))

	switch {
	case c.capsule:
		ctx.Body.AddForce(dir.Scale(mv.Speed), physics.ForceContinuous)
	case ctx.Grounded:
		ctx.Body.AddForce(dir.Scale(mv.Speed), physics.ForceContinuous)
		if ctx.Torso != nil {
			ctx.Torso.AddForce(dir.Scale(mv.AirSpeed), physics.ForceContinuous)
		}
	default:
		ctx.Body.AddForce(dir.Scale(mv.AirSpeed), physics.ForceContinuous)
	}

	if c.capsule || ctx.Grounded {
		ctx.Body.SetVelocity(ClampHorizontal(ctx.Body.Velocity(), mv.TopSpeed))
	}

	c.pose = c.pose.Toward(StandPose(c.cfg.Collider), c.cfg.Collider.GrowSpeed, dt)
}

func (c *Controller) climb(dt float32) {
	ctx := c.ctx
	mv := c.cfg.Movement
	t := ctx.Transform()

	up := ctx.Input.Move.Y
	if c.capsule {
		up *= 2
	}
	dir := t.Up().Scale(up).Add(t.Right().Scale(ctx.Input.Move.X))
	ctx.Body.AddForce(dir.Scale(mv.ClimbSpeed), physics.ForceContinuous)
	if !c.capsule && ctx.Torso != nil {
		ctx.Torso.AddForce(t.Forward().Scale(mv.ClimbSpeed/2), physics.ForceContinuous)
	}

	c.pose = c.pose.Toward(ClimbPose(c.cfg.Collider), c.cfg.Collider.GrowSpeed, dt)
}

// ClampHorizontal rescales the horizontal part of v so it is no faster than
// top. The vertical part and the horizontal direction are kept.
func ClampHorizontal(v math.Vec3, top float32) math.Vec3 {
	h := v.Horizontal()
	if h.Length() <= top {
		return v
	}
	return h.ClampLength(top).WithY(v.Y)
}

// Update pushes animation parameters and IK goals for one rendered frame of dt
// seconds.
func (c *Controller) Update(dt float32) {
	ctx := c.ctx
	climbing := c.grab.Climbing()
	speed := ctx.Body.Velocity().Length()
	mv := c.cfg.Movement

	switch {
	case speed > mv.RunThreshold && !ctx.Input.Move.IsZero():
		c.setRunning(true)
	case speed < mv.RunThreshold:
		c.setRunning(false)
	}
	ctx.Sink.SetBool(ParamClimbing, climbing)
	ctx.Sink.SetSpeed(AnimationSpeed(speed, mv.TopSpeed, mv.AnimSpeedFloor))

	for _, side := range []Side{Left, Right} {
		h := c.grab.Hand(side)
		rot := math.LookRotation(h.Limb.DesiredNormal, math.Up)
		ctx.Sink.SetIKGoal(handGoal(side), h.Limb.Target, rot, h.Limb.Weight)
	}

	c.gait.Update(ctx.Grounded, dt)
	forward := ctx.Body.Rotation().Forward()
	for _, side := range []Side{Left, Right} {
		pos, rot, weight := c.gait.Goal(side, forward, ctx.Grounded)
		ctx.Sink.SetIKGoal(footGoal(side), pos, rot, weight)
	}
}

func (c *Controller) setRunning(running bool) {
	c.running = running
	c.ctx.Sink.SetBool(ParamRunning, running)
}

// Running reports the last isRunning value sent to the sink.
func (c *Controller) Running() bool { return c.running }

// AnimationSpeed returns the animation playback rate for a body moving at
// speed. Slow movement plays at normal rate.
func AnimationSpeed(speed, top, floor float32) float32 {
	if speed > floor && top > 0 {
		return speed / top
	}
	return 1
}

// Close releases both hands so no anchor outlives the controller.
func (c *Controller) Close() {
	c.grab.ReleaseAll(c.ctx)
}

func handGoal(side Side) IKGoal {
	if side == Left {
		return LeftHand
	}
	return RightHand
}

func footGoal(side Side) IKGoal {
	if side == Left {
		return LeftFoot
	}
	return RightFoot
}
