// Package locomotion drives a physics-simulated third-person character: ground
// movement relative to the camera, procedural foot placement, and climbing by
// attaching the hands to surfaces found with rays.
package locomotion

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Input is one sample of player intent.
type Input struct {
	Move      math.Vec2 // X strafes right, Y moves forward
	Jump      bool      // pressed since the previous fixed tick
	LeftGrab  bool      // held
	RightGrab bool      // held
}

// Grab reports whether the grab signal for side is held.
func (in Input) Grab(side Side) bool {
	if side == Left {
		return in.LeftGrab
	}
	return in.RightGrab
}

// Camera is the view the character moves relative to.
type Camera interface {
	Position() math.Vec3
	Forward() math.Vec3
}

// IKGoal identifies an end effector.
type IKGoal int

const (
	LeftHand IKGoal = iota
	RightHand
	LeftFoot
	RightFoot
)

// String returns the goal name.
func (g IKGoal) String() string {
	switch g {
	case LeftHand:
		return "LeftHand"
	case RightHand:
		return "RightHand"
	case LeftFoot:
		return "LeftFoot"
	case RightFoot:
		return "RightFoot"
	default:
		return "Unknown"
	}
}

// Animation parameter names.
const (
	ParamRunning  = "isRunning"
	ParamClimbing = "isClimbing"
)

// Sink receives presentation output: sounds, animation parameters and IK goals.
type Sink interface {
	PlaySound(name string)
	SetBool(name string, value bool)
	SetSpeed(speed float32)
	SetIKGoal(goal IKGoal, pos math.Vec3, rot math.Quat, weight float32)
}

// NopSink discards all presentation output.
type NopSink struct{}

func (NopSink) PlaySound(string)                                {}
func (NopSink) SetBool(string, bool)                            {}
func (NopSink) SetSpeed(float32)                                {}
func (NopSink) SetIKGoal(IKGoal, math.Vec3, math.Quat, float32) {}

// Context is the per-character state shared by the locomotion components.
// Collaborators are set by the owner; Input and Grounded are refreshed at the
// start of every fixed tick.
type Context struct {
	Body   physics.Body
	Torso  physics.Body // optional secondary body receiving torso forces
	World  physics.Query
	Camera Camera
	Sink   Sink

	// Mask selects the layers limbs can hit.
	Mask physics.Layer
	// GroundMask selects the layers the grounded probe can hit. Only walkable
	// surfaces on them count as ground.
	GroundMask physics.Layer
	Rand       *rand.Rand
	Log        *zap.Logger

	Skeleton Skeleton
	Input    Input
	Grounded bool
}

// Transform returns the body's current placement.
func (c *Context) Transform() math.Transform {
	return math.Transform{Position: c.Body.Position(), Rotation: c.Body.Rotation()}
}

// Skeleton places limb sockets relative to the body.
type Skeleton struct {
	cfg config.SkeletonConfig
}

// NewSkeleton creates a skeleton from body-local socket offsets.
func NewSkeleton(cfg config.SkeletonConfig) Skeleton {
	return Skeleton{cfg: cfg}
}

// Shoulder returns the world position of the shoulder on side.
func (s Skeleton) Shoulder(t math.Transform, side Side) math.Vec3 {
	if side == Left {
		return t.Point(s.cfg.LeftShoulder)
	}
	return t.Point(s.cfg.RightShoulder)
}

// Hip returns the world position of the hip on side. Leg rays start here.
func (s Skeleton) Hip(t math.Transform, side Side) math.Vec3 {
	if side == Left {
		return t.Point(s.cfg.LeftHip)
	}
	return t.Point(s.cfg.RightHip)
}

// FootRest returns where the foot on side hangs when nothing is planted.
func (s Skeleton) FootRest(t math.Transform, side Side) math.Vec3 {
	if side == Left {
		return t.Point(s.cfg.LeftFootRest)
	}
	return t.Point(s.cfg.RightFootRest)
}

// HandRest returns where the hand on side hangs without IK.
func (s Skeleton) HandRest(t math.Transform, side Side) math.Vec3 {
	if side == Left {
		return t.Point(s.cfg.LeftHandRest)
	}
	return t.Point(s.cfg.RightHandRest)
}

// Chest returns the world position of the chest.
func (s Skeleton) Chest(t math.Transform) math.Vec3 {
	return t.Point(s.cfg.Chest)
}

func (c *Context) logger() *zap.Logger {
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c.Log
}
