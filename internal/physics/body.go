package physics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/clamber/pkg/math"
)

// BodyConfig holds rigid body settings.
type BodyConfig struct {
	Mass          float32
	Drag          float32 // linear damping per second
	Gravity       math.Vec3
	Capsule       Capsule
	CollisionMask Layer
}

// DefaultBodyConfig returns settings for a human-sized body.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Mass:          1,
		Drag:          1,
		Gravity:       math.Vec3{Y: -9.81},
		Capsule:       Capsule{Height: 2, Radius: 0.35},
		CollisionMask: LayerDefault | LayerGround | LayerClimbable,
	}
}

var _ Body = (*RigidBody)(nil)

// RigidBody is a minimal capsule body integrated with semi-implicit Euler and
// resolved against a Query. It exists to drive locomotion without an engine.
type RigidBody struct {
	cfg   BodyConfig
	world Query

	pos   math.Vec3
	vel   math.Vec3
	rot   math.Quat
	force math.Vec3

	capsule Capsule
	joints  []*SpringJoint
}

// NewRigidBody creates a body at pos resolved against world (may be nil).
func NewRigidBody(world Query, pos math.Vec3, cfg BodyConfig) *RigidBody {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	return &RigidBody{
		cfg:     cfg,
		world:   world,
		pos:     pos,
		rot:     math.QuatIdentity(),
		capsule: cfg.Capsule,
	}
}

// Position implements Body.
func (b *RigidBody) Position() math.Vec3 { return b.pos }

// SetPosition teleports the body.
func (b *RigidBody) SetPosition(p math.Vec3) { b.pos = p }

// Rotation implements Body.
func (b *RigidBody) Rotation() math.Quat { return b.rot }

// SetRotation implements Body.
func (b *RigidBody) SetRotation(q math.Quat) { b.rot = q.Normalize() }

// Velocity implements Body.
func (b *RigidBody) Velocity() math.Vec3 { return b.vel }

// SetVelocity implements Body.
func (b *RigidBody) SetVelocity(v math.Vec3) {
	if !v.IsFinite() {
		return
	}
	b.vel = v
}

// AddForce implements Body.
func (b *RigidBody) AddForce(f math.Vec3, mode ForceMode) {
	if !f.IsFinite() {
		return
	}
	switch mode {
	case ForceImpulse:
		b.vel = b.vel.Add(f.Scale(1 / b.cfg.Mass))
	default:
		b.force = b.force.Add(f)
	}
}

// Capsule implements Body.
func (b *RigidBody) Capsule() Capsule { return b.capsule }

// SetCapsule implements Body.
func (b *RigidBody) SetCapsule(c Capsule) { b.capsule = c }

// Connect implements Body.
func (b *RigidBody) Connect(j *SpringJoint) {
	if j == nil {
		return
	}
	for _, existing := range b.joints {
		if existing == j {
			return
		}
	}
	b.joints = append(b.joints, j)
}

// Disconnect implements Body.
func (b *RigidBody) Disconnect(j *SpringJoint) {
	for i, existing := range b.joints {
		if existing == j {
			b.joints = append(b.joints[:i], b.joints[i+1:]...)
			return
		}
	}
}

// Joints returns the currently connected joints.
func (b *RigidBody) Joints() []*SpringJoint {
	return b.joints
}

// Transform returns the body's placement.
func (b *RigidBody) Transform() math.Transform {
	return math.Transform{Position: b.pos, Rotation: b.rot}
}

// Step integrates accumulated forces, joints and gravity over dt, then resolves
// collisions. Accumulated continuous forces are cleared.
func (b *RigidBody) Step(dt float32) {
	if dt <= 0 {
		return
	}

	total := b.force
	for _, j := range b.joints {
		total = total.Add(j.Force(b.pos, b.vel))
	}
	b.force = math.Vec3{}

	accel := total.Scale(1 / b.cfg.Mass).Add(b.cfg.Gravity)
	b.vel = b.vel.Add(accel.Scale(dt))
	b.vel = b.vel.Scale(1 / (1 + b.cfg.Drag*dt))

	move := b.vel.Scale(dt)
	move = b.resolveHorizontal(move)
	b.pos = b.pos.Add(move)
	b.resolveGround()
}

func (b *RigidBody) resolveHorizontal(move math.Vec3) math.Vec3 {
	if b.world == nil {
		return move
	}
	h := move.Horizontal()
	dist := h.Length()
	if dist < math.Epsilon {
		return move
	}
	dir := h.Scale(1 / dist)
	center := b.pos.Add(b.capsule.Center)
	hit, ok := b.world.Raycast(center, dir, b.capsule.Radius+dist, b.cfg.CollisionMask)
	if !ok {
		return move
	}
	allowed := math32.Max(0, hit.Distance-b.capsule.Radius)
	move.X = dir.X * allowed
	move.Z = dir.Z * allowed

	// drop the velocity component pointing into the surface
	if into := b.vel.Dot(hit.Normal); into < 0 {
		b.vel = b.vel.Sub(hit.Normal.Scale(into))
	}
	return move
}

func (b *RigidBody) resolveGround() {
	if b.world == nil {
		return
	}
	half := b.capsule.Height / 2
	center := b.pos.Add(b.capsule.Center)
	hit, ok := b.world.Raycast(center, math.Down, half, b.cfg.CollisionMask)
	if !ok {
		return
	}
	bottom := center.Y - half
	if hit.Point.Y > bottom {
		b.pos.Y += hit.Point.Y - bottom
		if b.vel.Y < 0 {
			b.vel.Y = 0
		}
	}
}
