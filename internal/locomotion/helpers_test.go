package locomotion

import (
	"math/rand"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

const tick = float32(0.02)

type fixedCamera struct {
	pos     math.Vec3
	forward math.Vec3
}

func (c fixedCamera) Position() math.Vec3 { return c.pos }
func (c fixedCamera) Forward() math.Vec3  { return c.forward.Normalize() }

// behind looks along +Z from behind the origin.
var behind = fixedCamera{pos: math.Vec3{Y: 2, Z: -5}, forward: math.Vec3{Z: 1}}

type ikCall struct {
	pos    math.Vec3
	rot    math.Quat
	weight float32
}

type recordingSink struct {
	sounds []string
	bools  map[string][]bool
	speed  float32
	goals  map[IKGoal]ikCall
}

func newRecordingSink() *recordingSink {
	return &recordingSink{bools: map[string][]bool{}, goals: map[IKGoal]ikCall{}}
}

func (s *recordingSink) PlaySound(name string)       { s.sounds = append(s.sounds, name) }
func (s *recordingSink) SetBool(name string, v bool) { s.bools[name] = append(s.bools[name], v) }
func (s *recordingSink) SetSpeed(v float32)          { s.speed = v }
func (s *recordingSink) SetIKGoal(g IKGoal, p math.Vec3, r math.Quat, w float32) {
	s.goals[g] = ikCall{pos: p, rot: r, weight: w}
}

// last returns the most recent value set for name.
func (s *recordingSink) last(name string) (bool, bool) {
	v := s.bools[name]
	if len(v) == 0 {
		return false, false
	}
	return v[len(v)-1], true
}

type force struct {
	f    math.Vec3
	mode physics.ForceMode
}

// recordingBody is a rigid body that remembers every force applied to it.
type recordingBody struct {
	*physics.RigidBody
	forces []force
}

func newRecordingBody(world physics.Query, pos math.Vec3) *recordingBody {
	return &recordingBody{RigidBody: physics.NewRigidBody(world, pos, physics.DefaultBodyConfig())}
}

func (b *recordingBody) AddForce(f math.Vec3, mode physics.ForceMode) {
	b.forces = append(b.forces, force{f, mode})
	b.RigidBody.AddForce(f, mode)
}

func (b *recordingBody) continuous() math.Vec3 {
	var sum math.Vec3
	for _, f := range b.forces {
		if f.mode == physics.ForceContinuous {
			sum = sum.Add(f.f)
		}
	}
	return sum
}

func floor() physics.Box {
	return physics.NewBox("floor", math.Vec3{X: -50, Y: -1, Z: -50}, math.Vec3{X: 50, Y: 0, Z: 50}, physics.LayerGround, physics.TagWalkable)
}

// wall is a climbable slab whose near face is at z=0.8.
func wall() physics.Box {
	return physics.NewBox("wall", math.Vec3{X: -3, Y: 0, Z: 0.8}, math.Vec3{X: 3, Y: 5, Z: 1.8}, physics.LayerClimbable, "")
}

func testCharacter() config.CharacterConfig {
	return config.DefaultCharacter()
}

func newTestContext(world physics.Query, body physics.Body) *Context {
	return &Context{
		Body:     body,
		World:    world,
		Camera:   behind,
		Sink:     newRecordingSink(),
		Mask:     physics.LayerDefault | physics.LayerGround | physics.LayerClimbable,
		Rand:     rand.New(rand.NewSource(7)),
		Skeleton: NewSkeleton(testCharacter().Skeleton),
	}
}

// rig is a controller on a stepping body in world.
type rig struct {
	ctrl *Controller
	body *recordingBody
	sink *recordingSink
}

func newRig(cfg config.CharacterConfig, boxes ...physics.Box) *rig {
	world := physics.NewStaticWorld(boxes...)
	body := newRecordingBody(world, math.Vec3{Y: 1})
	ctx := newTestContext(world, body)
	ctrl, err := New(ctx, cfg)
	if err != nil {
		panic(err)
	}
	return &rig{ctrl: ctrl, body: body, sink: ctx.Sink.(*recordingSink)}
}

// run advances n ticks with constant input, one frame per tick.
func (r *rig) run(in Input, n int) {
	for i := 0; i < n; i++ {
		r.body.forces = r.body.forces[:0]
		r.ctrl.FixedUpdate(in, tick)
		r.body.Step(tick)
		r.ctrl.Update(tick)
	}
}
