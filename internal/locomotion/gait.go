package locomotion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Plant is where a foot rests on the ground.
type Plant struct {
	Point  math.Vec3
	Normal math.Vec3
}

// Gait alternates the legs. Only the active leg looks for a new plant; the
// other one stays frozen until the legs swap.
type Gait struct {
	cfg config.LegsConfig

	active  Side
	plants  [2]Plant
	targets [2]math.Vec3 // eased foot IK targets
	steps   int
}

// NewGait creates a gait with the left leg active and both feet planted at
// their rest positions under t.
func NewGait(cfg config.LegsConfig, sk Skeleton, t math.Transform) *Gait {
	g := &Gait{cfg: cfg, active: Left}
	for _, side := range []Side{Left, Right} {
		rest := sk.FootRest(t, side)
		g.plants[side] = Plant{Point: rest, Normal: math.Up}
		g.targets[side] = rest
	}
	return g
}

// Active returns the leg currently allowed to step.
func (g *Gait) Active() Side { return g.active }

// Plant returns the committed plant of the leg on side.
func (g *Gait) Plant(side Side) Plant { return g.plants[side] }

// Target returns the eased foot IK target on side.
func (g *Gait) Target(side Side) math.Vec3 { return g.targets[side] }

// Steps returns how many times the legs have swapped.
func (g *Gait) Steps() int { return g.steps }

// lookAhead returns how far ahead of the hip the leg ray starts for a body
// moving at speed.
func (g *Gait) lookAhead(speed float32) float32 {
	s := math.Clamp(speed, 0, g.cfg.LookAhead)
	if s <= g.cfg.LookAheadDZ {
		return 0
	}
	return s
}

// separation returns the minimum plant spacing for a body moving at speed.
func (g *Gait) separation(speed float32) float32 {
	return g.cfg.Separation * math.Clamp(speed, g.cfg.SpeedLow, g.cfg.SpeedHigh)
}

// FixedUpdate runs the active leg's ray and commits a new plant when it is far
// enough from the other foot. It reports whether the legs swapped.
func (g *Gait) FixedUpdate(ctx *Context) bool {
	t := ctx.Transform()
	if !ctx.Grounded {
		g.targets[Left] = ctx.Skeleton.FootRest(t, Left)
		g.targets[Right] = ctx.Skeleton.FootRest(t, Right)
		return false
	}

	vel := ctx.Body.Velocity()
	speed := vel.Length()
	origin := ctx.Skeleton.Hip(t, g.active).Add(vel.Normalize().Scale(g.lookAhead(speed)))

	hit, ok := ctx.World.Raycast(origin, math.Down, g.cfg.RayDistance, ctx.Mask)
	if !ok || hit.Tag != physics.TagWalkable {
		return false
	}

	other := g.plants[g.active.Other()]
	if hit.Point.Distance(other.Point) <= g.separation(speed) {
		return false
	}

	g.plants[g.active] = Plant{Point: hit.Point, Normal: hit.Normal}
	g.playFootstep(ctx)
	g.active = g.active.Other()
	g.steps++

	if ce := ctx.logger().Check(zap.DebugLevel, "leg swap"); ce != nil {
		ce.Write(
			zap.Stringer("active", g.active),
			zap.Float32("speed", speed),
			zap.Int("steps", g.steps),
		)
	}
	return true
}

func (g *Gait) playFootstep(ctx *Context) {
	pool := g.cfg.Footsteps
	if len(pool) == 0 || ctx.Sink == nil {
		return
	}
	i := 0
	if ctx.Rand != nil {
		i = ctx.Rand.Intn(len(pool))
	}
	ctx.Sink.PlaySound(pool[i])
}

// Update eases the foot targets toward the plants. Feet only follow the plants
// while grounded.
func (g *Gait) Update(grounded bool, dt float32) {
	if !grounded {
		return
	}
	for _, side := range []Side{Left, Right} {
		g.targets[side] = g.targets[side].Lerp(g.plants[side].Point, g.cfg.IKSpeed*dt)
	}
}

// Goal returns the IK goal for the foot on side: the eased target lifted by the
// sole offset, the heading of forward tilted onto the plant's surface.
func (g *Gait) Goal(side Side, forward math.Vec3, grounded bool) (pos math.Vec3, rot math.Quat, weight float32) {
	pos = g.targets[side].Add(math.Up.Scale(g.cfg.FootOffset))
	heading := math.LookRotation(forward.Horizontal(), math.Up)
	rot = math.FromToRotation(math.Up, g.plants[side].Normal).Mul(heading)
	if grounded {
		weight = 1
	}
	return pos, rot, weight
}
