package locomotion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// GrabState is the state of one hand.
type GrabState int

const (
	// GrabFree means the grab signal is not held.
	GrabFree GrabState = iota
	// GrabReaching means the grab is held but the hand has not attached yet.
	GrabReaching
	// GrabAttached means the hand holds a surface through an anchor.
	GrabAttached
)

// String returns the state name.
func (s GrabState) String() string {
	switch s {
	case GrabFree:
		return "free"
	case GrabReaching:
		return "reaching"
	case GrabAttached:
		return "attached"
	default:
		return "unknown"
	}
}

// Hand is one arm's grab state machine. It owns at most one anchor.
type Hand struct {
	Side  Side
	State GrabState
	Limb  LimbState

	anchor *physics.SpringJoint
}

// Attached reports whether the hand holds a surface.
func (h *Hand) Attached() bool { return h.State == GrabAttached }

// Anchor returns the live anchor, or nil.
func (h *Hand) Anchor() *physics.SpringJoint { return h.anchor }

// Marker returns the point and normal the hand would grab. visible is false
// when there is nothing in reach.
func (h *Hand) Marker() (point, normal math.Vec3, visible bool) {
	return h.Limb.Desired, h.Limb.DesiredNormal, h.Limb.Valid
}

// position is where the hand currently is: on its IK target when the IK is
// active, otherwise at rest.
func (h *Hand) position(rest math.Vec3) math.Vec3 {
	if h.Limb.Weight > 0 {
		return h.Limb.Target
	}
	return rest
}

// GrabStats counts anchor lifecycle events.
type GrabStats struct {
	Attaches int
	Releases int
	Live     int
}

// Grab runs both hands.
type Grab struct {
	cfg   config.ArmsConfig
	hands [2]Hand
	stats GrabStats
}

// NewGrab creates a grab with both hands free and at rest under t.
func NewGrab(cfg config.ArmsConfig, sk Skeleton, t math.Transform) *Grab {
	g := &Grab{cfg: cfg}
	for _, side := range []Side{Left, Right} {
		g.hands[side] = Hand{Side: side, Limb: NewLimbState(sk.HandRest(t, side))}
	}
	return g
}

// Hand returns the hand on side.
func (g *Grab) Hand(side Side) *Hand { return &g.hands[side] }

// Stats returns anchor counters.
func (g *Grab) Stats() GrabStats { return g.stats }

// Climbing reports whether either hand is attached.
func (g *Grab) Climbing() bool {
	return g.hands[Left].Attached() || g.hands[Right].Attached()
}

// SurfaceNormal returns the average normal of the grabbed surfaces. ok is false
// when no hand is attached.
func (g *Grab) SurfaceNormal() (n math.Vec3, ok bool) {
	for i := range g.hands {
		if g.hands[i].Attached() {
			n = n.Add(g.hands[i].Limb.DesiredNormal)
			ok = true
		}
	}
	if !ok {
		return math.Vec3{}, false
	}
	return n.Normalize(), true
}

// FixedUpdate aims, eases and attaches or releases each hand. climbing is the
// mode computed at the start of the tick; while climbing the arm rays lean
// toward the move input.
func (g *Grab) FixedUpdate(ctx *Context, climbing bool, dt float32) {
	t := ctx.Transform()
	aim := ctx.Camera.Forward()
	for _, side := range []Side{Left, Right} {
		h := &g.hands[side]

		socket := ctx.Skeleton.Shoulder(t, side)
		if climbing {
			lean := t.Up().Scale(ctx.Input.Move.Y).Add(t.Right().Scale(ctx.Input.Move.X))
			socket = socket.Add(lean.Scale(0.5))
		}
		h.Limb.Aim(ctx.World, socket, aim, g.cfg.ReachDistance, ctx.Mask)

		if h.Limb.Valid || h.Attached() {
			h.Limb.Approach(g.cfg.IKSpeed, dt)
			h.Limb.SetWeight(1)
		} else {
			h.Limb.SetWeight(0)
		}

		if !ctx.Input.Grab(side) {
			g.release(ctx, h)
			continue
		}
		if h.Attached() {
			continue
		}
		h.State = GrabReaching
		rest := ctx.Skeleton.HandRest(t, side)
		if h.Limb.Valid && h.position(rest).Distance(h.Limb.Desired) < g.cfg.CaptureRadius {
			g.attach(ctx, h)
		}
	}
}

func (g *Grab) attach(ctx *Context, h *Hand) {
	before := g.Climbing()
	if h.anchor != nil {
		ctx.Body.Disconnect(h.anchor)
		g.stats.Live--
	}
	rot := math.LookRotation(h.Limb.DesiredNormal, math.Up)
	h.anchor = physics.NewSpringJoint(h.Limb.Desired, rot, physics.SpringParams{
		Spring:      g.cfg.Spring,
		Damper:      g.cfg.Damper,
		MaxDistance: g.cfg.Slack,
	})
	ctx.Body.Connect(h.anchor)
	h.State = GrabAttached
	h.Limb.Attached = true
	g.stats.Attaches++
	g.stats.Live++

	ctx.logger().Debug("hand attached",
		zap.Stringer("hand", h.Side),
		zap.Float32("x", h.Limb.Desired.X),
		zap.Float32("y", h.Limb.Desired.Y),
		zap.Float32("z", h.Limb.Desired.Z),
	)
	if !before {
		ctx.logger().Debug("climbing started")
	}
}

// release frees the hand. Releasing a hand without an anchor only resets its state.
func (g *Grab) release(ctx *Context, h *Hand) {
	h.State = GrabFree
	h.Limb.Attached = false
	if h.anchor == nil {
		return
	}
	ctx.Body.Disconnect(h.anchor)
	h.anchor = nil
	g.stats.Releases++
	g.stats.Live--

	ctx.logger().Debug("hand released", zap.Stringer("hand", h.Side))
	if !g.Climbing() {
		ctx.logger().Debug("climbing stopped")
	}
}

// ReleaseAll frees both hands.
func (g *Grab) ReleaseAll(ctx *Context) {
	for i := range g.hands {
		g.release(ctx, &g.hands[i])
	}
}
