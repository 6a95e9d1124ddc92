package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/logger"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// Pad is a trampoline trigger with its launch timer.
type Pad struct {
	Spec PadSpec

	inside  bool
	pending bool
	timer   float32
	fired   int
}

// Launches returns how many times the pad has fired.
func (p *Pad) Launches() int { return p.fired }

// Pending reports whether a launch is waiting on its timer.
func (p *Pad) Pending() bool { return p.pending }

// Pads steps trampoline pads against one body.
type Pads struct {
	log      *zap.Logger
	pads     []*Pad
	triggers *physics.StaticWorld
}

// NewPads creates pads from specs. Pad names must be unique.
func NewPads(specs []PadSpec) *Pads {
	ps := &Pads{log: logger.Named("pads")}
	boxes := make([]physics.Box, 0, len(specs))
	for _, s := range specs {
		ps.pads = append(ps.pads, &Pad{Spec: s})
		boxes = append(boxes, physics.NewBox(s.Name, s.Min, s.Max, physics.LayerTrigger, ""))
	}
	ps.triggers = physics.NewStaticWorld(boxes...)
	return ps
}

// All returns the pads.
func (ps *Pads) All() []*Pad {
	return ps.pads
}

// Launches returns the total launches of every pad.
func (ps *Pads) Launches() int {
	n := 0
	for _, p := range ps.pads {
		n += p.fired
	}
	return n
}

// feet returns the lowest point of the body's capsule.
func feet(body physics.Body) math.Vec3 {
	c := body.Capsule()
	return body.Position().Add(c.Center).Sub(math.Vec3{Y: c.Height / 2})
}

// FixedUpdate advances pad timers by dt. Entering a pad arms one launch; when
// its timer expires the body receives an upward impulse only if it is still
// inside. Re-entering while a launch is pending does not arm another.
func (ps *Pads) FixedUpdate(body physics.Body, dt float32) {
	touching := make(map[string]bool)
	for _, b := range ps.triggers.Overlapping(feet(body), physics.LayerTrigger) {
		touching[b.Name] = true
	}
	for _, p := range ps.pads {
		in := touching[p.Spec.Name]
		if in && !p.inside && !p.pending {
			p.pending = true
			p.timer = p.Spec.Wait
		}
		p.inside = in

		if !p.pending {
			continue
		}
		p.timer -= dt
		if p.timer > 0 {
			continue
		}
		p.pending = false
		if !in {
			continue
		}
		body.AddForce(math.Up.Scale(p.Spec.Force), physics.ForceImpulse)
		p.fired++
		ps.log.Debug("pad launch",
			zap.String("pad", p.Spec.Name),
			zap.Float32("force", p.Spec.Force))
	}
}
