package game

import (
	"github.com/Faultbox/clamber/internal/engine/window"
	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// pixels per world unit in the debug view
const viewScale = 48

var (
	colorSky      = window.Color{R: 24, G: 28, B: 40, A: 255}
	colorGround   = window.Color{R: 90, G: 110, B: 80, A: 255}
	colorClimb    = window.Color{R: 140, G: 120, B: 90, A: 255}
	colorTrigger  = window.Color{R: 200, G: 80, B: 160, A: 255}
	colorDefault  = window.Color{R: 110, G: 110, B: 120, A: 255}
	colorBody     = window.Color{R: 230, G: 230, B: 240, A: 255}
	colorTorso    = window.Color{R: 120, G: 180, B: 255, A: 255}
	colorHand     = window.Color{R: 255, G: 200, B: 60, A: 255}
	colorAttached = window.Color{R: 255, G: 90, B: 60, A: 255}
	colorFoot     = window.Color{R: 80, G: 220, B: 120, A: 255}
)

// viewport maps world points to the screen of a side view looking along -X:
// Z runs right and Y runs up, centered on a focus point.
type viewport struct {
	focus         math.Vec3
	width, height int
	scale         float32
}

func (v viewport) project(p math.Vec3) (int32, int32) {
	x := float32(v.width)/2 + (p.Z-v.focus.Z)*v.scale
	y := float32(v.height)/2 - (p.Y-v.focus.Y)*v.scale
	return int32(x), int32(y)
}

func boxColor(l physics.Layer) window.Color {
	switch {
	case l.Has(physics.LayerTrigger):
		return colorTrigger
	case l.Has(physics.LayerClimbable):
		return colorClimb
	case l.Has(physics.LayerGround):
		return colorGround
	default:
		return colorDefault
	}
}

// draw renders the level, the body and the IK goals as a side view.
func (g *Game) draw() {
	w, h := g.window.GetSize()
	v := viewport{focus: g.body.Position(), width: w, height: h, scale: viewScale}

	g.window.Clear(colorSky)

	for _, b := range g.levels.World().Boxes() {
		x0, y0 := v.project(math.Vec3{Y: b.Max.Y, Z: b.Min.Z})
		x1, y1 := v.project(math.Vec3{Y: b.Min.Y, Z: b.Max.Z})
		g.window.FillRect(x0, y0, x1-x0, y1-y0, boxColor(b.Layer))
	}

	c := g.body.Capsule()
	center := g.body.Position().Add(c.Center)
	x0, y0 := v.project(center.Add(math.Vec3{Y: c.Height / 2, Z: -c.Radius}))
	x1, y1 := v.project(center.Add(math.Vec3{Y: -c.Height / 2, Z: c.Radius}))
	g.window.FillRect(x0, y0, x1-x0, y1-y0, colorBody)

	if g.torso != nil {
		g.marker(v, g.torso.Position(), colorTorso)
	}

	for _, side := range []locomotion.Side{locomotion.Left, locomotion.Right} {
		hand := g.ctrl.Hand(side)
		col := colorHand
		if hand.Attached() {
			col = colorAttached
		}
		if goal := g.anim.Goal(handGoal(side)); goal.Weight > 0 {
			g.marker(v, goal.Position, col)
		}
		if p, _, ok := hand.Marker(); ok {
			mx, my := v.project(p)
			g.window.DrawLine(mx-4, my, mx+4, my, col)
			g.window.DrawLine(mx, my-4, mx, my+4, col)
		}

		g.marker(v, g.anim.Goal(footGoal(side)).Position, colorFoot)
	}
}

func (g *Game) marker(v viewport, p math.Vec3, col window.Color) {
	x, y := v.project(p)
	g.window.FillRect(x-3, y-3, 6, 6, col)
}

func handGoal(side locomotion.Side) locomotion.IKGoal {
	if side == locomotion.Left {
		return locomotion.LeftHand
	}
	return locomotion.RightHand
}

func footGoal(side locomotion.Side) locomotion.IKGoal {
	if side == locomotion.Left {
		return locomotion.LeftFoot
	}
	return locomotion.RightFoot
}
