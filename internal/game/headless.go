package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/pkg/math"
)

// Summary describes the state after a scripted run.
type Summary struct {
	Frames   int
	Ticks    uint64
	Position math.Vec3
	Climbing bool
	Grounded bool
	Steps    int
	Attaches int
	Releases int
	Launches int
	Sounds   int
	Anim     string
}

// Fields returns the summary as log fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("frames", s.Frames),
		zap.Uint64("ticks", s.Ticks),
		zap.Float32("x", s.Position.X),
		zap.Float32("y", s.Position.Y),
		zap.Float32("z", s.Position.Z),
		zap.Bool("climbing", s.Climbing),
		zap.Bool("grounded", s.Grounded),
		zap.Int("steps", s.Steps),
		zap.Int("attaches", s.Attaches),
		zap.Int("releases", s.Releases),
		zap.Int("launches", s.Launches),
		zap.Int("sounds", s.Sounds),
		zap.String("anim", s.Anim),
	}
}

// scriptLength returns the total frames of a script.
func scriptLength(script []config.ScriptStep) int {
	n := 0
	for _, s := range script {
		n += s.Frames
	}
	return n
}

// scriptInput returns the input and absolute camera yaw for frame, and whether
// the frame is inside the script. Jump is set only on a step's first frame.
func scriptInput(script []config.ScriptStep, frame int) (locomotion.Input, float32, bool) {
	start := 0
	for _, s := range script {
		if frame < start+s.Frames {
			return locomotion.Input{
				Move:      math.Vec2{X: s.Move[0], Y: s.Move[1]}.ClampLength(1),
				Jump:      s.Jump && frame == start,
				LeftGrab:  s.LeftGrab,
				RightGrab: s.RightGrab,
			}, s.CameraYaw, true
		}
		start += s.Frames
	}
	return locomotion.Input{}, 0, false
}

// RunScript plays script at the configured frame rate. frames is the run
// length; zero plays the script once. Frames past the end of the script get
// no input and keep the last camera yaw.
func (g *Game) RunScript(script []config.ScriptStep, frames int) Summary {
	if frames <= 0 {
		frames = scriptLength(script)
	}
	dt := 1 / float32(g.cfg.Sim.FrameRate)

	g.log.Info("running script",
		zap.Int("steps", len(script)),
		zap.Int("frames", frames))

	for i := 0; i < frames; i++ {
		in, yaw, ok := scriptInput(script, i)
		if ok {
			g.camera.SetYaw(yaw)
		}
		g.Frame(in, dt)
	}
	return g.Summary()
}

// Summary reports the current state of the game.
func (g *Game) Summary() Summary {
	stats := g.ctrl.Grab().Stats()
	_, sounds := g.anim.LastSound()
	return Summary{
		Frames:   g.frames,
		Ticks:    g.ctrl.Ticks(),
		Position: g.body.Position(),
		Climbing: g.ctrl.Climbing(),
		Grounded: g.ctrl.Grounded(),
		Steps:    g.ctrl.Gait().Steps(),
		Attaches: stats.Attaches,
		Releases: stats.Releases,
		Launches: g.pads.Launches(),
		Sounds:   sounds,
		Anim:     g.anim.Dump(),
	}
}
