package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/engine/input"
	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/pkg/math"
)

func headlessConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Sim.Headless = true
	cfg.Sim.Seed = 1
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestNewHeadless(t *testing.T) {
	tests := []struct {
		profile   string
		wantTorso bool
	}{
		{config.ProfileRig, true},
		{config.ProfileCapsule, false},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cfg := headlessConfig(t)
			cfg.Character.Profile = tt.profile
			g := newHeadless(t, cfg)

			if g.window != nil || g.input != nil {
				t.Error("headless game created SDL resources")
			}
			if got := g.Torso() != nil; got != tt.wantTorso {
				t.Errorf("torso = %v, want %v", got, tt.wantTorso)
			}
			if g.Audio().IsInitialized() {
				t.Error("headless game initialized audio")
			}
			if got := g.Body().Position(); got != (math.Vec3{Y: 1}) {
				t.Errorf("spawn = %v", got)
			}
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Level.Path = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestFrameAccumulator(t *testing.T) {
	g := newHeadless(t, headlessConfig(t))

	total := 0
	for i := 0; i < 60; i++ {
		total += g.Frame(locomotion.Input{}, 1.0/60)
	}
	// 1s of frames at a 0.02s step
	if total < 49 || total > 50 {
		t.Errorf("ticks = %d, want ~50", total)
	}
	if got := g.Controller().Ticks(); got != uint64(total) {
		t.Errorf("controller ticks = %d, want %d", got, total)
	}

	// a long stall is capped
	if n := g.Frame(locomotion.Input{}, 10); n != maxTicksPerFrame {
		t.Errorf("ticks after stall = %d, want %d", n, maxTicksPerFrame)
	}
	if n := g.Frame(locomotion.Input{}, 0.001); n != 0 {
		t.Errorf("ticks after capped frame = %d, want 0", n)
	}
}

func TestJumpLatchedUntilTick(t *testing.T) {
	g := newHeadless(t, headlessConfig(t))

	// settle on the floor
	for i := 0; i < 10; i++ {
		g.Frame(locomotion.Input{}, 0.02)
	}

	// the press lands on a frame too short to tick
	if n := g.Frame(locomotion.Input{Jump: true}, 0.001); n != 0 {
		t.Fatalf("ticks = %d, want 0", n)
	}
	if !g.jump {
		t.Fatal("jump not latched")
	}

	g.Frame(locomotion.Input{}, 0.02)
	if g.jump {
		t.Error("jump still latched after a tick")
	}
	if vy := g.Body().Velocity().Y; vy <= 0 {
		t.Errorf("vertical velocity = %v, want upward", vy)
	}
}

func TestScriptInput(t *testing.T) {
	script := []config.ScriptStep{
		{Frames: 2, Move: [2]float32{0, 1}},
		{Frames: 3, Move: [2]float32{3, 4}, Jump: true, LeftGrab: true, CameraYaw: 1},
	}
	tests := []struct {
		frame    int
		wantOK   bool
		wantJump bool
		wantGrab bool
		wantYaw  float32
	}{
		{0, true, false, false, 0},
		{1, true, false, false, 0},
		{2, true, true, true, 1},
		{3, true, false, true, 1},
		{4, true, false, true, 1},
		{5, false, false, false, 0},
	}
	for _, tt := range tests {
		in, yaw, ok := scriptInput(script, tt.frame)
		if ok != tt.wantOK || in.Jump != tt.wantJump || in.LeftGrab != tt.wantGrab || yaw != tt.wantYaw {
			t.Errorf("frame %d: in=%+v yaw=%v ok=%v", tt.frame, in, yaw, ok)
		}
	}

	in, _, _ := scriptInput(script, 3)
	if l := in.Move.Length(); l > 1+1e-5 {
		t.Errorf("move length = %v, want clamped to 1", l)
	}
	if got := scriptLength(script); got != 5 {
		t.Errorf("scriptLength = %d, want 5", got)
	}
}

func TestRunScriptWalksForward(t *testing.T) {
	g := newHeadless(t, headlessConfig(t))
	s := g.RunScript([]config.ScriptStep{{Frames: 60, Move: [2]float32{0, 1}}}, 0)

	if s.Frames != 60 {
		t.Errorf("frames = %d, want 60", s.Frames)
	}
	if s.Position.Z < 1 {
		t.Errorf("z = %v, want forward progress", s.Position.Z)
	}
	if s.Steps == 0 || s.Sounds == 0 {
		t.Errorf("steps = %d sounds = %d, want footsteps", s.Steps, s.Sounds)
	}
	if s.Climbing || !s.Grounded {
		t.Errorf("climbing = %v grounded = %v", s.Climbing, s.Grounded)
	}
	if !strings.Contains(s.Anim, "isRunning=true") {
		t.Errorf("anim = %s, want running", s.Anim)
	}
}

func TestDefaultScriptReachesWall(t *testing.T) {
	cfg := headlessConfig(t)
	g := newHeadless(t, cfg)
	s := g.RunScript(cfg.Sim.Script, cfg.Sim.Frames)

	if s.Attaches == 0 {
		t.Errorf("summary = %+v, want the hands to grab the wall", s)
	}
	if s.Climbing {
		t.Error("still climbing after the grabs were released")
	}
	if live := g.Controller().Grab().Stats().Live; live != 0 {
		t.Errorf("live anchors = %d, want 0", live)
	}
}

func TestRunScriptPastEnd(t *testing.T) {
	g := newHeadless(t, headlessConfig(t))
	s := g.RunScript([]config.ScriptStep{{Frames: 10, Move: [2]float32{0, 1}}}, 40)
	if s.Frames != 40 {
		t.Errorf("frames = %d, want 40", s.Frames)
	}
}

const padLevel = `
name: pad
spawn: {x: 0, y: 1, z: 0}
boxes:
  - {name: floor, min: {x: -5, y: -1, z: -5}, max: {x: 5, y: 0, z: 5}, layer: ground, tag: Walkable}
pads:
  - {name: pad, min: {x: -1, y: 0, z: -1}, max: {x: 1, y: 0.2, z: 1}, force: 8, wait: 0.1}
`

func TestPadLaunchesCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.yaml")
	if err := os.WriteFile(path, []byte(padLevel), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := headlessConfig(t)
	cfg.Level.Path = path
	g := newHeadless(t, cfg)

	peak := float32(0)
	for i := 0; i < 30; i++ {
		g.Frame(locomotion.Input{}, 0.02)
		if y := g.Body().Position().Y; y > peak {
			peak = y
		}
	}
	if g.Pads().Launches() == 0 {
		t.Fatal("pad never launched")
	}
	if peak < 1.5 {
		t.Errorf("peak height = %v, want a visible bounce", peak)
	}
}

const flatLevel = `
name: flat
spawn: {x: 0, y: 1, z: 0}
boxes:
  - {name: floor, min: {x: -50, y: -1, z: -50}, max: {x: 50, y: 0, z: 50}, layer: ground, tag: Walkable}
`

func TestTorsoForceMovesBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.yaml")
	if err := os.WriteFile(path, []byte(flatLevel), 0644); err != nil {
		t.Fatal(err)
	}

	walk := func(airSpeed float32) math.Vec3 {
		cfg := headlessConfig(t)
		cfg.Level.Path = path
		cfg.Character.Profile = config.ProfileRig
		cfg.Character.Movement.AirSpeed = airSpeed
		g := newHeadless(t, cfg)
		for i := 0; i < 60; i++ {
			g.Frame(locomotion.Input{Move: math.Vec2{Y: 1}}, 0.02)
		}
		return g.Body().Position()
	}

	still := walk(0)
	pushed := walk(1000)
	if still == pushed {
		t.Fatalf("body ended at %v with and without torso force", still)
	}
	if pushed.Z <= still.Z {
		t.Errorf("z = %v with torso force, want beyond %v", pushed.Z, still.Z)
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Sim.Script = []config.ScriptStep{{Frames: 5}}
	g := newHeadless(t, cfg)
	if err := g.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := g.Summary().Frames; got != 5 {
		t.Errorf("frames = %d, want 5", got)
	}
}

func TestRespawnKey(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		wantAt bool
	}{
		{"respawn key", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: input.KeyRespawn}}, true},
		{"other key", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}}, false},
		{"window resize", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newHeadless(t, headlessConfig(t))
			g.input = input.New()

			for i := 0; i < 30; i++ {
				g.Frame(locomotion.Input{Move: math.Vec2{Y: 1}}, 0.02)
			}
			moved := g.Body().Position()

			g.input.Handle(tt.event)
			g.handleEvents()

			spawn := g.levels.Current().Spawn
			if tt.wantAt {
				if got := g.Body().Position(); got != spawn {
					t.Errorf("position = %v, want spawn %v", got, spawn)
				}
				if v := g.Body().Velocity(); !v.IsZero() {
					t.Errorf("velocity = %v, want rest", v)
				}
				if tp := g.Torso(); tp != nil && tp.Position().Distance(spawn) > 2 {
					t.Errorf("torso left at %v", tp.Position())
				}
			} else if got := g.Body().Position(); got != moved {
				t.Errorf("position = %v, want unchanged %v", got, moved)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	g := newHeadless(t, headlessConfig(t))
	err := func() (err error) {
		defer g.recoverPanic(&err)
		panic("boom")
	}()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want recovered panic", err)
	}
}

func TestViewportProject(t *testing.T) {
	v := viewport{focus: math.Vec3{Y: 1, Z: 2}, width: 200, height: 100, scale: 10}
	tests := []struct {
		p      math.Vec3
		wx, wy int32
	}{
		{math.Vec3{Y: 1, Z: 2}, 100, 50},
		{math.Vec3{Y: 2, Z: 2}, 100, 40},
		{math.Vec3{X: 9, Y: 1, Z: 4}, 120, 50},
	}
	for _, tt := range tests {
		if x, y := v.project(tt.p); x != tt.wx || y != tt.wy {
			t.Errorf("project(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}
