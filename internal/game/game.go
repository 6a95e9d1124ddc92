// Package game assembles a character, its level and presentation, and runs the
// fixed-timestep loop.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/engine/animator"
	"github.com/Faultbox/clamber/internal/engine/audio"
	"github.com/Faultbox/clamber/internal/engine/camera"
	"github.com/Faultbox/clamber/internal/engine/input"
	"github.com/Faultbox/clamber/internal/engine/window"
	"github.com/Faultbox/clamber/internal/game/world"
	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/internal/logger"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// maxTicksPerFrame bounds catch-up after a long frame.
const maxTicksPerFrame = 8

// torso coupling to the chest
var torsoSpring = physics.SpringParams{Spring: 200, Damper: 20}

// Game is the main game instance.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	levels *world.Manager
	pads   *world.Pads

	body       *physics.RigidBody
	torso      *physics.RigidBody // nil for the capsule profile
	torsoJoint *physics.SpringJoint
	ctrl       *locomotion.Controller

	camera *camera.ThirdPersonCamera
	anim   *animator.Animator
	audio  *audio.Manager

	window *window.Window // nil when headless
	input  *input.Input

	running     bool
	accumulator float32
	jump        bool // latched until a tick consumes it
	frames      int
}

// New creates a game from cfg. Headless games never touch SDL or the audio device.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    logger.Named("game"),
		levels: world.NewManager(),
	}

	g.log.Info("initializing game",
		zap.String("profile", cfg.Character.Profile),
		zap.Bool("headless", cfg.Sim.Headless))

	if err := g.levels.LoadLevel(cfg.Level.Path); err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	lvl := g.levels.Current()
	g.pads = world.NewPads(lvl.Pads)

	g.audio = audio.New(cfg.Audio)
	g.anim = animator.New(g.audio)
	g.camera = camera.NewThirdPersonCamera(cfg.Camera)
	g.camera.SetYaw(lvl.Yaw)

	if err := g.spawn(lvl); err != nil {
		return nil, fmt.Errorf("failed to spawn character: %w", err)
	}

	if cfg.Sim.Headless {
		return g, nil
	}

	var err error
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.input = input.New()

	if err := g.audio.Init(); err != nil {
		// the game stays playable without sound
		g.log.Warn("audio unavailable", zap.Error(err))
	} else {
		g.loadSounds()
	}

	g.log.Info("game initialized successfully")
	return g, nil
}

func (g *Game) spawn(lvl *world.Level) error {
	cc := g.cfg.Character

	bodyCfg := physics.DefaultBodyConfig()
	bodyCfg.Mass = cc.Body.Mass
	bodyCfg.Drag = cc.Body.Drag
	bodyCfg.Gravity = math.Vec3{Y: -cc.Body.Gravity}
	g.body = physics.NewRigidBody(g.levels.World(), lvl.Spawn, bodyCfg)
	g.body.SetRotation(math.QuatFromYaw(lvl.Yaw))

	seed := g.cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx := &locomotion.Context{
		Body:   g.body,
		World:  g.levels.World(),
		Camera: g.camera,
		Sink:   g.anim,
		Rand:   rand.New(rand.NewSource(seed)),
		Log:    logger.Named("locomotion"),
	}

	if cc.Profile == config.ProfileRig {
		chest := locomotion.NewSkeleton(cc.Skeleton).Chest(g.body.Transform())
		g.torso = physics.NewRigidBody(nil, chest, physics.BodyConfig{Mass: cc.Body.Mass / 2, Drag: 4})
		g.torsoJoint = physics.NewSpringJoint(chest, math.QuatIdentity(), torsoSpring)
		g.torso.Connect(g.torsoJoint)
		ctx.Torso = g.torso
	}

	ctrl, err := locomotion.New(ctx, cc)
	if err != nil {
		return err
	}
	g.ctrl = ctrl
	g.camera.Follow(g.body.Position())
	return nil
}

func (g *Game) loadSounds() {
	n, err := g.audio.LoadDir(g.cfg.Audio.ClipDir)
	if err != nil {
		g.log.Warn("failed to load sounds", zap.String("dir", g.cfg.Audio.ClipDir), zap.Error(err))
		return
	}
	g.log.Info("sounds loaded", zap.Int("clips", n))

	if name := g.cfg.Audio.Ambient; name != "" {
		if err := g.audio.PlayAmbient(name); err != nil {
			g.log.Warn("failed to start ambient", zap.String("clip", name), zap.Error(err))
		}
	}
}

// Controller returns the character controller.
func (g *Game) Controller() *locomotion.Controller { return g.ctrl }

// Body returns the character body.
func (g *Game) Body() *physics.RigidBody { return g.body }

// Torso returns the secondary torso body, nil for the capsule profile.
func (g *Game) Torso() *physics.RigidBody { return g.torso }

// Animator returns the presentation sink.
func (g *Game) Animator() *animator.Animator { return g.anim }

// Camera returns the follow camera.
func (g *Game) Camera() *camera.ThirdPersonCamera { return g.camera }

// Pads returns the level's trampoline pads.
func (g *Game) Pads() *world.Pads { return g.pads }

// Audio returns the sound manager.
func (g *Game) Audio() *audio.Manager { return g.audio }

// Frame advances the game by one rendered frame of dt seconds: as many fixed
// ticks as the accumulator allows, then the frame update. It returns the
// number of ticks run.
func (g *Game) Frame(in locomotion.Input, dt float32) int {
	if in.Jump {
		g.jump = true
	}

	step := g.cfg.Sim.FixedStep
	g.accumulator += dt
	ticks := 0
	for g.accumulator >= step && ticks < maxTicksPerFrame {
		g.accumulator -= step
		g.tick(in, step)
		ticks++
	}
	if ticks == maxTicksPerFrame {
		g.accumulator = 0
	}

	g.ctrl.Update(dt)
	g.anim.Advance(dt)
	g.camera.Follow(g.body.Position())
	g.audio.SetListenerHeight(g.body.Position().Y)
	g.frames++
	return ticks
}

func (g *Game) tick(in locomotion.Input, dt float32) {
	in.Jump = g.jump
	g.jump = false

	g.ctrl.FixedUpdate(in, dt)
	if g.torso != nil {
		g.torsoJoint.Anchor = g.ctrl.Context().Skeleton.Chest(g.body.Transform())
		// the joint drags the body after the torso
		reaction := g.torsoJoint.Force(g.torso.Position(), g.torso.Velocity()).Neg()
		g.body.AddForce(reaction, physics.ForceContinuous)
		g.torso.Step(dt)
	}
	g.body.Step(dt)
	g.pads.FixedUpdate(g.body, dt)
}

// Run starts the main game loop, or the scripted run when headless.
func (g *Game) Run() (err error) {
	defer g.recoverPanic(&err)

	if g.cfg.Sim.Headless {
		summary := g.RunScript(g.cfg.Sim.Script, g.cfg.Sim.Frames)
		g.log.Info("headless run finished", summary.Fields()...)
		return nil
	}
	return g.loop()
}

func (g *Game) loop() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()
		dx, dy := g.input.MouseDelta()
		g.camera.HandleDrag(dx, dy)

		// 2. Simulate
		g.Frame(g.input.Sample(), dt)
		g.input.ConsumeJump()

		// 3. Render
		g.draw()
		g.window.Present()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("anim", g.anim.Dump()),
				zap.Bool("climbing", g.ctrl.Climbing()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents reacts to the window and key events of the last input update.
func (g *Game) handleEvents() {
	for _, e := range g.input.Events() {
		if e.Type == input.EventWindowResize {
			g.log.Debug("window resized",
				zap.Int("width", e.Width),
				zap.Int("height", e.Height))
		}
	}
	if g.input.IsKeyPressed(input.KeyRespawn) {
		g.Respawn()
	}
}

// Respawn releases both hands and puts the character back at the level spawn,
// at rest and facing the spawn heading.
func (g *Game) Respawn() {
	lvl := g.levels.Current()
	g.ctrl.Close()

	g.body.SetPosition(lvl.Spawn)
	g.body.SetVelocity(math.Vec3{})
	g.body.SetRotation(math.QuatFromYaw(lvl.Yaw))
	if g.torso != nil {
		chest := g.ctrl.Context().Skeleton.Chest(g.body.Transform())
		g.torsoJoint.Anchor = chest
		g.torso.SetPosition(chest)
		g.torso.SetVelocity(math.Vec3{})
	}

	g.camera.SetYaw(lvl.Yaw)
	g.camera.Follow(g.body.Position())
	g.log.Info("respawned", zap.String("level", lvl.Name))
}

// recoverPanic reports a panic from the loop to sentry and returns it as an error.
func (g *Game) recoverPanic(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	g.log.Error("game loop panic", zap.Any("panic", r))

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("profile", g.cfg.Character.Profile)
		scope.SetTag("level", g.levels.Current().Name)
		scope.SetTag("climbing", fmt.Sprint(g.ctrl.Climbing()))
	})
	hub.Recover(r)
	hub.Flush(time.Second * 5)

	*errp = fmt.Errorf("game loop panic: %v", r)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	g.ctrl.Close()
	g.audio.Close()
	if g.window != nil {
		g.window.Close()
	}
}
