// Package animator collects the presentation output of a character: animation
// parameters, IK goals and one-shot sounds.
package animator

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/internal/logger"
	"github.com/Faultbox/clamber/pkg/math"
)

// ParamSpeed is the parameter key holding the playback speed scalar.
const ParamSpeed = "speed"

// Player plays one-shot sounds by clip name.
type Player interface {
	PlaySound(name string)
}

// State is the animation clip selected from the parameters.
type State int

const (
	StateIdle State = iota
	StateRun
	StateClimb
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRun:
		return "run"
	case StateClimb:
		return "climb"
	default:
		return "unknown"
	}
}

// Goal is the latest IK target for one end effector.
type Goal struct {
	Position math.Vec3
	Rotation math.Quat
	Weight   float32
}

var _ locomotion.Sink = (*Animator)(nil)

// Animator implements locomotion.Sink.
type Animator struct {
	log    *zap.Logger
	player Player

	params *orderedmap.OrderedMap[string, any]
	goals  [4]Goal

	state     State
	stateTime float32

	lastSound string
	sounds    int
}

// New creates an animator forwarding sounds to player (may be nil).
func New(player Player) *Animator {
	a := &Animator{
		log:    logger.Named("animator"),
		player: player,
		params: orderedmap.NewOrderedMap[string, any](),
	}
	a.params.Set(locomotion.ParamRunning, false)
	a.params.Set(locomotion.ParamClimbing, false)
	a.params.Set(ParamSpeed, float32(1))
	for i := range a.goals {
		a.goals[i].Rotation = math.QuatIdentity()
	}
	return a
}

// PlaySound implements locomotion.Sink.
func (a *Animator) PlaySound(name string) {
	a.lastSound = name
	a.sounds++
	if a.player != nil {
		a.player.PlaySound(name)
	}
}

// SetBool implements locomotion.Sink.
func (a *Animator) SetBool(name string, value bool) {
	a.params.Set(name, value)
}

// SetSpeed implements locomotion.Sink.
func (a *Animator) SetSpeed(speed float32) {
	a.params.Set(ParamSpeed, speed)
}

// SetIKGoal implements locomotion.Sink. Unknown goals are ignored.
func (a *Animator) SetIKGoal(goal locomotion.IKGoal, pos math.Vec3, rot math.Quat, weight float32) {
	if goal < locomotion.LeftHand || goal > locomotion.RightFoot {
		return
	}
	a.goals[goal] = Goal{Position: pos, Rotation: rot, Weight: math.Clamp01(weight)}
}

// Bool returns a boolean parameter and whether it is set.
func (a *Animator) Bool(name string) (value, ok bool) {
	v, ok := a.params.Get(name)
	if !ok {
		return false, false
	}
	value, ok = v.(bool)
	return value, ok
}

// Speed returns the playback speed scalar.
func (a *Animator) Speed() float32 {
	v, _ := a.params.Get(ParamSpeed)
	s, _ := v.(float32)
	return s
}

// Goal returns the latest goal for an end effector.
func (a *Animator) Goal(goal locomotion.IKGoal) Goal {
	if goal < locomotion.LeftHand || goal > locomotion.RightFoot {
		return Goal{Rotation: math.QuatIdentity()}
	}
	return a.goals[goal]
}

// LastSound returns the most recent sound name and how many have played.
func (a *Animator) LastSound() (string, int) {
	return a.lastSound, a.sounds
}

// State returns the current clip state.
func (a *Animator) State() State {
	return a.state
}

// StateTime returns playback time in the current state, scaled by speed.
func (a *Animator) StateTime() float32 {
	return a.stateTime
}

// Advance selects the clip state from the parameters and accumulates playback
// time. Changing state restarts playback.
func (a *Animator) Advance(dt float32) {
	next := StateIdle
	if climbing, _ := a.Bool(locomotion.ParamClimbing); climbing {
		next = StateClimb
	} else if running, _ := a.Bool(locomotion.ParamRunning); running {
		next = StateRun
	}

	if next != a.state {
		a.log.Debug("animation state",
			zap.Stringer("from", a.state),
			zap.Stringer("to", next))
		a.state = next
		a.stateTime = 0
	}
	a.stateTime += dt * a.Speed()
}

// Dump formats the parameters in insertion order, e.g. "[isRunning=true speed=1]".
func (a *Animator) Dump() string {
	out := "["
	count := a.params.Len()
	for _, key := range a.params.Keys() {
		v, _ := a.params.Get(key)
		out += fmt.Sprintf("%s=%v", key, v)

		count--
		if count > 0 {
			out += " "
		}
	}
	return out + "]"
}
