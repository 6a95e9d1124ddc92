// Package config handles game configuration loading and management.
package config

import (
	"github.com/Faultbox/clamber/pkg/math"
)

// Config holds all game settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Audio     AudioConfig     `yaml:"audio"`
	Camera    CameraConfig    `yaml:"camera"`
	Character CharacterConfig `yaml:"character"`
	Sim       SimConfig       `yaml:"sim"`
	Level     LevelConfig     `yaml:"level"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume  float32 `yaml:"master_volume"`
	SFXVolume     float32 `yaml:"sfx_volume"`
	AmbientVolume float32 `yaml:"ambient_volume"` // loudest ambient level, reached at AmbientMinHeight
	Muted         bool    `yaml:"muted"`
	ClipDir       string  `yaml:"clip_dir"` // directory of *.wav clips, keyed by file name without extension
	Ambient       string  `yaml:"ambient"`  // looping ambient clip name, empty for none

	AmbientMinHeight float32 `yaml:"ambient_min_height"`
	AmbientMaxHeight float32 `yaml:"ambient_max_height"`
}

// CameraConfig holds third-person camera settings.
type CameraConfig struct {
	Distance         float32 `yaml:"distance"`
	Pitch            float32 `yaml:"pitch"` // radians
	MinPitch         float32 `yaml:"min_pitch"`
	MaxPitch         float32 `yaml:"max_pitch"`
	YawSensitivity   float32 `yaml:"yaw_sensitivity"`
	PitchSensitivity float32 `yaml:"pitch_sensitivity"`
}

// CharacterConfig holds all locomotion tuning for one character.
type CharacterConfig struct {
	Profile  string         `yaml:"profile"` // "rig" or "capsule"
	Movement MovementConfig `yaml:"movement"`
	Arms     ArmsConfig     `yaml:"arms"`
	Legs     LegsConfig     `yaml:"legs"`
	Collider ColliderConfig `yaml:"collider"`
	Body     BodyConfig     `yaml:"body"`
	Skeleton SkeletonConfig `yaml:"skeleton"`
}

// MovementConfig holds body force, speed and turning settings.
type MovementConfig struct {
	Speed      float32 `yaml:"speed"`       // grounded acceleration force
	AirSpeed   float32 `yaml:"air_speed"`   // airborne force; torso force while grounded
	ClimbSpeed float32 `yaml:"climb_speed"` // climbing force
	TopSpeed   float32 `yaml:"top_speed"`   // horizontal speed clamp
	JumpForce  float32 `yaml:"jump_force"`  // upward impulse

	TurnSpeed       float32 `yaml:"turn_speed"`       // max yaw rate, degrees per second
	TurnSmoothTime  float32 `yaml:"turn_smooth_time"` // seconds
	CameraThreshold float32 `yaml:"camera_threshold"` // degrees of camera drift before the body follows
	ClimbTurnSpeed  float32 `yaml:"climb_turn_speed"` // slerp rate toward the wall while climbing
	GroundRay       float32 `yaml:"ground_ray"`       // grounded probe length from the body origin
	RunThreshold    float32 `yaml:"run_threshold"`    // speed separating idle from running
	AnimSpeedFloor  float32 `yaml:"anim_speed_floor"` // below this speed the animation plays at 1x
}

// ArmsConfig holds hand reach and grab settings.
type ArmsConfig struct {
	IKSpeed       float32 `yaml:"ik_speed"`
	ReachDistance float32 `yaml:"reach_distance"` // shoulder ray length
	CaptureRadius float32 `yaml:"capture_radius"`
	Spring        float32 `yaml:"spring"`
	Damper        float32 `yaml:"damper"`
	Slack         float32 `yaml:"slack"` // spring joint max distance before it pulls
}

// LegsConfig holds foot placement and gait settings.
type LegsConfig struct {
	RayDistance float32  `yaml:"ray_distance"`
	Separation  float32  `yaml:"separation"` // minimum distance between plants at unit speed
	SpeedLow    float32  `yaml:"speed_low"`
	SpeedHigh   float32  `yaml:"speed_high"`
	LookAhead   float32  `yaml:"look_ahead"`    // max velocity look-ahead for the foot ray
	LookAheadDZ float32  `yaml:"look_ahead_dz"` // look-ahead below this is ignored
	IKSpeed     float32  `yaml:"ik_speed"`
	FootOffset  float32  `yaml:"foot_offset"` // sole height above the plant
	Footsteps   []string `yaml:"footsteps"`   // clip names
}

// ColliderConfig holds the standing and climbing capsule profiles.
type ColliderConfig struct {
	StandCenter math.Vec3 `yaml:"stand_center"`
	StandHeight float32   `yaml:"stand_height"`
	ClimbCenter math.Vec3 `yaml:"climb_center"`
	ClimbHeight float32   `yaml:"climb_height"`
	Radius      float32   `yaml:"radius"`
	GrowSpeed   float32   `yaml:"grow_speed"`
}

// BodyConfig holds rigid body settings.
type BodyConfig struct {
	Mass    float32 `yaml:"mass"`
	Drag    float32 `yaml:"drag"`
	Gravity float32 `yaml:"gravity"`
}

// SkeletonConfig holds limb sockets in body-local space.
type SkeletonConfig struct {
	LeftShoulder  math.Vec3 `yaml:"left_shoulder"`
	RightShoulder math.Vec3 `yaml:"right_shoulder"`
	LeftHip       math.Vec3 `yaml:"left_hip"`
	RightHip      math.Vec3 `yaml:"right_hip"`
	LeftFootRest  math.Vec3 `yaml:"left_foot_rest"`
	RightFootRest math.Vec3 `yaml:"right_foot_rest"`
	LeftHandRest  math.Vec3 `yaml:"left_hand_rest"`
	RightHandRest math.Vec3 `yaml:"right_hand_rest"`
	Chest         math.Vec3 `yaml:"chest"`
}

// SimConfig holds simulation loop settings.
type SimConfig struct {
	FixedStep float32      `yaml:"fixed_step"` // seconds per physics tick
	FrameRate int          `yaml:"frame_rate"` // render frames per second in headless mode
	Headless  bool         `yaml:"headless"`
	Frames    int          `yaml:"frames"` // headless run length, 0 plays the script once
	Seed      int64        `yaml:"seed"`   // footstep randomness, 0 seeds from the clock
	Script    []ScriptStep `yaml:"script"`
}

// ScriptStep is a span of frames with constant input, used in headless mode.
type ScriptStep struct {
	Frames    int        `yaml:"frames"`
	Move      [2]float32 `yaml:"move"`
	Jump      bool       `yaml:"jump"` // pressed on the first frame of the step
	LeftGrab  bool       `yaml:"left_grab"`
	RightGrab bool       `yaml:"right_grab"`
	CameraYaw float32    `yaml:"camera_yaw"` // radians, absolute
}

// LevelConfig holds level settings.
type LevelConfig struct {
	Path string `yaml:"path"` // YAML level file, empty for the built-in level
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogFile   string `yaml:"log_file"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "clamber",
			Width:  1280,
			Height: 720,
		},
		Audio: AudioConfig{
			MasterVolume:     0.8,
			SFXVolume:        0.8,
			AmbientVolume:    0.6,
			ClipDir:          "sounds",
			Ambient:          "ocean",
			AmbientMinHeight: 0,
			AmbientMaxHeight: 40,
		},
		Camera: CameraConfig{
			Distance:         5,
			Pitch:            0.35,
			MinPitch:         -0.6,
			MaxPitch:         1.2,
			YawSensitivity:   0.004,
			PitchSensitivity: 0.003,
		},
		Character: DefaultCharacter(),
		Sim: SimConfig{
			FixedStep: 0.02,
			FrameRate: 60,
			Script: []ScriptStep{
				{Frames: 120, Move: [2]float32{0, 1}},
				{Frames: 30, Move: [2]float32{0, 1}, Jump: true},
				{Frames: 90, Move: [2]float32{0, 1}, LeftGrab: true, RightGrab: true},
				{Frames: 60, Move: [2]float32{0, 1}, LeftGrab: true, RightGrab: true},
				{Frames: 60},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultCharacter returns tuning for a human-sized character whose body origin
// sits one unit above its feet.
func DefaultCharacter() CharacterConfig {
	return CharacterConfig{
		Profile: "rig",
		Movement: MovementConfig{
			Speed:           40,
			AirSpeed:        12,
			ClimbSpeed:      30,
			TopSpeed:        6,
			JumpForce:       6,
			TurnSpeed:       540,
			TurnSmoothTime:  0.08,
			CameraThreshold: 0.5,
			ClimbTurnSpeed:  8,
			GroundRay:       1.1,
			RunThreshold:    0.5,
			AnimSpeedFloor:  2,
		},
		Arms: ArmsConfig{
			IKSpeed:       10,
			ReachDistance: 1.5,
			CaptureRadius: 0.4,
			Spring:        120,
			Damper:        10,
			Slack:         0.6,
		},
		Legs: LegsConfig{
			RayDistance: 1.5,
			Separation:  0.7,
			SpeedLow:    0.5,
			SpeedHigh:   2,
			LookAhead:   1,
			LookAheadDZ: 0.5,
			IKSpeed:     12,
			FootOffset:  0.08,
			Footsteps:   []string{"step1", "step2", "step3"},
		},
		Collider: ColliderConfig{
			StandCenter: math.Vec3{},
			StandHeight: 2,
			ClimbCenter: math.Vec3{Y: 0.3},
			ClimbHeight: 1.4,
			Radius:      0.35,
			GrowSpeed:   5,
		},
		Body: BodyConfig{
			Mass:    1,
			Drag:    1,
			Gravity: 9.81,
		},
		Skeleton: SkeletonConfig{
			LeftShoulder:  math.Vec3{X: -0.25, Y: 0.55},
			RightShoulder: math.Vec3{X: 0.25, Y: 0.55},
			LeftHip:       math.Vec3{X: -0.15, Y: -0.2},
			RightHip:      math.Vec3{X: 0.15, Y: -0.2},
			LeftFootRest:  math.Vec3{X: -0.15, Y: -1},
			RightFootRest: math.Vec3{X: 0.15, Y: -1},
			LeftHandRest:  math.Vec3{X: -0.35, Y: -0.1, Z: 0.05},
			RightHandRest: math.Vec3{X: 0.35, Y: -0.1, Z: 0.05},
			Chest:         math.Vec3{Y: 0.4},
		},
	}
}
