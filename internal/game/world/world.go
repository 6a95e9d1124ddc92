// Package world handles level loading and the static environment.
package world

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/clamber/internal/logger"
	"github.com/Faultbox/clamber/internal/physics"
	"github.com/Faultbox/clamber/pkg/math"
)

// ErrInvalidLevel is returned for levels that parse but cannot be built.
var ErrInvalidLevel = errors.New("invalid level")

// BoxSpec describes one static collider.
type BoxSpec struct {
	Name  string    `yaml:"name"`
	Min   math.Vec3 `yaml:"min"`
	Max   math.Vec3 `yaml:"max"`
	Layer string    `yaml:"layer"` // default, ground, climbable or trigger
	Tag   string    `yaml:"tag"`
}

// PadSpec describes a trampoline pad: a trigger box that launches a body
// upward Wait seconds after it enters, if it is still inside.
type PadSpec struct {
	Name  string    `yaml:"name"`
	Min   math.Vec3 `yaml:"min"`
	Max   math.Vec3 `yaml:"max"`
	Force float32   `yaml:"force"`
	Wait  float32   `yaml:"wait"`
}

// Level is a loaded level description.
type Level struct {
	Name  string    `yaml:"name"`
	Spawn math.Vec3 `yaml:"spawn"`
	Yaw   float32   `yaml:"yaw"` // initial body yaw in radians
	Boxes []BoxSpec `yaml:"boxes"`
	Pads  []PadSpec `yaml:"pads"`
}

// ParseLayer maps a layer name to its bit. Empty means default.
func ParseLayer(name string) (physics.Layer, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return physics.LayerDefault, nil
	case "ground":
		return physics.LayerGround, nil
	case "climbable":
		return physics.LayerClimbable, nil
	case "trigger":
		return physics.LayerTrigger, nil
	default:
		return 0, fmt.Errorf("%w: unknown layer %q", ErrInvalidLevel, name)
	}
}

// Parse decodes a level from YAML. Unknown keys are rejected.
func Parse(data []byte) (*Level, error) {
	lvl := &Level{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(lvl); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Load reads a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", path, err)
	}
	return lvl, nil
}

// Validate checks that every box has a known layer and volume, and every pad
// can launch.
func (l *Level) Validate() error {
	if len(l.Boxes) == 0 {
		return fmt.Errorf("%w: no boxes", ErrInvalidLevel)
	}
	for i, b := range l.Boxes {
		if _, err := ParseLayer(b.Layer); err != nil {
			return fmt.Errorf("box %d (%s): %w", i, b.Name, err)
		}
		if degenerate(b.Min, b.Max) {
			return fmt.Errorf("%w: box %d (%s) has no volume", ErrInvalidLevel, i, b.Name)
		}
	}
	names := make(map[string]bool, len(l.Pads))
	for i, p := range l.Pads {
		if names[p.Name] {
			return fmt.Errorf("%w: pad %d (%s) name is not unique", ErrInvalidLevel, i, p.Name)
		}
		names[p.Name] = true
		if p.Force <= 0 {
			return fmt.Errorf("%w: pad %d (%s) force must be positive", ErrInvalidLevel, i, p.Name)
		}
		if p.Wait < 0 {
			return fmt.Errorf("%w: pad %d (%s) wait must not be negative", ErrInvalidLevel, i, p.Name)
		}
		if degenerate(p.Min, p.Max) {
			return fmt.Errorf("%w: pad %d (%s) has no volume", ErrInvalidLevel, i, p.Name)
		}
	}
	if !l.Spawn.IsFinite() {
		return fmt.Errorf("%w: spawn is not finite", ErrInvalidLevel)
	}
	return nil
}

func degenerate(a, b math.Vec3) bool {
	return a.X == b.X || a.Y == b.Y || a.Z == b.Z || !a.IsFinite() || !b.IsFinite()
}

// Build creates the static world. Pads become trigger boxes.
func (l *Level) Build() *physics.StaticWorld {
	boxes := make([]physics.Box, 0, len(l.Boxes)+len(l.Pads))
	for _, b := range l.Boxes {
		layer, _ := ParseLayer(b.Layer)
		boxes = append(boxes, physics.NewBox(b.Name, b.Min, b.Max, layer, b.Tag))
	}
	for _, p := range l.Pads {
		boxes = append(boxes, physics.NewBox(p.Name, p.Min, p.Max, physics.LayerTrigger, ""))
	}
	return physics.NewStaticWorld(boxes...)
}

// Default returns the built-in level: a walkable floor, a step, a climbing
// wall with a walkable ledge on top, and a trampoline pad.
func Default() *Level {
	return &Level{
		Name:  "playground",
		Spawn: math.Vec3{Y: 1},
		Boxes: []BoxSpec{
			{Name: "floor", Min: math.Vec3{X: -30, Y: -1, Z: -30}, Max: math.Vec3{X: 30, Y: 0, Z: 30}, Layer: "ground", Tag: physics.TagWalkable},
			{Name: "step", Min: math.Vec3{X: -8, Y: 0, Z: -2}, Max: math.Vec3{X: -5, Y: 0.25, Z: 2}, Layer: "ground", Tag: physics.TagWalkable},
			{Name: "wall", Min: math.Vec3{X: -3, Y: 0, Z: 6}, Max: math.Vec3{X: 3, Y: 4, Z: 7}, Layer: "climbable"},
			{Name: "ledge", Min: math.Vec3{X: -3, Y: 4, Z: 6}, Max: math.Vec3{X: 3, Y: 4.2, Z: 10}, Layer: "ground", Tag: physics.TagWalkable},
			{Name: "crate", Min: math.Vec3{X: 6, Y: 0, Z: -6}, Max: math.Vec3{X: 7, Y: 1, Z: -5}, Layer: "default"},
		},
		Pads: []PadSpec{
			{Name: "trampoline", Min: math.Vec3{X: 5, Y: 0, Z: 2}, Max: math.Vec3{X: 7, Y: 0.2, Z: 4}, Force: 9, Wait: 0.25},
		},
	}
}

// Manager holds the current level and its built world.
type Manager struct {
	log     *zap.Logger
	current *Level
	world   *physics.StaticWorld
}

// NewManager creates a new world manager.
func NewManager() *Manager {
	return &Manager{log: logger.Named("world")}
}

// Current returns the current level.
func (m *Manager) Current() *Level {
	return m.current
}

// World returns the static world of the current level.
func (m *Manager) World() *physics.StaticWorld {
	return m.world
}

// LoadLevel loads a level file, or the built-in level when path is empty.
func (m *Manager) LoadLevel(path string) error {
	lvl := Default()
	if path != "" {
		var err error
		if lvl, err = Load(path); err != nil {
			return err
		}
	}

	m.current = lvl
	m.world = lvl.Build()
	m.log.Info("level loaded",
		zap.String("name", lvl.Name),
		zap.Int("boxes", len(lvl.Boxes)),
		zap.Int("pads", len(lvl.Pads)))
	return nil
}
