package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/pkg/math"
)

var _ locomotion.Camera = (*ThirdPersonCamera)(nil)

func TestFollowPlacesCameraBehind(t *testing.T) {
	c := NewThirdPersonCamera(config.Default().Camera)
	c.Follow(math.Vec3{X: 2, Z: 3})

	pos := c.Position()
	if pos.Z >= 3 {
		t.Errorf("camera z = %v, want behind target at yaw 0", pos.Z)
	}
	if pos.Y <= c.Target().Y {
		t.Errorf("camera y = %v, want above target %v", pos.Y, c.Target().Y)
	}
	if d := pos.Distance(c.Target()); math32.Abs(d-c.Distance) > 1e-4 {
		t.Errorf("distance = %v, want %v", d, c.Distance)
	}

	f := c.Forward()
	if f.Z <= 0 || f.Y >= 0 {
		t.Errorf("forward = %v, want +Z and downward", f)
	}
	if l := f.Length(); math32.Abs(l-1) > 1e-4 {
		t.Errorf("forward length = %v, want 1", l)
	}
}

func TestYawRotatesAroundTarget(t *testing.T) {
	c := NewThirdPersonCamera(config.Default().Camera)
	c.SetYaw(math32.Pi / 2)

	// looking along +X the camera sits on -X
	if pos := c.Position(); pos.X >= 0 || math32.Abs(pos.Z) > 1e-4 {
		t.Errorf("position = %v, want on -X axis", pos)
	}
	if f := c.FlatForward(); !f.ApproxEqual(math.Vec3{X: 1}, 1e-4) {
		t.Errorf("flat forward = %v, want +X", f)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	cfg := config.Default().Camera
	c := NewThirdPersonCamera(cfg)

	c.HandleDrag(0, 1e6)
	if c.Pitch != cfg.MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, cfg.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != cfg.MinPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, cfg.MinPitch)
	}

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	if want := yaw + 100*cfg.YawSensitivity; math32.Abs(c.Yaw-want) > 1e-5 {
		t.Errorf("yaw = %v, want %v", c.Yaw, want)
	}
}

func TestHandleDragKeepsTarget(t *testing.T) {
	c := NewThirdPersonCamera(config.Default().Camera)
	c.Follow(math.Vec3{X: 1, Y: 2, Z: 3})
	before := c.Target()
	c.HandleDrag(40, 10)
	if got := c.Target(); !got.ApproxEqual(before, 1e-5) {
		t.Errorf("target moved from %v to %v", before, got)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{math32.Pi / 2, math32.Pi / 2},
		{3 * math32.Pi / 2, -math32.Pi / 2},
		{-3 * math32.Pi / 2, math32.Pi / 2},
		{4 * math32.Pi, 0},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math32.Abs(got-tt.want) > 1e-4 {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
