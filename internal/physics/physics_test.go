package physics

import (
	"testing"

	"github.com/Faultbox/clamber/pkg/math"
)

func testWorld() *StaticWorld {
	return NewStaticWorld(
		NewBox("floor", math.Vec3{X: -10, Y: -1, Z: -10}, math.Vec3{X: 10, Y: 0, Z: 10}, LayerGround, TagWalkable),
		NewBox("wall", math.Vec3{X: -5, Y: 0, Z: 3}, math.Vec3{X: 5, Y: 6, Z: 4}, LayerClimbable, ""),
		NewBox("pad", math.Vec3{X: 6, Y: 0, Z: 6}, math.Vec3{X: 8, Y: 0.5, Z: 8}, LayerTrigger, ""),
	)
}

func TestRaycastHitsFloor(t *testing.T) {
	w := testWorld()

	hit, ok := w.Raycast(math.Vec3{Y: 1}, math.Down, 2, LayerAll)
	if !ok {
		t.Fatal("expected floor hit")
	}
	if !hit.Point.ApproxEqual(math.Vec3{}, 1e-5) {
		t.Errorf("hit point = %v, want origin", hit.Point)
	}
	if hit.Normal != math.Up {
		t.Errorf("hit normal = %v, want %v", hit.Normal, math.Up)
	}
	if hit.Distance != 1 {
		t.Errorf("hit distance = %v, want 1", hit.Distance)
	}
	if hit.Tag != TagWalkable {
		t.Errorf("hit tag = %q, want %q", hit.Tag, TagWalkable)
	}
}

func TestRaycastMaxDistance(t *testing.T) {
	w := testWorld()
	if _, ok := w.Raycast(math.Vec3{Y: 1}, math.Down, 0.5, LayerAll); ok {
		t.Error("expected no hit beyond max distance")
	}
}

func TestRaycastLayerFilter(t *testing.T) {
	w := testWorld()

	// wall is nearer than anything else along +Z
	hit, ok := w.Raycast(math.Vec3{Y: 1}, math.Forward, 10, LayerAll)
	if !ok || hit.Layer != LayerClimbable {
		t.Fatalf("expected wall hit, got %+v ok=%v", hit, ok)
	}
	if hit.Normal != (math.Vec3{Z: -1}) {
		t.Errorf("wall normal = %v, want (0,0,-1)", hit.Normal)
	}

	if _, ok := w.Raycast(math.Vec3{Y: 1}, math.Forward, 10, LayerGround); ok {
		t.Error("ground-only mask should ignore the wall")
	}
}

func TestRaycastDegenerateInput(t *testing.T) {
	w := testWorld()
	if _, ok := w.Raycast(math.Vec3{Y: 1}, math.Vec3{}, 10, LayerAll); ok {
		t.Error("zero direction should not hit")
	}
	if _, ok := w.Raycast(math.Vec3{Y: 1}, math.Down, 0, LayerAll); ok {
		t.Error("zero distance should not hit")
	}
}

func TestRaycastFromInside(t *testing.T) {
	w := testWorld()
	if _, ok := w.Raycast(math.Vec3{Y: -0.5}, math.Down, 5, LayerGround); ok {
		t.Error("ray starting inside a box should not hit it")
	}
}

func TestOverlapping(t *testing.T) {
	w := testWorld()
	got := w.Overlapping(math.Vec3{X: 7, Y: 0.2, Z: 7}, LayerTrigger)
	if len(got) != 1 || got[0].Name != "pad" {
		t.Errorf("Overlapping = %v, want pad", got)
	}
}

func TestRigidBodyFallsAndLands(t *testing.T) {
	w := testWorld()
	cfg := DefaultBodyConfig()
	b := NewRigidBody(w, math.Vec3{Y: 3}, cfg)

	for i := 0; i < 200; i++ {
		b.Step(0.02)
	}

	// capsule bottom rests on the floor at y=0
	want := cfg.Capsule.Height / 2
	if got := b.Position().Y; got < want-0.01 || got > want+0.01 {
		t.Errorf("resting height = %v, want %v", got, want)
	}
	if v := b.Velocity().Y; v != 0 {
		t.Errorf("resting vertical velocity = %v, want 0", v)
	}
}

func TestRigidBodyImpulse(t *testing.T) {
	b := NewRigidBody(nil, math.Vec3{}, BodyConfig{Mass: 2})
	b.AddForce(math.Vec3{Y: 10}, ForceImpulse)
	if got := b.Velocity(); got != (math.Vec3{Y: 5}) {
		t.Errorf("velocity after impulse = %v, want (0,5,0)", got)
	}
}

func TestRigidBodyContinuousForce(t *testing.T) {
	b := NewRigidBody(nil, math.Vec3{}, BodyConfig{Mass: 1})
	b.AddForce(math.Vec3{X: 10}, ForceContinuous)
	b.Step(0.1)
	if got := b.Velocity().X; got < 0.99 || got > 1.01 {
		t.Errorf("velocity after step = %v, want ~1", got)
	}

	// force is consumed by the step
	b.Step(0.1)
	if got := b.Velocity().X; got < 0.99 || got > 1.01 {
		t.Errorf("velocity after second step = %v, want unchanged ~1", got)
	}
}

func TestRigidBodyIgnoresNaN(t *testing.T) {
	b := NewRigidBody(nil, math.Vec3{}, BodyConfig{Mass: 1})
	nan := float32(0)
	nan = nan / nan
	b.AddForce(math.Vec3{X: nan}, ForceImpulse)
	b.SetVelocity(math.Vec3{Y: nan})
	if got := b.Velocity(); got != (math.Vec3{}) {
		t.Errorf("velocity = %v, want zero", got)
	}
}

func TestRigidBodyBlockedByWall(t *testing.T) {
	w := testWorld()
	b := NewRigidBody(w, math.Vec3{Y: 1, Z: 2}, DefaultBodyConfig())
	b.SetVelocity(math.Vec3{Z: 20})
	b.Step(0.1)

	maxZ := float32(3) - b.Capsule().Radius
	if z := b.Position().Z; z > maxZ+1e-4 {
		t.Errorf("body penetrated wall: z = %v, max %v", z, maxZ)
	}
	if vz := b.Velocity().Z; vz > 0 {
		t.Errorf("velocity into wall = %v, want <= 0", vz)
	}
}

func TestSpringJoint(t *testing.T) {
	j := NewSpringJoint(math.Vec3{Y: 2}, math.QuatIdentity(), SpringParams{Spring: 10, MaxDistance: 0.5})

	if f := j.Force(math.Vec3{Y: 1.8}, math.Vec3{}); f != (math.Vec3{}) {
		t.Errorf("force within slack = %v, want zero", f)
	}

	f := j.Force(math.Vec3{}, math.Vec3{})
	if f.Y <= 0 {
		t.Errorf("stretched spring should pull toward anchor, got %v", f)
	}
	if want := float32(15); f.Y < want-1e-4 || f.Y > want+1e-4 {
		t.Errorf("force = %v, want %v", f.Y, want)
	}
}

func TestConnectDisconnect(t *testing.T) {
	b := NewRigidBody(nil, math.Vec3{}, BodyConfig{Mass: 1})
	j := NewSpringJoint(math.Vec3{Y: 5}, math.QuatIdentity(), SpringParams{Spring: 1})

	b.Connect(j)
	b.Connect(j)
	if n := len(b.Joints()); n != 1 {
		t.Fatalf("joints after double connect = %d, want 1", n)
	}

	b.Disconnect(j)
	b.Disconnect(j) // no-op
	if n := len(b.Joints()); n != 0 {
		t.Errorf("joints after disconnect = %d, want 0", n)
	}
}

func TestLayerHas(t *testing.T) {
	mask := LayerGround | LayerClimbable
	if !mask.Has(LayerGround) || !mask.Has(LayerClimbable) {
		t.Error("mask missing configured layer")
	}
	if mask.Has(LayerTrigger) {
		t.Error("mask includes trigger layer")
	}
}
