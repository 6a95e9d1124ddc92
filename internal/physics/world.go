package physics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/clamber/pkg/math"
)

// Box is an axis-aligned static collider.
type Box struct {
	Name  string
	Min   math.Vec3
	Max   math.Vec3
	Layer Layer
	Tag   string
}

// NewBox creates a box from two corners, ordering them per axis.
func NewBox(name string, a, b math.Vec3, layer Layer, tag string) Box {
	box := Box{Name: name, Min: a, Max: b, Layer: layer, Tag: tag}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// Contains reports whether p lies inside the box (inclusive).
func (b Box) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect tests the ray against the box using the slab method.
// Returns the entry distance and the normal of the entered face.
// Rays starting inside the box do not hit it.
func (b Box) Intersect(origin, dir math.Vec3) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	axis := -1
	sign := float32(0)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		s := float32(-1) // entering through the min face
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
			sign = s
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmin < 0 || axis < 0 {
		return 0, math.Vec3{}, false
	}

	var n [3]float32
	n[axis] = sign
	return tmin, math.Vec3{X: n[0], Y: n[1], Z: n[2]}, true
}

// StaticWorld is a Query over a fixed set of boxes. It is read-only after
// construction and may be shared between characters.
type StaticWorld struct {
	boxes []Box
}

// NewStaticWorld creates a world from boxes.
func NewStaticWorld(boxes ...Box) *StaticWorld {
	w := &StaticWorld{boxes: make([]Box, len(boxes))}
	copy(w.boxes, boxes)
	return w
}

// Boxes returns the world's colliders.
func (w *StaticWorld) Boxes() []Box {
	return w.boxes
}

// Raycast implements Query.
func (w *StaticWorld) Raycast(origin, direction math.Vec3, maxDistance float32, mask Layer) (Hit, bool) {
	dir := direction.Normalize()
	if dir.IsZero() || maxDistance <= 0 || !origin.IsFinite() {
		return Hit{}, false
	}

	best := Hit{Distance: math32.MaxFloat32}
	found := false
	for i := range w.boxes {
		b := &w.boxes[i]
		if !mask.Has(b.Layer) {
			continue
		}
		t, n, ok := b.Intersect(origin, dir)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		best = Hit{
			Point:    origin.Add(dir.Scale(t)),
			Normal:   n,
			Distance: t,
			Tag:      b.Tag,
			Layer:    b.Layer,
		}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// Overlapping returns the boxes on mask layers containing p.
func (w *StaticWorld) Overlapping(p math.Vec3, mask Layer) []Box {
	var out []Box
	for _, b := range w.boxes {
		if mask.Has(b.Layer) && b.Contains(p) {
			out = append(out, b)
		}
	}
	return out
}
