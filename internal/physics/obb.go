package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is an oriented bounding box in world space.
type OBB struct {
	Center   rl.Vector3
	HalfSize rl.Vector3    // half-extents along Axes, never negative
	Axes     [3]rl.Vector3 // local X, Y, Z in world space, unit length
}

// NewOBB builds a box of full size turned by rotation. Negative sizes
// (an object scaled through zero) give the same box as their absolute
// value.
func NewOBB(center, size rl.Vector3, rotation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2},
		Axes: [3]rl.Vector3{
			rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rotation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rotation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rotation),
		},
	}
}

// NewAxisAlignedOBB is NewOBB with no rotation.
func NewAxisAlignedOBB(center, size rl.Vector3) OBB {
	return NewOBB(center, size, rl.QuaternionIdentity())
}

func (o OBB) half(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	}
	return o.HalfSize.Z
}

// radius is the box's half-extent projected onto axis.
func (o OBB) radius(axis rl.Vector3) float32 {
	var r float32
	for i, a := range o.Axes {
		r += o.half(i) * absf(rl.Vector3DotProduct(a, axis))
	}
	return r
}

// Bounds returns the smallest AABB enclosing the box.
func (o OBB) Bounds() AABB {
	extent := rl.Vector3{
		X: o.radius(rl.Vector3{X: 1}),
		Y: o.radius(rl.Vector3{Y: 1}),
		Z: o.radius(rl.Vector3{Z: 1}),
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, extent), Max: rl.Vector3Add(o.Center, extent)}
}

// Corners returns the eight vertices, bottom face (-Y) first.
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	i := 0
	for _, sy := range [2]float32{-1, 1} {
		for _, sx := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				p := o.Center
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[0], sx*o.HalfSize.X))
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[1], sy*o.HalfSize.Y))
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[2], sz*o.HalfSize.Z))
				out[i] = p
				i++
			}
		}
	}
	return out
}

// Resolve returns the smallest translation that moves o out of b, found
// with the separating axis test over the 15 candidate axes. It is zero
// when the boxes are apart or only touching.
func (o OBB) Resolve(b OBB) rl.Vector3 {
	t := rl.Vector3Subtract(b.Center, o.Center)
	best := float32(math.MaxFloat32)
	var mtv rl.Vector3

	// test reports false once a separating axis is found.
	test := func(axis rl.Vector3) bool {
		length := rl.Vector3Length(axis)
		if length < 1e-4 {
			return true
		}
		axis = rl.Vector3Scale(axis, 1/length)
		dist := rl.Vector3DotProduct(t, axis)
		depth := o.radius(axis) + b.radius(axis) - absf(dist)
		if depth <= 0 {
			return false
		}
		if depth < best {
			best = depth
			if dist > 0 {
				depth = -depth
			}
			mtv = rl.Vector3Scale(axis, depth)
		}
		return true
	}

	for _, a := range o.Axes {
		if !test(a) {
			return rl.Vector3Zero()
		}
	}
	for _, a := range b.Axes {
		if !test(a) {
			return rl.Vector3Zero()
		}
	}
	for _, a := range o.Axes {
		for _, c := range b.Axes {
			if !test(rl.Vector3CrossProduct(a, c)) {
				return rl.Vector3Zero()
			}
		}
	}
	return mtv
}

// toLocal expresses a world point in box coordinates.
func (o OBB) toLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

func (o OBB) toWorldDir(v rl.Vector3) rl.Vector3 {
	out := rl.Vector3Scale(o.Axes[0], v.X)
	out = rl.Vector3Add(out, rl.Vector3Scale(o.Axes[1], v.Y))
	return rl.Vector3Add(out, rl.Vector3Scale(o.Axes[2], v.Z))
}

// ClosestPoint returns the point of the box (surface or inside) nearest p.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := o.toLocal(p)
	local.X = clampf(local.X, -o.HalfSize.X, o.HalfSize.X)
	local.Y = clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y)
	local.Z = clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z)
	return rl.Vector3Add(o.Center, o.toWorldDir(local))
}

// Raycast intersects a ray with the box by running the slab test in box
// space. direction must be unit length; the returned distance is in world
// units.
func (o OBB) Raycast(origin, direction rl.Vector3, maxDistance float32) (t float32, normal rl.Vector3, ok bool) {
	lo := o.toLocal(origin)
	ld := rl.Vector3{
		X: rl.Vector3DotProduct(direction, o.Axes[0]),
		Y: rl.Vector3DotProduct(direction, o.Axes[1]),
		Z: rl.Vector3DotProduct(direction, o.Axes[2]),
	}
	origins := [3]float32{lo.X, lo.Y, lo.Z}
	dirs := [3]float32{ld.X, ld.Y, ld.Z}

	tmin, tmax := float32(-math.MaxFloat32), float32(math.MaxFloat32)
	enterAxis, enterSign := -1, float32(0)
	exitAxis, exitSign := -1, float32(0)
	for i := range 3 {
		h := o.half(i)
		if dirs[i] == 0 {
			if origins[i] < -h || origins[i] > h {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (-h - origins[i]) / dirs[i]
		t2 := (h - origins[i]) / dirs[i]
		// The face hit on entry faces against the ray.
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin, enterAxis, enterSign = t1, i, sign
		}
		if t2 < tmax {
			tmax, exitAxis, exitSign = t2, i, -sign
		}
	}
	if tmin > tmax || tmax < 0 {
		return 0, rl.Vector3{}, false
	}

	axis, sign := enterAxis, enterSign
	t = tmin
	if t < 0 {
		// Origin inside the box: report the exit face.
		t, axis, sign = tmax, exitAxis, exitSign
	}
	if t > maxDistance || axis < 0 {
		return 0, rl.Vector3{}, false
	}
	return t, rl.Vector3Scale(o.Axes[axis], sign), true
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
