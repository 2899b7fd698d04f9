package physics

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ColliderOBB returns the world-space box of obj's BoxCollider, turned and
// scaled with the object.
func ColliderOBB(obj *engine.GameObject) (OBB, bool) {
	box := engine.GetComponent[*components.BoxCollider](obj)
	if box == nil {
		return OBB{}, false
	}
	return NewOBB(box.GetCenter(), box.GetWorldSize(), obj.WorldQuaternion()), true
}

// Bounds returns the world AABB enclosing the object's collider.
func Bounds(obj *engine.GameObject) (AABB, bool) {
	if box, ok := ColliderOBB(obj); ok {
		return box.Bounds(), true
	}
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		d := sphere.GetWorldRadius() * 2
		return NewAABBFromCenter(sphere.GetCenter(), rl.Vector3{X: d, Y: d, Z: d}), true
	}
	return AABB{}, false
}

// Separation returns the smallest translation that moves a out of b, or
// zero when they don't overlap. Sphere colliders take precedence over
// boxes on the same object.
func Separation(a, b *engine.GameObject) rl.Vector3 {
	ba, okA := Bounds(a)
	bb, okB := Bounds(b)
	if !okA || !okB || !ba.Intersects(bb) {
		return rl.Vector3Zero()
	}

	sa := engine.GetComponent[*components.SphereCollider](a)
	sb := engine.GetComponent[*components.SphereCollider](b)
	switch {
	case sa != nil && sb != nil:
		return separateSpheres(sa.GetCenter(), sa.GetWorldRadius(), sb.GetCenter(), sb.GetWorldRadius())
	case sa != nil:
		box, ok := ColliderOBB(b)
		if !ok {
			return rl.Vector3Zero()
		}
		return separateSphereBox(sa.GetCenter(), sa.GetWorldRadius(), box)
	case sb != nil:
		box, ok := ColliderOBB(a)
		if !ok {
			return rl.Vector3Zero()
		}
		return rl.Vector3Negate(separateSphereBox(sb.GetCenter(), sb.GetWorldRadius(), box))
	}

	boxA, okA := ColliderOBB(a)
	boxB, okB := ColliderOBB(b)
	if !okA || !okB {
		return rl.Vector3Zero()
	}
	return boxA.Resolve(boxB)
}

func separateSpheres(ca rl.Vector3, ra float32, cb rl.Vector3, rb float32) rl.Vector3 {
	d := rl.Vector3Subtract(ca, cb)
	dist := rl.Vector3Length(d)
	overlap := ra + rb - dist
	if overlap <= 0 {
		return rl.Vector3Zero()
	}
	if dist < 1e-6 {
		return rl.Vector3{Y: overlap}
	}
	return rl.Vector3Scale(d, overlap/dist)
}

// separateSphereBox pushes a sphere out of box.
func separateSphereBox(center rl.Vector3, radius float32, box OBB) rl.Vector3 {
	d := rl.Vector3Subtract(center, box.ClosestPoint(center))
	dist := rl.Vector3Length(d)
	if dist >= radius && dist > 0 {
		return rl.Vector3Zero()
	}
	if dist > 1e-6 {
		return rl.Vector3Scale(d, (radius-dist)/dist)
	}
	// Center inside the box: leave through the nearest face.
	cube := OBB{Center: center, HalfSize: rl.Vector3{X: radius, Y: radius, Z: radius}, Axes: box.Axes}
	return cube.Resolve(box)
}
