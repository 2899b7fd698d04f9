package physics

import (
	"math"
	"slices"

	"pickup3d/internal/components"
	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raycast returns the closest collider hit along direction within
// maxDistance. Inactive objects and anything in ignore are skipped.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (engine.RaycastResult, bool) {
	if rl.Vector3Length(direction) == 0 || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Normalize(direction)
	var closestHit engine.RaycastResult
	closestHit.Distance = maxDistance
	hit := false

	check := func(obj *engine.GameObject) {
		if !obj.Active || slices.Contains(ignore, obj) {
			return
		}
		if engine.GetComponent[*components.BoxCollider](obj) != nil {
			if hitInfo, ok := raycastBox(origin, direction, obj, maxDistance); ok && hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				closestHit.GameObject = obj
				hit = true
			}
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
			if hitInfo, ok := raycastSphere(origin, direction, sphere, maxDistance); ok && hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				closestHit.GameObject = obj
				hit = true
			}
		}
	}

	for _, obj := range p.Objects {
		check(obj)
	}
	for _, obj := range p.Statics {
		check(obj)
	}

	return closestHit, hit
}

func raycastBox(origin, direction rl.Vector3, obj *engine.GameObject, maxDistance float32) (engine.RaycastResult, bool) {
	box, ok := ColliderOBB(obj)
	if !ok {
		return engine.RaycastResult{}, false
	}
	t, normal, ok := box.Raycast(origin, direction, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return engine.RaycastResult{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction rl.Vector3, sphere *components.SphereCollider, maxDistance float32) (engine.RaycastResult, bool) {
	center := sphere.GetCenter()
	radius := sphere.GetWorldRadius()

	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return engine.RaycastResult{}, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	if t < 0 {
		t = (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return engine.RaycastResult{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return engine.RaycastResult{Point: point, Normal: normal, Distance: t}, true
}
