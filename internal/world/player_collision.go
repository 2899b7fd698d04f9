package world

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerCollision keeps an FPS-controlled object out of level geometry and
// loose bodies. Kinematic bodies, such as a held object, are walked through.
type PlayerCollision struct {
	engine.BaseComponent
	Physics *physics.PhysicsWorld
}

func (p *PlayerCollision) Update(deltaTime float32) {
	g := p.GetGameObject()
	if g == nil || p.Physics == nil {
		return
	}

	fps := engine.GetComponent[*components.FPSController](g)
	if fps == nil {
		return
	}
	if _, ok := physics.Bounds(g); !ok {
		return
	}

	// Rotated crates and planks are tested as the boxes they are drawn as.
	resolve := func(obj *engine.GameObject) {
		if obj == g || !obj.Active {
			return
		}
		pushOut := physics.Separation(g, obj)
		if pushOut == (rl.Vector3{}) {
			return
		}
		g.Transform.Position = rl.Vector3Add(g.Transform.Position, pushOut)

		if pushOut.Y > 0 {
			fps.Velocity.Y = 0
			fps.Grounded = true
		}
		if pushOut.Y < 0 && fps.Velocity.Y > 0 {
			fps.Velocity.Y = 0
		}
	}

	for _, obj := range p.Physics.Statics {
		resolve(obj)
	}
	for _, obj := range p.Physics.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.IsKinematic {
			continue
		}
		resolve(obj)
	}
}
