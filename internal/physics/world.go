package physics

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// PhysicsWorld steps rigidbodies and answers ray queries.
//
// Bodies are classified every step rather than on insertion, so flipping
// Rigidbody.IsKinematic takes a body out of (or back into) the simulation
// on the next Update.
type PhysicsWorld struct {
	Gravity rl.Vector3
	// FloorY is a hard ground plane under everything.
	FloorY  float32
	Objects []*engine.GameObject // objects with a Rigidbody
	Statics []*engine.GameObject // colliders without a Rigidbody (walls, floor)

	log *zap.Logger
}

func NewPhysicsWorld(log *zap.Logger) *PhysicsWorld {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhysicsWorld{
		Gravity: rl.Vector3{X: 0, Y: -20.0, Z: 0},
		Objects: make([]*engine.GameObject, 0),
		Statics: make([]*engine.GameObject, 0),
		log:     log,
	}
}

func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if engine.GetComponent[*components.Rigidbody](g) == nil {
		p.Statics = append(p.Statics, g)
	} else {
		p.Objects = append(p.Objects, g)
	}
	p.log.Debug("physics object added", zap.String("name", g.Name), zap.Int("bodies", len(p.Objects)))
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	p.Objects = removeFrom(p.Objects, g)
	p.Statics = removeFrom(p.Statics, g)
}

func removeFrom(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// DynamicObjectCount returns how many bodies the next step will simulate.
func (p *PhysicsWorld) DynamicObjectCount() int {
	n := 0
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && !rb.IsKinematic {
			n++
		}
	}
	return n
}

func (p *PhysicsWorld) Update(deltaTime float32) {
	// 1. Integrate simulated bodies
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !obj.Active || !rb.Simulated() {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(rb.Velocity, deltaTime))
		obj.Transform.Rotation = rl.Vector3Add(obj.Transform.Rotation, rl.Vector3Scale(rb.AngularVelocity, deltaTime))

		// Time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)
	}

	// 2. Dynamic vs dynamic, and kinematic pushing dynamic
	for i, a := range p.Objects {
		for _, b := range p.Objects[i+1:] {
			p.resolvePair(a, b)
		}
	}

	// 3. Dynamic vs static
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !obj.Active || rb.IsKinematic {
			continue
		}
		for _, static := range p.Statics {
			p.resolveStatic(obj, rb, static)
		}
		p.resolveFloor(obj, rb)
		rb.TrySleep(deltaTime)
	}
}

// resolvePair separates two bodies. A kinematic body never moves; two
// kinematic bodies are left alone.
func (p *PhysicsWorld) resolvePair(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil || !a.Active || !b.Active {
		return
	}
	if rbA.IsKinematic && rbB.IsKinematic {
		return
	}
	push := Separation(a, b)
	if push == (rl.Vector3{}) {
		return
	}

	switch {
	case rbA.IsKinematic:
		p.displace(b, rbB, rl.Vector3Negate(push), 1)
	case rbB.IsKinematic:
		p.displace(a, rbA, push, 1)
	default:
		p.displace(a, rbA, push, 0.5)
		p.displace(b, rbB, rl.Vector3Negate(push), 0.5)
	}
}

func (p *PhysicsWorld) displace(obj *engine.GameObject, rb *components.Rigidbody, push rl.Vector3, share float32) {
	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), rl.Vector3Scale(push, share)))
	reflect(rb, rl.Vector3Normalize(push))
	rb.Wake()
}

func (p *PhysicsWorld) resolveStatic(obj *engine.GameObject, rb *components.Rigidbody, static *engine.GameObject) {
	if !static.Active {
		return
	}
	push := Separation(obj, static)
	if push == (rl.Vector3{}) {
		return
	}
	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), push))
	reflect(rb, rl.Vector3Normalize(push))
}

func (p *PhysicsWorld) resolveFloor(obj *engine.GameObject, rb *components.Rigidbody) {
	box, ok := Bounds(obj)
	if !ok || box.Min.Y >= p.FloorY {
		return
	}
	pos := obj.WorldPosition()
	pos.Y += p.FloorY - box.Min.Y
	obj.SetWorldPosition(pos)
	reflect(rb, rl.Vector3{Y: 1})
}

// reflect bounces the velocity component going into normal and applies
// friction to the rest.
func reflect(rb *components.Rigidbody, normal rl.Vector3) {
	into := rl.Vector3DotProduct(rb.Velocity, normal)
	if into >= 0 {
		return
	}
	normalVel := rl.Vector3Scale(normal, into)
	tangent := rl.Vector3Subtract(rb.Velocity, normalVel)
	tangent = rl.Vector3Scale(tangent, 1-rb.Friction)
	rb.Velocity = rl.Vector3Subtract(tangent, rl.Vector3Scale(normalVel, rb.Bounciness))
}
