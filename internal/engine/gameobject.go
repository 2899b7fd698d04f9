package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of concrete type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent is GetComponent for interface types that don't embed Component,
// e.g. LookProvider.
func FindComponent[T any](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := any(c).(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddChild attaches child without touching its local transform.
func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetParent moves g under parent (nil detaches). With keepWorld the local
// transform is recomputed so the world pose doesn't jump.
func (g *GameObject) SetParent(parent *GameObject, keepWorld bool) {
	if g.Parent == parent {
		return
	}

	worldPos := g.WorldPosition()
	worldRot := g.WorldQuaternion()
	worldScale := g.WorldScale()

	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if parent != nil {
		parent.AddChild(g)
	}

	if !keepWorld {
		return
	}

	if parent == nil {
		g.Transform.Position = worldPos
		g.Transform.SetQuaternion(worldRot)
		g.Transform.Scale = worldScale
		return
	}

	invParent := rl.QuaternionInvert(parent.WorldQuaternion())
	parentScale := parent.WorldScale()

	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(worldPos, parent.WorldPosition()), invParent)
	g.Transform.Position = divSafe(local, parentScale)
	g.Transform.SetQuaternion(rl.QuaternionMultiply(invParent, worldRot))
	g.Transform.Scale = divSafe(worldScale, parentScale)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3Multiply(g.Transform.Position, parentScale)
	rotated := rl.Vector3RotateByQuaternion(scaled, g.Parent.WorldQuaternion())
	return rl.Vector3Add(g.Parent.WorldPosition(), rotated)
}

// SetWorldPosition places g at pos regardless of its parent.
func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	invParent := rl.QuaternionInvert(g.Parent.WorldQuaternion())
	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(pos, g.Parent.WorldPosition()), invParent)
	g.Transform.Position = divSafe(local, g.Parent.WorldScale())
}

// WorldQuaternion composes rotations up the hierarchy.
func (g *GameObject) WorldQuaternion() rl.Quaternion {
	q := g.Transform.GetQuaternion()
	if g.Parent == nil {
		return q
	}
	return rl.QuaternionMultiply(g.Parent.WorldQuaternion(), q)
}

// WorldRotation returns the world rotation as Euler degrees.
func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Scale(rl.QuaternionToEuler(g.WorldQuaternion()), rl.Rad2deg)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return rl.Vector3Multiply(g.Parent.WorldScale(), g.Transform.Scale)
}

// RotateWorld applies an Euler rotation (degrees) about the world axes,
// X first then Y.
func (g *GameObject) RotateWorld(eulerDeg rl.Vector3) {
	if eulerDeg.X == 0 && eulerDeg.Y == 0 && eulerDeg.Z == 0 {
		return
	}
	delta := eulerToQuaternion(eulerDeg)
	world := rl.QuaternionMultiply(delta, g.WorldQuaternion())
	if g.Parent == nil {
		g.Transform.SetQuaternion(world)
		return
	}
	invParent := rl.QuaternionInvert(g.Parent.WorldQuaternion())
	g.Transform.SetQuaternion(rl.QuaternionMultiply(invParent, world))
}

func divSafe(a, b rl.Vector3) rl.Vector3 {
	out := a
	if b.X != 0 {
		out.X = a.X / b.X
	}
	if b.Y != 0 {
		out.Y = a.Y / b.Y
	}
	if b.Z != 0 {
		out.Z = a.Z / b.Z
	}
	return out
}
