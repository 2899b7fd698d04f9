package components

import (
	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider. Offset is in
// the object's local space, so it turns and scales with the object.
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	if b.Offset == (rl.Vector3{}) {
		return g.WorldPosition()
	}
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(b.Offset, g.WorldScale()), g.WorldQuaternion())
	return rl.Vector3Add(g.WorldPosition(), offset)
}

// GetWorldSize returns Size scaled by the object's world scale. Components
// may be negative if the object was scaled through zero.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	return rl.Vector3Multiply(b.Size, b.GetGameObject().WorldScale())
}
