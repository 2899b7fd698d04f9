package components

import (
	"math"

	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider. Offset is in
// the object's local space, so it turns and scales with the object.
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	if s.Offset == (rl.Vector3{}) {
		return g.WorldPosition()
	}
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(s.Offset, g.WorldScale()), g.WorldQuaternion())
	return rl.Vector3Add(g.WorldPosition(), offset)
}

// GetWorldRadius scales Radius by the largest absolute world scale axis.
func (s *SphereCollider) GetWorldRadius() float32 {
	scale := s.GetGameObject().WorldScale()
	m := math.Max(math.Abs(float64(scale.X)), math.Max(math.Abs(float64(scale.Y)), math.Abs(float64(scale.Z))))
	return s.Radius * float32(m)
}
