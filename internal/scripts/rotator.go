package scripts

import (
	"math"

	"pickup3d/internal/engine"
)

// Rotator spins an object around its local Y axis. Scenes use it for
// turntables and props that make a held object's world rotation obvious.
type Rotator struct {
	engine.BaseComponent
	Speed float32 // degrees per second
}

func (r *Rotator) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil {
		return
	}
	y := math.Mod(float64(g.Transform.Rotation.Y+r.Speed*deltaTime), 360)
	if y < 0 {
		y += 360
	}
	g.Transform.Rotation.Y = float32(y)
}

func init() {
	engine.RegisterScriptWithApplier("Rotator", rotatorFactory, rotatorSerializer, rotatorApplier)
}

func rotatorFactory(props map[string]any) engine.Component {
	r := &Rotator{Speed: 90}
	for name, value := range props {
		rotatorApplier(r, name, value)
	}
	return r
}

func rotatorSerializer(c engine.Component) map[string]any {
	r, ok := c.(*Rotator)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": r.Speed,
	}
}

func rotatorApplier(c engine.Component, propName string, value any) bool {
	r, ok := c.(*Rotator)
	if !ok || propName != "speed" {
		return false
	}
	v, ok := toFloat32(value)
	if ok {
		r.Speed = v
	}
	return ok
}
