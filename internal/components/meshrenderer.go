package components

import (
	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

// ParseMeshType maps scene-file names to mesh types; unknown names are cubes.
func ParseMeshType(name string) MeshType {
	switch name {
	case "sphere":
		return MeshSphere
	case "plane":
		return MeshPlane
	default:
		return MeshCube
	}
}

type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
	// Highlight draws a wireframe on top, used for the held object.
	Highlight bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	scale := g.WorldScale()
	size := rl.Vector3Multiply(m.Size, scale)

	switch m.MeshType {
	case MeshCube:
		var axis rl.Vector3
		var angle float32
		rl.QuaternionToAxisAngle(g.WorldQuaternion(), &axis, &angle)
		rl.PushMatrix()
		rl.Translatef(pos.X, pos.Y, pos.Z)
		rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
		rl.DrawCubeV(rl.Vector3{}, size, m.Color)
		if m.Highlight {
			rl.DrawCubeWiresV(rl.Vector3{}, size, rl.Yellow)
		}
		rl.PopMatrix()
	case MeshSphere:
		radius := size.X
		rl.DrawSphere(pos, radius, m.Color)
		if m.Highlight {
			rl.DrawSphereWires(pos, radius, 8, 8, rl.Yellow)
		}
	case MeshPlane:
		rl.DrawPlane(pos, rl.Vector2{X: size.X, Y: size.Z}, m.Color)
	}
}
