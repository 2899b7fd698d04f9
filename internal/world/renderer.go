package world

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	FloorSize  = 60
	CullNear   = 0.1
	CullFar    = 1000.0
	gridSlices = 60
)

// Renderer draws the floor and every MeshRenderer inside the camera's
// frustum. Call Draw between BeginMode3D and EndMode3D.
type Renderer struct {
	FloorColor    rl.Color
	ShowGrid      bool
	ShowColliders bool

	// Stats from the last Draw.
	Drawn  int
	Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{
		FloorColor: rl.LightGray,
		ShowGrid:   true,
	}
}

func (r *Renderer) Draw(camera rl.Camera3D, aspect float32, gameObjects []*engine.GameObject) {
	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: FloorSize, Y: FloorSize}, r.FloorColor)
	if r.ShowGrid {
		rl.DrawGrid(gridSlices, FloorSize/gridSlices)
	}

	visible := r.Visible(camera, aspect, gameObjects)
	for _, m := range visible {
		m.Draw()
	}
	if r.ShowColliders {
		for _, g := range gameObjects {
			drawCollider(g)
		}
	}
}

// Visible returns the renderers worth drawing and updates the stats.
func (r *Renderer) Visible(camera rl.Camera3D, aspect float32, gameObjects []*engine.GameObject) []*components.MeshRenderer {
	frustum := ExtractFrustum(camera, aspect, CullNear, CullFar)
	r.Drawn, r.Culled = 0, 0

	var out []*components.MeshRenderer
	for _, g := range gameObjects {
		m := engine.GetComponent[*components.MeshRenderer](g)
		if m == nil || !g.Active {
			continue
		}
		center, radius := boundingSphere(g, m)
		if !frustum.ContainsSphere(center, radius) {
			r.Culled++
			continue
		}
		r.Drawn++
		out = append(out, m)
	}
	return out
}

func boundingSphere(g *engine.GameObject, m *components.MeshRenderer) (rl.Vector3, float32) {
	size := rl.Vector3Multiply(m.Size, g.WorldScale())
	size = rl.Vector3{X: abs(size.X), Y: abs(size.Y), Z: abs(size.Z)}
	if m.MeshType == components.MeshSphere {
		return g.WorldPosition(), size.X
	}
	return g.WorldPosition(), rl.Vector3Length(size) / 2
}

func drawCollider(g *engine.GameObject) {
	if !g.Active {
		return
	}
	color := rl.Green
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && rb.IsKinematic {
		color = rl.Orange
	}
	if box, ok := physics.ColliderOBB(g); ok {
		drawOBB(box, color)
		return
	}
	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		rl.DrawSphereWires(sphere.GetCenter(), sphere.GetWorldRadius(), 8, 8, color)
	}
}

// boxEdges indexes OBB.Corners: bottom face 0-3, top face 4-7.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func drawOBB(box physics.OBB, color rl.Color) {
	c := box.Corners()
	for _, e := range boxEdges {
		rl.DrawLine3D(c[e[0]], c[e[1]], color)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
