package components

import (
	"math"

	"pickup3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active game camera
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
		IsMain:     true,
	}
}

// lookProvider finds a LookProvider on this object or its parents.
func (c *Camera) lookProvider() engine.LookProvider {
	for obj := c.GetGameObject(); obj != nil; obj = obj.Parent {
		if lp := engine.FindComponent[engine.LookProvider](obj); lp != nil {
			return lp
		}
	}
	return nil
}

// EyePosition is where rays and the view start.
func (c *Camera) EyePosition() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	eye := g.WorldPosition()
	// A camera sharing an object with its controller sits at eye height;
	// a child camera is placed by its own local offset.
	if g.Parent == nil {
		if lp := engine.FindComponent[engine.LookProvider](g); lp != nil {
			eye.Y += lp.GetEyeHeight()
		}
	}
	return eye
}

// Forward is the normalized view direction.
func (c *Camera) Forward() rl.Vector3 {
	if lp := c.lookProvider(); lp != nil {
		x, y, z := lp.GetLookDirection()
		return rl.Vector3Normalize(rl.Vector3{X: x, Y: y, Z: z})
	}
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{Z: -1}
	}
	rot := g.WorldRotation()
	yaw := float64(rot.Y) * math.Pi / 180
	pitch := float64(rot.X) * math.Pi / 180
	return rl.Vector3{
		X: float32(-math.Sin(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(-math.Cos(yaw) * math.Cos(pitch)),
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	eye := c.EyePosition()
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
