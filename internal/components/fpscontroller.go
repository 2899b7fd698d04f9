package components

import (
	"math"

	"pickup3d/internal/engine"
	"pickup3d/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FPSController provides first-person movement and mouse look.
type FPSController struct {
	engine.BaseComponent
	Input        input.Source
	Yaw          float32
	Pitch        float32
	MoveSpeed    float32
	LookSpeed    float32 // degrees per mouse axis unit
	Gravity      float32
	JumpStrength float32
	EyeHeight    float32
	Velocity     rl.Vector3
	Grounded     bool
}

func NewFPSController(src input.Source) *FPSController {
	return &FPSController{
		Input:        src,
		Yaw:          -90.0,
		Pitch:        -10.0,
		MoveSpeed:    6.0,
		LookSpeed:    1.0,
		Gravity:      20.0,
		JumpStrength: 7.0,
		EyeHeight:    1.6,
	}
}

func (f *FPSController) Update(deltaTime float32) {
	g := f.GetGameObject()
	if g == nil || f.Input == nil {
		return
	}
	in := f.Input.Snapshot()

	f.Yaw += in.Axis(input.AxisMouseX) * f.LookSpeed
	f.Pitch += in.Axis(input.AxisMouseY) * f.LookSpeed
	if f.Pitch > 89 {
		f.Pitch = 89
	}
	if f.Pitch < -89 {
		f.Pitch = -89
	}

	forward, right := f.getDirections()

	var moveDir rl.Vector3
	if in.Held(input.ActionMoveForward) {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if in.Held(input.ActionMoveBack) {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if in.Held(input.ActionMoveRight) {
		moveDir = rl.Vector3Add(moveDir, right)
	}
	if in.Held(input.ActionMoveLeft) {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}
	// Normalize diagonal movement
	if rl.Vector3Length(moveDir) > 0 {
		moveDir = rl.Vector3Normalize(moveDir)
	}

	f.Velocity.X = moveDir.X * f.MoveSpeed
	f.Velocity.Z = moveDir.Z * f.MoveSpeed

	if in.Pressed(input.ActionJump) && f.Grounded {
		f.Velocity.Y = f.JumpStrength
		f.Grounded = false
	}
	if !f.Grounded {
		f.Velocity.Y -= f.Gravity * deltaTime
	}

	g.Transform.Position = rl.Vector3Add(g.Transform.Position, rl.Vector3Scale(f.Velocity, deltaTime))

	// Floor is at Y=0; the object origin is at the feet.
	if g.Transform.Position.Y <= 0 {
		g.Transform.Position.Y = 0
		f.Velocity.Y = 0
		f.Grounded = true
	} else {
		f.Grounded = false
	}
}

func (f *FPSController) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(f.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
	return
}

// GetLookDirection implements engine.LookProvider
func (f *FPSController) GetLookDirection() (x, y, z float32) {
	yawRad := float64(f.Yaw) * math.Pi / 180
	pitchRad := float64(f.Pitch) * math.Pi / 180
	return float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad))
}

// GetEyeHeight implements engine.LookProvider
func (f *FPSController) GetEyeHeight() float32 {
	return f.EyeHeight
}
