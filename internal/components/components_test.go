package components

import (
	"testing"

	"pickup3d/internal/engine"
	"pickup3d/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "X")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "Y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "Z")
}

func newPlayer(src input.Source) (*engine.GameObject, *FPSController, *Camera) {
	player := engine.NewGameObject("Player")
	fps := NewFPSController(src)
	fps.Pitch = 0
	cam := NewCamera()
	player.AddComponent(fps)
	player.AddComponent(cam)
	return player, fps, cam
}

func TestCameraUsesControllerLook(t *testing.T) {
	player, _, cam := newPlayer(nil)
	player.Transform.Position = rl.Vector3{X: 1, Y: 0, Z: 2}

	assertVec(t, rl.Vector3{X: 1, Y: 1.6, Z: 2}, cam.EyePosition())
	assertVec(t, rl.Vector3{Z: -1}, cam.Forward())

	rc := cam.GetRaylibCamera()
	assertVec(t, rl.Vector3{X: 1, Y: 1.6, Z: 1}, rc.Target)
}

func TestCameraChildUsesOwnOffset(t *testing.T) {
	player, _, _ := newPlayer(nil)
	head := engine.NewGameObject("Head")
	head.Transform.Position = rl.Vector3{Y: 1.8}
	cam := NewCamera()
	head.AddComponent(cam)
	head.SetParent(player, false)

	assertVec(t, rl.Vector3{Y: 1.8}, cam.EyePosition())
	assertVec(t, rl.Vector3{Z: -1}, cam.Forward())
}

func TestCameraWithoutControllerUsesRotation(t *testing.T) {
	obj := engine.NewGameObject("Cam")
	cam := NewCamera()
	obj.AddComponent(cam)

	assertVec(t, rl.Vector3{Z: -1}, cam.Forward())

	obj.Transform.Rotation = rl.Vector3{Y: 90}
	assertVec(t, rl.Vector3{X: -1}, cam.Forward())
}

func TestFPSControllerMovesAndLooks(t *testing.T) {
	src := input.NewScripted(
		input.State{}.WithHeld(input.ActionMoveForward),
		input.State{}.WithAxis(input.AxisMouseX, 90).WithAxis(input.AxisMouseY, 200),
	)
	player, fps, _ := newPlayer(src)

	player.Update(0.5)
	assertVec(t, rl.Vector3{Z: -3}, player.Transform.Position)
	assert.True(t, fps.Grounded)

	player.Update(0.1)
	assert.InDelta(t, 0, fps.Yaw, 1e-4)
	assert.InDelta(t, 89, fps.Pitch, 1e-4, "pitch is clamped")
}

func TestFPSControllerJump(t *testing.T) {
	src := input.NewScripted(
		input.State{},
		input.State{}.WithPressed(input.ActionJump),
	)
	player, fps, _ := newPlayer(src)

	player.Update(0.016)
	require.True(t, fps.Grounded)

	player.Update(0.016)
	assert.False(t, fps.Grounded)
	assert.Greater(t, player.Transform.Position.Y, float32(0))
}

func TestCollidersFollowWorldScale(t *testing.T) {
	obj := engine.NewGameObject("Crate")
	obj.Transform.Position = rl.Vector3{X: 2}
	obj.Transform.Scale = rl.Vector3{X: 2, Y: 1, Z: -3}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	sphere := NewSphereCollider(0.5)
	sphere.Offset = rl.Vector3{Y: 1}
	obj.AddComponent(box)
	obj.AddComponent(sphere)

	assertVec(t, rl.Vector3{X: 2, Y: 1, Z: -3}, box.GetWorldSize())
	assertVec(t, rl.Vector3{X: 2}, box.GetCenter())
	assertVec(t, rl.Vector3{X: 2, Y: 1}, sphere.GetCenter())
	assert.InDelta(t, 1.5, sphere.GetWorldRadius(), 1e-5)
}

func TestRigidbodySleepsAtRest(t *testing.T) {
	rb := NewRigidbody()
	rb.Velocity = rl.Vector3{X: 0.1}

	for range 30 {
		rb.TrySleep(0.016)
	}

	assert.True(t, rb.IsSleeping)
	assert.False(t, rb.Simulated())
	assert.Equal(t, rl.Vector3{}, rb.Velocity)

	rb.Wake()
	assert.True(t, rb.Simulated())

	rb.IsKinematic = true
	assert.False(t, rb.Simulated(), "kinematic bodies are not simulated")
}

func TestParseMeshType(t *testing.T) {
	assert.Equal(t, MeshSphere, ParseMeshType("sphere"))
	assert.Equal(t, MeshPlane, ParseMeshType("plane"))
	assert.Equal(t, MeshCube, ParseMeshType("cube"))
	assert.Equal(t, MeshCube, ParseMeshType(""))
}
