package world

import (
	"os"
	"path/filepath"
	"testing"

	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/input"
	"pickup3d/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playground = `
name: playground
objects:
  - name: Floor
    position: [0, -0.5, 0]
    components:
      - type: BoxCollider
        size: [60, 1, 60]
  - name: Player
    position: [0, 0, 0]
    components:
      - type: FPSController
        yaw: -90
        pitch: 0
      - type: BoxCollider
        size: [0.6, 1.8, 0.6]
        offset: [0, 0.9, 0]
      - type: PlayerCollision
      - type: Camera
        fov: 70
      - type: Script
        name: Manipulator
        props:
          pickUpRange: 4
          cameraRef: Player
  - name: Crate
    tags: [Interactable]
    position: [0, 1.6, -2]
    components:
      - type: MeshRenderer
        mesh: cube
        size: [1, 1, 1]
        color: "#ff8800"
      - type: BoxCollider
        size: [1, 1, 1]
      - type: Rigidbody
        useGravity: false
  - name: Lamp
    parent: Crate
    position: [0, 1, 0]
    scale: [0.5, 0.5, 0.5]
    components:
      - type: MeshRenderer
        mesh: sphere
        size: [0.3, 0.3, 0.3]
        color: Gold
`

func loadPlayground(t *testing.T, src input.Source) *World {
	t.Helper()
	w := New(src, nil)
	require.NoError(t, w.LoadSceneData("test", []byte(playground)))
	return w
}

func TestLoadScene(t *testing.T) {
	w := loadPlayground(t, nil)

	assert.Equal(t, "playground", w.Scene.Name)
	assert.Same(t, w, w.Scene.World)
	assert.Len(t, w.Physics.Statics, 2, "floor and player")
	assert.Len(t, w.Physics.Objects, 1)

	crate := w.Scene.FindByName("Crate")
	require.NotNil(t, crate)
	assert.True(t, crate.HasTag(scripts.InteractableTag))
	rb := engine.GetComponent[*components.Rigidbody](crate)
	require.NotNil(t, rb)
	assert.False(t, rb.UseGravity)
	mesh := engine.GetComponent[*components.MeshRenderer](crate)
	require.NotNil(t, mesh)
	assert.Equal(t, rl.NewColor(0xff, 0x88, 0x00, 0xff), mesh.Color)

	lamp := w.Scene.FindByName("Lamp")
	require.NotNil(t, lamp)
	assert.Same(t, crate, lamp.Parent)
	assert.Equal(t, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, lamp.Transform.Scale)
}

func TestLoadSceneResolvesRefsAndWiresManipulator(t *testing.T) {
	latch := &input.Latch{}
	w := New(latch, nil)
	w.ScriptDefaults["Manipulator"] = map[string]any{"pickUpRange": 9.0, "scaleSpeed": 2.0}
	require.NoError(t, w.LoadSceneData("test", []byte(playground)))

	player := w.Scene.FindByName("Player")
	m := engine.GetComponent[*scripts.Manipulator](player)
	require.NotNil(t, m)

	assert.Equal(t, player.UID, m.CameraRef.UID)
	assert.Equal(t, float32(4), m.PickUpRange, "scene props win over defaults")
	assert.Equal(t, float32(2), m.ScaleSpeed)
	assert.Same(t, latch, m.Input)
	assert.Same(t, engine.GetComponent[*components.Camera](player), m.Camera)
	assert.NotNil(t, m.Anchor().Scene)
}

func TestPickUpThroughWorld(t *testing.T) {
	latch := &input.Latch{}
	w := loadPlayground(t, latch)
	player := w.Scene.FindByName("Player")
	crate := w.Scene.FindByName("Crate")
	m := engine.GetComponent[*scripts.Manipulator](player)

	latch.Store(input.State{}.WithPressed(input.ActionPrimary))
	w.Update(1.0 / 60)

	require.Equal(t, scripts.StateHolding, m.State())
	assert.Same(t, crate, m.Held())
	rb := engine.GetComponent[*components.Rigidbody](crate)
	assert.True(t, rb.IsKinematic)

	// The player walks forward; the crate goes along without physics
	// touching it.
	latch.Store(input.State{}.WithHeld(input.ActionMoveForward))
	for range 30 {
		w.Update(1.0 / 60)
	}
	assert.Less(t, crate.WorldPosition().Z, float32(-3))
	assert.InDelta(t, 1.6, crate.WorldPosition().Y, 1e-3)

	latch.Store(input.State{}.WithPressed(input.ActionPrimary))
	w.Update(1.0 / 60)
	assert.Equal(t, scripts.StateEmpty, m.State())
	assert.False(t, rb.IsKinematic)
	assert.False(t, rb.UseGravity)
}

func TestDestroyReleasesHeldObject(t *testing.T) {
	latch := &input.Latch{}
	w := loadPlayground(t, latch)
	crate := w.Scene.FindByName("Crate")
	m := engine.GetComponent[*scripts.Manipulator](w.Scene.FindByName("Player"))

	latch.Store(input.State{}.WithPressed(input.ActionPrimary))
	w.Update(1.0 / 60)
	require.Equal(t, scripts.StateHolding, m.State())

	w.Destroy(crate)
	assert.Nil(t, w.Scene.FindByName("Crate"))
	assert.Nil(t, w.Scene.FindByName("Lamp"), "children go with their parent")
	assert.Empty(t, w.Physics.Objects)

	latch.Store(input.State{})
	w.Update(1.0 / 60)
	assert.Equal(t, scripts.StateEmpty, m.State())
}

func TestSpawnObject(t *testing.T) {
	w := New(nil, nil)
	g := engine.NewGameObject("Ball")
	g.AddComponent(components.NewSphereCollider(0.5))
	g.AddComponent(components.NewRigidbody())
	child := engine.NewGameObject("Decal")
	g.AddChild(child)

	w.SpawnObject(g)

	assert.Same(t, g, w.Scene.FindByUID(g.UID))
	assert.Same(t, child, w.Scene.FindByUID(child.UID))
	assert.Len(t, w.Physics.Objects, 1)

	hit, ok := w.Raycast(rl.Vector3{Z: 5}, rl.Vector3{Z: -1}, 10)
	require.True(t, ok)
	assert.Same(t, g, hit.GameObject)
}

func TestMainCamera(t *testing.T) {
	w := loadPlayground(t, nil)
	cam := w.MainCamera()
	require.NotNil(t, cam)
	assert.Equal(t, "Player", cam.GetGameObject().Name)
	assert.Equal(t, float32(70), cam.FOV)
}

func TestLoadSceneErrorsKeepCurrentScene(t *testing.T) {
	tests := map[string]string{
		"unknown component": "objects:\n  - name: A\n    components:\n      - type: Teleporter\n",
		"unknown script":    "objects:\n  - name: A\n    components:\n      - type: Script\n        name: Nope\n",
		"dangling ref":      "objects:\n  - name: A\n    components:\n      - type: Script\n        name: Manipulator\n        props:\n          cameraRef: Ghost\n",
		"unknown parent":    "objects:\n  - name: A\n    parent: B\n",
		"duplicate":         "objects:\n  - name: A\n  - name: A\n",
		"bad color":         "objects:\n  - name: A\n    components:\n      - type: MeshRenderer\n        color: Chartreuse\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			w := loadPlayground(t, nil)
			before := w.Scene
			err := w.LoadSceneData("bad", []byte(doc))
			require.Error(t, err)
			assert.Same(t, before, w.Scene)
		})
	}
}

func TestLoadSceneFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objects:\n  - name: Box\n"), 0o644))

	w := New(nil, nil)
	require.NoError(t, w.LoadScene(path))
	assert.Equal(t, "room", w.Scene.Name)

	assert.Error(t, w.LoadScene(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestShippedPlaygroundSpheresMatchColliders(t *testing.T) {
	w := New(nil, nil)
	require.NoError(t, w.LoadScene(filepath.Join("..", "..", "assets", "scenes", "playground.yaml")))

	checked := 0
	for _, g := range w.Scene.GameObjects {
		mesh := engine.GetComponent[*components.MeshRenderer](g)
		sphere := engine.GetComponent[*components.SphereCollider](g)
		if mesh == nil || sphere == nil || mesh.MeshType != components.MeshSphere {
			continue
		}
		// Sphere meshes draw with size.X as the radius.
		assert.InDelta(t, sphere.Radius, mesh.Size.X, 1e-6, g.Name)
		checked++
	}
	assert.NotZero(t, checked)
}

func TestLookupColor(t *testing.T) {
	c, err := lookupColor("")
	require.NoError(t, err)
	assert.Equal(t, rl.White, c)

	c, err = lookupColor("#10203040")
	require.NoError(t, err)
	assert.Equal(t, rl.NewColor(0x10, 0x20, 0x30, 0x40), c)

	_, err = lookupColor("#xyz")
	assert.Error(t, err)
}

func TestPlayerCollisionPushesOutOfStatics(t *testing.T) {
	w := loadPlayground(t, nil)
	player := w.Scene.FindByName("Player")

	wall := engine.NewGameObject("Wall")
	wall.Transform.Position = rl.Vector3{X: 0.5, Y: 1, Z: 0}
	wall.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 2, Z: 4}))
	w.SpawnObject(wall)

	// Wall spans x 0.25..0.75; the 0.6 wide player starts overlapping it.
	w.Update(1.0 / 60)
	assert.InDelta(t, -0.05, player.Transform.Position.X, 1e-3)
}

func TestFrustumCulling(t *testing.T) {
	camera := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(camera, 16.0/9.0, CullNear, CullFar)

	assert.True(t, f.ContainsPoint(rl.Vector3{Z: -10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 100, Z: -1}))
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 100, Z: -1}, 150))
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: -2000}, 1))

	r := NewRenderer()
	ahead := engine.NewGameObject("Ahead")
	ahead.Transform.Position = rl.Vector3{Z: -5}
	ahead.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))
	behind := engine.NewGameObject("Behind")
	behind.Transform.Position = rl.Vector3{Z: 5}
	behind.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))

	visible := r.Visible(camera, 16.0/9.0, []*engine.GameObject{ahead, behind})
	require.Len(t, visible, 1)
	assert.Same(t, ahead, visible[0].GetGameObject())
	assert.Equal(t, 1, r.Drawn)
	assert.Equal(t, 1, r.Culled)
}
