package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-4

func near(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < epsilon
}

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("Crate")

	if obj.Name != "Crate" {
		t.Errorf("Expected name 'Crate', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
	if !obj.Active {
		t.Error("New objects should be active")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	seen := map[uint64]bool{}
	for range 10 {
		obj := NewGameObject("Crate")
		if seen[obj.UID] {
			t.Fatalf("UID %d handed out twice", obj.UID)
		}
		seen[obj.UID] = true
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Crate")
	obj.Tags = []string{"Interactable", "Heavy"}

	if !obj.HasTag("Interactable") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("interactable") {
		t.Error("HasTag should be case sensitive")
	}
	if NewGameObject("Bare").HasTag("Interactable") {
		t.Error("HasTag should return false when Tags is empty")
	}
}

func TestGameObjectAddChildReparents(t *testing.T) {
	first := NewGameObject("First")
	second := NewGameObject("Second")
	child := NewGameObject("Child")

	first.AddChild(child)
	second.AddChild(child)

	if child.Parent != second {
		t.Error("Child.Parent should be the latest parent")
	}
	if len(first.Children) != 0 {
		t.Errorf("Old parent should have no children, got %d", len(first.Children))
	}
	if len(second.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(second.Children))
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.RemoveChild(child1)

	if len(parent.Children) != 1 || parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestSetParentKeepsWorldPose(t *testing.T) {
	anchor := NewGameObject("Anchor")
	anchor.Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	anchor.Transform.Rotation = rl.Vector3{Y: 90}
	anchor.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	obj := NewGameObject("Crate")
	obj.Transform.Position = rl.Vector3{X: 4, Y: 2, Z: 3}

	obj.SetParent(anchor, true)

	if obj.Parent != anchor {
		t.Fatal("Parent not set")
	}
	if !near(obj.WorldPosition(), rl.Vector3{X: 4, Y: 2, Z: 3}) {
		t.Errorf("World position moved on reparent: %v", obj.WorldPosition())
	}
	if !near(obj.WorldScale(), rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("World scale changed on reparent: %v", obj.WorldScale())
	}

	obj.SetParent(nil, true)

	if obj.Parent != nil || len(anchor.Children) != 0 {
		t.Error("Detach did not clear the relationship")
	}
	if !near(obj.Transform.Position, rl.Vector3{X: 4, Y: 2, Z: 3}) {
		t.Errorf("Local position after detach should equal world, got %v", obj.Transform.Position)
	}
}

func TestChildFollowsParent(t *testing.T) {
	anchor := NewGameObject("Anchor")
	obj := NewGameObject("Crate")
	obj.SetParent(anchor, false)

	anchor.Transform.Position = rl.Vector3{X: 0, Y: 5, Z: -2}

	if !near(obj.WorldPosition(), rl.Vector3{X: 0, Y: 5, Z: -2}) {
		t.Errorf("Child should inherit parent movement, got %v", obj.WorldPosition())
	}
}

func TestSetWorldPositionUnderParent(t *testing.T) {
	anchor := NewGameObject("Anchor")
	anchor.Transform.Position = rl.Vector3{X: 10}
	anchor.Transform.Rotation = rl.Vector3{Y: 45}
	obj := NewGameObject("Crate")
	obj.SetParent(anchor, false)

	obj.SetWorldPosition(rl.Vector3{X: 1, Y: 1, Z: 1})

	if !near(obj.WorldPosition(), rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected world position (1,1,1), got %v", obj.WorldPosition())
	}
}

func TestRotateWorldIsReversible(t *testing.T) {
	obj := NewGameObject("Crate")
	obj.Transform.Rotation = rl.Vector3{X: 10, Y: 20, Z: 5}
	start := obj.WorldQuaternion()

	obj.RotateWorld(rl.Vector3{X: 37})
	obj.RotateWorld(rl.Vector3{Y: -12})
	obj.RotateWorld(rl.Vector3{Y: 12})
	obj.RotateWorld(rl.Vector3{X: -37})

	if angle := QuaternionAngle(start, obj.WorldQuaternion()); angle > 0.05 {
		t.Errorf("Expected original orientation, off by %.4f degrees", angle)
	}
}

func TestRotateWorldUnderRotatedParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Rotation = rl.Vector3{Y: 90}
	obj := NewGameObject("Crate")
	obj.SetParent(parent, false)

	obj.RotateWorld(rl.Vector3{X: 30})

	want := rl.QuaternionMultiply(eulerToQuaternion(rl.Vector3{X: 30}), eulerToQuaternion(rl.Vector3{Y: 90}))
	if angle := QuaternionAngle(want, obj.WorldQuaternion()); angle > 0.05 {
		t.Errorf("World-space rotation wrong by %.4f degrees", angle)
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}
	obj.AddComponent(comp)

	if GetComponent[*BaseComponent](obj) != comp {
		t.Error("GetComponent failed to find component")
	}
	if comp.GetGameObject() != obj {
		t.Error("Component.gameObject should be set")
	}
}

type lookStub struct {
	BaseComponent
}

func (lookStub) GetLookDirection() (x, y, z float32) { return 0, 0, -1 }
func (lookStub) GetEyeHeight() float32 { return 1.6 }

func TestFindComponentByInterface(t *testing.T) {
	obj := NewGameObject("Player")
	obj.AddComponent(&BaseComponent{})
	obj.AddComponent(&lookStub{})

	if FindComponent[LookProvider](obj) == nil {
		t.Error("FindComponent should locate interface implementations")
	}
}

type countingComponent struct {
	BaseComponent
	starts  int
	updates int
}

func (c *countingComponent) Start() { c.starts++ }
func (c *countingComponent) Update(float32) { c.updates++ }

func TestGameObjectStartOnceAndInactiveSkipsUpdate(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &countingComponent{}
	obj.AddComponent(comp)

	obj.Start()
	obj.Start()
	obj.Update(0.016)
	obj.Active = false
	obj.Update(0.016)

	if comp.starts != 1 {
		t.Errorf("Start should run once, ran %d times", comp.starts)
	}
	if comp.updates != 1 {
		t.Errorf("Inactive objects should not update, got %d updates", comp.updates)
	}
}
