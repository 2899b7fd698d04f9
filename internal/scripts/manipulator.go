package scripts

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// InteractableTag marks objects the Manipulator may pick up.
const InteractableTag = "Interactable"

// Viewpoint is the camera the Manipulator aims and anchors with.
// components.Camera implements it.
type Viewpoint interface {
	EyePosition() rl.Vector3
	Forward() rl.Vector3
}

// Raycaster answers "what is the closest collider along this ray".
// engine.WorldAccess satisfies it.
type Raycaster interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (engine.RaycastResult, bool)
}

// ManipulatorState is whether the Manipulator is carrying something.
type ManipulatorState int

const (
	// StateEmpty means nothing is held; a primary press tries a pickup.
	StateEmpty ManipulatorState = iota
	// StateHolding means an object rides the anchor; a primary press drops it.
	StateHolding
)

func (s ManipulatorState) String() string {
	if s == StateHolding {
		return "Holding"
	}
	return "Empty"
}

// Manipulator lets the player pick up one Interactable object, carry it at
// a hold anchor in front of the camera, rotate and scale it, and drop it
// back into the simulation.
//
// While held, the object is parented to the anchor and its Rigidbody (if
// any) is made kinematic with gravity off. The flags it had before pickup
// are restored exactly on drop.
type Manipulator struct {
	engine.BaseComponent

	PickUpRange   float32
	RotationSpeed float32 // degrees per second per held key
	ScaleSpeed    float32 // scale units per scroll axis unit
	// HoldDistance is the anchor's offset along the camera forward.
	HoldDistance     float32
	HoldDistanceStep float32 // units per second
	// HoldHeight is the anchor's height above the camera. It survives drops.
	HoldHeight            float32
	MinHoldHeight         float32
	MaxHoldHeight         float32
	HoldHeightSensitivity float32
	InteractTag           string

	// CameraRef picks the camera object; empty means this object or a child.
	CameraRef engine.GameObjectRef

	Input   input.Source
	Camera  Viewpoint
	Physics Raycaster
	Log     *zap.Logger

	OnPickUp engine.EventWithArg[*engine.GameObject]
	OnDrop   engine.EventWithArg[*engine.GameObject]

	state     ManipulatorState
	held      *engine.GameObject
	heldScene *engine.Scene
	body      *components.Rigidbody
	saved     bodyFlags
	anchor    *engine.GameObject
}

type bodyFlags struct {
	useGravity  bool
	isKinematic bool
}

func NewManipulator() *Manipulator {
	return &Manipulator{
		PickUpRange:           3,
		RotationSpeed:         100,
		ScaleSpeed:            0.5,
		HoldDistance:          2,
		HoldDistanceStep:      2,
		HoldHeight:            0,
		MinHoldHeight:         -1,
		MaxHoldHeight:         1,
		HoldHeightSensitivity: 0.1,
		InteractTag:           InteractableTag,
	}
}

func (m *Manipulator) Start() {
	if m.Log == nil {
		m.Log = zap.NewNop()
	}
	if m.InteractTag == "" {
		m.InteractTag = InteractableTag
	}
	m.HoldHeight = clamp(m.HoldHeight, m.MinHoldHeight, m.MaxHoldHeight)

	g := m.GetGameObject()
	if m.Camera == nil {
		m.Camera = m.findCamera(g)
	}
	if m.Physics == nil && g != nil && g.Scene != nil && g.Scene.World != nil {
		m.Physics = g.Scene.World
	}
	m.ensureAnchor()
	m.followCamera()
}

func (m *Manipulator) findCamera(g *engine.GameObject) Viewpoint {
	if g == nil {
		return nil
	}
	if target := m.CameraRef.Get(g.Scene); target != nil {
		if cam := engine.GetComponent[*components.Camera](target); cam != nil {
			return cam
		}
	}
	if cam := engine.GetComponent[*components.Camera](g); cam != nil {
		return cam
	}
	for _, child := range g.Children {
		if cam := engine.GetComponent[*components.Camera](child); cam != nil {
			return cam
		}
	}
	return nil
}

func (m *Manipulator) ensureAnchor() {
	if m.anchor != nil {
		return
	}
	name := "HoldAnchor"
	g := m.GetGameObject()
	if g != nil {
		name = g.Name + "HoldAnchor"
	}
	m.anchor = engine.NewGameObject(name)
	if g != nil && g.Scene != nil {
		g.Scene.AddGameObject(m.anchor)
	}
}

func (m *Manipulator) Update(deltaTime float32) {
	if m.Input == nil {
		return
	}
	m.Tick(m.Input.Snapshot(), deltaTime)
}

// Tick advances the state machine by one frame using an explicit input
// snapshot.
func (m *Manipulator) Tick(in input.State, deltaTime float32) {
	if m.Camera == nil {
		return
	}
	m.ensureAnchor()

	// The held object left the scene (destroyed or reloaded) behind our back.
	if m.state == StateHolding && m.heldScene != nil && m.held.Scene != m.heldScene {
		m.Log.Debug("held object left the scene", zap.String("object", m.held.Name))
		m.Drop()
	}

	m.followCamera()

	if in.Pressed(input.ActionPrimary) {
		if m.state == StateHolding {
			m.Drop()
		} else {
			m.TryPickUp()
		}
	}

	if m.state != StateHolding {
		return
	}
	m.rotate(in, deltaTime)
	m.scale(in)
	m.moveAnchor(in, deltaTime)
}

// TryPickUp casts from the camera and grabs the first thing hit if it is
// Interactable. It reports whether something was picked up.
func (m *Manipulator) TryPickUp() bool {
	if m.state == StateHolding || m.Physics == nil || m.Camera == nil {
		return false
	}
	m.ensureAnchor()

	ignore := []*engine.GameObject{m.anchor}
	if g := m.GetGameObject(); g != nil {
		ignore = append(ignore, g)
	}

	hit, ok := m.Physics.Raycast(m.Camera.EyePosition(), m.Camera.Forward(), m.PickUpRange, ignore...)
	if !ok {
		m.Log.Debug("pickup missed", zap.Float32("range", m.PickUpRange))
		return false
	}
	if !hit.GameObject.HasTag(m.InteractTag) {
		m.Log.Debug("pickup rejected", zap.String("object", hit.GameObject.Name), zap.String("wantTag", m.InteractTag))
		return false
	}

	m.pickUp(hit.GameObject)
	m.Log.Debug("picked up", zap.String("object", hit.GameObject.Name), zap.Float32("distance", hit.Distance))
	return true
}

func (m *Manipulator) pickUp(obj *engine.GameObject) {
	m.held = obj
	m.heldScene = obj.Scene
	m.state = StateHolding

	m.body = engine.GetComponent[*components.Rigidbody](obj)
	if m.body != nil {
		m.saved = bodyFlags{useGravity: m.body.UseGravity, isKinematic: m.body.IsKinematic}
		m.body.UseGravity = false
		m.body.IsKinematic = true
		m.body.Stop()
		m.body.Wake()
	}

	obj.SetWorldPosition(m.anchor.WorldPosition())
	obj.SetParent(m.anchor, true)

	if r := engine.GetComponent[*components.MeshRenderer](obj); r != nil {
		r.Highlight = true
	}
	m.OnPickUp.Invoke(obj)
}

// Drop releases the held object back to the simulation. It is a no-op
// when nothing is held.
func (m *Manipulator) Drop() {
	if m.state != StateHolding {
		return
	}
	obj := m.held

	if m.body != nil {
		m.body.UseGravity = m.saved.useGravity
		m.body.IsKinematic = m.saved.isKinematic
		m.body.Wake()
	}
	obj.SetParent(nil, true)

	if r := engine.GetComponent[*components.MeshRenderer](obj); r != nil {
		r.Highlight = false
	}

	m.held = nil
	m.heldScene = nil
	m.body = nil
	m.state = StateEmpty

	m.Log.Debug("dropped", zap.String("object", obj.Name))
	m.OnDrop.Invoke(obj)
}

func (m *Manipulator) rotate(in input.State, deltaTime float32) {
	step := m.RotationSpeed * deltaTime
	var euler rl.Vector3
	if in.Held(input.ActionRotateXPositive) {
		euler.X += step
	}
	if in.Held(input.ActionRotateXNegative) {
		euler.X -= step
	}
	if in.Held(input.ActionRotateYPositive) {
		euler.Y += step
	}
	if in.Held(input.ActionRotateYNegative) {
		euler.Y -= step
	}
	m.held.RotateWorld(euler)
}

// scale is deliberately unclamped: sustained negative scroll shrinks the
// object through zero.
func (m *Manipulator) scale(in input.State) {
	d := in.Axis(input.AxisScrollWheel) * m.ScaleSpeed
	if d == 0 {
		return
	}
	m.held.Transform.Scale = rl.Vector3AddValue(m.held.Transform.Scale, d)
}

func (m *Manipulator) moveAnchor(in input.State, deltaTime float32) {
	if in.Held(input.ActionAdvance) {
		m.HoldDistance += m.HoldDistanceStep * deltaTime
	} else if in.Held(input.ActionRetreat) {
		m.HoldDistance -= m.HoldDistanceStep * deltaTime
	}

	m.HoldHeight += in.Axis(input.AxisMouseY) * m.HoldHeightSensitivity
	m.HoldHeight = clamp(m.HoldHeight, m.MinHoldHeight, m.MaxHoldHeight)

	m.followCamera()
}

// followCamera places the anchor at eye + forward*HoldDistance with its
// height pinned to eye height + HoldHeight.
func (m *Manipulator) followCamera() {
	eye := m.Camera.EyePosition()
	pos := rl.Vector3Add(eye, rl.Vector3Scale(m.Camera.Forward(), m.HoldDistance))
	pos.Y = eye.Y + m.HoldHeight
	m.anchor.Transform.Position = pos
}

func (m *Manipulator) State() ManipulatorState {
	return m.state
}

// Held returns the carried object, or nil when Empty.
func (m *Manipulator) Held() *engine.GameObject {
	return m.held
}

// Anchor returns the hold anchor, creating it if Start hasn't run.
func (m *Manipulator) Anchor() *engine.GameObject {
	m.ensureAnchor()
	return m.anchor
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	engine.RegisterScriptWithApplier("Manipulator", manipulatorFactory, manipulatorSerializer, manipulatorApplier)
}

func manipulatorFactory(props map[string]any) engine.Component {
	m := NewManipulator()
	for name, value := range props {
		manipulatorApplier(m, name, value)
	}
	return m
}

func manipulatorSerializer(c engine.Component) map[string]any {
	m, ok := c.(*Manipulator)
	if !ok {
		return nil
	}
	return map[string]any{
		"pickUpRange":           m.PickUpRange,
		"rotationSpeed":         m.RotationSpeed,
		"scaleSpeed":            m.ScaleSpeed,
		"holdDistance":          m.HoldDistance,
		"holdDistanceStep":      m.HoldDistanceStep,
		"holdHeight":            m.HoldHeight,
		"minHoldHeight":         m.MinHoldHeight,
		"maxHoldHeight":         m.MaxHoldHeight,
		"holdHeightSensitivity": m.HoldHeightSensitivity,
		"interactTag":           m.InteractTag,
		"cameraRef":             m.CameraRef.UID,
	}
}

func manipulatorApplier(c engine.Component, propName string, value any) bool {
	m, ok := c.(*Manipulator)
	if !ok {
		return false
	}

	switch propName {
	case "interactTag":
		tag, ok := value.(string)
		if ok {
			m.InteractTag = tag
		}
		return ok
	case "cameraRef":
		uid, ok := toUint64(value)
		if ok {
			m.CameraRef.UID = uid
		}
		return ok
	}

	fields := map[string]*float32{
		"pickUpRange":           &m.PickUpRange,
		"rotationSpeed":         &m.RotationSpeed,
		"scaleSpeed":            &m.ScaleSpeed,
		"holdDistance":          &m.HoldDistance,
		"holdDistanceStep":      &m.HoldDistanceStep,
		"holdHeight":            &m.HoldHeight,
		"minHoldHeight":         &m.MinHoldHeight,
		"maxHoldHeight":         &m.MaxHoldHeight,
		"holdHeightSensitivity": &m.HoldHeightSensitivity,
	}
	field, known := fields[propName]
	if !known {
		return false
	}
	v, ok := toFloat32(value)
	if !ok {
		return false
	}
	*field = v
	switch propName {
	case "holdHeight", "minHoldHeight", "maxHoldHeight":
		m.HoldHeight = clamp(m.HoldHeight, m.MinHoldHeight, m.MaxHoldHeight)
	}
	return true
}
