package world

import (
	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/input"
	"pickup3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var _ engine.WorldAccess = (*World)(nil)

// World owns the scene graph and the physics that steps it.
type World struct {
	Scene    *engine.Scene
	Physics  *physics.PhysicsWorld
	Renderer *Renderer

	// Input is handed to every input-driven component the loader creates.
	Input input.Source
	// ScriptDefaults seeds script props by script name; scene props win.
	ScriptDefaults map[string]map[string]any

	log *zap.Logger
}

func New(src input.Source, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Physics:        physics.NewPhysicsWorld(log.Named("physics")),
		Renderer:       NewRenderer(),
		Input:          src,
		ScriptDefaults: make(map[string]map[string]any),
		log:            log,
	}
	w.setScene(engine.NewScene("Main"))
	return w
}

func (w *World) setScene(s *engine.Scene) {
	s.World = w
	w.Scene = s
}

// SpawnObject adds g (and any children already attached) to the running
// scene and starts it.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.add(g)
	w.startTree(g)
}

func (w *World) add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	if hasCollider(g) {
		w.Physics.AddObject(g)
	}
	for _, child := range g.Children {
		w.add(child)
	}
}

func (w *World) startTree(g *engine.GameObject) {
	g.Start()
	for _, child := range g.Children {
		w.startTree(child)
	}
}

// Destroy removes g and its descendants from the scene and physics.
func (w *World) Destroy(g *engine.GameObject) {
	w.removePhysics(g)
	w.Scene.RemoveGameObject(g)
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	w.log.Debug("destroyed", zap.String("object", g.Name))
}

func (w *World) removePhysics(g *engine.GameObject) {
	for _, child := range g.Children {
		w.removePhysics(child)
	}
	w.Physics.RemoveObject(g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, ignore...)
}

// Update runs scripts first so a pickup this frame is already kinematic
// when physics steps.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Physics.Update(deltaTime)
}

// MainCamera returns the first camera flagged IsMain, or nil.
func (w *World) MainCamera() *components.Camera {
	for _, g := range w.Scene.GameObjects {
		if cam := engine.GetComponent[*components.Camera](g); cam != nil && cam.IsMain {
			return cam
		}
	}
	return nil
}

func hasCollider(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
}
