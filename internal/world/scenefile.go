package world

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/physics"
	"pickup3d/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrScene wraps every problem found while building a scene file.
var ErrScene = errors.New("bad scene")

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Parent     string      `yaml:"parent,omitempty"`
	Tags       []string    `yaml:"tags,omitempty"`
	Active     *bool       `yaml:"active,omitempty"`
	Position   [3]float32  `yaml:"position"`
	Rotation   [3]float32  `yaml:"rotation"`
	Scale      *[3]float32 `yaml:"scale,omitempty"`
	Components []yaml.Node `yaml:"components"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type meshRendererDef struct {
	Mesh  string     `yaml:"mesh"`
	Size  [3]float32 `yaml:"size"`
	Color string     `yaml:"color"`
}

type boxColliderDef struct {
	Size   [3]float32 `yaml:"size"`
	Offset [3]float32 `yaml:"offset"`
}

type sphereColliderDef struct {
	Radius float32    `yaml:"radius"`
	Offset [3]float32 `yaml:"offset"`
}

type rigidbodyDef struct {
	Mass        float32 `yaml:"mass"`
	Bounciness  float32 `yaml:"bounciness"`
	Friction    float32 `yaml:"friction"`
	UseGravity  *bool   `yaml:"useGravity"`
	IsKinematic bool    `yaml:"isKinematic"`
}

type cameraDef struct {
	FOV  float32 `yaml:"fov"`
	Main *bool   `yaml:"main"`
}

type fpsControllerDef struct {
	Yaw       *float32 `yaml:"yaw"`
	Pitch     *float32 `yaml:"pitch"`
	MoveSpeed float32  `yaml:"moveSpeed"`
	LookSpeed float32  `yaml:"lookSpeed"`
	EyeHeight float32  `yaml:"eyeHeight"`
}

type scriptDef struct {
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// lookupColor accepts a raylib color name or "#rrggbb" / "#rrggbbaa".
// Empty means white.
func lookupColor(name string) (rl.Color, error) {
	if name == "" {
		return rl.White, nil
	}
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(name, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return rl.Color{}, fmt.Errorf("unknown color %q", name)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("color %q: %w", name, err)
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

// pendingRef is a script prop naming another object, resolved to a UID
// once every object exists.
type pendingRef struct {
	owner  string
	comp   engine.Component
	prop   string
	target string
}

type sceneBuilder struct {
	w       *World
	physics *physics.PhysicsWorld
	refs    []pendingRef
}

// LoadScene replaces the current scene with the one in path. On error the
// current scene is left untouched.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := w.LoadSceneData(name, data); err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}
	return nil
}

func (w *World) LoadSceneData(name string, data []byte) error {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		name = sf.Name
	}

	b := &sceneBuilder{w: w, physics: physics.NewPhysicsWorld(w.log.Named("physics"))}
	scene := engine.NewScene(name)
	objects := make([]*engine.GameObject, 0, len(sf.Objects))
	byName := make(map[string]*engine.GameObject, len(sf.Objects))

	for _, def := range sf.Objects {
		if def.Name == "" {
			return fmt.Errorf("%w: object without a name", ErrScene)
		}
		if _, dup := byName[def.Name]; dup {
			return fmt.Errorf("%w: duplicate object %q", ErrScene, def.Name)
		}
		g, err := b.buildObject(def)
		if err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
		objects = append(objects, g)
		byName[def.Name] = g
	}

	for i, def := range sf.Objects {
		if def.Parent == "" {
			continue
		}
		parent, ok := byName[def.Parent]
		if !ok {
			return fmt.Errorf("%w: object %q: unknown parent %q", ErrScene, def.Name, def.Parent)
		}
		objects[i].SetParent(parent, false)
	}

	for _, ref := range b.refs {
		target, ok := byName[ref.target]
		if !ok {
			return fmt.Errorf("%w: object %q: %s references unknown object %q", ErrScene, ref.owner, ref.prop, ref.target)
		}
		engine.ApplyScriptProperty(ref.comp, ref.prop, target.UID)
	}

	w.setScene(scene)
	w.Physics = b.physics
	for _, g := range objects {
		scene.AddGameObject(g)
		if hasCollider(g) {
			w.Physics.AddObject(g)
		}
	}
	scene.Start()

	w.log.Info("scene loaded",
		zap.String("scene", name),
		zap.Int("objects", len(objects)),
		zap.Int("bodies", len(w.Physics.Objects)),
		zap.Int("statics", len(w.Physics.Statics)))
	return nil
}

func (b *sceneBuilder) buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)
	if def.Scale != nil {
		g.Transform.Scale = vec(*def.Scale)
	}

	for i := range def.Components {
		node := &def.Components[i]
		var header componentHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		if err := b.addComponent(g, header.Type, node); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
	}
	return g, nil
}

func (b *sceneBuilder) addComponent(g *engine.GameObject, kind string, node *yaml.Node) error {
	switch kind {
	case "MeshRenderer":
		var def meshRendererDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		color, err := lookupColor(def.Color)
		if err != nil {
			return err
		}
		g.AddComponent(components.NewMeshRenderer(components.ParseMeshType(def.Mesh), color, vec(def.Size)))

	case "BoxCollider":
		var def boxColliderDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		col := components.NewBoxCollider(vec(def.Size))
		col.Offset = vec(def.Offset)
		g.AddComponent(col)

	case "SphereCollider":
		var def sphereColliderDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec(def.Offset)
		g.AddComponent(col)

	case "Rigidbody":
		var def rigidbodyDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		rb := components.NewRigidbody()
		if def.Mass > 0 {
			rb.Mass = def.Mass
		}
		if def.Bounciness > 0 {
			rb.Bounciness = def.Bounciness
		}
		if def.Friction > 0 {
			rb.Friction = def.Friction
		}
		if def.UseGravity != nil {
			rb.UseGravity = *def.UseGravity
		}
		rb.IsKinematic = def.IsKinematic
		g.AddComponent(rb)

	case "Camera":
		var def cameraDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		cam := components.NewCamera()
		if def.FOV > 0 {
			cam.FOV = def.FOV
		}
		if def.Main != nil {
			cam.IsMain = *def.Main
		}
		g.AddComponent(cam)

	case "FPSController":
		var def fpsControllerDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		fps := components.NewFPSController(b.w.Input)
		if def.Yaw != nil {
			fps.Yaw = *def.Yaw
		}
		if def.Pitch != nil {
			fps.Pitch = *def.Pitch
		}
		if def.MoveSpeed > 0 {
			fps.MoveSpeed = def.MoveSpeed
		}
		if def.LookSpeed > 0 {
			fps.LookSpeed = def.LookSpeed
		}
		if def.EyeHeight > 0 {
			fps.EyeHeight = def.EyeHeight
		}
		g.AddComponent(fps)

	case "PlayerCollision":
		g.AddComponent(&PlayerCollision{Physics: b.physics})

	case "Script":
		var def scriptDef
		if err := node.Decode(&def); err != nil {
			return err
		}
		return b.addScript(g, def)

	default:
		return fmt.Errorf("%w: unknown component type %q", ErrScene, kind)
	}
	return nil
}

func (b *sceneBuilder) addScript(g *engine.GameObject, def scriptDef) error {
	props := maps.Clone(b.w.ScriptDefaults[def.Name])
	if props == nil {
		props = make(map[string]any)
	}
	var refs []pendingRef
	for k, v := range def.Props {
		// Object references are written by name and resolved later.
		if target, ok := v.(string); ok && strings.HasSuffix(k, "Ref") {
			refs = append(refs, pendingRef{owner: g.Name, prop: k, target: target})
			continue
		}
		props[k] = v
	}

	comp := engine.CreateScript(def.Name, props)
	if comp == nil {
		return fmt.Errorf("%w: unknown script %q", ErrScene, def.Name)
	}
	for _, ref := range refs {
		ref.comp = comp
		b.refs = append(b.refs, ref)
	}

	if m, ok := comp.(*scripts.Manipulator); ok {
		m.Input = b.w.Input
		m.Log = b.w.log.Named("manipulator").With(zap.String("owner", g.Name))
	}
	g.AddComponent(comp)
	return nil
}
