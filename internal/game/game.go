package game

import (
	"fmt"
	"time"

	"pickup3d/internal/components"
	"pickup3d/internal/config"
	"pickup3d/internal/engine"
	"pickup3d/internal/input"
	"pickup3d/internal/logging"
	"pickup3d/internal/scripts"
	"pickup3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type Game struct {
	Config config.Config
	World  *world.World
	HUD    *HUD
	// Input is the frame's snapshot every component reads.
	Input *input.Latch
	// SceneOverride pins the scene across config reloads (-scene flag).
	SceneOverride string

	configPath string
	poller     *input.Poller
	watcher    *config.Watcher
	log        *zap.Logger
	level      zap.AtomicLevel

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New builds a game from cfg without opening a window. configPath, if set,
// is watched for changes once Run starts.
func New(cfg config.Config, configPath string, log *zap.Logger, level zap.AtomicLevel) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	latch := &input.Latch{}
	g := &Game{
		World:      world.New(latch, log.Named("world")),
		HUD:        NewHUD(),
		Input:      latch,
		configPath: configPath,
		poller:     input.NewPoller(bindings),
		log:        log,
		level:      level,
	}
	g.apply(cfg)
	g.Config = cfg
	return g, nil
}

func (g *Game) LoadScene(path string) error {
	if err := g.World.LoadScene(path); err != nil {
		return err
	}
	for _, m := range g.Manipulators() {
		m.OnPickUp.AddListener(func(obj *engine.GameObject) {
			g.log.Info("picked up", zap.String("object", obj.Name))
		})
		m.OnDrop.AddListener(func(obj *engine.GameObject) {
			g.log.Info("dropped", zap.String("object", obj.Name))
		})
	}
	return nil
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(g.Config.Window.Width, g.Config.Window.Height, g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Config.Window.TargetFPS)
	rl.DisableCursor()
	initHUDStyle()

	if g.configPath != "" {
		w, err := config.Watch(g.configPath, g.log.Named("config"))
		if err != nil {
			g.log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	for !rl.WindowShouldClose() {
		g.drainConfig()

		tuning := g.HUD.Tuning
		updateStart := time.Now()
		g.Frame(g.poller.Snapshot(), rl.GetFrameTime())
		g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0

		if g.HUD.Tuning != tuning {
			if g.HUD.Tuning {
				rl.EnableCursor()
			} else {
				rl.DisableCursor()
			}
		}
		g.Draw()
	}
	return nil
}

// Frame advances the game by one tick with an explicit input snapshot.
func (g *Game) Frame(in input.State, deltaTime float32) {
	if in.Pressed(input.ActionToggleHUD) {
		g.HUD.Tuning = !g.HUD.Tuning
	}
	// The mouse drives sliders while tuning, not the camera or hold height.
	if g.HUD.Tuning {
		in = in.WithAxis(input.AxisMouseX, 0).WithAxis(input.AxisMouseY, 0)
	}
	g.Input.Store(in)
	g.World.Update(deltaTime)
}

func (g *Game) drainConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg := <-g.watcher.Changes:
			g.ApplyConfig(cfg)
		case err := <-g.watcher.Errors:
			g.log.Warn("config reload failed, keeping previous config", zap.Error(err))
		default:
			return
		}
	}
}

// ApplyConfig switches to cfg at runtime. Manipulator tunables are pushed
// to live components; their current hold height and distance are kept. A
// changed scene path reloads the scene.
func (g *Game) ApplyConfig(cfg config.Config) {
	if g.SceneOverride != "" {
		cfg.Scene = g.SceneOverride
	}
	prev := g.Config
	g.apply(cfg)
	g.Config = cfg

	for _, m := range g.Manipulators() {
		if rejected := engine.ApplyScriptProperties(m, cfg.Manipulator.Props()); len(rejected) > 0 {
			g.log.Warn("manipulator rejected config props", zap.Strings("props", rejected))
		}
	}

	if cfg.Scene != prev.Scene {
		if err := g.LoadScene(cfg.Scene); err != nil {
			g.log.Error("scene reload failed", zap.String("scene", cfg.Scene), zap.Error(err))
		}
	}
	g.log.Info("config applied", zap.String("level", cfg.LogLevel))
}

func (g *Game) apply(cfg config.Config) {
	if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		g.level.SetLevel(level)
	}
	if bindings, err := cfg.Bindings(); err == nil {
		g.poller.Bindings = bindings
	}
	g.poller.MouseAxisScale = cfg.Input.MouseSensitivity
	g.poller.ScrollAxisScale = cfg.Input.ScrollSensitivity
	g.World.ScriptDefaults["Manipulator"] = cfg.Manipulator.SpawnProps()
	g.HUD.Visible = cfg.HUD.Visible
}

// Manipulators returns every Manipulator in the current scene.
func (g *Game) Manipulators() []*scripts.Manipulator {
	var out []*scripts.Manipulator
	for _, obj := range g.World.Scene.GameObjects {
		if m := engine.GetComponent[*scripts.Manipulator](obj); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (g *Game) Draw() {
	cam := g.World.MainCamera()
	drawStart := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	if cam != nil {
		camera := cam.GetRaylibCamera()
		aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
		rl.BeginMode3D(camera)
		g.World.Renderer.Draw(camera, aspect, g.World.Scene.GameObjects)
		g.drawAnchor()
		rl.EndMode3D()
	}

	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
	g.HUD.Draw(g.hudFrame(cam))
	rl.EndDrawing()
}

func (g *Game) drawAnchor() {
	if !g.World.Renderer.ShowColliders {
		return
	}
	for _, m := range g.Manipulators() {
		rl.DrawSphereWires(m.Anchor().WorldPosition(), 0.08, 6, 6, rl.Yellow)
	}
}

func (g *Game) hudFrame(cam *components.Camera) HUDFrame {
	f := HUDFrame{
		Renderer: g.World.Renderer,
		UpdateMs: g.updateMs,
		DrawMs:   g.drawMs,
		Bodies:   g.World.Physics.DynamicObjectCount(),
	}
	if ms := g.Manipulators(); len(ms) > 0 {
		f.Manipulator = ms[0]
		f.Aimed = g.aimedInteractable(ms[0], cam)
	}
	return f
}

// aimedInteractable returns what a pickup would grab right now, if anything.
func (g *Game) aimedInteractable(m *scripts.Manipulator, cam *components.Camera) *engine.GameObject {
	if cam == nil || m.State() == scripts.StateHolding {
		return nil
	}
	hit, ok := g.World.Raycast(cam.EyePosition(), cam.Forward(), m.PickUpRange, m.GetGameObject())
	if !ok || !hit.GameObject.HasTag(m.InteractTag) {
		return nil
	}
	return hit.GameObject
}
