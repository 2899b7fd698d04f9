package game

import (
	"os"
	"path/filepath"
	"testing"

	"pickup3d/internal/config"
	"pickup3d/internal/input"
	"pickup3d/internal/scripts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const room = `
name: room
objects:
  - name: Player
    components:
      - type: FPSController
        yaw: -90
        pitch: 0
      - type: Camera
      - type: Script
        name: Manipulator
        props:
          cameraRef: Player
  - name: Crate
    tags: [Interactable]
    position: [0, 1.6, -2]
    components:
      - type: BoxCollider
        size: [1, 1, 1]
      - type: Rigidbody
        useGravity: false
`

func writeScene(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func newGame(t *testing.T) (*Game, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	cfg.Scene = writeScene(t, "room", room)

	g, err := New(cfg, "", zap.New(core), zap.NewAtomicLevel())
	require.NoError(t, err)
	require.NoError(t, g.LoadScene(cfg.Scene))
	require.Len(t, g.Manipulators(), 1)
	return g, logs
}

func TestFramePicksUpAndLogs(t *testing.T) {
	g, logs := newGame(t)
	m := g.Manipulators()[0]

	g.Frame(input.State{}.WithPressed(input.ActionPrimary), 1.0/60)
	require.Equal(t, scripts.StateHolding, m.State())
	assert.Equal(t, "Crate", m.Held().Name)
	assert.Equal(t, 1, logs.FilterMessage("picked up").Len())

	g.Frame(input.State{}.WithPressed(input.ActionPrimary), 1.0/60)
	assert.Equal(t, scripts.StateEmpty, m.State())
	assert.Equal(t, 1, logs.FilterMessage("dropped").Len())
}

func TestFrameTuningSwallowsMouse(t *testing.T) {
	g, _ := newGame(t)
	mouse := input.State{}.WithAxis(input.AxisMouseX, 3).WithAxis(input.AxisMouseY, 2)

	g.Frame(mouse.WithPressed(input.ActionToggleHUD), 1.0/60)
	require.True(t, g.HUD.Tuning)
	seen := g.Input.Snapshot()
	assert.Zero(t, seen.Axis(input.AxisMouseX))
	assert.Zero(t, seen.Axis(input.AxisMouseY))

	g.Frame(input.State{}.WithPressed(input.ActionToggleHUD), 1.0/60)
	require.False(t, g.HUD.Tuning)
	g.Frame(mouse, 1.0/60)
	assert.Equal(t, float32(3), g.Input.Snapshot().Axis(input.AxisMouseX))
}

func TestApplyConfigKeepsHoldState(t *testing.T) {
	g, _ := newGame(t)
	m := g.Manipulators()[0]
	m.HoldHeight = 0.5
	m.HoldDistance = 3

	cfg := g.Config
	cfg.LogLevel = "warn"
	cfg.Manipulator.PickUpRange = 7
	cfg.Manipulator.HoldHeight = -0.5
	cfg.Manipulator.HoldDistance = 1
	cfg.HUD.Visible = false
	g.ApplyConfig(cfg)

	assert.Equal(t, float32(7), m.PickUpRange)
	assert.Equal(t, float32(0.5), m.HoldHeight)
	assert.Equal(t, float32(3), m.HoldDistance)
	assert.False(t, g.HUD.Visible)
	assert.Equal(t, zapcore.WarnLevel, g.level.Level())
	assert.Equal(t, float32(-0.5), g.World.ScriptDefaults["Manipulator"]["holdHeight"],
		"new spawns start from the config")
}

func TestApplyConfigReloadsScene(t *testing.T) {
	g, _ := newGame(t)
	before := g.World.Scene

	cfg := g.Config
	cfg.Scene = writeScene(t, "hall", "objects:\n  - name: Pillar\n")
	g.ApplyConfig(cfg)
	assert.NotSame(t, before, g.World.Scene)
	assert.Equal(t, "hall", g.World.Scene.Name)
	assert.Empty(t, g.Manipulators())

	broken := g.World.Scene
	cfg.Scene = filepath.Join(t.TempDir(), "missing.yaml")
	g.ApplyConfig(cfg)
	assert.Same(t, broken, g.World.Scene, "a failed reload keeps the current scene")
}

func TestSceneOverrideSurvivesReload(t *testing.T) {
	g, _ := newGame(t)
	g.SceneOverride = g.Config.Scene
	before := g.World.Scene

	cfg := g.Config
	cfg.Scene = writeScene(t, "hall", "objects:\n  - name: Pillar\n")
	g.ApplyConfig(cfg)

	assert.Same(t, before, g.World.Scene)
	assert.Equal(t, g.SceneOverride, g.Config.Scene)
}

func TestNewRejectsBadBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Bindings = map[string][]string{"primary": {"Hyper"}}
	_, err := New(cfg, "", nil, zap.NewAtomicLevel())
	assert.Error(t, err)
}
