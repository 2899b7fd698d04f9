package game

import (
	"fmt"

	"pickup3d/internal/engine"
	"pickup3d/internal/scripts"
	"pickup3d/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 220)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

func initHUDStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// HUD draws the status overlay and, in tuning mode, a raygui panel that
// edits the Manipulator live.
type HUD struct {
	Visible bool
	Tuning  bool
}

func NewHUD() *HUD {
	return &HUD{Visible: true}
}

// HUDFrame is what the HUD needs to know about the current frame.
type HUDFrame struct {
	Manipulator *scripts.Manipulator
	// Aimed is the Interactable under the crosshair while Empty.
	Aimed    *engine.GameObject
	Renderer *world.Renderer
	Bodies   int
	UpdateMs float64
	DrawMs   float64
}

const (
	panelX     = 10
	panelW     = 300
	rowH       = 22
	labelW     = 110
	sliderW    = 130
	textSize   = 16
	hintIndent = 10
)

func (h *HUD) Draw(f HUDFrame) {
	drawCrosshair(f.Aimed != nil)
	if !h.Visible {
		return
	}

	lines := []string{
		"WASD move, Space jump, mouse look",
		"F grab/drop, Q/E and R/T rotate, wheel scale",
		"Up/Down push/pull, mouse Y raise/lower, F1 tuning",
	}
	if m := f.Manipulator; m != nil {
		lines = append(lines, statusLine(m, f.Aimed))
	}
	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, hintIndent, y, textSize, colorTextSecondary)
		y += rowH
	}
	rl.DrawFPS(hintIndent, y)
	y += rowH

	if r := f.Renderer; r != nil {
		rl.DrawText(fmt.Sprintf("bodies %d  drawn %d  culled %d  update %.2fms  draw %.2fms",
			f.Bodies, r.Drawn, r.Culled, f.UpdateMs, f.DrawMs), hintIndent, y, textSize, colorTextMuted)
		y += rowH
	}

	if h.Tuning && f.Manipulator != nil {
		h.drawTuning(f, float32(y+10))
	}
}

func statusLine(m *scripts.Manipulator, aimed *engine.GameObject) string {
	switch {
	case m.State() == scripts.StateHolding:
		s := m.Held().Transform.Scale
		return fmt.Sprintf("Holding %s  dist %.2f  height %.2f  scale %.2f",
			m.Held().Name, m.HoldDistance, m.HoldHeight, s.X)
	case aimed != nil:
		return fmt.Sprintf("Press F to pick up %s", aimed.Name)
	default:
		return "Empty"
	}
}

func (h *HUD) drawTuning(f HUDFrame, top float32) {
	m := f.Manipulator
	rows := []struct {
		label    string
		value    *float32
		min, max float32
	}{
		{"Pick up range", &m.PickUpRange, 0.5, 10},
		{"Rotation speed", &m.RotationSpeed, 0, 360},
		{"Scale speed", &m.ScaleSpeed, 0, 5},
		{"Hold distance", &m.HoldDistance, -2, 10},
		{"Distance step", &m.HoldDistanceStep, 0, 10},
		{"Height sens.", &m.HoldHeightSensitivity, 0, 1},
		{"Min height", &m.MinHoldHeight, -3, 0},
		{"Max height", &m.MaxHoldHeight, 0, 3},
	}

	height := float32(len(rows)+3) * rowH
	gui.GroupBox(rl.Rectangle{X: panelX, Y: top, Width: panelW, Height: height}, "Manipulator")

	y := top + 10
	for _, row := range rows {
		gui.Label(rl.Rectangle{X: panelX + 8, Y: y, Width: labelW, Height: rowH - 4}, row.label)
		bounds := rl.Rectangle{X: panelX + 8 + labelW, Y: y, Width: sliderW, Height: rowH - 4}
		*row.value = gui.Slider(bounds, "", fmt.Sprintf("%.2f", *row.value), *row.value, row.min, row.max)
		y += rowH
	}
	// Sliders can invert the bounds; keep the height inside whatever they say.
	if m.MinHoldHeight > m.MaxHoldHeight {
		m.MinHoldHeight = m.MaxHoldHeight
	}
	engine.ApplyScriptProperty(m, "holdHeight", m.HoldHeight)

	r := f.Renderer
	if r != nil {
		r.ShowColliders = gui.CheckBox(rl.Rectangle{X: panelX + 8, Y: y + 4, Width: rowH - 6, Height: rowH - 6}, "Colliders", r.ShowColliders)
		r.ShowGrid = gui.CheckBox(rl.Rectangle{X: panelX + 130, Y: y + 4, Width: rowH - 6, Height: rowH - 6}, "Grid", r.ShowGrid)
	}
}

func drawCrosshair(active bool) {
	cx := int32(rl.GetScreenWidth() / 2)
	cy := int32(rl.GetScreenHeight() / 2)
	color := colorTextSecondary
	if active {
		color = colorAccent
	}
	rl.DrawLine(cx-8, cy, cx+8, cy, color)
	rl.DrawLine(cx, cy-8, cx, cy+8, color)
}
