// Package config loads pickup3d.yaml and validates it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"pickup3d/internal/input"
	"pickup3d/internal/logging"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel    string            `yaml:"log_level"`
	Scene       string            `yaml:"scene"`
	Window      WindowConfig      `yaml:"window"`
	Manipulator ManipulatorConfig `yaml:"manipulator"`
	Input       InputConfig       `yaml:"input"`
	HUD         HUDConfig         `yaml:"hud"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

type ManipulatorConfig struct {
	PickUpRange           float32 `yaml:"pick_up_range"`
	RotationSpeed         float32 `yaml:"rotation_speed"`
	ScaleSpeed            float32 `yaml:"scale_speed"`
	HoldDistance          float32 `yaml:"hold_distance"`
	HoldDistanceStep      float32 `yaml:"hold_distance_step"`
	HoldHeight            float32 `yaml:"hold_height"`
	MinHoldHeight         float32 `yaml:"min_hold_height"`
	MaxHoldHeight         float32 `yaml:"max_hold_height"`
	HoldHeightSensitivity float32 `yaml:"hold_height_sensitivity"`
	InteractTag           string  `yaml:"interact_tag"`
}

type InputConfig struct {
	MouseSensitivity  float32             `yaml:"mouse_sensitivity"`
	ScrollSensitivity float32             `yaml:"scroll_sensitivity"`
	Bindings          map[string][]string `yaml:"bindings"`
}

type HUDConfig struct {
	Visible bool `yaml:"visible"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Scene:    "assets/scenes/playground.yaml",
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "pickup3d",
			TargetFPS: 60,
		},
		Manipulator: ManipulatorConfig{
			PickUpRange:           3,
			RotationSpeed:         100,
			ScaleSpeed:            0.5,
			HoldDistance:          2,
			HoldDistanceStep:      2,
			HoldHeight:            0,
			MinHoldHeight:         -1,
			MaxHoldHeight:         1,
			HoldHeightSensitivity: 0.1,
			InteractTag:           "Interactable",
		},
		Input: InputConfig{
			MouseSensitivity:  0.1,
			ScrollSensitivity: 0.1,
		},
		HUD: HUDConfig{Visible: true},
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// an error so typos don't silently fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		bad("log_level: %v", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		bad("window.target_fps %d is negative", c.Window.TargetFPS)
	}

	m := c.Manipulator
	if m.PickUpRange <= 0 {
		bad("manipulator.pick_up_range must be positive, got %g", m.PickUpRange)
	}
	if m.RotationSpeed < 0 || m.ScaleSpeed < 0 || m.HoldDistanceStep < 0 || m.HoldHeightSensitivity < 0 {
		bad("manipulator speeds and sensitivities must not be negative")
	}
	if m.MinHoldHeight > m.MaxHoldHeight {
		bad("manipulator.min_hold_height %g exceeds max_hold_height %g", m.MinHoldHeight, m.MaxHoldHeight)
	} else if m.HoldHeight < m.MinHoldHeight || m.HoldHeight > m.MaxHoldHeight {
		bad("manipulator.hold_height %g outside [%g, %g]", m.HoldHeight, m.MinHoldHeight, m.MaxHoldHeight)
	}
	if m.InteractTag == "" {
		bad("manipulator.interact_tag is empty")
	}

	if _, err := input.ParseBindings(c.Input.Bindings); err != nil {
		bad("input.bindings: %v", err)
	}

	return errors.Join(errs...)
}

// Bindings resolves the configured key names. Validate has already
// checked them, so the error only fires on a Config built by hand.
func (c Config) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Input.Bindings)
}

// Props returns the Manipulator tunables keyed by script property name.
// The current hold height is runtime state and is only applied at spawn,
// see SpawnProps.
func (m ManipulatorConfig) Props() map[string]any {
	return map[string]any{
		"pickUpRange":           m.PickUpRange,
		"rotationSpeed":         m.RotationSpeed,
		"scaleSpeed":            m.ScaleSpeed,
		"holdDistanceStep":      m.HoldDistanceStep,
		"minHoldHeight":         m.MinHoldHeight,
		"maxHoldHeight":         m.MaxHoldHeight,
		"holdHeightSensitivity": m.HoldHeightSensitivity,
		"interactTag":           m.InteractTag,
	}
}

// SpawnProps is Props plus the starting hold distance and height.
func (m ManipulatorConfig) SpawnProps() map[string]any {
	props := m.Props()
	props["holdDistance"] = m.HoldDistance
	props["holdHeight"] = m.HoldHeight
	return props
}
