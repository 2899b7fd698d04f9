package input

import (
	"fmt"
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Binding is a single physical key or mouse button.
type Binding struct {
	Key     int32
	Mouse   rl.MouseButton
	IsMouse bool
}

// Bindings maps each action to the inputs that trigger it.
type Bindings map[Action][]Binding

var keyByName = map[string]int32{
	"Space": rl.KeySpace, "Tab": rl.KeyTab, "Enter": rl.KeyEnter, "Escape": rl.KeyEscape,
	"Up": rl.KeyUp, "Down": rl.KeyDown, "Left": rl.KeyLeft, "Right": rl.KeyRight,
	"LeftShift": rl.KeyLeftShift, "LeftControl": rl.KeyLeftControl,
	"PageUp": rl.KeyPageUp, "PageDown": rl.KeyPageDown,
	"F1": rl.KeyF1, "F2": rl.KeyF2, "F3": rl.KeyF3, "F4": rl.KeyF4,
}

var mouseByName = map[string]rl.MouseButton{
	"MouseLeft":   rl.MouseButton(rl.MouseLeftButton),
	"MouseRight":  rl.MouseButton(rl.MouseRightButton),
	"MouseMiddle": rl.MouseButton(rl.MouseMiddleButton),
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyByName[string(c)] = rl.KeyA + int32(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyByName[string(c)] = rl.KeyZero + int32(c-'0')
	}
}

// ParseBinding accepts key names ("Q", "Space", "F1") and mouse buttons
// ("MouseLeft"). Letters are case-insensitive.
func ParseBinding(name string) (Binding, error) {
	if b, ok := mouseByName[name]; ok {
		return Binding{Mouse: b, IsMouse: true}, nil
	}
	if k, ok := keyByName[name]; ok {
		return Binding{Key: k}, nil
	}
	if len(name) == 1 {
		if k, ok := keyByName[strings.ToUpper(name)]; ok {
			return Binding{Key: k}, nil
		}
	}
	return Binding{}, fmt.Errorf("unknown key %q", name)
}

// ParseBindings converts config form (action name -> key names).
// Actions missing from raw keep their defaults.
func ParseBindings(raw map[string][]string) (Bindings, error) {
	out := DefaultBindings()
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		action, ok := ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		keys := raw[name]
		bs := make([]Binding, 0, len(keys))
		for _, key := range keys {
			b, err := ParseBinding(key)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", name, err)
			}
			bs = append(bs, b)
		}
		out[action] = bs
	}
	return out, nil
}

func key(k int32) Binding { return Binding{Key: k} }

// DefaultBindings is the stock layout: F grabs/drops, Q/E turn about X
// (E positive), R/T turn about Y (T positive), Up/Down push the hold
// point out and in.
func DefaultBindings() Bindings {
	return Bindings{
		ActionPrimary:         {key(rl.KeyF)},
		ActionRotateXPositive: {key(rl.KeyE)},
		ActionRotateXNegative: {key(rl.KeyQ)},
		ActionRotateYPositive: {key(rl.KeyT)},
		ActionRotateYNegative: {key(rl.KeyR)},
		ActionAdvance:         {key(rl.KeyUp)},
		ActionRetreat:         {key(rl.KeyDown)},
		ActionMoveForward:     {key(rl.KeyW)},
		ActionMoveBack:        {key(rl.KeyS)},
		ActionMoveLeft:        {key(rl.KeyA)},
		ActionMoveRight:       {key(rl.KeyD)},
		ActionJump:            {key(rl.KeySpace)},
		ActionToggleHUD:       {key(rl.KeyF1)},
	}
}
