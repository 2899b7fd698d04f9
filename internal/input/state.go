// Package input turns raw device polling into per-frame State snapshots so
// gameplay code never reads global input state directly.
package input

// Action is a named, rebindable button.
type Action int

const (
	ActionPrimary Action = iota
	ActionRotateXPositive
	ActionRotateXNegative
	ActionRotateYPositive
	ActionRotateYNegative
	ActionAdvance
	ActionRetreat
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionToggleHUD
	actionCount
)

var actionNames = [actionCount]string{
	ActionPrimary:         "primary",
	ActionRotateXPositive: "rotate_x_positive",
	ActionRotateXNegative: "rotate_x_negative",
	ActionRotateYPositive: "rotate_y_positive",
	ActionRotateYNegative: "rotate_y_negative",
	ActionAdvance:         "advance",
	ActionRetreat:         "retreat",
	ActionMoveForward:     "move_forward",
	ActionMoveBack:        "move_back",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionJump:            "jump",
	ActionToggleHUD:       "toggle_hud",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a config name like "rotate_x_positive" to its Action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// Axis is an analog input sampled once per frame.
type Axis int

const (
	// AxisMouseX is horizontal mouse movement, positive to the right.
	AxisMouseX Axis = iota
	// AxisMouseY is vertical mouse movement, positive upward.
	AxisMouseY
	// AxisScrollWheel is wheel movement, positive away from the user.
	AxisScrollWheel
	axisCount
)

// State is an immutable snapshot of one frame's input.
type State struct {
	pressed [actionCount]bool
	held    [actionCount]bool
	axes    [axisCount]float32
}

// Pressed reports whether a went down this frame.
func (s State) Pressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.pressed[a]
}

// Held reports whether a is currently down.
func (s State) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.held[a]
}

func (s State) Axis(a Axis) float32 {
	if a < 0 || a >= axisCount {
		return 0
	}
	return s.axes[a]
}

// WithPressed returns a copy with actions pressed this frame. A pressed
// action is also held.
func (s State) WithPressed(actions ...Action) State {
	for _, a := range actions {
		if a >= 0 && a < actionCount {
			s.pressed[a] = true
			s.held[a] = true
		}
	}
	return s
}

// WithHeld returns a copy with actions held down.
func (s State) WithHeld(actions ...Action) State {
	for _, a := range actions {
		if a >= 0 && a < actionCount {
			s.held[a] = true
		}
	}
	return s
}

func (s State) WithAxis(a Axis, value float32) State {
	if a >= 0 && a < axisCount {
		s.axes[a] = value
	}
	return s
}

// Source produces one State per frame.
type Source interface {
	Snapshot() State
}

// Scripted replays a fixed sequence of frames, then idle frames.
type Scripted struct {
	Frames []State
	next   int
}

func NewScripted(frames ...State) *Scripted {
	return &Scripted{Frames: frames}
}

func (s *Scripted) Snapshot() State {
	if s.next >= len(s.Frames) {
		return State{}
	}
	st := s.Frames[s.next]
	s.next++
	return st
}

// Latch holds the frame's State so several components can read the same
// snapshot. The game loop stores once per frame.
type Latch struct {
	state State
}

func (l *Latch) Store(s State) {
	l.state = s
}

func (l *Latch) Snapshot() State {
	return l.state
}
