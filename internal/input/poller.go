package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Poller samples raylib's input state. It must be called from the thread
// that owns the window, once per frame.
type Poller struct {
	Bindings Bindings
	// MouseAxisScale converts pixels of mouse travel to axis units.
	MouseAxisScale float32
	// ScrollAxisScale converts wheel notches to axis units.
	ScrollAxisScale float32
}

func NewPoller(b Bindings) *Poller {
	return &Poller{
		Bindings:        b,
		MouseAxisScale:  0.1,
		ScrollAxisScale: 0.1,
	}
}

func (p *Poller) Snapshot() State {
	var s State
	for action, bindings := range p.Bindings {
		for _, b := range bindings {
			if b.IsMouse {
				if rl.IsMouseButtonPressed(b.Mouse) {
					s = s.WithPressed(action)
				} else if rl.IsMouseButtonDown(b.Mouse) {
					s = s.WithHeld(action)
				}
				continue
			}
			if rl.IsKeyPressed(b.Key) {
				s = s.WithPressed(action)
			} else if rl.IsKeyDown(b.Key) {
				s = s.WithHeld(action)
			}
		}
	}

	delta := rl.GetMouseDelta()
	s = s.WithAxis(AxisMouseX, delta.X*p.MouseAxisScale)
	// Screen Y grows downward; the axis is positive upward.
	s = s.WithAxis(AxisMouseY, -delta.Y*p.MouseAxisScale)
	s = s.WithAxis(AxisScrollWheel, rl.GetMouseWheelMove()*p.ScrollAxisScale)
	return s
}
