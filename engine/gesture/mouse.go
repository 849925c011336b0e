package gesture

import "github.com/Carmen-Shannon/oxy-map/common"

// MousePointerID is the pointer ID used for samples produced from a mouse.
const MousePointerID = -1

// MouseSource is a host window that reports mouse buttons, cursor motion and focus changes.
type MouseSource interface {
	SetMouseDownCallback(callback func(button int, x, y float64))
	SetMouseUpCallback(callback func(button int, x, y float64))
	SetMouseMoveCallback(callback func(x, y float64))
	SetFocusCallback(callback func(focused bool))
}

// BindMouse feeds mouse input from src into rec as PointerMouse samples.
// Only the given button drives the pointer; losing window focus cancels the gesture.
// BindMouse replaces any mouse and focus callbacks previously set on src.
//
// Parameters:
//   - src: the host window
//   - rec: the recognizer to feed
//   - button: the mouse button that acts as the pointer (see common.MouseButtonLeft)
func BindMouse(src MouseSource, rec *Recognizer, button int) {
	pressed := false

	sample := func(x, y float64) Sample {
		return Sample{
			ID:       MousePointerID,
			Type:     PointerMouse,
			Position: common.Vec2{X: x, Y: y},
			Pressed:  pressed,
		}
	}

	src.SetMouseDownCallback(func(b int, x, y float64) {
		if b != button {
			return
		}
		pressed = true
		rec.Feed(sample(x, y))
	})
	src.SetMouseUpCallback(func(b int, x, y float64) {
		if b != button || !pressed {
			return
		}
		pressed = false
		rec.Feed(sample(x, y))
	})
	src.SetMouseMoveCallback(func(x, y float64) {
		if !pressed {
			return
		}
		rec.Feed(sample(x, y))
	})
	src.SetFocusCallback(func(focused bool) {
		if focused {
			return
		}
		pressed = false
		rec.Cancel()
	})
}
