// Package gesture turns raw pointer samples into drag gestures with start, move, end
// and cancel phases. Consumers subscribe per phase through the Source interface.
package gesture

import (
	"github.com/Carmen-Shannon/oxy-map/common"
)

// PointerType tags the kind of device that produced a pointer sample.
type PointerType string

const (
	PointerUnknown PointerType = ""
	PointerMouse   PointerType = "mouse"
	PointerTouch   PointerType = "touch"
	PointerPen     PointerType = "pen"
)

// Phase is one stage of a drag gesture.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel

	phaseCount
)

// String returns the event name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "movestart"
	case PhaseMove:
		return "movemove"
	case PhaseEnd:
		return "moveend"
	case PhaseCancel:
		return "movecancel"
	default:
		return "unknown"
	}
}

// Event is delivered to handlers for every gesture phase.
type Event struct {
	// Phase is the gesture stage this event reports.
	Phase Phase

	// PointerType is the device kind driving the gesture.
	PointerType PointerType

	// PointerID identifies the pointer (touch slot or mouse) driving the gesture.
	PointerID int

	// Center is the current gesture position in screen pixels.
	Center common.Vec2

	// Delta is the offset of Center from the point where the pointer was pressed.
	Delta common.Vec2
}

// Handler receives gesture events.
type Handler func(evt Event)

// Source emits drag gesture events to registered handlers.
// Handlers are called synchronously on the thread that feeds the source.
type Source interface {
	// On registers a handler for one phase.
	//
	// Parameters:
	//   - phase: the gesture phase to listen for
	//   - handler: function invoked for each event of that phase
	//
	// Returns:
	//   - common.ListenerID: handle for Off
	On(phase Phase, handler Handler) common.ListenerID

	// Off removes a handler previously registered with On.
	// Unknown IDs are ignored.
	//
	// Parameters:
	//   - phase: the phase the handler was registered for
	//   - id: the handle returned by On
	Off(phase Phase, id common.ListenerID)
}

// Sample is one raw pointer observation fed into a Recognizer.
type Sample struct {
	// ID distinguishes simultaneous pointers (touch IDs, or a fixed ID for the mouse).
	ID int

	// Type is the device kind that produced the sample.
	Type PointerType

	// Position is the pointer location in screen pixels.
	Position common.Vec2

	// Pressed reports whether the pointer is currently down.
	Pressed bool
}
