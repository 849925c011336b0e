// Package controls contains input controllers that drive the map view manager.
package controls

import "github.com/Carmen-Shannon/oxy-map/common"

// ViewManager owns the map camera orientation mutated by controls.
// Wrapping and clamping of the values is the manager's responsibility.
type ViewManager interface {
	// Rotation returns the horizontal rotation in radians.
	Rotation() float64

	// SetRotation sets the horizontal rotation in radians.
	SetRotation(rotation float64)

	// Angle returns the vertical tilt angle in radians.
	Angle() float64

	// SetAngle sets the vertical tilt angle in radians.
	SetAngle(angle float64)
}

// Viewport is the on-screen element the controls are bound to.
type Viewport interface {
	// Width returns the current width in pixels.
	Width() int

	// Height returns the current height in pixels.
	Height() int

	// AddResizeListener registers fn to be called with the new size after every resize.
	//
	// Parameters:
	//   - fn: resize callback
	//
	// Returns:
	//   - common.ListenerID: handle for RemoveResizeListener
	AddResizeListener(fn func(width, height int)) common.ListenerID

	// RemoveResizeListener unregisters a callback added with AddResizeListener.
	//
	// Parameters:
	//   - id: handle returned by AddResizeListener
	RemoveResizeListener(id common.ListenerID)
}
