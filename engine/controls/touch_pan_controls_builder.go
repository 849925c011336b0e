package controls

import "github.com/Carmen-Shannon/oxy-map/engine/gesture"

// TouchPanControlsOption is a functional option for configuring TouchPanControls.
type TouchPanControlsOption func(*touchPanControlsImpl)

// WithSpeed sets the rotation sensitivity multiplier.
//
// Parameters:
//   - speed: multiplier applied to accumulated pixel displacement
//
// Returns:
//   - TouchPanControlsOption: functional option to set the speed
func WithSpeed(speed float64) TouchPanControlsOption {
	return func(c *touchPanControlsImpl) {
		c.speed = speed
	}
}

// WithStiffness sets the smoothing rate, relative to a 60fps reference frame.
// Expected range is (0, 1]; 1 consumes the accumulated displacement in a single frame.
//
// Parameters:
//   - stiffness: smoothing rate
//
// Returns:
//   - TouchPanControlsOption: functional option to set the stiffness
func WithStiffness(stiffness float64) TouchPanControlsOption {
	return func(c *touchPanControlsImpl) {
		c.stiffness = stiffness
	}
}

// WithExcludedPointers sets the pointer types whose events are ignored.
// Passing no types lets every pointer type drive the controls.
//
// Parameters:
//   - types: pointer types to ignore (default: gesture.PointerMouse)
//
// Returns:
//   - TouchPanControlsOption: functional option to set excluded pointer types
func WithExcludedPointers(types ...gesture.PointerType) TouchPanControlsOption {
	return func(c *touchPanControlsImpl) {
		c.excluded = make(map[gesture.PointerType]bool, len(types))
		for _, t := range types {
			c.excluded[t] = true
		}
	}
}
