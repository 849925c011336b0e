package camera

// MapControllerOption is a functional option for configuring a MapController.
type MapControllerOption func(*mapControllerImpl)

// WithDistance sets the initial distance from the target.
//
// Parameters:
//   - distance: distance in world units
//
// Returns:
//   - MapControllerOption: functional option to set the distance
func WithDistance(distance float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.distance = distance
	}
}

// WithRotation sets the initial horizontal rotation.
//
// Parameters:
//   - rotation: rotation in radians
//
// Returns:
//   - MapControllerOption: functional option to set the rotation
func WithRotation(rotation float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.rotation = rotation
	}
}

// WithAngle sets the initial tilt angle.
//
// Parameters:
//   - angle: tilt in radians (0 = top-down)
//
// Returns:
//   - MapControllerOption: functional option to set the angle
func WithAngle(angle float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.angle = angle
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - MapControllerOption: functional option to set the target
func WithTarget(x, y, z float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.target = [3]float64{x, y, z}
	}
}

// WithAngleBounds sets the allowed tilt range.
//
// Parameters:
//   - min: smallest tilt in radians
//   - max: largest tilt in radians
//
// Returns:
//   - MapControllerOption: functional option to set angle bounds
func WithAngleBounds(min, max float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.minAngle = min
		mc.maxAngle = max
	}
}

// WithDistanceBounds sets the allowed distance range.
//
// Parameters:
//   - min: closest distance
//   - max: farthest distance
//
// Returns:
//   - MapControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.minDistance = min
		mc.maxDistance = max
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - MapControllerOption: functional option to set pan speed
func WithPanSpeed(speed float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - MapControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float64) MapControllerOption {
	return func(mc *mapControllerImpl) {
		mc.zoomSpeed = speed
	}
}
