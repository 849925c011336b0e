package camera

// MapController is the map view manager: it owns the camera orientation (rotation, angle),
// the viewing distance, and the target point on the map. Camera reads from it each frame
// to compute view/projection matrices; input controls mutate it.
//
// Angle is the tilt away from looking straight down: 0 is a top-down view,
// values approaching π/2 look toward the horizon.
type MapController interface {
	// Rotation returns the horizontal rotation around the target in radians, in [0, 2π).
	//
	// Returns:
	//   - float64: rotation in radians
	Rotation() float64

	// SetRotation sets the horizontal rotation, wrapped into [0, 2π).
	//
	// Parameters:
	//   - rotation: rotation in radians
	SetRotation(rotation float64)

	// Angle returns the tilt angle in radians.
	//
	// Returns:
	//   - float64: tilt in radians
	Angle() float64

	// SetAngle sets the tilt angle, clamped to [MinAngle, MaxAngle].
	//
	// Parameters:
	//   - angle: tilt in radians
	SetAngle(angle float64)

	// MinAngle returns the smallest allowed tilt.
	MinAngle() float64

	// MaxAngle returns the largest allowed tilt.
	MaxAngle() float64

	// Distance returns the distance from the target to the camera.
	//
	// Returns:
	//   - float64: distance in world units
	Distance() float64

	// SetDistance sets the distance, clamped to [MinDistance, MaxDistance].
	//
	// Parameters:
	//   - distance: distance in world units
	SetDistance(distance float64)

	// MinDistance returns the closest allowed distance.
	MinDistance() float64

	// MaxDistance returns the farthest allowed distance.
	MaxDistance() float64

	// Zoom moves the camera toward the target. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float64)

	// Target returns the look-at point on the map.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float64)

	// SetTarget sets the look-at point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float64)

	// Position returns the camera position derived from target, distance, rotation and angle.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float64)

	// PanRight moves the target along the ground plane, perpendicular to the view direction.
	// Positive delta moves right on screen.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float64)

	// PanForward moves the target along the ground plane in the view direction.
	// Positive delta moves away from the camera.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float64)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float64

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float64
}
