package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-map/common"
)

// mapControllerImpl is the single implementation of MapController.
type mapControllerImpl struct {
	mu *sync.Mutex

	target [3]float64

	// Orientation around the target
	rotation float64
	angle    float64
	distance float64

	// Constraints
	minAngle    float64
	maxAngle    float64
	minDistance float64
	maxDistance float64

	panSpeed  float64
	zoomSpeed float64
}

// Compile-time interface compliance check
var _ MapController = &mapControllerImpl{}

// NewMapController creates a new map controller with sensible defaults.
// Initial values supplied through options are wrapped and clamped like later setter calls.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - MapController: the newly created controller
func NewMapController(options ...MapControllerOption) MapController {
	mc := &mapControllerImpl{
		mu: &sync.Mutex{},

		rotation: 0,
		angle:    0,
		distance: 500,

		minAngle:    0,
		maxAngle:    math.Pi/2 - 0.05,
		minDistance: 5,
		maxDistance: 10000,

		panSpeed:  1,
		zoomSpeed: 25,
	}

	for _, option := range options {
		option(mc)
	}

	mc.rotation = common.WrapAngle(mc.rotation)
	mc.angle = common.Clamp(mc.angle, mc.minAngle, mc.maxAngle)
	mc.distance = common.Clamp(mc.distance, mc.minDistance, mc.maxDistance)
	return mc
}

func (mc *mapControllerImpl) Rotation() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.rotation
}

func (mc *mapControllerImpl) SetRotation(rotation float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return
	}
	mc.rotation = common.WrapAngle(rotation)
}

func (mc *mapControllerImpl) Angle() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.angle
}

func (mc *mapControllerImpl) SetAngle(angle float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if math.IsNaN(angle) {
		return
	}
	mc.angle = common.Clamp(angle, mc.minAngle, mc.maxAngle)
}

func (mc *mapControllerImpl) MinAngle() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.minAngle
}

func (mc *mapControllerImpl) MaxAngle() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.maxAngle
}

func (mc *mapControllerImpl) Distance() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.distance
}

func (mc *mapControllerImpl) SetDistance(distance float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if math.IsNaN(distance) {
		return
	}
	mc.distance = common.Clamp(distance, mc.minDistance, mc.maxDistance)
}

func (mc *mapControllerImpl) MinDistance() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.minDistance
}

func (mc *mapControllerImpl) MaxDistance() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.maxDistance
}

func (mc *mapControllerImpl) Zoom(delta float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.distance = common.Clamp(mc.distance-delta*mc.zoomSpeed, mc.minDistance, mc.maxDistance)
}

func (mc *mapControllerImpl) Target() (x, y, z float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.target[0], mc.target[1], mc.target[2]
}

func (mc *mapControllerImpl) SetTarget(x, y, z float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.target = [3]float64{x, y, z}
}

func (mc *mapControllerImpl) Position() (x, y, z float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	sinAngle, cosAngle := math.Sincos(mc.angle)
	sinRot, cosRot := math.Sincos(mc.rotation)

	x = mc.target[0] + mc.distance*sinAngle*sinRot
	y = mc.target[1] + mc.distance*cosAngle
	z = mc.target[2] + mc.distance*sinAngle*cosRot
	return x, y, z
}

// PanRight moves along the screen-right direction projected onto the ground plane.
// At rotation 0 the camera looks toward -Z, so screen right is +X.
func (mc *mapControllerImpl) PanRight(delta float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	sinRot, cosRot := math.Sincos(mc.rotation)
	offset := delta * mc.panSpeed
	mc.target[0] += cosRot * offset
	mc.target[2] -= sinRot * offset
}

// PanForward moves along the view direction projected onto the ground plane.
func (mc *mapControllerImpl) PanForward(delta float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	sinRot, cosRot := math.Sincos(mc.rotation)
	offset := delta * mc.panSpeed
	mc.target[0] -= sinRot * offset
	mc.target[2] -= cosRot * offset
}

func (mc *mapControllerImpl) PanSpeed() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.panSpeed
}

func (mc *mapControllerImpl) ZoomSpeed() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.zoomSpeed
}
